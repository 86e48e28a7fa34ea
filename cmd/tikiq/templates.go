package main

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/shwzss/TikIQ/pkg/resolver"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// index serves the landing page with the lookup form.
func (h *handlers) index(w http.ResponseWriter, r *http.Request) {
	h.render(w, "index.html", map[string]interface{}{
		"OfficialConfigured": h.cfg.HasOfficialCredentials(),
		"TikAPIConfigured":   h.cfg.HasTikAPIKey(),
		"UnofficialEnabled":  h.cfg.UseUnofficial,
	})
}

// dashboard renders the profile page for a username. Resolution errors
// render into the page rather than failing the request.
func (h *handlers) dashboard(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	count := queryInt(r, "count", resolver.DefaultUserVideoCount)

	data := map[string]interface{}{"Username": username}
	outcome, err := h.resolver.Resolve(r.Context(), resolver.UserLookup(username, count))
	if err != nil {
		data["Error"] = err.Error()
	} else {
		data["Source"] = outcome.Source
		data["Payload"] = string(outcome.Data)
	}

	h.render(w, "dashboard.html", data)
}

func (h *handlers) render(w http.ResponseWriter, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplates.ExecuteTemplate(w, name, data); err != nil {
		h.logger.Error().Err(err).Str("template", name).Msg("Template render failed")
	}
}

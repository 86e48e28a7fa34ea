package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/shwzss/TikIQ/pkg/cache"
	"github.com/shwzss/TikIQ/pkg/config"
	"github.com/shwzss/TikIQ/pkg/resolver"
)

type handlers struct {
	cfg      *config.Config
	resolver resolver.QueryResolver
	store    cache.Store
	logger   zerolog.Logger
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// searchUser resolves a username through the cascade. Exhaustion never
// errors here; the resolver synthesizes a fallback payload instead.
func (h *handlers) searchUser(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	if username == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "username is required"})
		return
	}
	count := queryInt(r, "count", resolver.DefaultUserVideoCount)

	outcome, err := h.resolver.Resolve(r.Context(), resolver.UserLookup(username, count))
	if err != nil {
		h.logger.Error().Err(err).Str("username", username).Msg("User lookup failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"detail": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, outcome)
}

func (h *handlers) videoStats(w http.ResponseWriter, r *http.Request) {
	videoID := r.URL.Query().Get("video_id")
	if videoID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "video_id is required"})
		return
	}

	outcome, err := h.resolver.Resolve(r.Context(), resolver.VideoStats(videoID))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"detail":   err.Error(),
			"video_id": videoID,
		})
		return
	}
	writeJSON(w, http.StatusOK, outcome)
}

func (h *handlers) trendingHashtags(w http.ResponseWriter, r *http.Request) {
	count := queryInt(r, "count", resolver.DefaultHashtagCount)

	outcome, err := h.resolver.Resolve(r.Context(), resolver.TrendingHashtags(count))
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"detail": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, outcome)
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"time":   float64(time.Now().UnixNano()) / 1e9,
	})
}

// ready probes the cache backend. A miss is a healthy answer; only a
// backend error makes the instance not ready.
func (h *handlers) ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	_, err := h.store.Get(ctx, "tikiq:readiness-probe")
	if err != nil && !errors.Is(err, cache.ErrCacheMiss) {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"detail": err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// debugConfig reports which providers are usable without leaking secrets.
func (h *handlers) debugConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"has_tiktok_keys": h.cfg.HasOfficialCredentials(),
		"use_unofficial":  h.cfg.UseUnofficial,
		"api_host_hint":   h.cfg.OfficialHost,
	})
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// Package testutil provides test doubles for upstream TikTok APIs.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"
)

// MockResponse describes what the mock upstream returns for a path.
type MockResponse struct {
	StatusCode int
	Body       interface{}
	Headers    map[string]string
	Delay      time.Duration
}

// MockUpstream is a scriptable stand-in for any of the TikTok data APIs.
// Responses are registered per path; unregistered paths return 404.
type MockUpstream struct {
	Server *httptest.Server

	mu           sync.Mutex
	responses    map[string]*MockResponse
	requestCount map[string]int
	lastHeaders  map[string]http.Header
	lastQuery    map[string]string
}

// NewMockUpstream starts a mock upstream server. Callers own the shutdown
// via Close.
func NewMockUpstream() *MockUpstream {
	m := &MockUpstream{
		responses:    make(map[string]*MockResponse),
		requestCount: make(map[string]int),
		lastHeaders:  make(map[string]http.Header),
		lastQuery:    make(map[string]string),
	}
	m.Server = httptest.NewServer(http.HandlerFunc(m.handle))
	return m
}

// URL returns the base URL of the mock server.
func (m *MockUpstream) URL() string {
	return m.Server.URL
}

// Close shuts down the mock server.
func (m *MockUpstream) Close() {
	m.Server.Close()
}

// SetResponse registers the response for a path.
func (m *MockUpstream) SetResponse(path string, response *MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[path] = response
}

// RequestCount returns how many requests the path has received.
func (m *MockUpstream) RequestCount(path string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.requestCount[path]
}

// LastHeader returns a header from the most recent request to path.
func (m *MockUpstream) LastHeader(path, name string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if h, ok := m.lastHeaders[path]; ok {
		return h.Get(name)
	}
	return ""
}

// LastQuery returns the raw query string of the most recent request to path.
func (m *MockUpstream) LastQuery(path string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastQuery[path]
}

// Reset clears all registered responses and recorded requests.
func (m *MockUpstream) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = make(map[string]*MockResponse)
	m.requestCount = make(map[string]int)
	m.lastHeaders = make(map[string]http.Header)
	m.lastQuery = make(map[string]string)
}

func (m *MockUpstream) handle(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	m.requestCount[r.URL.Path]++
	m.lastHeaders[r.URL.Path] = r.Header.Clone()
	m.lastQuery[r.URL.Path] = r.URL.RawQuery
	response := m.responses[r.URL.Path]
	m.mu.Unlock()

	if response == nil {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": "not found"}`))
		return
	}

	if response.Delay > 0 {
		time.Sleep(response.Delay)
	}

	for name, value := range response.Headers {
		w.Header().Set(name, value)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(response.StatusCode)

	if response.Body != nil {
		json.NewEncoder(w).Encode(response.Body)
	}
}

// NewJSONResponse builds a 200 response with a JSON body.
func NewJSONResponse(body interface{}) *MockResponse {
	return &MockResponse{StatusCode: http.StatusOK, Body: body}
}

// NewServerErrorResponse builds a 500 response.
func NewServerErrorResponse() *MockResponse {
	return &MockResponse{
		StatusCode: http.StatusInternalServerError,
		Body:       map[string]string{"error": "internal server error"},
	}
}

// NewRateLimitResponse builds a 429 response.
func NewRateLimitResponse() *MockResponse {
	return &MockResponse{
		StatusCode: http.StatusTooManyRequests,
		Body:       map[string]string{"error": "rate limited"},
		Headers:    map[string]string{"Retry-After": "60"},
	}
}

// NewSlowResponse builds a 200 response that arrives after delay.
func NewSlowResponse(body interface{}, delay time.Duration) *MockResponse {
	return &MockResponse{StatusCode: http.StatusOK, Body: body, Delay: delay}
}

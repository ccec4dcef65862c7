package server

import (
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"

	"github.com/agbru/fibbridge/internal/config"
)

func TestDefaultSecurityConfig(t *testing.T) {
	t.Parallel()
	cfg := DefaultSecurityConfig()
	if !cfg.EnableCORS || !slices.Equal(cfg.AllowedOrigins, []string{"*"}) {
		t.Errorf("CORS defaults = %+v", cfg)
	}
	if !slices.Equal(cfg.AllowedMethods, []string{"GET", "POST", "OPTIONS"}) {
		t.Errorf("AllowedMethods = %v", cfg.AllowedMethods)
	}
	if cfg.MaxNValue != config.DefaultMaxN {
		t.Errorf("MaxNValue = %d", cfg.MaxNValue)
	}
}

func serveSecured(cfg SecurityConfig, method, origin string) (*httptest.ResponseRecorder, bool) {
	called := false
	handler := SecurityMiddleware(cfg, func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusTeapot)
	})
	req := httptest.NewRequest(method, "/call/fibonacci", http.NoBody)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec, called
}

func TestSecurityMiddleware_Headers(t *testing.T) {
	t.Parallel()
	rec, called := serveSecured(DefaultSecurityConfig(), http.MethodGet, "")
	if !called || rec.Code != http.StatusTeapot {
		t.Fatalf("next handler not reached: called=%v code=%d", called, rec.Code)
	}
	want := map[string]string{
		"X-Content-Type-Options":  "nosniff",
		"X-Frame-Options":         "DENY",
		"X-XSS-Protection":        "1; mode=block",
		"Referrer-Policy":         "strict-origin-when-cross-origin",
		"Content-Security-Policy": "default-src 'none'; frame-ancestors 'none'",
	}
	for k, v := range want {
		if got := rec.Header().Get(k); got != v {
			t.Errorf("%s = %q, want %q", k, got, v)
		}
	}
}

func TestSecurityMiddleware_CORS(t *testing.T) {
	t.Parallel()
	restricted := SecurityConfig{
		EnableCORS:     true,
		AllowedOrigins: []string{"https://a.example", "https://b.example"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
	}
	tests := []struct {
		name       string
		cfg        SecurityConfig
		origin     string
		wantOrigin string
		wantVary   bool
	}{
		{"wildcard", DefaultSecurityConfig(), "https://any.example", "*", false},
		{"listed origin", restricted, "https://b.example", "https://b.example", true},
		{"unlisted origin", restricted, "https://evil.example", "", false},
		{"no origin header", restricted, "", "", false},
		{"disabled", SecurityConfig{AllowedOrigins: []string{"*"}}, "https://a.example", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec, _ := serveSecured(tt.cfg, http.MethodPost, tt.origin)
			h := rec.Header()
			if got := h.Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("Allow-Origin = %q, want %q", got, tt.wantOrigin)
			}
			if (h.Get("Vary") == "Origin") != tt.wantVary {
				t.Errorf("Vary = %q", h.Get("Vary"))
			}
			if tt.wantOrigin != "" {
				if got, want := h.Get("Access-Control-Allow-Methods"), strings.Join(tt.cfg.AllowedMethods, ", "); got != want {
					t.Errorf("Allow-Methods = %q, want %q", got, want)
				}
				if h.Get("Access-Control-Max-Age") != "86400" || h.Get("Access-Control-Allow-Headers") != "Content-Type" {
					t.Errorf("preflight cache headers = %v", h)
				}
			}
		})
	}
}

func TestSecurityMiddleware_Preflight(t *testing.T) {
	t.Parallel()
	rec, called := serveSecured(DefaultSecurityConfig(), http.MethodOptions, "https://host.example")
	if called {
		t.Error("preflight must not reach the next handler")
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("preflight should carry CORS headers")
	}
}

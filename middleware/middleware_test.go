// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/danielhkuo/campaign-signup/auth"
	"github.com/danielhkuo/campaign-signup/flash"
	"github.com/danielhkuo/campaign-signup/metrics"
)

func TestWithLogging(t *testing.T) {
	handlerCalled := false
	var seenID string
	testHandler := func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		seenID = GetRequestID(r.Context())
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("success"))
	}

	req := httptest.NewRequest("GET", "/test-path", nil)
	w := httptest.NewRecorder()

	WithLogging(testHandler)(w, req)

	if !handlerCalled {
		t.Error("Expected handler to be called")
	}
	if w.Code != http.StatusTeapot {
		t.Errorf("Expected status 418, got %d", w.Code)
	}
	if w.Body.String() != "success" {
		t.Errorf("Expected body 'success', got '%s'", w.Body.String())
	}
	if seenID == "" || w.Header().Get("X-Request-ID") != seenID {
		t.Errorf("Expected request id in context and header, got %q / %q", seenID, w.Header().Get("X-Request-ID"))
	}
}

func TestInstrument(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	handler := Instrument(m, "/admin", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusSeeOther)
	})

	handler(httptest.NewRecorder(), httptest.NewRequest("GET", "/admin", nil))

	count, err := testutil.GatherAndCount(reg, "http_request_duration_seconds")
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("Expected 1 latency series, got %d", count)
	}
}

func TestRequireAdmin_Anonymous(t *testing.T) {
	sessions := auth.NewSessions("secret", time.Hour)

	testCases := []struct {
		name   string
		cookie *http.Cookie
	}{
		{"no cookie", nil},
		{"garbage token", &http.Cookie{Name: SessionCookieName, Value: "not-a-token"}},
		{"token signed with another key", &http.Cookie{Name: SessionCookieName, Value: mustIssue(t, auth.NewSessions("other", time.Hour))}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			called := false
			handler := RequireAdmin(sessions, func(w http.ResponseWriter, r *http.Request) {
				called = true
			})

			req := httptest.NewRequest("POST", "/admin/campaign/1/toggle_status", nil)
			if tc.cookie != nil {
				req.AddCookie(tc.cookie)
			}
			w := httptest.NewRecorder()

			handler(w, req)

			if called {
				t.Fatal("Protected handler must not run for anonymous requests")
			}
			if w.Code != http.StatusSeeOther {
				t.Errorf("Expected status 303, got %d", w.Code)
			}
			if loc := w.Header().Get("Location"); loc != LoginPath {
				t.Errorf("Expected redirect to %s, got %s", LoginPath, loc)
			}

			var msg flash.Message
			for _, c := range w.Result().Cookies() {
				if c.Name == flash.CookieName {
					msg, _ = flash.Decode(c.Value)
				}
			}
			if msg.Kind != flash.KindWarning || msg.Text != MsgLoginRequired {
				t.Errorf("Expected login warning flash, got %+v", msg)
			}
		})
	}
}

func TestRequireAdmin_Authenticated(t *testing.T) {
	sessions := auth.NewSessions("secret", time.Hour)
	token := mustIssue(t, sessions)

	var admin string
	handler := RequireAdmin(sessions, func(w http.ResponseWriter, r *http.Request) {
		admin = GetAdmin(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/admin", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	w := httptest.NewRecorder()

	handler(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if admin != "admin" {
		t.Errorf("Expected admin in context, got %q", admin)
	}
}

func TestSessionCookies(t *testing.T) {
	sessions := auth.NewSessions("secret", time.Hour)
	req := httptest.NewRequest("GET", "/login", nil)

	if got := SessionStatus(sessions, req); got != auth.StatusAnonymous {
		t.Errorf("Expected anonymous without cookie, got %s", got)
	}

	w := httptest.NewRecorder()
	SetSession(w, req, mustIssue(t, sessions), time.Hour)
	cookies := w.Result().Cookies()
	if len(cookies) != 1 || !cookies[0].HttpOnly || cookies[0].MaxAge != 3600 {
		t.Fatalf("Unexpected session cookie: %+v", cookies)
	}

	req.AddCookie(cookies[0])
	if got := SessionStatus(sessions, req); got != auth.StatusAuthenticated {
		t.Errorf("Expected authenticated with cookie, got %s", got)
	}

	w = httptest.NewRecorder()
	ClearSession(w, req)
	cleared := w.Result().Cookies()
	if len(cleared) != 1 || cleared[0].MaxAge != -1 || cleared[0].Value != "" {
		t.Errorf("Expected expired session cookie, got %+v", cleared)
	}
}

func TestRedirectAndNotFound(t *testing.T) {
	w := httptest.NewRecorder()
	Redirect(w, httptest.NewRequest("POST", "/admin", nil), "/admin")
	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/admin" {
		t.Errorf("Expected 303 to /admin, got %d %s", w.Code, w.Header().Get("Location"))
	}

	w = httptest.NewRecorder()
	NotFound(w)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}
}

func TestJSONResponse(t *testing.T) {
	w := httptest.NewRecorder()
	JSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})

	if w.Header().Get("Content-Type") != "application/json" {
		t.Errorf("Expected JSON content type, got %s", w.Header().Get("Content-Type"))
	}
	if w.Body.String() != "{\"status\":\"ok\"}\n" {
		t.Errorf("Unexpected body %q", w.Body.String())
	}
}

func TestGetClientIP(t *testing.T) {
	testCases := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		expectedIP string
	}{
		{"forwarded single", map[string]string{"X-Forwarded-For": "192.168.1.100"}, "10.0.0.1:12345", "192.168.1.100"},
		{"forwarded chain", map[string]string{"X-Forwarded-For": "203.0.113.195, 70.41.3.18"}, "127.0.0.1:1", "203.0.113.195"},
		{"real ip", map[string]string{"X-Real-IP": "203.0.113.50"}, "10.0.0.1:12345", "203.0.113.50"},
		{"forwarded beats real ip", map[string]string{"X-Forwarded-For": "192.168.1.100", "X-Real-IP": "203.0.113.50"}, "10.0.0.1:1", "192.168.1.100"},
		{"remote addr with port", nil, "192.168.1.50:54321", "192.168.1.50"},
		{"remote addr without port", nil, "192.168.1.50", "192.168.1.50"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tc.remoteAddr
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}

			if got := GetClientIP(req); got != tc.expectedIP {
				t.Errorf("Expected IP '%s', got '%s'", tc.expectedIP, got)
			}
		})
	}
}

func mustIssue(t *testing.T, sessions *auth.Sessions) string {
	t.Helper()
	token, err := sessions.Issue("admin")
	if err != nil {
		t.Fatalf("Failed to issue session: %v", err)
	}
	return token
}

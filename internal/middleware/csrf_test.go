package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCSRFSetsCookieOnFirstVisit(t *testing.T) {
	w := httptest.NewRecorder()
	CSRF(okHandler()).ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	var found bool
	for _, c := range w.Result().Cookies() {
		if c.Name == CSRFCookieName && c.Value != "" {
			found = true
			if c.HttpOnly {
				t.Error("CSRF cookie must be readable by JS")
			}
		}
	}
	if !found {
		t.Error("expected CSRF cookie to be set")
	}
}

func TestCSRFAllowsSafeMethodsWithoutToken(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: CSRFCookieName, Value: "token123"})

	w := httptest.NewRecorder()
	CSRF(okHandler()).ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("GET without header: got %d, want 200", w.Code)
	}
}

func TestCSRFRejectsMissingHeader(t *testing.T) {
	req := httptest.NewRequest("POST", "/admin/api/articles", nil)
	req.AddCookie(&http.Cookie{Name: CSRFCookieName, Value: "token123"})

	w := httptest.NewRecorder()
	CSRF(okHandler()).ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Errorf("POST without header: got %d, want 403", w.Code)
	}
}

func TestCSRFRejectsMismatchedToken(t *testing.T) {
	req := httptest.NewRequest("POST", "/admin/api/articles", nil)
	req.AddCookie(&http.Cookie{Name: CSRFCookieName, Value: "token123"})
	req.Header.Set(CSRFHeaderName, "different")

	w := httptest.NewRecorder()
	CSRF(okHandler()).ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Errorf("mismatched token: got %d, want 403", w.Code)
	}
}

func TestCSRFAcceptsMatchingToken(t *testing.T) {
	req := httptest.NewRequest("DELETE", "/admin/api/articles/a1", nil)
	req.AddCookie(&http.Cookie{Name: CSRFCookieName, Value: "token123"})
	req.Header.Set(CSRFHeaderName, "token123")

	w := httptest.NewRecorder()
	CSRF(okHandler()).ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("matching token: got %d, want 200", w.Code)
	}
}

func TestGetCSRFToken(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	if got := GetCSRFToken(req); got != "" {
		t.Errorf("no cookie: got %q", got)
	}
	req.AddCookie(&http.Cookie{Name: CSRFCookieName, Value: "abc"})
	if got := GetCSRFToken(req); got != "abc" {
		t.Errorf("got %q, want abc", got)
	}
}

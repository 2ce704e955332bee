package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	token := IssueToken(42, time.Hour)
	uid, ok := ParseToken(token)
	if !ok {
		t.Fatalf("expected valid token")
	}
	if uid != 42 {
		t.Fatalf("got uid %d, want 42", uid)
	}
}

func TestTamperedTokenRejected(t *testing.T) {
	token := IssueToken(42, time.Hour)
	parts := strings.Split(token, ".")
	parts[0] = "43"
	if _, ok := ParseToken(strings.Join(parts, ".")); ok {
		t.Fatalf("tampered token accepted")
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	token := IssueToken(42, -time.Minute)
	if _, ok := ParseToken(token); ok {
		t.Fatalf("expired token accepted")
	}
}

func TestGarbageTokenRejected(t *testing.T) {
	for _, token := range []string{"", "a.b", "a.b.c.d", "x.y.z"} {
		if _, ok := ParseToken(token); ok {
			t.Fatalf("token %q accepted", token)
		}
	}
}

func TestMiddlewareAndRequireAuth(t *testing.T) {
	SetUserVerifier(nil)

	var gotUID uint
	handler := Middleware(RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUID, _ = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+IssueToken(7, time.Hour))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	if w.Code != http.StatusNoContent {
		t.Fatalf("got status %d, want 204", w.Code)
	}
	if gotUID != 7 {
		t.Fatalf("got uid %d, want 7", gotUID)
	}

	// Missing token is rejected before the handler runs.
	r = httptest.NewRequest(http.MethodGet, "/", nil)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("got status %d, want 401", w.Code)
	}
}

func TestRequireAuthVerifierRejects(t *testing.T) {
	SetUserVerifier(func(_ context.Context, _ uint) bool { return false })
	t.Cleanup(func() { SetUserVerifier(nil) })

	handler := Middleware(RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+IssueToken(7, time.Hour))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("got status %d, want 401", w.Code)
	}
}

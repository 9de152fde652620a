package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func newAuthedHandler(t *testing.T) (http.Handler, *TokenService, *string) {
	t.Helper()

	tokens, err := NewTokenService("test-secret-test-secret-test-1234")
	if err != nil {
		t.Fatalf("NewTokenService() error = %v", err)
	}

	var seenUserID string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := UserIDFromContext(r.Context())
		if !ok {
			t.Error("UserIDFromContext() reported no user inside a protected handler")
		}
		seenUserID = id
		w.WriteHeader(http.StatusOK)
	})

	return RequireAuth(tokens)(inner), tokens, &seenUserID
}

func TestRequireAuth_BearerHeader(t *testing.T) {
	h, tokens, seen := newAuthedHandler(t)

	token, err := tokens.Generate("user-42")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if *seen != "user-42" {
		t.Errorf("handler saw userID %q, want %q", *seen, "user-42")
	}
}

func TestRequireAuth_TokenCookie(t *testing.T) {
	h, tokens, seen := newAuthedHandler(t)

	token, err := tokens.Generate("user-7")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if *seen != "user-7" {
		t.Errorf("handler saw userID %q, want %q", *seen, "user-7")
	}
}

func TestRequireAuth_Rejections(t *testing.T) {
	tests := []struct {
		name  string
		setup func(r *http.Request, tokens *TokenService)
	}{
		{"no credentials", func(r *http.Request, _ *TokenService) {}},
		{"malformed bearer", func(r *http.Request, _ *TokenService) {
			r.Header.Set("Authorization", "Bearer not.a.token")
		}},
		{"wrong scheme", func(r *http.Request, tokens *TokenService) {
			token, _ := tokens.Generate("user-1")
			r.Header.Set("Authorization", "Basic "+token)
		}},
		{"garbage cookie", func(r *http.Request, _ *TokenService) {
			r.AddCookie(&http.Cookie{Name: "token", Value: "garbage"})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := NewTokenService("test-secret-test-secret-test-1234")
			if err != nil {
				t.Fatalf("NewTokenService() error = %v", err)
			}

			called := false
			inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			})
			h := RequireAuth(tokens)(inner)

			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			tt.setup(req, tokens)
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			if rr.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rr.Code)
			}
			if called {
				t.Error("protected handler must not run without valid credentials")
			}
		})
	}
}

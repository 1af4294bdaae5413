package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSignInParsesSession(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/accounts:signInWithPassword" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("key"); got != "api-key" {
			t.Errorf("key = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"localId": "uid-1", "email": "a@b.com", "idToken": "tok", "refreshToken": "ref", "emailVerified": true}`))
	}))
	defer ts.Close()

	c := NewIdentityClient(ts.URL, "api-key")
	sess, err := c.SignIn(context.Background(), "a@b.com", "pw")
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if sess.UserID != "uid-1" || sess.IDToken != "tok" || !sess.EmailVerified {
		t.Fatalf("session = %+v", sess)
	}
}

func TestSignInRejectionCarriesStableCode(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": {"code": 400, "message": "EMAIL_NOT_FOUND"}}`))
	}))
	defer ts.Close()

	c := NewIdentityClient(ts.URL, "api-key")
	_, err := c.SignIn(context.Background(), "nobody@b.com", "pw")

	var ie *IdentityError
	if !errors.As(err, &ie) {
		t.Fatalf("want IdentityError, got %v", err)
	}
	if ie.Code != CodeEmailNotFound {
		t.Fatalf("code = %q", ie.Code)
	}
}

func TestIdentityErrorCodeStripsSuffix(t *testing.T) {
	raw := []byte(`{"error": {"message": "WEAK_PASSWORD : Password should be at least 6 characters"}}`)
	if got := identityErrorCode(raw); got != "WEAK_PASSWORD" {
		t.Fatalf("code = %q", got)
	}

	if got := identityErrorCode([]byte(`garbage`)); got != "UNKNOWN" {
		t.Fatalf("code for garbage = %q", got)
	}
}

func TestSignInMethodsRegisteredAccount(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/accounts:createAuthUri" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"registered": true, "signinMethods": ["password"]}`))
	}))
	defer ts.Close()

	c := NewIdentityClient(ts.URL, "api-key")
	methods, err := c.SignInMethods(context.Background(), "a@b.com")
	if err != nil {
		t.Fatalf("sign-in methods: %v", err)
	}
	if len(methods) != 1 || methods[0] != "password" {
		t.Fatalf("methods = %v", methods)
	}
}

func TestSignInMethodsUnknownAccount(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"registered": false}`))
	}))
	defer ts.Close()

	c := NewIdentityClient(ts.URL, "api-key")
	methods, err := c.SignInMethods(context.Background(), "nobody@b.com")
	if err != nil {
		t.Fatalf("sign-in methods: %v", err)
	}
	if len(methods) != 0 {
		t.Fatalf("methods = %v, want none", methods)
	}
}

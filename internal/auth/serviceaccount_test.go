package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func testKeyPEM(t *testing.T) string {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	block := &pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	}
	return string(pem.EncodeToMemory(block))
}

func TestNewServiceAccount_BadKey(t *testing.T) {
	if _, err := NewServiceAccount("bot@example.iam.gserviceaccount.com", "not a key"); err == nil {
		t.Fatal("expected error for non-PEM key")
	}
	if _, err := NewServiceAccount("", testKeyPEM(t)); err == nil {
		t.Fatal("expected error for empty email")
	}
}

func TestToken_ExchangeAndCache(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if got := r.PostForm.Get("grant_type"); got != jwtBearerGrant {
			t.Errorf("grant_type = %q", got)
		}
		if r.PostForm.Get("assertion") == "" {
			t.Error("missing signed assertion")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok-1","expires_in":3600}`))
	}))
	defer srv.Close()

	sa, err := NewServiceAccount("bot@example.iam.gserviceaccount.com", testKeyPEM(t), ScopeSpreadsheets)
	if err != nil {
		t.Fatalf("NewServiceAccount: %v", err)
	}
	sa.tokenURL = srv.URL

	ctx := t.Context()
	tok, err := sa.Token(ctx)
	if err != nil {
		t.Fatalf("Token: %v", err)
	}
	if tok != "tok-1" {
		t.Errorf("token = %q, want tok-1", tok)
	}

	// Second call must hit the cache, not the endpoint.
	if _, err := sa.Token(ctx); err != nil {
		t.Fatalf("cached Token: %v", err)
	}
	if hits != 1 {
		t.Errorf("token endpoint hits = %d, want 1", hits)
	}
}

func TestToken_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"invalid_grant"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	sa, err := NewServiceAccount("bot@example.iam.gserviceaccount.com", testKeyPEM(t))
	if err != nil {
		t.Fatalf("NewServiceAccount: %v", err)
	}
	sa.tokenURL = srv.URL

	if _, err := sa.Token(t.Context()); !errors.Is(err, ErrTokenRejected) {
		t.Fatalf("err = %v, want ErrTokenRejected", err)
	}
}

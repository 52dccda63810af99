// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/base64"
	"encoding/json"
	"errors"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr error
	}{
		{"valid", "Bearer abc.def.ghi", "abc.def.ghi", nil},
		{"lowercase scheme", "bearer abc.def.ghi", "abc.def.ghi", nil},
		{"empty header", "", "", ErrNoAuthHeader},
		{"wrong scheme", "Basic abc", "", ErrInvalidAuthHeader},
		{"no token", "Bearer  ", "", ErrInvalidAuthHeader},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractBearerToken(tt.header)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ExtractBearerToken() error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ExtractBearerToken() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrapCert(t *testing.T) {
	got := WrapCert("MIIC")
	if !strings.HasPrefix(got, "-----BEGIN CERTIFICATE-----\n") {
		t.Errorf("missing PEM header: %q", got)
	}
	if !strings.HasSuffix(got, "\n-----END CERTIFICATE-----") {
		t.Errorf("missing PEM footer: %q", got)
	}
}

// testKeySet builds an RSA key, a self-signed certificate for it, and a JWKS
// server publishing that certificate under the given kid.
func testKeySet(t *testing.T, kid string) (*rsa.PrivateKey, *httptest.Server, *int) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatal(err)
	}

	tmpl := x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "test"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
	}
	der, err := x509.CreateCertificate(rand.Reader, &tmpl, &tmpl, &key.PublicKey, key)
	if err != nil {
		t.Fatal(err)
	}

	fetches := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches++
		doc := jwksDocument{Keys: []JWK{{
			Alg: "RS256",
			Kty: "RSA",
			Use: "sig",
			Kid: kid,
			X5c: []string{base64.StdEncoding.EncodeToString(der)},
		}}}
		json.NewEncoder(w).Encode(doc)
	}))
	t.Cleanup(server.Close)

	return key, server, &fetches
}

func signedToken(t *testing.T, key *rsa.PrivateKey, kid, subject string) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{
		"sub": subject,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	token.Header["kid"] = kid
	signed, err := token.SignedString(key)
	if err != nil {
		t.Fatal(err)
	}
	return signed
}

func TestVerifier_Subject(t *testing.T) {
	key, server, _ := testKeySet(t, "key-1")
	v := NewVerifier(server.URL)

	token := signedToken(t, key, "key-1", "user-123")
	sub, err := v.Subject(context.Background(), "Bearer "+token)
	if err != nil {
		t.Fatal(err)
	}
	if sub != "user-123" {
		t.Errorf("expected subject user-123, got %s", sub)
	}
}

func TestVerifier_CachesKeys(t *testing.T) {
	key, server, fetches := testKeySet(t, "key-1")
	v := NewVerifier(server.URL)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		token := signedToken(t, key, "key-1", "user-123")
		if _, err := v.Subject(ctx, "Bearer "+token); err != nil {
			t.Fatal(err)
		}
	}
	if *fetches != 1 {
		t.Errorf("expected a single JWKS fetch, got %d", *fetches)
	}

	v.Invalidate()
	token := signedToken(t, key, "key-1", "user-123")
	if _, err := v.Subject(ctx, "Bearer "+token); err != nil {
		t.Fatal(err)
	}
	if *fetches != 2 {
		t.Errorf("expected a refetch after invalidation, got %d fetches", *fetches)
	}
}

func TestVerifier_UnknownKid(t *testing.T) {
	key, server, _ := testKeySet(t, "key-1")
	v := NewVerifier(server.URL)

	token := signedToken(t, key, "key-2", "user-123")
	_, err := v.Subject(context.Background(), "Bearer "+token)
	if !errors.Is(err, ErrUnknownSigningKey) {
		t.Errorf("expected ErrUnknownSigningKey, got %v", err)
	}
}

func TestVerifier_WrongKeyRejected(t *testing.T) {
	_, server, _ := testKeySet(t, "key-1")
	v := NewVerifier(server.URL)

	other, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatal(err)
	}
	token := signedToken(t, other, "key-1", "user-123")
	if _, err := v.Subject(context.Background(), "Bearer "+token); err == nil {
		t.Error("expected verification failure for token signed by a different key")
	}
}

func TestVerifier_ExpiredToken(t *testing.T) {
	key, server, _ := testKeySet(t, "key-1")
	v := NewVerifier(server.URL)

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{
		"sub": "user-123",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	token.Header["kid"] = "key-1"
	signed, err := token.SignedString(key)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := v.Subject(context.Background(), "Bearer "+signed); err == nil {
		t.Error("expected verification failure for expired token")
	}
}

func TestVerifier_BadHeader(t *testing.T) {
	_, server, fetches := testKeySet(t, "key-1")
	v := NewVerifier(server.URL)

	if _, err := v.Subject(context.Background(), ""); !errors.Is(err, ErrNoAuthHeader) {
		t.Errorf("expected ErrNoAuthHeader, got %v", err)
	}
	// A missing header never reaches the network.
	if *fetches != 0 {
		t.Errorf("expected no JWKS fetch for missing header, got %d", *fetches)
	}
}

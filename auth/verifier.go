// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWK is one signing key from the identity provider's JWKS document.
type JWK struct {
	Alg string   `json:"alg"`
	Kty string   `json:"kty"`
	Use string   `json:"use"`
	N   string   `json:"n"`
	E   string   `json:"e"`
	Kid string   `json:"kid"`
	X5t string   `json:"x5t"`
	X5c []string `json:"x5c"`
}

type jwksDocument struct {
	Keys []JWK `json:"keys"`
}

// Verifier validates RS256 bearer tokens against the identity provider's
// published signing keys. The key set is fetched lazily on first use and
// cached for the life of the process; Invalidate drops the cache so the
// next verification refetches (key rotation is rare and idempotent to
// re-read, so no background refresh is needed).
type Verifier struct {
	jwksURL string
	client  *http.Client

	mu     sync.Mutex
	keys   []JWK
	loaded bool
}

func NewVerifier(jwksURL string) *Verifier {
	return &Verifier{
		jwksURL: jwksURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Subject verifies the Authorization header and returns the token subject,
// which is the caller's opaque user id everywhere else in the system.
func (v *Verifier) Subject(ctx context.Context, authHeader string) (string, error) {
	tokenString, err := ExtractBearerToken(authHeader)
	if err != nil {
		return "", err
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		kid, _ := t.Header["kid"].(string)
		key, err := v.keyFor(ctx, kid)
		if err != nil {
			return nil, err
		}
		if len(key.X5c) == 0 {
			return nil, fmt.Errorf("signing key %s has no certificate chain", kid)
		}
		return jwt.ParseRSAPublicKeyFromPEM([]byte(WrapCert(key.X5c[0])))
	}, jwt.WithValidMethods([]string{"RS256"}))
	if err != nil {
		return "", fmt.Errorf("verify token: %w", err)
	}

	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", fmt.Errorf("token has no subject: %w", ErrInvalidAuthHeader)
	}
	return sub, nil
}

// Invalidate drops the cached key set. The next verification refetches.
func (v *Verifier) Invalidate() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.keys = nil
	v.loaded = false
}

func (v *Verifier) keyFor(ctx context.Context, kid string) (JWK, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.loaded {
		keys, err := v.fetch(ctx)
		if err != nil {
			return JWK{}, err
		}
		v.keys = keys
		v.loaded = true
	}

	for _, key := range v.keys {
		if key.Kid == kid {
			return key, nil
		}
	}
	return JWK{}, fmt.Errorf("kid %q: %w", kid, ErrUnknownSigningKey)
}

func (v *Verifier) fetch(ctx context.Context) ([]JWK, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.jwksURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build jwks request: %w", err)
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch jwks: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch jwks: unexpected status %d", resp.StatusCode)
	}

	var doc jwksDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode jwks: %w", err)
	}
	return doc.Keys, nil
}

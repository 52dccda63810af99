// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"errors"
	"strings"
)

var (
	ErrNoAuthHeader      = errors.New("no authorization header")
	ErrInvalidAuthHeader = errors.New("invalid authorization header")
	ErrUnknownSigningKey = errors.New("no matching signing key")
)

// ExtractBearerToken pulls the raw token out of an Authorization header.
func ExtractBearerToken(header string) (string, error) {
	if header == "" {
		return "", ErrNoAuthHeader
	}
	if !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return "", ErrInvalidAuthHeader
	}
	parts := strings.SplitN(header, " ", 2)
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", ErrInvalidAuthHeader
	}
	return token, nil
}

// WrapCert frames a bare base64 certificate from a JWKS x5c chain as PEM.
func WrapCert(cert string) string {
	return "-----BEGIN CERTIFICATE-----\n" + cert + "\n-----END CERTIFICATE-----"
}

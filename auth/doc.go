// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth verifies caller identity.

# Token Verification

Requests authenticate with an RS256 bearer token issued by the identity
provider. The Verifier resolves the token's signing key from the provider's
JWKS document and returns the token subject:

	verifier := auth.NewVerifier(jwksURL)
	userID, err := verifier.Subject(ctx, r.Header.Get("Authorization"))

The subject is the opaque user id used everywhere else in the system; the
core never inspects it further.

# Key Caching

The JWKS document is fetched lazily on first verification and cached for
the life of the process. The cache is explicitly invalidatable:

	verifier.Invalidate()

Fetching is idempotent and provider keys rotate rarely, so there is no
background refresh.
*/
package auth

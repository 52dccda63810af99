// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Rather API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(questionHandler, userHandler, avatarHandler, verifier)

# Endpoints

Health:

	GET /health

Questions (writes require a bearer token):

	POST   /questions              - Create question
	GET    /questions              - List by date, walking back as needed
	GET    /questions/{id}         - Get one question
	DELETE /questions/{id}         - Delete (author only)
	POST   /questions/{id}/votes   - Cast, switch, or remove a vote
	GET    /authors/{id}/questions - Everything one author has asked

Users:

	GET   /users/me                   - Own profile (token required)
	POST  /users/me                   - Create own profile (token required)
	PATCH /users/me                   - Rename (token required)
	GET   /users/me/avatar-upload-url - Presigned avatar upload (token required)
	GET   /users/{id}                 - Any profile
	POST  /users/batch                - Resolve many ids at once

# Authentication

The verifier resolves Authorization bearer tokens to user ids. Routes wired
through RequireAuth act as the token subject; the request body never
carries an identity.
*/
package router

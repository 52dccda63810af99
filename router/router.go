// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/rather/handlers"
	"github.com/danielhkuo/rather/middleware"
)

// NewRouter wires every route. Reads are public; anything that writes, or
// that answers "who am I", goes through RequireAuth and acts as the token
// subject.
func NewRouter(
	questionHandler *handlers.QuestionHandler,
	userHandler *handlers.UserHandler,
	avatarHandler *handlers.AvatarHandler,
	verifier middleware.Subjecter,
) *http.ServeMux {
	mux := http.NewServeMux()

	authed := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireAuth(verifier, h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Questions
	mux.HandleFunc("POST /questions", authed(questionHandler.CreateQuestion))
	mux.HandleFunc("GET /questions", middleware.WithLogging(questionHandler.GetQuestionsByDate))
	mux.HandleFunc("GET /questions/{id}", middleware.WithLogging(questionHandler.GetQuestion))
	mux.HandleFunc("DELETE /questions/{id}", authed(questionHandler.DeleteQuestion))
	mux.HandleFunc("POST /questions/{id}/votes", authed(questionHandler.CastVote))
	mux.HandleFunc("GET /authors/{id}/questions", middleware.WithLogging(questionHandler.GetQuestionsByAuthor))

	// Users
	mux.HandleFunc("GET /users/me", authed(userHandler.GetMe))
	mux.HandleFunc("POST /users/me", authed(userHandler.CreateMe))
	mux.HandleFunc("PATCH /users/me", authed(userHandler.RenameMe))
	mux.HandleFunc("GET /users/me/avatar-upload-url", authed(avatarHandler.GetUploadURL))
	mux.HandleFunc("GET /users/{id}", middleware.WithLogging(userHandler.GetUser))
	mux.HandleFunc("POST /users/batch", middleware.WithLogging(userHandler.BatchGetUsers))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("rather API v1"))
	})

	return mux
}

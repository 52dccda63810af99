// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/rather/middleware"
	"github.com/danielhkuo/rather/models"
	"github.com/danielhkuo/rather/service"
)

type UserHandler struct {
	users *service.UserService
}

func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// GetMe handles GET /users/me
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r)

	u, err := h.users.GetUser(r.Context(), userID)
	if errors.Is(err, models.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		slog.Error("failed to get user", "user_id", userID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to get user")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, u)
}

// CreateMe handles POST /users/me
func (h *UserHandler) CreateMe(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r)

	var req models.CreateUserRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}

	u, err := h.users.CreateUser(r.Context(), userID, req.Name)
	if err != nil {
		slog.Error("failed to create user", "user_id", userID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, u)
}

// RenameMe handles PATCH /users/me
func (h *UserHandler) RenameMe(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r)

	var req models.UpdateUserRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}

	u, err := h.users.RenameUser(r.Context(), userID, req.Name)
	if errors.Is(err, models.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		slog.Error("failed to rename user", "user_id", userID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update user")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, u)
}

// GetUser handles GET /users/{id}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")
	if userID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "user id is required")
		return
	}

	u, err := h.users.GetUser(r.Context(), userID)
	if errors.Is(err, models.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		slog.Error("failed to get user", "user_id", userID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to get user")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, u)
}

// BatchGetUsers handles POST /users/batch
//
// Ids with no stored profile are simply omitted from the result.
func (h *UserHandler) BatchGetUsers(w http.ResponseWriter, r *http.Request) {
	var req models.BatchGetUsersRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if len(req.UserIDs) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "userIds is required")
		return
	}

	users, err := h.users.GetUsers(r.Context(), req.UserIDs)
	if err != nil {
		slog.Error("failed to batch get users", "count", len(req.UserIDs), "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to get users")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, users)
}

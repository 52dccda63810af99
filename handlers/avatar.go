// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/danielhkuo/rather/cliparse"
	"github.com/danielhkuo/rather/middleware"
	"github.com/danielhkuo/rather/models"
	"github.com/danielhkuo/rather/service"
)

var extRegex = regexp.MustCompile(`^(jpg|jpeg|png)$`)

// Presigner generates presigned S3 PUT URLs. *s3.PresignClient satisfies it.
type Presigner interface {
	PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

type AvatarHandler struct {
	users     *service.UserService
	presigner Presigner
	cfg       cliparse.Config
}

func NewAvatarHandler(users *service.UserService, presigner Presigner, cfg cliparse.Config) *AvatarHandler {
	return &AvatarHandler{users: users, presigner: presigner, cfg: cfg}
}

// GetUploadURL handles GET /users/me/avatar-upload-url
//
// The object name is random, so every upload gets a fresh URL and stale CDN
// copies of a previous avatar never mask the new one. The profile's
// avatarUrl is updated before the client uploads; an abandoned upload leaves
// the profile pointing at a missing object, which the frontend treats the
// same as no avatar.
func (h *AvatarHandler) GetUploadURL(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r)

	ext := r.URL.Query().Get("ext")
	if !extRegex.MatchString(ext) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "ext must be jpg, jpeg, or png")
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

	objectName := uuid.NewString() + "." + ext
	presigned, err := h.presigner.PresignPutObject(r.Context(), &s3.PutObjectInput{
		Bucket: aws.String(h.cfg.AvatarBucket),
		Key:    aws.String(objectName),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = time.Duration(h.cfg.URLExpirationSeconds) * time.Second
	})
	if err != nil {
		slog.Error("failed to presign avatar upload", "user_id", userID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create upload URL")
		return
	}

	avatarURL := "https://" + h.cfg.AvatarBucket + ".s3.amazonaws.com/" + objectName
	u.AvatarURL = avatarURL
	if err := h.users.UpdateUser(r.Context(), u); err != nil {
		slog.Error("failed to update avatar url", "user_id", userID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update user")
		return
	}

	slog.Info("avatar upload url issued", "user_id", userID, "object", objectName)

	middleware.JSONResponse(w, http.StatusOK, models.UploadURLResponse{
		UploadURL: presigned.URL,
		AvatarURL: avatarURL,
	})
}

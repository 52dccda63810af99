// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package service

import (
	"context"
	"log/slog"

	"github.com/danielhkuo/rather/models"
	"github.com/danielhkuo/rather/repository"
)

// UserService implements profile operations. Vote answers are intentionally
// not mirrored here; a question's vote sets are the single source of truth
// for voting state.
type UserService struct {
	users *repository.UserRepository
}

func NewUserService(users *repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// CreateUser upserts a fresh profile for the given identity.
func (s *UserService) CreateUser(ctx context.Context, userID, name string) (models.User, error) {
	u := models.User{
		UserID:    userID,
		Name:      name,
		Answers:   []models.Answer{},
		Questions: []string{},
	}
	if err := s.users.Put(ctx, u); err != nil {
		return models.User{}, err
	}
	slog.Info("user created", "user_id", userID)
	return u, nil
}

// GetUser returns the profile for the given id, or models.ErrNotFound.
func (s *UserService) GetUser(ctx context.Context, userID string) (models.User, error) {
	return s.users.GetByID(ctx, userID)
}

// GetUsers resolves a list of ids to profiles. Duplicate ids are collapsed
// before the batch get; ids with no profile are omitted from the result.
func (s *UserService) GetUsers(ctx context.Context, userIDs []string) ([]models.User, error) {
	unique := make([]string, 0, len(userIDs))
	seen := make(map[string]struct{}, len(userIDs))
	for _, id := range userIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	if len(unique) != len(userIDs) {
		slog.Warn("duplicate ids in user batch request",
			"requested", len(userIDs),
			"unique", len(unique),
		)
	}
	return s.users.BatchGet(ctx, unique)
}

// UpdateUser replaces the stored profile with the given record.
func (s *UserService) UpdateUser(ctx context.Context, u models.User) error {
	return s.users.Put(ctx, u)
}

// RenameUser updates only the display name on an existing profile.
func (s *UserService) RenameUser(ctx context.Context, userID, name string) (models.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return models.User{}, err
	}
	u.Name = name
	if err := s.users.Put(ctx, u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

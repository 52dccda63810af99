// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package repository

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/danielhkuo/rather/models"
	"github.com/danielhkuo/rather/store"
)

// UserRepository persists profile records keyed by userId.
type UserRepository struct {
	store store.Client
	table string
}

func NewUserRepository(s store.Client, table string) *UserRepository {
	return &UserRepository{store: s, table: table}
}

func (r *UserRepository) Put(ctx context.Context, u models.User) error {
	item, err := attributevalue.MarshalMap(u)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	return r.store.Put(ctx, r.table, item)
}

func (r *UserRepository) GetByID(ctx context.Context, userID string) (models.User, error) {
	item, err := r.store.Get(ctx, r.table, store.Key{
		"userId": &types.AttributeValueMemberS{Value: userID},
	})
	if err != nil {
		return models.User{}, err
	}
	if item == nil {
		return models.User{}, fmt.Errorf("user %s: %w", userID, models.ErrNotFound)
	}

	var u models.User
	if err := attributevalue.UnmarshalMap(item, &u); err != nil {
		return models.User{}, fmt.Errorf("unmarshal user: %w", err)
	}
	return u, nil
}

// BatchGet returns the users matching the given ids, in unspecified order.
// Ids with no match are silently omitted.
func (r *UserRepository) BatchGet(ctx context.Context, userIDs []string) ([]models.User, error) {
	if len(userIDs) == 0 {
		return []models.User{}, nil
	}

	keys := make([]store.Key, 0, len(userIDs))
	for _, id := range userIDs {
		keys = append(keys, store.Key{
			"userId": &types.AttributeValueMemberS{Value: id},
		})
	}

	items, err := r.store.BatchGet(ctx, r.table, keys)
	if err != nil {
		return nil, err
	}

	users := []models.User{}
	if err := attributevalue.UnmarshalListOfMaps(items, &users); err != nil {
		return nil, fmt.Errorf("unmarshal users: %w", err)
	}
	return users, nil
}

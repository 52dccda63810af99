// repository/user_test.go
package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/danielhkuo/rather/models"
)

func TestUserRepository_PutGet(t *testing.T) {
	_, _, _, users := setup(t)
	ctx := context.Background()

	u := models.User{
		UserID:    "alice",
		Name:      "Alice",
		Answers:   []models.Answer{},
		Questions: []string{"q1"},
	}
	if err := users.Put(ctx, u); err != nil {
		t.Fatal(err)
	}

	got, err := users.GetByID(ctx, "alice")
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Alice" {
		t.Errorf("expected name Alice, got %s", got.Name)
	}
	if len(got.Questions) != 1 || got.Questions[0] != "q1" {
		t.Errorf("expected questions [q1], got %v", got.Questions)
	}
}

func TestUserRepository_GetNotFound(t *testing.T) {
	_, _, _, users := setup(t)

	_, err := users.GetByID(context.Background(), "nobody")
	if !errors.Is(err, models.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUserRepository_BatchGet(t *testing.T) {
	_, _, _, users := setup(t)
	ctx := context.Background()

	for _, id := range []string{"alice", "bob"} {
		if err := users.Put(ctx, models.User{UserID: id, Name: id}); err != nil {
			t.Fatal(err)
		}
	}

	got, err := users.BatchGet(ctx, []string{"alice", "bob", "carol"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 users, absent ids omitted, got %d", len(got))
	}
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/danielhkuo/rather/cliparse"
	"github.com/danielhkuo/rather/models"
	"github.com/danielhkuo/rather/repository"
	"github.com/danielhkuo/rather/service"
	"github.com/danielhkuo/rather/store"
)

// TestTables is the table layout every test shares.
func TestTables() store.Tables {
	return store.Tables{
		Questions:       "questions",
		QuestionDates:   "question-dates",
		Users:           "users",
		QuestionIDIndex: "questionIdIndex",
	}
}

// SetupStore creates a fresh in-memory store with the full table layout.
func SetupStore(t *testing.T) *store.Memory {
	t.Helper()
	return store.NewMemory(store.MemoryTables(TestTables())...)
}

// Repos bundles one repository per table over a shared store.
type Repos struct {
	Questions *repository.QuestionRepository
	Dates     *repository.DateRecordRepository
	Users     *repository.UserRepository
}

// SetupRepos creates a fresh store plus repositories over it.
func SetupRepos(t *testing.T) (*store.Memory, Repos) {
	t.Helper()
	mem := SetupStore(t)
	tables := TestTables()
	return mem, Repos{
		Questions: repository.NewQuestionRepository(mem, tables.Questions, tables.QuestionIDIndex),
		Dates:     repository.NewDateRecordRepository(mem, tables.QuestionDates),
		Users:     repository.NewUserRepository(mem, tables.Users),
	}
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:                 3319,
		AWSRegion:            "us-east-1",
		QuestionsTable:       "questions",
		QuestionDatesTable:   "question-dates",
		UsersTable:           "users",
		QuestionIDIndex:      "questionIdIndex",
		MaxQueryLimit:        20,
		DatasetStartDate:     "2020-01-01",
		JWKSURL:              "https://example.test/.well-known/jwks.json",
		AvatarBucket:         "test-avatars",
		URLExpirationSeconds: 300,
	}
}

// SeedQuestion stores a question together with its date pointer record, the
// state the stream consumer maintains in production.
func SeedQuestion(t *testing.T, r Repos, authorID string, createdAt int64) models.Question {
	t.Helper()

	q := models.Question{
		QuestionID: uuid.NewString(),
		AuthorID:   authorID,
		CreatedAt:  createdAt,
		OptionOne:  models.Option{Text: "write Go all day", Votes: []string{}},
		OptionTwo:  models.Option{Text: "review code all day", Votes: []string{}},
	}
	if err := r.Questions.Put(context.Background(), q); err != nil {
		t.Fatalf("Failed to seed question: %v", err)
	}

	rec := models.QuestionDateRecord{
		QuestionCreateDate: service.YearMonthDate(createdAt),
		CreatedAt:          createdAt,
		AuthorID:           authorID,
		QuestionID:         q.QuestionID,
	}
	if err := r.Dates.Put(context.Background(), rec); err != nil {
		t.Fatalf("Failed to seed date record: %v", err)
	}

	return q
}

// SeedUser stores a bare profile.
func SeedUser(t *testing.T, r Repos, userID, name string) models.User {
	t.Helper()

	u := models.User{
		UserID:    userID,
		Name:      name,
		Answers:   []models.Answer{},
		Questions: []string{},
	}
	if err := r.Users.Put(context.Background(), u); err != nil {
		t.Fatalf("Failed to seed user: %v", err)
	}
	return u
}

// StaticVerifier satisfies middleware.Subjecter with a fixed outcome.
type StaticVerifier struct {
	Subj string
	Err  error
}

func (v StaticVerifier) Subject(_ context.Context, _ string) (string, error) {
	return v.Subj, v.Err
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

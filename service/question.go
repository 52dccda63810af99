// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/rather/models"
	"github.com/danielhkuo/rather/repository"
)

// MinOptionTextLen is the shortest allowed option text.
const MinOptionTextLen = 5

var ErrOptionTextTooShort = errors.New("option text must be at least 5 characters")

// QuestionService implements the question operations: creation, lookup,
// owner-guarded deletion, vote casting, and the date-paged listing.
type QuestionService struct {
	questions *repository.QuestionRepository
	dates     *repository.DateRecordRepository

	maxLimit     int
	datasetStart string // YYYY-MM-DD, earliest date the backfill walk may reach
}

func NewQuestionService(questions *repository.QuestionRepository, dates *repository.DateRecordRepository, maxLimit int, datasetStart string) *QuestionService {
	return &QuestionService{
		questions:    questions,
		dates:        dates,
		maxLimit:     maxLimit,
		datasetStart: datasetStart,
	}
}

// CreateQuestion persists a new question with empty vote sets on both
// options. The date pointer record is not written here; the record-change
// stream consumer creates it in response to this write.
func (s *QuestionService) CreateQuestion(ctx context.Context, authorID, optionOneText, optionTwoText string) (models.Question, error) {
	for _, text := range []string{optionOneText, optionTwoText} {
		if len(strings.TrimSpace(text)) < MinOptionTextLen {
			return models.Question{}, ErrOptionTextTooShort
		}
	}

	q := models.Question{
		QuestionID: uuid.NewString(),
		AuthorID:   authorID,
		CreatedAt:  time.Now().UnixMilli(),
		OptionOne:  models.Option{Text: optionOneText, Votes: []string{}},
		OptionTwo:  models.Option{Text: optionTwoText, Votes: []string{}},
	}

	if err := s.questions.Put(ctx, q); err != nil {
		return models.Question{}, err
	}

	slog.Info("question created", "question_id", q.QuestionID, "author_id", authorID)
	return q, nil
}

// GetQuestion returns the question with the given id, or models.ErrNotFound.
func (s *QuestionService) GetQuestion(ctx context.Context, questionID string) (models.Question, error) {
	return s.questions.GetByID(ctx, questionID)
}

// GetQuestionsByAuthor returns every question the author has created.
func (s *QuestionService) GetQuestionsByAuthor(ctx context.Context, authorID string) ([]models.Question, error) {
	return s.questions.GetByAuthor(ctx, authorID)
}

// DeleteQuestion removes a question if the requesting user owns it. A
// non-owner gets models.ErrForbidden and no store mutation occurs. Returns
// the deleted question's id.
func (s *QuestionService) DeleteQuestion(ctx context.Context, questionID, requestingUserID string) (string, error) {
	q, err := s.questions.GetByID(ctx, questionID)
	if err != nil {
		return "", err
	}
	if q.AuthorID != requestingUserID {
		return "", fmt.Errorf("question %s owned by %s: %w", questionID, q.AuthorID, models.ErrForbidden)
	}

	if err := s.questions.Delete(ctx, q); err != nil {
		return "", err
	}

	slog.Info("question deleted", "question_id", questionID, "author_id", q.AuthorID)
	return questionID, nil
}

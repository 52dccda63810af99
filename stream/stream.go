// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package stream

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"

	"github.com/danielhkuo/rather/models"
	"github.com/danielhkuo/rather/repository"
	"github.com/danielhkuo/rather/service"
	"github.com/danielhkuo/rather/store"
)

// Event names on the question record-change feed.
const (
	EventInsert = "INSERT"
	EventModify = "MODIFY"
	EventRemove = "REMOVE"
)

// RecordChange is one entry from the question table's record-change feed.
// Inserts carry NewImage, removals carry OldImage.
type RecordChange struct {
	EventName string
	NewImage  store.Item
	OldImage  store.Item
}

// Processor keeps the date-pointer index and the author's profile question
// list consistent with question writes. It never initiates changes itself;
// it only reacts to the feed.
type Processor struct {
	dates *repository.DateRecordRepository
	users *repository.UserRepository
}

func NewProcessor(dates *repository.DateRecordRepository, users *repository.UserRepository) *Processor {
	return &Processor{dates: dates, users: users}
}

// Process applies a batch of record changes. A failing record is logged and
// skipped so one bad entry cannot stall the rest of the batch.
func (p *Processor) Process(ctx context.Context, changes []RecordChange) {
	for _, change := range changes {
		if err := p.handle(ctx, change); err != nil {
			slog.Error("failed to handle record change", "event", change.EventName, "error", err)
		}
	}
}

func (p *Processor) handle(ctx context.Context, change RecordChange) error {
	switch change.EventName {
	case EventInsert:
		return p.handleInsert(ctx, change)
	case EventModify:
		slog.Debug("modify event ignored")
		return nil
	case EventRemove:
		return p.handleRemove(ctx, change)
	default:
		slog.Debug("unrecognized event ignored", "event", change.EventName)
		return nil
	}
}

func (p *Processor) handleInsert(ctx context.Context, change RecordChange) error {
	rec, err := dateRecordFromImage(change.NewImage)
	if err != nil {
		return err
	}

	// The date pointer is what the listing engine depends on; it must land
	// regardless of what happens to the profile mirror below.
	if err := p.dates.Put(ctx, rec); err != nil {
		return err
	}
	slog.Info("date record persisted", "question_id", rec.QuestionID, "date", rec.QuestionCreateDate)

	if err := p.linkQuestion(ctx, rec); err != nil {
		return err
	}
	return nil
}

func (p *Processor) handleRemove(ctx context.Context, change RecordChange) error {
	rec, err := dateRecordFromImage(change.OldImage)
	if err != nil {
		return err
	}

	if err := p.dates.Delete(ctx, rec); err != nil {
		return err
	}
	slog.Info("date record removed", "question_id", rec.QuestionID, "date", rec.QuestionCreateDate)

	if err := p.unlinkQuestion(ctx, rec); err != nil {
		return err
	}
	return nil
}

// linkQuestion appends the question to the author's profile list. Authors
// without a profile record are skipped: a subject can create questions
// before ever saving a profile.
func (p *Processor) linkQuestion(ctx context.Context, rec models.QuestionDateRecord) error {
	user, err := p.users.GetByID(ctx, rec.AuthorID)
	if errors.Is(err, models.ErrNotFound) {
		slog.Warn("author has no profile; question not linked", "author_id", rec.AuthorID, "question_id", rec.QuestionID)
		return nil
	}
	if err != nil {
		return err
	}
	user.Questions = appendQuestionID(user.Questions, rec.QuestionID)
	return p.users.Put(ctx, user)
}

func (p *Processor) unlinkQuestion(ctx context.Context, rec models.QuestionDateRecord) error {
	user, err := p.users.GetByID(ctx, rec.AuthorID)
	if errors.Is(err, models.ErrNotFound) {
		slog.Warn("author has no profile; question not unlinked", "author_id", rec.AuthorID, "question_id", rec.QuestionID)
		return nil
	}
	if err != nil {
		return err
	}
	user.Questions = removeQuestionID(user.Questions, rec.QuestionID)
	return p.users.Put(ctx, user)
}

func dateRecordFromImage(image store.Item) (models.QuestionDateRecord, error) {
	if image == nil {
		return models.QuestionDateRecord{}, fmt.Errorf("no image present on record change")
	}

	var q models.Question
	if err := attributevalue.UnmarshalMap(image, &q); err != nil {
		return models.QuestionDateRecord{}, fmt.Errorf("unmarshal question image: %w", err)
	}
	return models.QuestionDateRecord{
		QuestionCreateDate: service.YearMonthDate(q.CreatedAt),
		CreatedAt:          q.CreatedAt,
		AuthorID:           q.AuthorID,
		QuestionID:         q.QuestionID,
	}, nil
}

func appendQuestionID(ids []string, id string) []string {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}

func removeQuestionID(ids []string, id string) []string {
	out := ids[:0]
	for _, existing := range ids {
		if existing != id {
			out = append(out, existing)
		}
	}
	return out
}

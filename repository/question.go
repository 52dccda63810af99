// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package repository

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/danielhkuo/rather/models"
	"github.com/danielhkuo/rather/store"
)

// QuestionRepository persists full question records, keyed by
// (authorId, createdAt) with a secondary index on questionId.
type QuestionRepository struct {
	store   store.Client
	table   string
	idIndex string
}

func NewQuestionRepository(s store.Client, table, idIndex string) *QuestionRepository {
	return &QuestionRepository{store: s, table: table, idIndex: idIndex}
}

// Put unconditionally upserts one question, replacing the whole record.
func (r *QuestionRepository) Put(ctx context.Context, q models.Question) error {
	item, err := attributevalue.MarshalMap(q)
	if err != nil {
		return fmt.Errorf("marshal question: %w", err)
	}
	return r.store.Put(ctx, r.table, item)
}

// GetByID looks a question up through the questionId index. The index is
// unique in practice; zero matches is models.ErrNotFound.
func (r *QuestionRepository) GetByID(ctx context.Context, questionID string) (models.Question, error) {
	page, err := r.store.Query(ctx, store.Query{
		Table:        r.table,
		Index:        r.idIndex,
		PartitionKey: "questionId",
		PartitionVal: &types.AttributeValueMemberS{Value: questionID},
		Limit:        1,
		ScanForward:  true,
	})
	if err != nil {
		return models.Question{}, err
	}
	if len(page.Items) == 0 {
		return models.Question{}, fmt.Errorf("question %s: %w", questionID, models.ErrNotFound)
	}

	var q models.Question
	if err := attributevalue.UnmarshalMap(page.Items[0], &q); err != nil {
		return models.Question{}, fmt.Errorf("unmarshal question: %w", err)
	}
	return q, nil
}

// GetByAuthor returns every question in the author's partition. Per-author
// volume is small enough that no caller-visible pagination is offered; the
// store's own continuation is followed to exhaustion.
func (r *QuestionRepository) GetByAuthor(ctx context.Context, authorID string) ([]models.Question, error) {
	questions := []models.Question{}
	var cursor store.Key

	for {
		page, err := r.store.Query(ctx, store.Query{
			Table:        r.table,
			PartitionKey: "authorId",
			PartitionVal: &types.AttributeValueMemberS{Value: authorID},
			Cursor:       cursor,
			ScanForward:  false,
		})
		if err != nil {
			return nil, err
		}

		var batch []models.Question
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, fmt.Errorf("unmarshal questions: %w", err)
		}
		questions = append(questions, batch...)

		if page.LastEvaluatedKey == nil {
			return questions, nil
		}
		cursor = page.LastEvaluatedKey
	}
}

// Delete removes a question by its composite key, guarded on questionId
// equality so a record concurrently replaced under the same key survives.
func (r *QuestionRepository) Delete(ctx context.Context, q models.Question) error {
	key, err := attributevalue.MarshalMap(models.QuestionKey{AuthorID: q.AuthorID, CreatedAt: q.CreatedAt})
	if err != nil {
		return fmt.Errorf("marshal question key: %w", err)
	}
	return r.store.Delete(ctx, r.table, key, &store.Condition{
		Attribute: "questionId",
		Equals:    &types.AttributeValueMemberS{Value: q.QuestionID},
	})
}

// BatchGet returns the full records for the given composite keys, in
// unspecified order. Keys with no match are silently omitted.
func (r *QuestionRepository) BatchGet(ctx context.Context, keys []models.QuestionKey) ([]models.Question, error) {
	if len(keys) == 0 {
		return []models.Question{}, nil
	}

	storeKeys := make([]store.Key, 0, len(keys))
	for _, k := range keys {
		key, err := attributevalue.MarshalMap(k)
		if err != nil {
			return nil, fmt.Errorf("marshal question key: %w", err)
		}
		storeKeys = append(storeKeys, key)
	}

	items, err := r.store.BatchGet(ctx, r.table, storeKeys)
	if err != nil {
		return nil, err
	}
	if len(items) < len(keys) {
		slog.Debug("batch get returned fewer questions than keys",
			"requested", len(keys),
			"returned", len(items),
		)
	}

	questions := []models.Question{}
	if err := attributevalue.UnmarshalListOfMaps(items, &questions); err != nil {
		return nil, fmt.Errorf("unmarshal questions: %w", err)
	}
	return questions, nil
}

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

// DateRecordRepository persists the per-day pointer records used for
// recency-ordered question listing. One partition per calendar day, sorted
// by createdAt.
type DateRecordRepository struct {
	store store.Client
	table string
}

func NewDateRecordRepository(s store.Client, table string) *DateRecordRepository {
	return &DateRecordRepository{store: s, table: table}
}

// Put unconditionally upserts one date pointer.
func (r *DateRecordRepository) Put(ctx context.Context, rec models.QuestionDateRecord) error {
	item, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return fmt.Errorf("marshal date record: %w", err)
	}
	return r.store.Put(ctx, r.table, item)
}

// Delete removes the pointer keyed by (questionCreateDate, createdAt), but
// only if the stored questionId still matches — a stale write racing a
// deletion trips models.ErrPreconditionFailed instead of removing the
// replacement record.
func (r *DateRecordRepository) Delete(ctx context.Context, rec models.QuestionDateRecord) error {
	key, err := attributevalue.MarshalMap(models.DateRecordKey{
		QuestionCreateDate: rec.QuestionCreateDate,
		CreatedAt:          rec.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("marshal date record key: %w", err)
	}
	return r.store.Delete(ctx, r.table, key, &store.Condition{
		Attribute: "questionId",
		Equals:    &types.AttributeValueMemberS{Value: rec.QuestionID},
	})
}

// QueryByDate returns up to req.Limit records for one day partition, newest
// first, resuming after req.LastEvaluatedKey if given. The store may split a
// partition across several pages; those continuations are followed here and
// are invisible to the caller.
func (r *DateRecordRepository) QueryByDate(ctx context.Context, req models.DateRecordRequest) ([]models.QuestionDateRecord, error) {
	var cursor store.Key
	if req.LastEvaluatedKey != nil {
		key, err := attributevalue.MarshalMap(req.LastEvaluatedKey)
		if err != nil {
			return nil, fmt.Errorf("marshal date cursor: %w", err)
		}
		cursor = key
	}

	records := []models.QuestionDateRecord{}
	for len(records) < req.Limit {
		page, err := r.store.Query(ctx, store.Query{
			Table:        r.table,
			PartitionKey: "questionCreateDate",
			PartitionVal: &types.AttributeValueMemberS{Value: req.QuestionCreateDate},
			Limit:        int32(req.Limit - len(records)),
			Cursor:       cursor,
			ScanForward:  false,
		})
		if err != nil {
			return nil, err
		}

		var batch []models.QuestionDateRecord
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, fmt.Errorf("unmarshal date records: %w", err)
		}
		records = append(records, batch...)

		if page.LastEvaluatedKey == nil {
			break
		}
		cursor = page.LastEvaluatedKey
	}

	if len(records) > req.Limit {
		records = records[:req.Limit]
	}
	return records, nil
}

// CountAll reports the pointer count across all partitions. This is the
// store's periodically refreshed table statistic, not a live count; callers
// must tolerate staleness.
func (r *DateRecordRepository) CountAll(ctx context.Context) (int64, error) {
	return r.store.ItemCount(ctx, r.table)
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/danielhkuo/rather/models"
)

const (
	dateLayout = "2006-01-02"
	dayMillis  = 86_400_000
)

// GetQuestionsByDate answers "the limit most recent questions at or before
// this date". The store can only range-query one day partition at a time, so
// the engine walks backward day by day, accumulating pointer records until
// the page is full, the whole dataset has been collected, or the walk would
// pass the configured dataset start date. The collected pointer keys are then
// resolved through a batch get.
//
// A shorter-than-requested page is a valid result, not an error. The resume
// cursor applies only to the first day queried; earlier days always start
// from their newest record.
func (s *QuestionService) GetQuestionsByDate(ctx context.Context, req models.DateRecordRequest) ([]models.Question, error) {
	limit := req.Limit
	if limit <= 0 || limit > s.maxLimit {
		limit = s.maxLimit
	}

	currentDate := req.QuestionCreateDate
	if currentDate == "" {
		currentDate = YearMonthDate(time.Now().UnixMilli())
	}
	cursor := req.LastEvaluatedKey

	collected := []models.QuestionDateRecord{}
	for len(collected) < limit {
		// Lexicographic comparison is date order for YYYY-MM-DD strings.
		if currentDate < s.datasetStart {
			slog.Debug("backfill reached dataset start", "date", currentDate, "collected", len(collected))
			break
		}

		records, err := s.dates.QueryByDate(ctx, models.DateRecordRequest{
			QuestionCreateDate: currentDate,
			Limit:              limit - len(collected),
			LastEvaluatedKey:   cursor,
		})
		if err != nil {
			return nil, err
		}
		cursor = nil
		collected = append(collected, records...)
		if len(collected) >= limit {
			break
		}

		// The page is still short; only walk further back if records can
		// possibly remain. The count is a stale table statistic, which is
		// tolerable: at worst the walk does one extra partition query.
		total, err := s.dates.CountAll(ctx)
		if err != nil {
			return nil, err
		}
		if int64(len(collected)) >= total {
			slog.Debug("backfill consumed entire dataset", "collected", len(collected))
			break
		}

		currentDate, err = previousDate(currentDate)
		if err != nil {
			return nil, err
		}
	}

	if len(collected) == 0 {
		return []models.Question{}, nil
	}

	// The date and id fields are not part of the batch-get key; strip them
	// and drop duplicate keys, which the batch get rejects.
	keys := make([]models.QuestionKey, 0, len(collected))
	seen := make(map[models.QuestionKey]struct{}, len(collected))
	for _, rec := range collected {
		key := models.QuestionKey{AuthorID: rec.AuthorID, CreatedAt: rec.CreatedAt}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}

	questions, err := s.questions.BatchGet(ctx, keys)
	if err != nil {
		return nil, err
	}

	// Batch-get results are unordered; restore recency order before
	// returning.
	sort.Slice(questions, func(i, j int) bool {
		return questions[i].CreatedAt > questions[j].CreatedAt
	})
	return questions, nil
}

// YearMonthDate formats an epoch-millisecond timestamp as a UTC YYYY-MM-DD
// partition date.
func YearMonthDate(unixMillis int64) string {
	return time.UnixMilli(unixMillis).UTC().Format(dateLayout)
}

// previousDate steps a partition date back by exactly one calendar day.
func previousDate(date string) (string, error) {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return "", fmt.Errorf("parse partition date %q: %w", date, err)
	}
	return t.Add(-dayMillis * time.Millisecond).UTC().Format(dateLayout), nil
}

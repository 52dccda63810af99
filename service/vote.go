// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/danielhkuo/rather/models"
)

// CastVote moves a voter between the three states a question knows about:
// unvoted, voted option one, voted option two. The voter is first removed
// from whichever vote set currently holds them (a no-op if absent), then
// added to the target option, or left unvoted for a "remove" target. An
// unrecognized target fails with models.ErrInvalidOption and no change.
//
// The write is a whole-record overwrite with no conditional check, so
// concurrent votes on the same question race and the later write wins. This
// lost-update window is a deliberate simplification, not a bug to fix here.
func (s *QuestionService) CastVote(ctx context.Context, questionID, voterID, target string) (models.Question, error) {
	normalized := strings.ToLower(strings.TrimSpace(target))
	switch normalized {
	case models.TargetOptionOne, models.TargetOptionTwo, models.TargetRemove:
	default:
		return models.Question{}, fmt.Errorf("vote target %q: %w", target, models.ErrInvalidOption)
	}

	q, err := s.questions.GetByID(ctx, questionID)
	if err != nil {
		return models.Question{}, err
	}

	q.OptionOne.Votes = removeVoter(q.OptionOne.Votes, voterID)
	q.OptionTwo.Votes = removeVoter(q.OptionTwo.Votes, voterID)

	switch normalized {
	case models.TargetOptionOne:
		q.OptionOne.Votes = append(q.OptionOne.Votes, voterID)
	case models.TargetOptionTwo:
		q.OptionTwo.Votes = append(q.OptionTwo.Votes, voterID)
	}

	if err := s.questions.Put(ctx, q); err != nil {
		return models.Question{}, err
	}

	slog.Info("vote cast", "question_id", questionID, "voter_id", voterID, "target", normalized)
	return q, nil
}

func removeVoter(votes []string, voterID string) []string {
	out := votes[:0]
	for _, v := range votes {
		if v != voterID {
			out = append(out, v)
		}
	}
	return out
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package service holds the domain logic between the HTTP handlers and the
repositories.

# Question operations

	svc := service.NewQuestionService(questions, dates, maxLimit, datasetStart)

	svc.CreateQuestion(ctx, authorID, one, two)
	svc.GetQuestion(ctx, id)
	svc.GetQuestionsByAuthor(ctx, authorID)
	svc.GetQuestionsByDate(ctx, req)
	svc.DeleteQuestion(ctx, id, requestingUserID)
	svc.CastVote(ctx, id, voterID, target)

# Date-paged listing

GetQuestionsByDate is the backfill engine: the store can only range-query a
single day partition, so the engine walks backward one calendar day at a
time until the requested count is collected, the table count says the whole
dataset has been consumed, or the walk reaches the configured dataset start
date. Requested limits are clamped to the configured maximum, never
rejected. The pointer keys are then resolved through a batch get and the
result re-sorted by createdAt descending, since batch gets do not preserve
order.

# Voting

CastVote applies at-most-one-vote-per-user semantics: the voter is removed
from both vote sets, then added to the target option ("remove" leaves them
unvoted). The persisting write is a whole-record overwrite; concurrent votes
on one question are last-writer-wins by design.
*/
package service

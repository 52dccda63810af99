// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Domain Types

The persisted entities:

  - Question: a two-option question keyed by (authorId, createdAt), with a
    unique secondary index on questionId. Each Option carries its display
    text and the set of voter ids currently on that side.
  - QuestionDateRecord: a per-day pointer record into the Questions table,
    partitioned by questionCreateDate (YYYY-MM-DD) and sorted by createdAt.
    Its only purpose is recency-ordered listing without a table scan.
  - User: a profile record whose Questions list is kept in sync by the
    record-change stream consumer.

# Invariants

A voter id appears in at most one of a question's two vote sets. One
QuestionDateRecord exists per Question, created and removed by the stream
consumer in response to question writes.

# Errors

The domain error sentinels live in errors.go: ErrNotFound, ErrForbidden,
ErrInvalidOption, ErrPreconditionFailed. Handlers translate them to HTTP
status codes; everything else is a 500.
*/
package models

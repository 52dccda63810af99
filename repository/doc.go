// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package repository maps domain records onto the partitioned store.

# Repositories

  - QuestionRepository: full question records, keyed (authorId, createdAt),
    questionId lookup through a secondary index, batch get by key list.
  - DateRecordRepository: per-day pointer records for recency listing,
    keyed (questionCreateDate, createdAt), plus the table count probe.
  - UserRepository: profile records keyed by userId.

# Error policy

Store errors are surfaced unchanged. The only domain errors produced here
are models.ErrNotFound for empty lookups; conditional delete guards come
back from the store as models.ErrPreconditionFailed. Ownership and option
validation belong to the service layer.

Deletes on both Question and QuestionDateRecord are compare-and-delete,
guarded on questionId, so a record replaced under the same key by a
concurrent writer is never deleted by a stale request.
*/
package repository

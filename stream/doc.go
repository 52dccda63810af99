// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package stream consumes the question table's record-change feed.

The Processor owns the two side effects of a question write: the per-day
pointer record used for date-paged listing, and the question-id list on the
author's profile. On insert it derives a QuestionDateRecord from the new
image and persists it; on remove it deletes the pointer through the
questionId-guarded conditional delete. The pointer write always comes
first: profile mirroring is best-effort, and an author without a profile
record is skipped, not an error. Modify events are reserved and currently
ignored.

The feed itself is external; nothing in this repository produces
RecordChange values in production. The question write path stays ignorant
of the index on purpose, so index maintenance cannot fail a user request.
*/
package stream

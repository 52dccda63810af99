// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store is the partitioned key-value store client the repositories are
built on.

# Operations

The Client interface exposes exactly what the storage layer needs: point get,
point put, conditional delete, range query scoped to one partition key, batch
get by primary key list, and a table-level item count probe. There is no scan
operation; recency-ordered listing is done by walking date partitions (see
the service package).

# Implementations

  - Dynamo: DynamoDB via aws-sdk-go-v2. Conditional check failures map to
    models.ErrPreconditionFailed; everything else is wrapped and surfaced
    unchanged.
  - Memory: an in-process fake for tests and local development. SetPageSize
    forces within-partition continuation so callers' LastEvaluatedKey
    handling gets exercised.

# Bootstrap

EnsureTables creates the Questions, QuestionDatePointers, and Users tables on
boot if absent. MemoryTables mirrors the same layout for the Memory store.
*/
package store

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Item is a stored record in attribute-value form.
type Item = map[string]types.AttributeValue

// Key identifies a record by its primary key attributes.
type Key = map[string]types.AttributeValue

// Condition is an equality precondition on a single attribute, checked by the
// store before a delete is applied.
type Condition struct {
	Attribute string
	Equals    types.AttributeValue
}

// Query describes a range query scoped to exactly one partition. There is no
// scan operation: every read is either a point get, a batch get, or a query
// against one partition key.
type Query struct {
	Table        string
	Index        string // optional secondary index name
	PartitionKey string // partition key attribute name
	PartitionVal types.AttributeValue
	Limit        int32
	Cursor       Key  // resume after this key, exclusive
	ScanForward  bool // false = sort key descending
}

// QueryPage is one page of query results. A non-nil LastEvaluatedKey means
// the partition may hold more records; pass it back as the next Cursor.
type QueryPage struct {
	Items            []Item
	LastEvaluatedKey Key
}

// Client is the partitioned key-value store the repositories are built on.
type Client interface {
	// Get returns the item with the given primary key, or nil if absent.
	Get(ctx context.Context, table string, key Key) (Item, error)

	// Put unconditionally upserts one item.
	Put(ctx context.Context, table string, item Item) error

	// Delete removes the item with the given primary key. When cond is
	// non-nil the delete only succeeds if the stored attribute equals the
	// given value; otherwise models.ErrPreconditionFailed is returned.
	Delete(ctx context.Context, table string, key Key, cond *Condition) error

	// Query returns one page of items from a single partition.
	Query(ctx context.Context, q Query) (QueryPage, error)

	// BatchGet returns the items matching the given primary keys, in
	// unspecified order. Keys with no match are silently omitted.
	BatchGet(ctx context.Context, table string, keys []Key) ([]Item, error)

	// ItemCount reports the table-level item count statistic. The value is
	// refreshed periodically by the store, not live; callers must tolerate
	// staleness.
	ItemCount(ctx context.Context, table string) (int64, error)
}

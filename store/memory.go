// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/danielhkuo/rather/models"
)

// IndexSchema describes a secondary index on a Memory table.
type IndexSchema struct {
	Name         string
	PartitionKey string
	SortKey      string // "" if the index has no sort key
}

// TableSchema describes the key layout of a Memory table.
type TableSchema struct {
	Name         string
	PartitionKey string
	SortKey      string // "" if the table has no sort key
	Indexes      []IndexSchema
}

// Memory is an in-process Client used by tests and local development. It
// reproduces the store's visible behavior: partition-scoped queries with
// continuation keys, conditional deletes, unordered batch gets, and a
// bounded page size that forces callers to follow LastEvaluatedKey.
type Memory struct {
	mu       sync.Mutex
	pageSize int
	tables   map[string]*memTable
}

type memTable struct {
	schema TableSchema
	items  []Item
}

func NewMemory(schemas ...TableSchema) *Memory {
	m := &Memory{tables: make(map[string]*memTable)}
	for _, s := range schemas {
		m.tables[s.Name] = &memTable{schema: s}
	}
	return m
}

// SetPageSize caps the number of items a single Query call may return,
// regardless of the requested limit. Zero means no cap. Tests use a small
// page size to exercise continuation handling.
func (m *Memory) SetPageSize(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pageSize = n
}

func (m *Memory) table(name string) (*memTable, error) {
	t, ok := m.tables[name]
	if !ok {
		return nil, fmt.Errorf("unknown table %q", name)
	}
	return t, nil
}

func (m *Memory) Get(_ context.Context, table string, key Key) (Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, err := m.table(table)
	if err != nil {
		return nil, err
	}
	for _, item := range t.items {
		if t.matchesPrimaryKey(item, key) {
			return copyItem(item), nil
		}
	}
	return nil, nil
}

func (m *Memory) Put(_ context.Context, table string, item Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, err := m.table(table)
	if err != nil {
		return err
	}
	stored := copyItem(item)
	for i, existing := range t.items {
		if t.samePrimaryKey(existing, item) {
			t.items[i] = stored
			return nil
		}
	}
	t.items = append(t.items, stored)
	return nil
}

func (m *Memory) Delete(_ context.Context, table string, key Key, cond *Condition) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, err := m.table(table)
	if err != nil {
		return err
	}
	for i, item := range t.items {
		if !t.matchesPrimaryKey(item, key) {
			continue
		}
		if cond != nil && !avEqual(item[cond.Attribute], cond.Equals) {
			return fmt.Errorf("delete from %s: %w", table, models.ErrPreconditionFailed)
		}
		t.items = append(t.items[:i], t.items[i+1:]...)
		return nil
	}
	// A conditional delete of an absent item fails its precondition; an
	// unconditional one is an idempotent no-op.
	if cond != nil {
		return fmt.Errorf("delete from %s: %w", table, models.ErrPreconditionFailed)
	}
	return nil
}

func (m *Memory) Query(_ context.Context, q Query) (QueryPage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, err := m.table(q.Table)
	if err != nil {
		return QueryPage{}, err
	}

	pk, sk, err := t.keyAttrs(q.Index)
	if err != nil {
		return QueryPage{}, err
	}
	if q.PartitionKey != pk {
		return QueryPage{}, fmt.Errorf("partition key %q does not match schema key %q", q.PartitionKey, pk)
	}

	var matched []Item
	for _, item := range t.items {
		if avEqual(item[pk], q.PartitionVal) {
			matched = append(matched, item)
		}
	}
	if sk != "" {
		sort.SliceStable(matched, func(i, j int) bool {
			less := avLess(matched[i][sk], matched[j][sk])
			if q.ScanForward {
				return less
			}
			return !less && !avEqual(matched[i][sk], matched[j][sk])
		})
	}

	// Position strictly after the cursor in scan direction.
	start := 0
	if q.Cursor != nil && sk != "" {
		cur := q.Cursor[sk]
		for i, item := range matched {
			if q.ScanForward && avLess(cur, item[sk]) {
				start = i
				break
			}
			if !q.ScanForward && avLess(item[sk], cur) {
				start = i
				break
			}
			start = i + 1
		}
	} else if q.Cursor != nil {
		for i, item := range matched {
			if avEqual(item[pk], q.Cursor[pk]) {
				start = i + 1
				break
			}
		}
	}
	matched = matched[start:]

	limit := len(matched)
	if q.Limit > 0 && int(q.Limit) < limit {
		limit = int(q.Limit)
	}
	if m.pageSize > 0 && m.pageSize < limit {
		limit = m.pageSize
	}

	page := QueryPage{Items: make([]Item, 0, limit)}
	for _, item := range matched[:limit] {
		page.Items = append(page.Items, copyItem(item))
	}
	if limit < len(matched) && limit > 0 {
		last := matched[limit-1]
		lek := Key{pk: last[pk]}
		if sk != "" {
			lek[sk] = last[sk]
		}
		// Index continuation keys also carry the table's primary key.
		if q.Index != "" {
			lek[t.schema.PartitionKey] = last[t.schema.PartitionKey]
			if t.schema.SortKey != "" {
				lek[t.schema.SortKey] = last[t.schema.SortKey]
			}
		}
		page.LastEvaluatedKey = lek
	}
	return page, nil
}

func (m *Memory) BatchGet(_ context.Context, table string, keys []Key) ([]Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, err := m.table(table)
	if err != nil {
		return nil, err
	}

	for i := range keys {
		for j := i + 1; j < len(keys); j++ {
			if t.matchesPrimaryKey(keyAsItem(keys[i]), keys[j]) {
				return nil, fmt.Errorf("batch get from %s: duplicate key in request", table)
			}
		}
	}

	var items []Item
	for _, key := range keys {
		for _, item := range t.items {
			if t.matchesPrimaryKey(item, key) {
				items = append(items, copyItem(item))
				break
			}
		}
	}

	// Results come back in key order, not request order, mirroring the
	// unordered responses of the real store.
	pk, sk := t.schema.PartitionKey, t.schema.SortKey
	sort.SliceStable(items, func(i, j int) bool {
		if !avEqual(items[i][pk], items[j][pk]) {
			return avLess(items[i][pk], items[j][pk])
		}
		if sk == "" {
			return false
		}
		return avLess(items[i][sk], items[j][sk])
	})
	return items, nil
}

func (m *Memory) ItemCount(_ context.Context, table string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, err := m.table(table)
	if err != nil {
		return 0, err
	}
	return int64(len(t.items)), nil
}

func (t *memTable) keyAttrs(index string) (pk, sk string, err error) {
	if index == "" {
		return t.schema.PartitionKey, t.schema.SortKey, nil
	}
	for _, idx := range t.schema.Indexes {
		if idx.Name == index {
			return idx.PartitionKey, idx.SortKey, nil
		}
	}
	return "", "", fmt.Errorf("unknown index %q on table %q", index, t.schema.Name)
}

func (t *memTable) matchesPrimaryKey(item Item, key Key) bool {
	if !avEqual(item[t.schema.PartitionKey], key[t.schema.PartitionKey]) {
		return false
	}
	if t.schema.SortKey == "" {
		return true
	}
	return avEqual(item[t.schema.SortKey], key[t.schema.SortKey])
}

func (t *memTable) samePrimaryKey(a, b Item) bool {
	if !avEqual(a[t.schema.PartitionKey], b[t.schema.PartitionKey]) {
		return false
	}
	if t.schema.SortKey == "" {
		return true
	}
	return avEqual(a[t.schema.SortKey], b[t.schema.SortKey])
}

func keyAsItem(k Key) Item {
	return Item(k)
}

func copyItem(item Item) Item {
	out := make(Item, len(item))
	for k, v := range item {
		out[k] = v
	}
	return out
}

func avEqual(a, b types.AttributeValue) bool {
	switch av := a.(type) {
	case *types.AttributeValueMemberS:
		bv, ok := b.(*types.AttributeValueMemberS)
		return ok && av.Value == bv.Value
	case *types.AttributeValueMemberN:
		bv, ok := b.(*types.AttributeValueMemberN)
		return ok && av.Value == bv.Value
	case nil:
		return b == nil
	default:
		return false
	}
}

func avLess(a, b types.AttributeValue) bool {
	switch av := a.(type) {
	case *types.AttributeValueMemberS:
		bv, ok := b.(*types.AttributeValueMemberS)
		return ok && av.Value < bv.Value
	case *types.AttributeValueMemberN:
		bv, ok := b.(*types.AttributeValueMemberN)
		if !ok {
			return false
		}
		an, aerr := strconv.ParseFloat(av.Value, 64)
		bn, berr := strconv.ParseFloat(bv.Value, 64)
		if aerr != nil || berr != nil {
			return av.Value < bv.Value
		}
		return an < bn
	default:
		return false
	}
}

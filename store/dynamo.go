// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/danielhkuo/rather/models"
)

// batchGetMax is the DynamoDB per-request key limit for BatchGetItem.
const batchGetMax = 100

// Dynamo implements Client against DynamoDB.
type Dynamo struct {
	client *dynamodb.Client
}

func NewDynamo(client *dynamodb.Client) *Dynamo {
	return &Dynamo{client: client}
}

func (d *Dynamo) Get(ctx context.Context, table string, key Key) (Item, error) {
	out, err := d.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(table),
		Key:       key,
	})
	if err != nil {
		return nil, fmt.Errorf("get item from %s: %w", table, err)
	}
	if out.Item == nil {
		return nil, nil
	}
	return out.Item, nil
}

func (d *Dynamo) Put(ctx context.Context, table string, item Item) error {
	_, err := d.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("put item to %s: %w", table, err)
	}
	return nil
}

func (d *Dynamo) Delete(ctx context.Context, table string, key Key, cond *Condition) error {
	input := &dynamodb.DeleteItemInput{
		TableName: aws.String(table),
		Key:       key,
	}
	if cond != nil {
		input.ConditionExpression = aws.String("#a = :v")
		input.ExpressionAttributeNames = map[string]string{"#a": cond.Attribute}
		input.ExpressionAttributeValues = map[string]types.AttributeValue{":v": cond.Equals}
	}

	_, err := d.client.DeleteItem(ctx, input)
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return fmt.Errorf("delete from %s: %w", table, models.ErrPreconditionFailed)
		}
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	return nil
}

func (d *Dynamo) Query(ctx context.Context, q Query) (QueryPage, error) {
	input := &dynamodb.QueryInput{
		TableName:                 aws.String(q.Table),
		KeyConditionExpression:    aws.String("#pk = :pk"),
		ExpressionAttributeNames:  map[string]string{"#pk": q.PartitionKey},
		ExpressionAttributeValues: map[string]types.AttributeValue{":pk": q.PartitionVal},
		ScanIndexForward:          aws.Bool(q.ScanForward),
	}
	if q.Index != "" {
		input.IndexName = aws.String(q.Index)
	}
	if q.Limit > 0 {
		input.Limit = aws.Int32(q.Limit)
	}
	if q.Cursor != nil {
		input.ExclusiveStartKey = q.Cursor
	}

	out, err := d.client.Query(ctx, input)
	if err != nil {
		return QueryPage{}, fmt.Errorf("query %s: %w", q.Table, err)
	}
	return QueryPage{Items: out.Items, LastEvaluatedKey: out.LastEvaluatedKey}, nil
}

func (d *Dynamo) BatchGet(ctx context.Context, table string, keys []Key) ([]Item, error) {
	var items []Item

	for start := 0; start < len(keys); start += batchGetMax {
		end := min(start+batchGetMax, len(keys))
		pending := keys[start:end]

		// Unprocessed keys are re-requested until the batch drains.
		for len(pending) > 0 {
			out, err := d.client.BatchGetItem(ctx, &dynamodb.BatchGetItemInput{
				RequestItems: map[string]types.KeysAndAttributes{
					table: {Keys: pending},
				},
			})
			if err != nil {
				return nil, fmt.Errorf("batch get from %s: %w", table, err)
			}
			items = append(items, out.Responses[table]...)

			pending = nil
			if unprocessed, ok := out.UnprocessedKeys[table]; ok {
				pending = unprocessed.Keys
			}
		}
	}

	return items, nil
}

func (d *Dynamo) ItemCount(ctx context.Context, table string) (int64, error) {
	out, err := d.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(table),
	})
	if err != nil {
		return 0, fmt.Errorf("describe table %s: %w", table, err)
	}
	return aws.ToInt64(out.Table.ItemCount), nil
}

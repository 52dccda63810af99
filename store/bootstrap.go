// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Tables names the persisted layout: Questions keyed by (authorId, createdAt)
// with a unique index on questionId, QuestionDatePointers keyed by
// (questionCreateDate, createdAt), and Users keyed by userId.
type Tables struct {
	Questions       string
	QuestionDates   string
	Users           string
	QuestionIDIndex string
}

// EnsureTables creates the three tables if they do not already exist and
// waits until they are active. Safe to run on every boot.
func EnsureTables(ctx context.Context, client *dynamodb.Client, t Tables) error {
	defs := []*dynamodb.CreateTableInput{
		{
			TableName: aws.String(t.Questions),
			AttributeDefinitions: []types.AttributeDefinition{
				{AttributeName: aws.String("authorId"), AttributeType: types.ScalarAttributeTypeS},
				{AttributeName: aws.String("createdAt"), AttributeType: types.ScalarAttributeTypeN},
				{AttributeName: aws.String("questionId"), AttributeType: types.ScalarAttributeTypeS},
			},
			KeySchema: []types.KeySchemaElement{
				{AttributeName: aws.String("authorId"), KeyType: types.KeyTypeHash},
				{AttributeName: aws.String("createdAt"), KeyType: types.KeyTypeRange},
			},
			GlobalSecondaryIndexes: []types.GlobalSecondaryIndex{
				{
					IndexName: aws.String(t.QuestionIDIndex),
					KeySchema: []types.KeySchemaElement{
						{AttributeName: aws.String("questionId"), KeyType: types.KeyTypeHash},
					},
					Projection: &types.Projection{ProjectionType: types.ProjectionTypeAll},
				},
			},
			BillingMode: types.BillingModePayPerRequest,
		},
		{
			TableName: aws.String(t.QuestionDates),
			AttributeDefinitions: []types.AttributeDefinition{
				{AttributeName: aws.String("questionCreateDate"), AttributeType: types.ScalarAttributeTypeS},
				{AttributeName: aws.String("createdAt"), AttributeType: types.ScalarAttributeTypeN},
			},
			KeySchema: []types.KeySchemaElement{
				{AttributeName: aws.String("questionCreateDate"), KeyType: types.KeyTypeHash},
				{AttributeName: aws.String("createdAt"), KeyType: types.KeyTypeRange},
			},
			BillingMode: types.BillingModePayPerRequest,
		},
		{
			TableName: aws.String(t.Users),
			AttributeDefinitions: []types.AttributeDefinition{
				{AttributeName: aws.String("userId"), AttributeType: types.ScalarAttributeTypeS},
			},
			KeySchema: []types.KeySchemaElement{
				{AttributeName: aws.String("userId"), KeyType: types.KeyTypeHash},
			},
			BillingMode: types.BillingModePayPerRequest,
		},
	}

	waiter := dynamodb.NewTableExistsWaiter(client)
	for _, def := range defs {
		_, err := client.CreateTable(ctx, def)
		if err != nil {
			var inUse *types.ResourceInUseException
			if !errors.As(err, &inUse) {
				return fmt.Errorf("create table %s: %w", aws.ToString(def.TableName), err)
			}
			continue
		}
		err = waiter.Wait(ctx, &dynamodb.DescribeTableInput{TableName: def.TableName}, 2*time.Minute)
		if err != nil {
			return fmt.Errorf("wait for table %s: %w", aws.ToString(def.TableName), err)
		}
	}
	return nil
}

// MemoryTables returns Memory table schemas matching EnsureTables, for tests
// and local development.
func MemoryTables(t Tables) []TableSchema {
	return []TableSchema{
		{
			Name:         t.Questions,
			PartitionKey: "authorId",
			SortKey:      "createdAt",
			Indexes: []IndexSchema{
				{Name: t.QuestionIDIndex, PartitionKey: "questionId"},
			},
		},
		{
			Name:         t.QuestionDates,
			PartitionKey: "questionCreateDate",
			SortKey:      "createdAt",
		},
		{
			Name:         t.Users,
			PartitionKey: "userId",
		},
	}
}

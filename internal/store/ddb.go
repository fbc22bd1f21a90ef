// Package store exports scraped records to DynamoDB and SQLite.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	partitionAttr = "Partition"
	idAttr        = "ID"
	updatedAttr   = "UpdatedAt"
)

type DynamoDBAPI interface {
	BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// Item is one exported entity: its id and its flattened, coerced attributes.
type Item struct {
	ID  string
	Row map[string]any
}

// Partition builds the partition key shared by one scrape, e.g. "nba#2018#teams".
func Partition(sport string, year int, kind string) string {
	return sport + "#" + strconv.Itoa(year) + "#" + kind
}

// PutRecords writes items under partition. PK=Partition (S), SK=ID (S).
// Absent values are stored as NULL so every item carries the full column set.
func PutRecords(ctx context.Context, ddb DynamoDBAPI, table, partition string, items []Item) error {
	if len(items) == 0 {
		return nil
	}
	const maxBatch = 25
	now := strconv.FormatInt(time.Now().Unix(), 10)

	for i := 0; i < len(items); i += maxBatch {
		end := min(i+maxBatch, len(items))

		reqs := make([]types.WriteRequest, 0, end-i)
		for _, it := range items[i:end] {
			if it.ID == "" {
				continue
			}
			av, err := attributes(it.Row)
			if err != nil {
				return fmt.Errorf("marshal %s: %w", it.ID, err)
			}
			av[partitionAttr] = &types.AttributeValueMemberS{Value: partition}
			av[idAttr] = &types.AttributeValueMemberS{Value: it.ID}
			av[updatedAttr] = &types.AttributeValueMemberN{Value: now}
			reqs = append(reqs, types.WriteRequest{
				PutRequest: &types.PutRequest{Item: av},
			})
		}
		if len(reqs) == 0 {
			continue
		}
		if err := batchWriteWithRetry(ctx, ddb, table, reqs); err != nil {
			return fmt.Errorf("batch write %s: %w", partition, err)
		}
	}
	slog.Debug("ddb export done", "table", table, "partition", partition, "items", len(items))
	return nil
}

// attributes marshals a coerced row; nil values become NULL.
func attributes(row map[string]any) (map[string]types.AttributeValue, error) {
	av, err := attributevalue.MarshalMap(row)
	if err != nil {
		return nil, err
	}
	if av == nil {
		av = make(map[string]types.AttributeValue, 3)
	}
	return av, nil
}

// batchWriteWithRetry resubmits the items DynamoDB reports as unprocessed.
func batchWriteWithRetry(ctx context.Context, ddb DynamoDBAPI, table string, reqs []types.WriteRequest) error {
	input := &dynamodb.BatchWriteItemInput{
		RequestItems: map[string][]types.WriteRequest{table: reqs},
	}
	const maxAttempts = 6
	backoff := 120 * time.Millisecond

	for attempt := 0; attempt < maxAttempts; attempt++ {
		out, err := ddb.BatchWriteItem(ctx, input)
		if err != nil {
			return err
		}
		if len(out.UnprocessedItems) == 0 {
			return nil
		}
		input.RequestItems = out.UnprocessedItems
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		if backoff < 2*time.Second {
			backoff += 120 * time.Millisecond
		}
	}
	return fmt.Errorf("unprocessed items remained after retries for table %s", table)
}

// LoadRecords reads every item of partition back, following pagination.
// Numbers come back as float64 and NULLs as nil.
func LoadRecords(ctx context.Context, ddb DynamoDBAPI, table, partition string) ([]Item, error) {
	var items []Item
	var lastKey map[string]types.AttributeValue
	for {
		out, err := ddb.Query(ctx, &dynamodb.QueryInput{
			TableName:                 aws.String(table),
			KeyConditionExpression:    aws.String("#pk = :p"),
			ExpressionAttributeNames:  map[string]string{"#pk": partitionAttr},
			ExpressionAttributeValues: map[string]types.AttributeValue{":p": &types.AttributeValueMemberS{Value: partition}},
			ExclusiveStartKey:         lastKey,
		})
		if err != nil {
			return nil, fmt.Errorf("query %s: %w", partition, err)
		}
		for _, av := range out.Items {
			it := Item{}
			if id, ok := av[idAttr].(*types.AttributeValueMemberS); ok {
				it.ID = id.Value
			}
			if err := attributevalue.UnmarshalMap(av, &it.Row); err != nil {
				return nil, fmt.Errorf("unmarshal %s/%s: %w", partition, it.ID, err)
			}
			delete(it.Row, partitionAttr)
			delete(it.Row, idAttr)
			delete(it.Row, updatedAttr)
			items = append(items, it)
		}
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		lastKey = out.LastEvaluatedKey
	}
	return items, nil
}

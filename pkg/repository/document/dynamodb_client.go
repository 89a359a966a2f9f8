package document

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	"github.com/campusbridge/campusbridge/pkg/store"
	dynamostore "github.com/campusbridge/campusbridge/pkg/store/dynamodb"
)

// DynamoClient adapts the dynamodb store adapter to the document
// Client contract. Each collection is a table keyed by the "id"
// attribute; equality filters run as scans with filter expressions.
type DynamoClient struct {
	adapter *dynamostore.Adapter
}

// NewDynamoClient wraps a connected dynamodb adapter.
func NewDynamoClient(adapter *dynamostore.Adapter) (*DynamoClient, error) {
	if adapter == nil {
		return nil, fmt.Errorf("dynamodb adapter is required")
	}
	return &DynamoClient{adapter: adapter}, nil
}

func (c *DynamoClient) Find(ctx context.Context, collection string, filter Filter) ([]map[string]any, error) {
	opCtx, cancel := c.adapter.WithOperationTimeout(ctx)
	defer cancel()

	input := &awsdynamodb.ScanInput{TableName: aws.String(c.adapter.TableName(collection))}
	if err := applyFilterExpression(input, filter); err != nil {
		return nil, err
	}

	var out []map[string]any
	for {
		page, err := c.adapter.Client().Scan(opCtx, input)
		if err != nil {
			return nil, fmt.Errorf("dynamodb scan failed: %w", err)
		}
		for _, item := range page.Items {
			doc, err := unmarshalItem(item)
			if err != nil {
				return nil, err
			}
			out = append(out, doc)
		}
		if page.LastEvaluatedKey == nil {
			return out, nil
		}
		input.ExclusiveStartKey = page.LastEvaluatedKey
	}
}

func (c *DynamoClient) FindByID(ctx context.Context, collection, id string) (map[string]any, error) {
	opCtx, cancel := c.adapter.WithOperationTimeout(ctx)
	defer cancel()

	res, err := c.adapter.Client().GetItem(opCtx, &awsdynamodb.GetItemInput{
		TableName: aws.String(c.adapter.TableName(collection)),
		Key:       idKey(id),
	})
	if err != nil {
		return nil, fmt.Errorf("dynamodb get failed: %w", err)
	}
	if res.Item == nil {
		return nil, store.ErrNotFound
	}
	return unmarshalItem(res.Item)
}

func (c *DynamoClient) FindByIDs(ctx context.Context, collection string, ids []string) ([]map[string]any, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	opCtx, cancel := c.adapter.WithOperationTimeout(ctx)
	defer cancel()

	table := c.adapter.TableName(collection)
	keys := make([]map[string]types.AttributeValue, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, idKey(id))
	}

	var out []map[string]any
	for len(keys) > 0 {
		res, err := c.adapter.Client().BatchGetItem(opCtx, &awsdynamodb.BatchGetItemInput{
			RequestItems: map[string]types.KeysAndAttributes{table: {Keys: keys}},
		})
		if err != nil {
			return nil, fmt.Errorf("dynamodb batch get failed: %w", err)
		}
		for _, item := range res.Responses[table] {
			doc, err := unmarshalItem(item)
			if err != nil {
				return nil, err
			}
			out = append(out, doc)
		}
		keys = res.UnprocessedKeys[table].Keys
	}
	return out, nil
}

func (c *DynamoClient) Count(ctx context.Context, collection string, filter Filter) (int64, error) {
	opCtx, cancel := c.adapter.WithOperationTimeout(ctx)
	defer cancel()

	input := &awsdynamodb.ScanInput{
		TableName: aws.String(c.adapter.TableName(collection)),
		Select:    types.SelectCount,
	}
	if err := applyFilterExpression(input, filter); err != nil {
		return 0, err
	}

	var n int64
	for {
		page, err := c.adapter.Client().Scan(opCtx, input)
		if err != nil {
			return 0, fmt.Errorf("dynamodb count scan failed: %w", err)
		}
		n += int64(page.Count)
		if page.LastEvaluatedKey == nil {
			return n, nil
		}
		input.ExclusiveStartKey = page.LastEvaluatedKey
	}
}

func (c *DynamoClient) Insert(ctx context.Context, collection string, doc map[string]any) (string, error) {
	id, _ := doc["id"].(string)
	if id == "" {
		id = uuid.New().String()
	}
	if err := c.put(ctx, collection, id, doc); err != nil {
		return "", err
	}
	return id, nil
}

func (c *DynamoClient) Replace(ctx context.Context, collection, id string, doc map[string]any) error {
	return c.put(ctx, collection, id, doc)
}

func (c *DynamoClient) put(ctx context.Context, collection, id string, doc map[string]any) error {
	opCtx, cancel := c.adapter.WithOperationTimeout(ctx)
	defer cancel()

	item, err := attributevalue.MarshalMap(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}
	item["id"] = &types.AttributeValueMemberS{Value: id}

	if _, err := c.adapter.Client().PutItem(opCtx, &awsdynamodb.PutItemInput{
		TableName: aws.String(c.adapter.TableName(collection)),
		Item:      item,
	}); err != nil {
		return fmt.Errorf("dynamodb put failed: %w", err)
	}
	return nil
}

func (c *DynamoClient) Delete(ctx context.Context, collection, id string) error {
	opCtx, cancel := c.adapter.WithOperationTimeout(ctx)
	defer cancel()

	res, err := c.adapter.Client().DeleteItem(opCtx, &awsdynamodb.DeleteItemInput{
		TableName:    aws.String(c.adapter.TableName(collection)),
		Key:          idKey(id),
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		return fmt.Errorf("dynamodb delete failed: %w", err)
	}
	if len(res.Attributes) == 0 {
		return store.ErrNotFound
	}
	return nil
}

func idKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: id}}
}

func applyFilterExpression(input *awsdynamodb.ScanInput, filter Filter) error {
	if len(filter) == 0 {
		return nil
	}

	names := make(map[string]string, len(filter))
	values := make(map[string]types.AttributeValue, len(filter))
	clauses := make([]string, 0, len(filter))

	i := 0
	for field, value := range filter {
		av, err := attributevalue.Marshal(value)
		if err != nil {
			return fmt.Errorf("failed to marshal filter value for %s: %w", field, err)
		}
		name := fmt.Sprintf("#f%d", i)
		placeholder := fmt.Sprintf(":v%d", i)
		names[name] = field
		values[placeholder] = av
		clauses = append(clauses, name+" = "+placeholder)
		i++
	}

	input.FilterExpression = aws.String(strings.Join(clauses, " AND "))
	input.ExpressionAttributeNames = names
	input.ExpressionAttributeValues = values
	return nil
}

func unmarshalItem(item map[string]types.AttributeValue) (map[string]any, error) {
	var doc map[string]any
	if err := attributevalue.UnmarshalMap(item, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal item: %w", err)
	}
	return doc, nil
}

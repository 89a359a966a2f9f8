package document

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/campusbridge/campusbridge/pkg/store"
	mongostore "github.com/campusbridge/campusbridge/pkg/store/mongodb"
)

// MongoClient adapts the mongodb store adapter to the document Client
// contract. The logical "id" field maps to Mongo's "_id".
type MongoClient struct {
	adapter *mongostore.Adapter
}

// NewMongoClient wraps a connected mongodb adapter.
func NewMongoClient(adapter *mongostore.Adapter) (*MongoClient, error) {
	if adapter == nil {
		return nil, fmt.Errorf("mongodb adapter is required")
	}
	return &MongoClient{adapter: adapter}, nil
}

func (c *MongoClient) Find(ctx context.Context, collection string, filter Filter) ([]map[string]any, error) {
	opCtx, cancel := c.adapter.WithOperationTimeout(ctx)
	defer cancel()

	cursor, err := c.adapter.Collection(collection).Find(opCtx, toBSONFilter(filter))
	if err != nil {
		return nil, fmt.Errorf("mongodb find failed: %w", err)
	}
	defer cursor.Close(opCtx)

	var raw []bson.M
	if err := cursor.All(opCtx, &raw); err != nil {
		return nil, fmt.Errorf("mongodb cursor read failed: %w", err)
	}

	out := make([]map[string]any, 0, len(raw))
	for _, doc := range raw {
		out = append(out, fromBSONDoc(doc))
	}
	return out, nil
}

func (c *MongoClient) FindByID(ctx context.Context, collection, id string) (map[string]any, error) {
	opCtx, cancel := c.adapter.WithOperationTimeout(ctx)
	defer cancel()

	var doc bson.M
	err := c.adapter.Collection(collection).FindOne(opCtx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mongodb find by id failed: %w", err)
	}
	return fromBSONDoc(doc), nil
}

func (c *MongoClient) FindByIDs(ctx context.Context, collection string, ids []string) ([]map[string]any, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	opCtx, cancel := c.adapter.WithOperationTimeout(ctx)
	defer cancel()

	cursor, err := c.adapter.Collection(collection).Find(opCtx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("mongodb batch find failed: %w", err)
	}
	defer cursor.Close(opCtx)

	var raw []bson.M
	if err := cursor.All(opCtx, &raw); err != nil {
		return nil, fmt.Errorf("mongodb cursor read failed: %w", err)
	}

	out := make([]map[string]any, 0, len(raw))
	for _, doc := range raw {
		out = append(out, fromBSONDoc(doc))
	}
	return out, nil
}

func (c *MongoClient) Count(ctx context.Context, collection string, filter Filter) (int64, error) {
	opCtx, cancel := c.adapter.WithOperationTimeout(ctx)
	defer cancel()

	n, err := c.adapter.Collection(collection).CountDocuments(opCtx, toBSONFilter(filter))
	if err != nil {
		return 0, fmt.Errorf("mongodb count failed: %w", err)
	}
	return n, nil
}

func (c *MongoClient) Insert(ctx context.Context, collection string, doc map[string]any) (string, error) {
	opCtx, cancel := c.adapter.WithOperationTimeout(ctx)
	defer cancel()

	id, _ := doc["id"].(string)
	if id == "" {
		id = uuid.New().String()
	}

	if _, err := c.adapter.Collection(collection).InsertOne(opCtx, toBSONDoc(doc, id)); err != nil {
		return "", fmt.Errorf("mongodb insert failed: %w", err)
	}
	return id, nil
}

func (c *MongoClient) Replace(ctx context.Context, collection, id string, doc map[string]any) error {
	opCtx, cancel := c.adapter.WithOperationTimeout(ctx)
	defer cancel()

	opts := options.Replace().SetUpsert(true)
	if _, err := c.adapter.Collection(collection).ReplaceOne(opCtx, bson.M{"_id": id}, toBSONDoc(doc, id), opts); err != nil {
		return fmt.Errorf("mongodb replace failed: %w", err)
	}
	return nil
}

func (c *MongoClient) Delete(ctx context.Context, collection, id string) error {
	opCtx, cancel := c.adapter.WithOperationTimeout(ctx)
	defer cancel()

	res, err := c.adapter.Collection(collection).DeleteOne(opCtx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("mongodb delete failed: %w", err)
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func toBSONFilter(filter Filter) bson.M {
	out := bson.M{}
	for field, value := range filter {
		if field == "id" {
			field = "_id"
		}
		out[field] = value
	}
	return out
}

func toBSONDoc(doc map[string]any, id string) bson.M {
	out := bson.M{}
	for field, value := range doc {
		if field == "id" {
			continue
		}
		out[field] = value
	}
	out["_id"] = id
	return out
}

func fromBSONDoc(doc bson.M) map[string]any {
	out := make(map[string]any, len(doc))
	for field, value := range doc {
		if field == "_id" {
			if id, ok := value.(string); ok {
				out["id"] = id
			} else {
				out["id"] = fmt.Sprintf("%v", value)
			}
			continue
		}
		out[field] = value
	}
	return out
}

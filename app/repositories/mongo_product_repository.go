package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/mayorista/app/models"
	"github.com/shashiranjanraj/mayorista/pkg/metrics"
)

// MongoProductRepository stores products as documents keyed by their uuid.
// Batch sort-order writes need a replica set (multi-document transactions).
type MongoProductRepository struct {
	col *mongo.Collection
	now func() time.Time
}

func NewMongoProductRepository(db *mongo.Database) *MongoProductRepository {
	return &MongoProductRepository{
		col: db.Collection("products"),
		now: func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	}
}

// EnsureIndexes creates the secondary indexes used by listing and SKU lookup.
func (r *MongoProductRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "sortOrder", Value: 1}, {Key: "_id", Value: 1}}},
		{Keys: bson.D{{Key: "sku", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "isActive", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("mongo products: create indexes: %w", err)
	}
	return nil
}

func (r *MongoProductRepository) FindByID(ctx context.Context, id string) (models.Product, error) {
	defer metrics.ObserveDBQuery("select", time.Now())
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoProductRepository) FindBySKU(ctx context.Context, sku string) (models.Product, error) {
	defer metrics.ObserveDBQuery("select", time.Now())
	return r.findOne(ctx, bson.M{"sku": sku}, options.FindOne().SetSort(bson.D{{Key: "_id", Value: 1}}))
}

func (r *MongoProductRepository) findOne(ctx context.Context, filter bson.M, opts ...*options.FindOneOptions) (models.Product, error) {
	var p models.Product
	err := r.col.FindOne(ctx, filter, opts...).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Product{}, ErrProductNotFound
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("mongo products: find: %w", err)
	}
	return p, nil
}

func (r *MongoProductRepository) ListAll(ctx context.Context, activeOnly bool) ([]models.Product, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	filter := bson.M{}
	if activeOnly {
		filter["isActive"] = true
	}

	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("mongo products: list: %w", err)
	}
	defer cur.Close(ctx)

	items := make([]models.Product, 0)
	if err := cur.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("mongo products: decode list: %w", err)
	}
	return items, nil
}

func (r *MongoProductRepository) Create(ctx context.Context, in models.ProductInput) (string, error) {
	defer metrics.ObserveDBQuery("insert", time.Now())

	next := 1
	var last models.Product
	err := r.col.FindOne(ctx, bson.M{},
		options.FindOne().SetSort(bson.D{{Key: "sortOrder", Value: -1}}).SetProjection(bson.M{"sortOrder": 1}),
	).Decode(&last)
	switch {
	case err == nil:
		next = last.SortOrder + 1
	case !errors.Is(err, mongo.ErrNoDocuments):
		return "", fmt.Errorf("mongo products: read max sort order: %w", err)
	}

	now := r.now()
	p := models.Product{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Description: in.Description,
		SKU:         in.SKU,
		Gender:      in.Gender,
		Type:        in.Type,
		ImageURL:    in.ImageURL,
		IsActive:    in.IsActive,
		SortOrder:   next,
		CreatedAt:   &now,
		UpdatedAt:   &now,
	}
	if _, err := r.col.InsertOne(ctx, p); mongo.IsDuplicateKeyError(err) {
		return "", fmt.Errorf("mongo products: insert: %w", ErrDuplicateSKU)
	} else if err != nil {
		return "", fmt.Errorf("mongo products: insert: %w", err)
	}
	return p.ID, nil
}

func (r *MongoProductRepository) Patch(ctx context.Context, id string, patch models.ProductPatch) error {
	defer metrics.ObserveDBQuery("update", time.Now())

	set := bson.M{"updatedAt": r.now()}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.SKU != nil {
		set["sku"] = *patch.SKU
	}
	if patch.Gender != nil {
		set["gender"] = *patch.Gender
	}
	if patch.Type != nil {
		set["type"] = *patch.Type
	}
	if patch.ImageURL != nil {
		set["imageUrl"] = *patch.ImageURL
	}
	if patch.IsActive != nil {
		set["isActive"] = *patch.IsActive
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("mongo products: patch %s: %w", id, ErrDuplicateSKU)
	}
	if err != nil {
		return fmt.Errorf("mongo products: patch %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *MongoProductRepository) BatchSetSortOrder(ctx context.Context, orderedIDs []string, start int) error {
	defer metrics.ObserveDBQuery("update", time.Now())

	session, err := r.col.Database().Client().StartSession()
	if err != nil {
		return fmt.Errorf("mongo products: start session: %w", err)
	}
	defer session.EndSession(ctx)

	now := r.now()
	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		for i, id := range orderedIDs {
			res, err := r.col.UpdateOne(sc, bson.M{"_id": id},
				bson.M{"$set": bson.M{"sortOrder": start + i, "updatedAt": now}})
			if err != nil {
				return nil, fmt.Errorf("set sort order for %s: %w", id, err)
			}
			if res.MatchedCount == 0 {
				return nil, fmt.Errorf("set sort order for %s: %w", id, ErrProductNotFound)
			}
		}
		return nil, nil
	})
	return err
}

func (r *MongoProductRepository) Ping(ctx context.Context) error {
	return r.col.Database().Client().Ping(ctx, nil)
}

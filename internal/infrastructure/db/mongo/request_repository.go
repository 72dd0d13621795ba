package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/andestravel/travel-requests/internal/core/domain"
)

const collectionRequests = "trip_requests"

// RequestRepository persists trip requests in MongoDB. Every write is a
// single-document operation, so ownership filters and mutations apply
// atomically.
type RequestRepository struct {
	col *mongo.Collection
}

func NewRequestRepository(db *mongo.Database) *RequestRepository {
	return &RequestRepository{col: db.Collection(collectionRequests)}
}

func (r *RequestRepository) Insert(ctx context.Context, req *domain.TripRequest) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, req); err != nil {
		return fmt.Errorf("insert request: %w", err)
	}
	return nil
}

func (r *RequestRepository) FindByID(ctx context.Context, id string) (*domain.TripRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var req domain.TripRequest
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&req); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, fmt.Errorf("find request: %w", err)
	}
	return &req, nil
}

// List returns all requests when ownerID is empty, or only those owned by
// ownerID otherwise. The owner filter lives in the query so a client can
// never receive a foreign record.
func (r *RequestRepository) List(ctx context.Context, ownerID string) ([]*domain.TripRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if ownerID != "" {
		filter["user_id"] = ownerID
	}

	cursor, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	defer cursor.Close(ctx)

	requests := make([]*domain.TripRequest, 0)
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, fmt.Errorf("decode requests: %w", err)
	}
	return requests, nil
}

func (r *RequestRepository) Replace(ctx context.Context, req *domain.TripRequest) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	result, err := r.col.ReplaceOne(ctx, bson.M{"_id": req.ID}, req)
	if err != nil {
		return fmt.Errorf("replace request: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrRequestNotFound
	}
	return nil
}

// Delete removes a request by id, additionally scoped to ownerID when
// non-empty. A zero deleted count is reported as not-found in both the
// "missing" and "not yours" cases.
func (r *RequestRepository) Delete(ctx context.Context, id, ownerID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": id}
	if ownerID != "" {
		filter["user_id"] = ownerID
	}

	result, err := r.col.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("delete request: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrRequestNotFound
	}
	return nil
}

// EnsureIndexes creates the owner index used by the scoped list and delete paths.
func (r *RequestRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}},
	})
	return err
}

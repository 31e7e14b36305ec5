// Package profiles is the document store for per-user profile documents.
package profiles

import (
	"context"
	"errors"
	"fmt"

	"github.com/gogotex/useradmin/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNotFound = errors.New("profiles: document not found")

// Repository defines persistence operations for profile documents
type Repository interface {
	// Create writes the document under p.UID, replacing any previous one.
	// CreatedAt is assigned by the store.
	Create(ctx context.Context, p *models.Profile) error
	// Update changes the given fields of an existing document; ErrNotFound when absent.
	Update(ctx context.Context, uid string, u models.ProfileUpdate) error
	Get(ctx context.Context, uid string) (*models.Profile, error)
}

// MongoRepository implements Repository using MongoDB
type MongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

// Create replaces the document and lets the server stamp createdAt via $currentDate.
func (r *MongoRepository) Create(ctx context.Context, p *models.Profile) error {
	filter := bson.M{"_id": p.UID}
	if _, err := r.col.DeleteOne(ctx, filter); err != nil {
		return fmt.Errorf("profiles: reset %s: %w", p.UID, err)
	}
	upd := bson.M{
		"$set": bson.M{
			"id":       p.UID,
			"name":     p.Name,
			"email":    p.Email,
			"phone":    p.Phone,
			"role":     p.Role,
			"isActive": p.IsActive,
		},
		"$currentDate": bson.M{"createdAt": true},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var created models.Profile
	if err := r.col.FindOneAndUpdate(ctx, filter, upd, opts).Decode(&created); err != nil {
		return fmt.Errorf("profiles: create %s: %w", p.UID, err)
	}
	p.ID = created.ID
	p.CreatedAt = created.CreatedAt
	return nil
}

func (r *MongoRepository) Update(ctx context.Context, uid string, u models.ProfileUpdate) error {
	set := bson.M{}
	if u.Name != nil {
		set["name"] = *u.Name
	}
	if u.Phone != nil {
		set["phone"] = *u.Phone
	}
	if u.Role != nil {
		set["role"] = *u.Role
	}
	if u.IsActive != nil {
		set["isActive"] = *u.IsActive
	}
	if len(set) == 0 {
		_, err := r.Get(ctx, uid)
		return err
	}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": uid}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("profiles: update %s: %w", uid, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, uid)
	}
	return nil
}

func (r *MongoRepository) Get(ctx context.Context, uid string) (*models.Profile, error) {
	var p models.Profile
	if err := r.col.FindOne(ctx, bson.M{"_id": uid}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, uid)
		}
		return nil, fmt.Errorf("profiles: get %s: %w", uid, err)
	}
	return &p, nil
}

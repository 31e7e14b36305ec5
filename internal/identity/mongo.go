package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gogotex/useradmin/internal/models"
	"github.com/gogotex/useradmin/pkg/logger"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoProvider stores identities in a MongoDB collection with a unique
// index on email.
type MongoProvider struct {
	col *mongo.Collection
}

// NewMongoProvider wraps the collection and ensures the email index.
func NewMongoProvider(ctx context.Context, col *mongo.Collection) *MongoProvider {
	idx := mongo.IndexModel{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)}
	if _, err := col.Indexes().CreateOne(ctx, idx); err != nil {
		logger.Warnf("identity: failed to ensure email index on %s: %v", col.Name(), err)
	}
	return &MongoProvider{col: col}
}

func (p *MongoProvider) CreateUser(ctx context.Context, u *UserToCreate) (*models.Identity, error) {
	if err := checkNewUser(u); err != nil {
		return nil, err
	}
	hash, err := hashPassword(u.Password)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	rec := &models.Identity{
		UID:          uuid.NewString(),
		Email:        normalizeEmail(u.Email),
		PasswordHash: hash,
		DisplayName:  u.DisplayName,
		Disabled:     u.Disabled,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := p.col.InsertOne(ctx, rec); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("%w: %s", ErrEmailExists, rec.Email)
		}
		return nil, fmt.Errorf("identity: insert: %w", err)
	}
	return rec, nil
}

func (p *MongoProvider) UpdateUser(ctx context.Context, uid string, u *UserToUpdate) (*models.Identity, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if u != nil {
		if u.DisplayName != nil {
			set["displayName"] = *u.DisplayName
		}
		if u.Disabled != nil {
			set["disabled"] = *u.Disabled
		}
		if u.Password != nil {
			if err := checkPassword(*u.Password); err != nil {
				return nil, err
			}
			hash, err := hashPassword(*u.Password)
			if err != nil {
				return nil, err
			}
			set["passwordHash"] = hash
		}
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Identity
	if err := p.col.FindOneAndUpdate(ctx, bson.M{"_id": uid}, bson.M{"$set": set}, opts).Decode(&updated); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: uid %s", ErrNotFound, uid)
		}
		return nil, fmt.Errorf("identity: update %s: %w", uid, err)
	}
	return &updated, nil
}

func (p *MongoProvider) GetUser(ctx context.Context, uid string) (*models.Identity, error) {
	return p.findOne(ctx, bson.M{"_id": uid}, "uid "+uid)
}

func (p *MongoProvider) GetUserByEmail(ctx context.Context, email string) (*models.Identity, error) {
	return p.findOne(ctx, bson.M{"email": normalizeEmail(email)}, "email "+email)
}

func (p *MongoProvider) findOne(ctx context.Context, filter bson.M, what string) (*models.Identity, error) {
	var rec models.Identity
	if err := p.col.FindOne(ctx, filter).Decode(&rec); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, what)
		}
		return nil, fmt.Errorf("identity: lookup %s: %w", what, err)
	}
	return &rec, nil
}

func (p *MongoProvider) SetCustomUserClaims(ctx context.Context, uid string, claims map[string]interface{}) error {
	if err := checkClaims(claims); err != nil {
		return err
	}
	now := time.Now().UTC()
	var update bson.M
	if len(claims) == 0 {
		update = bson.M{"$set": bson.M{"updatedAt": now}, "$unset": bson.M{"customClaims": ""}}
	} else {
		update = bson.M{"$set": bson.M{"customClaims": claims, "updatedAt": now}}
	}
	res, err := p.col.UpdateOne(ctx, bson.M{"_id": uid}, update)
	if err != nil {
		return fmt.Errorf("identity: set claims %s: %w", uid, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: uid %s", ErrNotFound, uid)
	}
	return nil
}

func (p *MongoProvider) VerifyPassword(ctx context.Context, email, password string) (*models.Identity, error) {
	rec, err := p.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !passwordMatches(password, rec.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return rec, nil
}

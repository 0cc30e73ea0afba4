package mongo

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/storeatlas/api/internal/directory/application"
	"github.com/storeatlas/api/internal/directory/domain"
)

// UserRepository implements application.UserRepository using MongoDB.
type UserRepository struct {
	collection *mongo.Collection
}

// NewUserRepository creates a new Mongo-backed user repository.
func NewUserRepository(db *mongo.Database, collectionName string) *UserRepository {
	return &UserRepository{collection: db.Collection(collectionName)}
}

// Insert persists a new account. The unique index on email turns
// duplicates into *domain.ConflictError.
func (r *UserRepository) Insert(ctx context.Context, user *domain.User) error {
	doc := UserDocument{
		ID:        primitive.NewObjectID(),
		Email:     user.Email,
		Name:      user.Name,
		Password:  user.PasswordHash,
		CreatedAt: user.CreatedAt,
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.NewConflictError("email", user.Email)
		}
		return err
	}
	user.ID = doc.ID.Hex()
	return nil
}

// FindByID returns a single account by its identifier.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.NewNotFoundError("user", id)
	}
	return r.findOne(ctx, bson.M{"_id": objectID}, id)
}

// FindByEmail returns a single account by its lowercased email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email}, email)
}

// ToggleHeart adds or removes a store id from the user's hearts using
// $addToSet / $pull, mirroring the favourite toggle semantics, and
// returns the updated account.
func (r *UserRepository) ToggleHeart(ctx context.Context, userID, storeID string, add bool) (*domain.User, error) {
	userObjID, err := primitive.ObjectIDFromHex(strings.TrimSpace(userID))
	if err != nil {
		return nil, domain.NewNotFoundError("user", userID)
	}
	storeObjID, err := primitive.ObjectIDFromHex(strings.TrimSpace(storeID))
	if err != nil {
		return nil, domain.NewNotFoundError("store", storeID)
	}

	operator := "$pull"
	if add {
		operator = "$addToSet"
	}
	update := bson.M{operator: bson.M{"hearts": storeObjID}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc UserDocument
	if err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": userObjID}, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.NewNotFoundError("user", userID)
		}
		return nil, err
	}
	user := mapUserDocument(doc)
	return &user, nil
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M, key string) (*domain.User, error) {
	var doc UserDocument
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.NewNotFoundError("user", key)
		}
		return nil, err
	}
	user := mapUserDocument(doc)
	return &user, nil
}

func mapUserDocument(doc UserDocument) domain.User {
	hearts := make([]string, 0, len(doc.Hearts))
	for _, id := range doc.Hearts {
		hearts = append(hearts, id.Hex())
	}
	return domain.User{
		ID:           doc.ID.Hex(),
		Email:        doc.Email,
		Name:         doc.Name,
		PasswordHash: doc.Password,
		Hearts:       hearts,
		CreatedAt:    doc.CreatedAt,
	}
}

var _ application.UserRepository = (*UserRepository)(nil)

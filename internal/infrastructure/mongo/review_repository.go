package mongo

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/storeatlas/api/internal/directory/application"
	"github.com/storeatlas/api/internal/directory/domain"
)

// ReviewRepository implements application.ReviewRepository. The review
// collection is owned by the review collaborator; this repository is
// read-only.
type ReviewRepository struct {
	collection *mongo.Collection
}

// NewReviewRepository creates a new Mongo-backed review reader.
func NewReviewRepository(db *mongo.Database, collectionName string) *ReviewRepository {
	return &ReviewRepository{collection: db.Collection(collectionName)}
}

// FindByStoreID returns the reviews of one store, newest first.
func (r *ReviewRepository) FindByStoreID(ctx context.Context, storeID string) ([]domain.Review, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(storeID))
	if err != nil {
		return []domain.Review{}, nil
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return r.findMany(ctx, bson.M{"storeId": objectID}, opts)
}

// FindAll returns every review for the ranking computations.
func (r *ReviewRepository) FindAll(ctx context.Context) ([]domain.Review, error) {
	return r.findMany(ctx, bson.M{}, options.Find())
}

func (r *ReviewRepository) findMany(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]domain.Review, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	reviews := make([]domain.Review, 0)
	for cursor.Next(ctx) {
		var doc ReviewDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		reviews = append(reviews, domain.Review{
			ID:        doc.ID.Hex(),
			StoreID:   doc.StoreID.Hex(),
			AuthorID:  doc.Author.Hex(),
			Text:      doc.Text,
			Rating:    doc.Rating,
			CreatedAt: doc.CreatedAt,
		})
	}
	return reviews, cursor.Err()
}

var _ application.ReviewRepository = (*ReviewRepository)(nil)

package mongo

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"

	"github.com/storeatlas/api/internal/directory/application"
	"github.com/storeatlas/api/internal/directory/domain"
)

// StoreRepository implements application.StoreRepository using MongoDB.
type StoreRepository struct {
	collection *mongo.Collection
}

// NewStoreRepository creates a new Mongo-backed store repository.
func NewStoreRepository(db *mongo.Database, collectionName string) *StoreRepository {
	return &StoreRepository{collection: db.Collection(collectionName)}
}

// Insert persists a new store and assigns its id. The unique index on
// slug is the final arbiter of uniqueness; a duplicate key comes back
// as *domain.ConflictError.
func (r *StoreRepository) Insert(ctx context.Context, store *domain.Store) error {
	doc, err := buildStoreDocument(store)
	if err != nil {
		return err
	}
	doc.ID = primitive.NewObjectID()
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.NewConflictError("slug", store.Slug)
		}
		return err
	}
	store.ID = doc.ID.Hex()
	return nil
}

// Update replaces the mutable fields of an existing store.
func (r *StoreRepository) Update(ctx context.Context, store *domain.Store) error {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(store.ID))
	if err != nil {
		return domain.NewNotFoundError("store", store.ID)
	}
	update := bson.M{
		"name":        store.Name,
		"slug":        store.Slug,
		"description": store.Description,
		"tags":        store.Tags,
		"location": LocationDocument{
			Type:        domain.GeoJSONPoint,
			Coordinates: store.Location.Coordinates,
			Address:     store.Location.Address,
		},
		"photo":     store.Photo,
		"updatedAt": store.UpdatedAt,
	}
	result, err := r.collection.UpdateByID(ctx, objectID, bson.M{"$set": update})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.NewConflictError("slug", store.Slug)
		}
		return err
	}
	if result.MatchedCount == 0 {
		return domain.NewNotFoundError("store", store.ID)
	}
	return nil
}

// FindByID returns a single store by its identifier.
func (r *StoreRepository) FindByID(ctx context.Context, id string) (*domain.Store, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.NewNotFoundError("store", id)
	}
	return r.findOne(ctx, bson.M{"_id": objectID}, id)
}

// FindBySlug returns a single store by its slug.
func (r *StoreRepository) FindBySlug(ctx context.Context, slug string) (*domain.Store, error) {
	return r.findOne(ctx, bson.M{"slug": slug}, slug)
}

func (r *StoreRepository) findOne(ctx context.Context, filter bson.M, key string) (*domain.Store, error) {
	var doc StoreDocument
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.NewNotFoundError("store", key)
		}
		return nil, err
	}
	store := mapStoreDocument(doc)
	return &store, nil
}

// FindPage returns one page of stores ordered newest first, plus the
// total count. The two queries run concurrently.
func (r *StoreRepository) FindPage(ctx context.Context, page, limit int) ([]domain.Store, int64, error) {
	if page < 1 {
		page = 1
	}
	skip := int64(page*limit - limit)

	var (
		stores []domain.Store
		total  int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		opts := options.Find().
			SetSort(bson.D{{Key: "createdAt", Value: -1}}).
			SetSkip(skip).
			SetLimit(int64(limit))
		var err error
		stores, err = r.findMany(gctx, bson.M{}, opts)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = r.collection.CountDocuments(gctx, bson.M{})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return stores, total, nil
}

// FindByTag returns stores carrying the tag. An empty tag matches any
// store that has tags at all.
func (r *StoreRepository) FindByTag(ctx context.Context, tag string) ([]domain.Store, error) {
	filter := bson.M{"tags": bson.M{"$exists": true}}
	if tag != "" {
		filter = bson.M{"tags": tag}
	}
	return r.findMany(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}

// FindByIDs returns the stores whose ids appear in the list.
func (r *StoreRepository) FindByIDs(ctx context.Context, ids []string) ([]domain.Store, error) {
	objectIDs := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
		if err != nil {
			continue
		}
		objectIDs = append(objectIDs, objectID)
	}
	if len(objectIDs) == 0 {
		return []domain.Store{}, nil
	}
	return r.findMany(ctx, bson.M{"_id": bson.M{"$in": objectIDs}}, options.Find())
}

// FindAll returns every store. Used by the aggregation read models,
// which recompute from scratch on each call.
func (r *StoreRepository) FindAll(ctx context.Context) ([]domain.Store, error) {
	return r.findMany(ctx, bson.M{}, options.Find())
}

// Search runs a $text query against the name+description index and
// returns up to limit stores ordered by relevance score. Scoring is the
// engine's; it is not recomputed here.
func (r *StoreRepository) Search(ctx context.Context, query string, limit int) ([]domain.Store, error) {
	filter := bson.M{"$text": bson.M{"$search": query}}
	opts := options.Find().
		SetProjection(bson.M{"score": bson.M{"$meta": "textScore"}}).
		SetSort(bson.M{"score": bson.M{"$meta": "textScore"}}).
		SetLimit(int64(limit))
	return r.findMany(ctx, filter, opts)
}

// Nearby returns stores within maxMeters of the point, nearest first,
// projected down to the card fields.
func (r *StoreRepository) Nearby(ctx context.Context, lng, lat float64, maxMeters int) ([]domain.StoreCard, error) {
	filter := bson.M{
		"location": bson.M{
			"$near": bson.M{
				"$geometry": bson.M{
					"type":        domain.GeoJSONPoint,
					"coordinates": []float64{lng, lat},
				},
				"$maxDistance": maxMeters,
			},
		},
	}
	opts := options.Find().SetProjection(bson.M{
		"slug":        1,
		"name":        1,
		"description": 1,
		"location":    1,
		"photo":       1,
	})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	cards := make([]domain.StoreCard, 0)
	for cursor.Next(ctx) {
		var doc StoreCardDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		cards = append(cards, domain.StoreCard{
			Slug:        doc.Slug,
			Name:        doc.Name,
			Description: doc.Description,
			Location:    mapLocationDocument(doc.Location),
			Photo:       doc.Photo,
		})
	}
	return cards, cursor.Err()
}

// CountSlugMatches counts stores whose slug matches the pattern,
// case-insensitively. Feeds the count-based suffix rule.
func (r *StoreRepository) CountSlugMatches(ctx context.Context, pattern string) (int64, error) {
	filter := bson.M{"slug": primitive.Regex{Pattern: pattern, Options: "i"}}
	return r.collection.CountDocuments(ctx, filter)
}

func (r *StoreRepository) findMany(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]domain.Store, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	stores := make([]domain.Store, 0)
	for cursor.Next(ctx) {
		var doc StoreDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		stores = append(stores, mapStoreDocument(doc))
	}
	return stores, cursor.Err()
}

func buildStoreDocument(store *domain.Store) (StoreDocument, error) {
	author, err := primitive.ObjectIDFromHex(strings.TrimSpace(store.AuthorID))
	if err != nil {
		return StoreDocument{}, err
	}
	return StoreDocument{
		Name:        store.Name,
		Slug:        store.Slug,
		Description: store.Description,
		Tags:        append([]string{}, store.Tags...),
		Location: LocationDocument{
			Type:        domain.GeoJSONPoint,
			Coordinates: store.Location.Coordinates,
			Address:     store.Location.Address,
		},
		Photo:     store.Photo,
		Author:    author,
		CreatedAt: store.CreatedAt,
		UpdatedAt: store.UpdatedAt,
	}, nil
}

func mapStoreDocument(doc StoreDocument) domain.Store {
	return domain.Store{
		ID:          doc.ID.Hex(),
		Name:        doc.Name,
		Slug:        doc.Slug,
		Description: doc.Description,
		Tags:        append([]string{}, doc.Tags...),
		Location:    mapLocationDocument(doc.Location),
		Photo:       doc.Photo,
		AuthorID:    doc.Author.Hex(),
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}
}

func mapLocationDocument(doc LocationDocument) domain.Location {
	return domain.Location{
		Type:        doc.Type,
		Coordinates: append([]float64{}, doc.Coordinates...),
		Address:     doc.Address,
	}
}

var _ application.StoreRepository = (*StoreRepository)(nil)

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"github.com/storeatlas/api/internal/config"
	"github.com/storeatlas/api/internal/directory/application"
	"github.com/storeatlas/api/internal/directory/domain"
	mongodoc "github.com/storeatlas/api/internal/infrastructure/mongo"
)

type storeFixture struct {
	name        string
	description string
	tags        []string
	address     string
	lng, lat    float64
}

var storeFixtures = []storeFixture{
	{"Juniper & Vine", "Seasonal small plates and an all-natural wine list.", []string{"Wine", "Family Friendly"}, "210 King St W, Toronto", -79.3892, 43.6465},
	{"The Rolling Bean", "Single-origin espresso roasted in-house every morning.", []string{"Open Late"}, "1204 Queen St E, Toronto", -79.3302, 43.6622},
	{"Café Olé", "Churros, cortados and a sunny patio.", []string{"Family Friendly", "Wifi"}, "89 Harbord St, Toronto", -79.4051, 43.6629},
	{"Smoke & Barrel", "Texas-style brisket smoked over oak for fourteen hours.", []string{"Open Late", "Licensed"}, "642 College St, Toronto", -79.4187, 43.6551},
	{"Harbour Oyster Bar", "East-coast oysters shucked to order.", []string{"Licensed", "Wine"}, "12 Queens Quay E, Toronto", -79.3747, 43.6423},
	{"Polenta House", "Northern Italian comfort food from a wood-fired kitchen.", []string{"Family Friendly"}, "388 Roncesvalles Ave, Toronto", -79.4494, 43.6497},
	{"Night Owl Ramen", "Tonkotsu broth simmered around the clock.", []string{"Open Late"}, "522 Bloor St W, Toronto", -79.4107, 43.6655},
	{"Greenhouse Salads", "Greens cut the same day from the rooftop farm.", []string{"Vegetarian", "Wifi"}, "31 Adelaide St E, Toronto", -79.3752, 43.6506},
}

var userFixtures = []struct {
	email string
	name  string
}{
	{"ada@example.com", "Ada"},
	{"grace@example.com", "Grace"},
	{"linus@example.com", "Linus"},
}

var reviewTexts = []string{
	"Came for lunch, stayed for dinner.",
	"The staff remembered our order from last time.",
	"Solid spot, would bring friends.",
	"A bit busy on weekends but worth the wait.",
	"Exactly what the neighbourhood needed.",
}

func main() {
	var (
		drop        = flag.Bool("drop", false, "drop the collections before seeding")
		reviewCount = flag.Int("reviews", 24, "number of reviews to generate")
		seed        = flag.Int64("seed", time.Now().UnixNano(), "random seed")
	)
	flag.Parse()

	cfg := config.Load()
	logger := log.New(os.Stdout, "[storeatlas-seed] ", log.LstdFlags)
	rng := rand.New(rand.NewSource(*seed))

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(cfg.MongoURI).SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		logger.Fatalf("failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Printf("error disconnecting MongoDB: %v", err)
		}
	}()

	db := client.Database(cfg.MongoDatabase)
	if *drop {
		for _, name := range []string{cfg.StoreCollection, cfg.ReviewCollection, cfg.UserCollection} {
			if err := db.Collection(name).Drop(ctx); err != nil {
				logger.Fatalf("failed to drop %s: %v", name, err)
			}
		}
		logger.Println("dropped existing collections")
	}

	if err := mongodoc.EnsureIndexes(ctx, db, cfg.StoreCollection, cfg.ReviewCollection, cfg.UserCollection); err != nil {
		logger.Fatalf("failed to create indexes: %v", err)
	}

	userRepo := mongodoc.NewUserRepository(db, cfg.UserCollection)
	storeRepo := mongodoc.NewStoreRepository(db, cfg.StoreCollection)
	storeCommands := application.NewStoreCommandService(storeRepo)

	users, err := seedUsers(ctx, userRepo)
	if err != nil {
		logger.Fatalf("failed to seed users: %v", err)
	}
	logger.Printf("seeded %d users (password: %q)", len(users), seedPassword)

	stores, err := seedStores(ctx, storeCommands, users, rng)
	if err != nil {
		logger.Fatalf("failed to seed stores: %v", err)
	}
	logger.Printf("seeded %d stores", len(stores))

	inserted, err := seedReviews(ctx, db.Collection(cfg.ReviewCollection), stores, users, *reviewCount, rng)
	if err != nil {
		logger.Fatalf("failed to seed reviews: %v", err)
	}
	logger.Printf("seeded %d reviews", inserted)
}

const seedPassword = "correct-horse"

func seedUsers(ctx context.Context, repo *mongodoc.UserRepository) ([]domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := make([]domain.User, 0, len(userFixtures))
	for _, fixture := range userFixtures {
		user := &domain.User{
			Email:        fixture.email,
			Name:         fixture.name,
			PasswordHash: string(hash),
			CreatedAt:    time.Now().UTC(),
		}
		if err := repo.Insert(ctx, user); err != nil {
			return nil, fmt.Errorf("insert user %s: %w", fixture.email, err)
		}
		users = append(users, *user)
	}
	return users, nil
}

// seedStores goes through the real command service so every fixture
// exercises validation and the slug pipeline.
func seedStores(ctx context.Context, commands application.StoreCommandService, users []domain.User, rng *rand.Rand) ([]domain.Store, error) {
	stores := make([]domain.Store, 0, len(storeFixtures))
	for _, fixture := range storeFixtures {
		author := users[rng.Intn(len(users))]
		store, err := commands.Create(ctx, application.CreateStoreCommand{
			Name:        fixture.name,
			Description: fixture.description,
			Tags:        fixture.tags,
			Location: domain.Location{
				Coordinates: []float64{fixture.lng, fixture.lat},
				Address:     fixture.address,
			},
			Photo:    uuid.NewString() + ".jpg",
			AuthorID: author.ID,
		})
		if err != nil {
			return nil, fmt.Errorf("create store %q: %w", fixture.name, err)
		}
		stores = append(stores, *store)
	}
	return stores, nil
}

// seedReviews writes raw review documents; review writes belong to the
// review collaborator, so there is no service path to reuse here.
func seedReviews(ctx context.Context, collection *mongo.Collection, stores []domain.Store, users []domain.User, count int, rng *rand.Rand) (int, error) {
	docs := make([]any, 0, count)
	for i := 0; i < count; i++ {
		store := stores[rng.Intn(len(stores))]
		author := users[rng.Intn(len(users))]
		storeID, err := primitive.ObjectIDFromHex(store.ID)
		if err != nil {
			return 0, err
		}
		authorID, err := primitive.ObjectIDFromHex(author.ID)
		if err != nil {
			return 0, err
		}
		docs = append(docs, mongodoc.ReviewDocument{
			ID:        primitive.NewObjectID(),
			StoreID:   storeID,
			Author:    authorID,
			Text:      reviewTexts[rng.Intn(len(reviewTexts))],
			Rating:    float64(1 + rng.Intn(5)),
			CreatedAt: time.Now().UTC().Add(-time.Duration(rng.Intn(720)) * time.Hour),
		})
	}
	result, err := collection.InsertMany(ctx, docs)
	if err != nil {
		return 0, err
	}
	return len(result.InsertedIDs), nil
}

package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storeatlas/api/internal/directory/domain"
)

func createCommand(name string) CreateStoreCommand {
	return CreateStoreCommand{
		Name:        name,
		Description: "a place",
		Tags:        []string{"Wifi"},
		Location: domain.Location{
			Coordinates: []float64{-79.4, 43.6},
			Address:     "some street",
		},
		AuthorID: "user-1",
	}
}

func TestStoreCommandServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns id and base slug", func(t *testing.T) {
		repo := newFakeStoreRepo()
		svc := NewStoreCommandService(repo)

		store, err := svc.Create(ctx, createCommand("Café Olé"))
		require.NoError(t, err)
		assert.NotEmpty(t, store.ID)
		assert.Equal(t, "cafe-ole", store.Slug)
		assert.Equal(t, domain.GeoJSONPoint, store.Location.Type)
		assert.False(t, store.CreatedAt.IsZero())
	})

	t.Run("same base name gets distinct slugs", func(t *testing.T) {
		repo := newFakeStoreRepo()
		svc := NewStoreCommandService(repo)

		first, err := svc.Create(ctx, createCommand("Shop"))
		require.NoError(t, err)
		second, err := svc.Create(ctx, createCommand("Shop"))
		require.NoError(t, err)
		third, err := svc.Create(ctx, createCommand("Shop"))
		require.NoError(t, err)

		assert.Equal(t, "shop", first.Slug)
		assert.Equal(t, "shop-2", second.Slug)
		assert.Equal(t, "shop-3", third.Slug)
	})

	t.Run("validation failures list every violation", func(t *testing.T) {
		repo := newFakeStoreRepo()
		svc := NewStoreCommandService(repo)

		_, err := svc.Create(ctx, CreateStoreCommand{})
		var validation *domain.ValidationError
		require.ErrorAs(t, err, &validation)
		assert.Len(t, validation.Fields, 4)
		assert.Empty(t, repo.stores)
	})

	t.Run("slug race retries once with a fresh count", func(t *testing.T) {
		repo := newFakeStoreRepo()
		repo.seed(domain.Store{Name: "Shop", Slug: "shop", AuthorID: "user-1"})
		// First count is stale (taken before the concurrent create
		// landed); the retry sees the real state.
		repo.staleCounts = []int64{0}
		svc := NewStoreCommandService(repo)

		store, err := svc.Create(ctx, createCommand("Shop"))
		require.NoError(t, err)
		assert.Equal(t, "shop-2", store.Slug)
	})

	t.Run("persistent conflict surfaces after one retry", func(t *testing.T) {
		repo := newFakeStoreRepo()
		repo.seed(domain.Store{Name: "Shop", Slug: "shop", AuthorID: "user-1"})
		repo.staleCounts = []int64{0, 0}
		svc := NewStoreCommandService(repo)

		_, err := svc.Create(ctx, createCommand("Shop"))
		var conflict *domain.ConflictError
		require.ErrorAs(t, err, &conflict)
	})
}

func TestStoreCommandServiceUpdate(t *testing.T) {
	ctx := context.Background()

	seedStore := func(repo *fakeStoreRepo) domain.Store {
		return repo.seed(domain.Store{
			Name: "Shop",
			Slug: "shop",
			Location: domain.Location{
				Type:        domain.GeoJSONPoint,
				Coordinates: []float64{-79.4, 43.6},
				Address:     "some street",
			},
			AuthorID:  "user-1",
			CreatedAt: time.Now().UTC(),
		})
	}

	t.Run("unchanged name never alters slug", func(t *testing.T) {
		repo := newFakeStoreRepo()
		existing := seedStore(repo)
		svc := NewStoreCommandService(repo)

		sameName := existing.Name
		newDesc := "fresh description"
		updated, err := svc.Update(ctx, existing.ID, "user-1", UpdateStorePatch{
			Name:        &sameName,
			Description: &newDesc,
		})
		require.NoError(t, err)
		assert.Equal(t, "shop", updated.Slug)
		assert.Equal(t, "fresh description", updated.Description)
	})

	t.Run("name change regenerates slug", func(t *testing.T) {
		repo := newFakeStoreRepo()
		existing := seedStore(repo)
		svc := NewStoreCommandService(repo)

		newName := "Café Olé"
		updated, err := svc.Update(ctx, existing.ID, "user-1", UpdateStorePatch{Name: &newName})
		require.NoError(t, err)
		assert.Equal(t, "cafe-ole", updated.Slug)
	})

	t.Run("non-owner is rejected", func(t *testing.T) {
		repo := newFakeStoreRepo()
		existing := seedStore(repo)
		svc := NewStoreCommandService(repo)

		newName := "Hijacked"
		_, err := svc.Update(ctx, existing.ID, "user-2", UpdateStorePatch{Name: &newName})
		var forbidden *domain.AuthorizationError
		require.ErrorAs(t, err, &forbidden)
	})

	t.Run("missing store is not found", func(t *testing.T) {
		repo := newFakeStoreRepo()
		svc := NewStoreCommandService(repo)

		_, err := svc.Update(ctx, "nope", "user-1", UpdateStorePatch{})
		var notFound *domain.NotFoundError
		require.ErrorAs(t, err, &notFound)
	})

	t.Run("patch cannot clear required fields", func(t *testing.T) {
		repo := newFakeStoreRepo()
		existing := seedStore(repo)
		svc := NewStoreCommandService(repo)

		empty := ""
		_, err := svc.Update(ctx, existing.ID, "user-1", UpdateStorePatch{Name: &empty})
		var validation *domain.ValidationError
		require.ErrorAs(t, err, &validation)
		assert.Contains(t, validation.Fields, "name")
	})

	t.Run("location patch is forced to a point", func(t *testing.T) {
		repo := newFakeStoreRepo()
		existing := seedStore(repo)
		svc := NewStoreCommandService(repo)

		loc := domain.Location{
			Type:        "Polygon",
			Coordinates: []float64{-80.0, 44.0},
			Address:     "new address",
		}
		updated, err := svc.Update(ctx, existing.ID, "user-1", UpdateStorePatch{Location: &loc})
		require.NoError(t, err)
		assert.Equal(t, domain.GeoJSONPoint, updated.Location.Type)
		assert.Equal(t, []float64{-80.0, 44.0}, updated.Location.Coordinates)
	})
}

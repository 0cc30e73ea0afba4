package application

import (
	"context"

	"github.com/storeatlas/api/internal/directory/domain"
)

// StoreRepository abstracts persistence for stores. Implementations
// must back slug uniqueness with a storage-level unique constraint and
// surface violations as *domain.ConflictError.
type StoreRepository interface {
	Insert(ctx context.Context, store *domain.Store) error
	Update(ctx context.Context, store *domain.Store) error
	FindByID(ctx context.Context, id string) (*domain.Store, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Store, error)
	FindPage(ctx context.Context, page, limit int) ([]domain.Store, int64, error)
	FindByTag(ctx context.Context, tag string) ([]domain.Store, error)
	FindByIDs(ctx context.Context, ids []string) ([]domain.Store, error)
	FindAll(ctx context.Context) ([]domain.Store, error)
	Search(ctx context.Context, query string, limit int) ([]domain.Store, error)
	Nearby(ctx context.Context, lng, lat float64, maxMeters int) ([]domain.StoreCard, error)
	CountSlugMatches(ctx context.Context, pattern string) (int64, error)
}

// ReviewRepository gives read access to the review collaborator's
// records. The directory never writes through it.
type ReviewRepository interface {
	FindByStoreID(ctx context.Context, storeID string) ([]domain.Review, error)
	FindAll(ctx context.Context) ([]domain.Review, error)
}

// UserRepository abstracts account persistence.
type UserRepository interface {
	Insert(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	ToggleHeart(ctx context.Context, userID, storeID string, add bool) (*domain.User, error)
}

// CreateStoreCommand carries the validated-at-the-edge input of a
// store creation.
type CreateStoreCommand struct {
	Name        string
	Description string
	Tags        []string
	Location    domain.Location
	Photo       string
	AuthorID    string
}

// UpdateStorePatch applies partial changes to an existing store. Nil
// fields leave the current value untouched.
type UpdateStorePatch struct {
	Name        *string
	Description *string
	Tags        []string
	Location    *domain.Location
	Photo       *string
}

// StorePage is one page of the paginated listing.
type StorePage struct {
	Stores []domain.Store
	Page   int
	Pages  int
	Total  int64
	// OutOfRange is set when the requested page yielded nothing past
	// the first page; callers redirect to the last valid page.
	OutOfRange bool
}

// StoreDetail is a store joined with its reviews and author.
type StoreDetail struct {
	Store   domain.Store
	Author  *domain.User
	Reviews []domain.Review
}

// TagListing pairs the tag histogram with the stores matching one tag.
type TagListing struct {
	Tag    string
	Tags   []domain.TagCount
	Stores []domain.Store
}

// StoreCommandService handles store writes.
type StoreCommandService interface {
	Create(ctx context.Context, cmd CreateStoreCommand) (*domain.Store, error)
	Update(ctx context.Context, id, actorID string, patch UpdateStorePatch) (*domain.Store, error)
}

// StoreQueryService handles store reads.
type StoreQueryService interface {
	ListPage(ctx context.Context, page int) (*StorePage, error)
	GetBySlug(ctx context.Context, slug string) (*StoreDetail, error)
	ByTag(ctx context.Context, tag string) (*TagListing, error)
	Search(ctx context.Context, query string) ([]domain.Store, error)
	Nearby(ctx context.Context, lng, lat float64) ([]domain.StoreCard, error)
}

// RankingService exposes the derived rankings.
type RankingService interface {
	TopStores(ctx context.Context) ([]domain.RankedStore, error)
	TagFrequency(ctx context.Context) ([]domain.TagCount, error)
}

// RegisterCommand carries a new account registration.
type RegisterCommand struct {
	Email    string
	Name     string
	Password string
}

// AccountService handles registration, login and hearts.
type AccountService interface {
	Register(ctx context.Context, cmd RegisterCommand) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, error)
	ToggleHeart(ctx context.Context, userID, storeID string) (*domain.User, error)
	HeartedStores(ctx context.Context, userID string) ([]domain.Store, error)
}

package application

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/storeatlas/api/internal/directory/domain"
)

const (
	// listPageSize is the fixed page length of the store listing.
	listPageSize = 4
	// searchLimit caps text search results.
	searchLimit = 5
	// nearbyMaxMeters is the proximity search radius.
	nearbyMaxMeters = 10000
)

// storeQueryService implements StoreQueryService.
type storeQueryService struct {
	stores  StoreRepository
	reviews ReviewRepository
	users   UserRepository
}

// NewStoreQueryService creates the read-side store service.
func NewStoreQueryService(stores StoreRepository, reviews ReviewRepository, users UserRepository) StoreQueryService {
	return &storeQueryService{stores: stores, reviews: reviews, users: users}
}

func (s *storeQueryService) ListPage(ctx context.Context, page int) (*StorePage, error) {
	if page < 1 {
		page = 1
	}
	stores, total, err := s.stores.FindPage(ctx, page, listPageSize)
	if err != nil {
		return nil, err
	}
	pages := int(math.Ceil(float64(total) / float64(listPageSize)))
	skip := page*listPageSize - listPageSize
	return &StorePage{
		Stores:     stores,
		Page:       page,
		Pages:      pages,
		Total:      total,
		OutOfRange: len(stores) == 0 && skip > 0,
	}, nil
}

// GetBySlug loads a store and joins its author and reviews explicitly.
// The review relation is computed by lookup, never stored on the store.
func (s *storeQueryService) GetBySlug(ctx context.Context, slug string) (*StoreDetail, error) {
	store, err := s.stores.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	detail := &StoreDetail{Store: *store}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		reviews, err := s.reviews.FindByStoreID(gctx, store.ID)
		if err != nil {
			return err
		}
		detail.Reviews = reviews
		return nil
	})
	g.Go(func() error {
		author, err := s.users.FindByID(gctx, store.AuthorID)
		if err != nil {
			// The author reference was validated at creation; a missing
			// account here should not hide the store itself.
			return nil
		}
		detail.Author = author
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return detail, nil
}

func (s *storeQueryService) ByTag(ctx context.Context, tag string) (*TagListing, error) {
	listing := &TagListing{Tag: tag}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		stores, err := s.stores.FindByTag(gctx, tag)
		if err != nil {
			return err
		}
		listing.Stores = stores
		return nil
	})
	g.Go(func() error {
		all, err := s.stores.FindAll(gctx)
		if err != nil {
			return err
		}
		listing.Tags = domain.TagFrequency(all)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return listing, nil
}

func (s *storeQueryService) Search(ctx context.Context, query string) ([]domain.Store, error) {
	return s.stores.Search(ctx, query, searchLimit)
}

func (s *storeQueryService) Nearby(ctx context.Context, lng, lat float64) ([]domain.StoreCard, error) {
	return s.stores.Nearby(ctx, lng, lat, nearbyMaxMeters)
}

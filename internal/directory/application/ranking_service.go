package application

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/storeatlas/api/internal/directory/domain"
)

// rankingService implements RankingService. Both rankings are
// recomputed on every call; nothing is cached or maintained
// incrementally.
type rankingService struct {
	stores  StoreRepository
	reviews ReviewRepository
}

// NewRankingService creates the ranking read model.
func NewRankingService(stores StoreRepository, reviews ReviewRepository) RankingService {
	return &rankingService{stores: stores, reviews: reviews}
}

func (s *rankingService) TopStores(ctx context.Context) ([]domain.RankedStore, error) {
	var (
		stores  []domain.Store
		reviews []domain.Review
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stores, err = s.stores.FindAll(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		reviews, err = s.reviews.FindAll(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return domain.TopStores(stores, reviews), nil
}

func (s *rankingService) TagFrequency(ctx context.Context) ([]domain.TagCount, error) {
	stores, err := s.stores.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return domain.TagFrequency(stores), nil
}

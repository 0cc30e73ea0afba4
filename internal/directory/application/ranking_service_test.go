package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storeatlas/api/internal/directory/domain"
)

func TestRankingServiceTopStores(t *testing.T) {
	ctx := context.Background()
	storeRepo := newFakeStoreRepo()
	a := storeRepo.seed(domain.Store{Name: "A", Slug: "a"})
	b := storeRepo.seed(domain.Store{Name: "B", Slug: "b"})
	reviews := &fakeReviewRepo{reviews: []domain.Review{
		{StoreID: a.ID, Rating: 5},
		{StoreID: a.ID, Rating: 3},
		{StoreID: b.ID, Rating: 4},
	}}
	svc := NewRankingService(storeRepo, reviews)

	ranked, err := svc.TopStores(ctx)
	require.NoError(t, err)
	require.Len(t, ranked, 1)
	assert.Equal(t, a.ID, ranked[0].Store.ID)
	assert.Equal(t, 4.0, ranked[0].AverageRating)
}

func TestRankingServiceTagFrequency(t *testing.T) {
	ctx := context.Background()
	storeRepo := newFakeStoreRepo()
	storeRepo.seed(domain.Store{Name: "A", Slug: "a", Tags: []string{"a", "b"}})
	storeRepo.seed(domain.Store{Name: "B", Slug: "b", Tags: []string{"a"}})
	svc := NewRankingService(storeRepo, &fakeReviewRepo{})

	counts, err := svc.TagFrequency(ctx)
	require.NoError(t, err)
	require.Len(t, counts, 2)
	assert.Equal(t, domain.TagCount{Tag: "a", Count: 2}, counts[0])
	assert.Equal(t, domain.TagCount{Tag: "b", Count: 1}, counts[1])
}

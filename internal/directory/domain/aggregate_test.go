package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reviewsFor(storeID string, ratings ...float64) []Review {
	reviews := make([]Review, 0, len(ratings))
	for _, r := range ratings {
		reviews = append(reviews, Review{StoreID: storeID, Rating: r})
	}
	return reviews
}

func TestTopStores(t *testing.T) {
	t.Run("requires at least two reviews", func(t *testing.T) {
		stores := []Store{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}}
		reviews := append(reviewsFor("a", 5, 3), reviewsFor("b", 4)...)

		ranked := TopStores(stores, reviews)
		require.Len(t, ranked, 1)
		assert.Equal(t, "a", ranked[0].Store.ID)
		assert.Equal(t, 2, ranked[0].ReviewCount)
		assert.Equal(t, 4.0, ranked[0].AverageRating)
	})

	t.Run("sorts by average descending", func(t *testing.T) {
		stores := []Store{{ID: "low"}, {ID: "high"}, {ID: "mid"}}
		reviews := append(reviewsFor("low", 1, 2), reviewsFor("high", 5, 5)...)
		reviews = append(reviews, reviewsFor("mid", 3, 4)...)

		ranked := TopStores(stores, reviews)
		require.Len(t, ranked, 3)
		assert.Equal(t, "high", ranked[0].Store.ID)
		assert.Equal(t, "mid", ranked[1].Store.ID)
		assert.Equal(t, "low", ranked[2].Store.ID)
	})

	t.Run("ties keep input order", func(t *testing.T) {
		stores := []Store{{ID: "first"}, {ID: "second"}}
		reviews := append(reviewsFor("first", 4, 4), reviewsFor("second", 3, 5)...)

		ranked := TopStores(stores, reviews)
		require.Len(t, ranked, 2)
		assert.Equal(t, "first", ranked[0].Store.ID)
		assert.Equal(t, "second", ranked[1].Store.ID)
	})

	t.Run("caps at ten results", func(t *testing.T) {
		var stores []Store
		var reviews []Review
		for i := 0; i < 14; i++ {
			id := fmt.Sprintf("s%d", i)
			stores = append(stores, Store{ID: id})
			reviews = append(reviews, reviewsFor(id, 3, 4)...)
		}

		ranked := TopStores(stores, reviews)
		assert.Len(t, ranked, 10)
	})

	t.Run("no qualifying stores", func(t *testing.T) {
		stores := []Store{{ID: "a"}}
		assert.Empty(t, TopStores(stores, reviewsFor("a", 5)))
	})
}

func TestTagFrequency(t *testing.T) {
	t.Run("counts flattened occurrences", func(t *testing.T) {
		stores := []Store{
			{Tags: []string{"a", "b"}},
			{Tags: []string{"a"}},
		}
		counts := TagFrequency(stores)
		require.Len(t, counts, 2)
		assert.Equal(t, TagCount{Tag: "a", Count: 2}, counts[0])
		assert.Equal(t, TagCount{Tag: "b", Count: 1}, counts[1])
	})

	t.Run("ties keep first-encountered order", func(t *testing.T) {
		stores := []Store{
			{Tags: []string{"wifi", "vegan"}},
			{Tags: []string{"vegan", "wifi", "patio"}},
		}
		counts := TagFrequency(stores)
		require.Len(t, counts, 3)
		assert.Equal(t, "wifi", counts[0].Tag)
		assert.Equal(t, "vegan", counts[1].Tag)
		assert.Equal(t, "patio", counts[2].Tag)
	})

	t.Run("duplicate tags within one store each count", func(t *testing.T) {
		stores := []Store{{Tags: []string{"wifi", "wifi"}}}
		counts := TagFrequency(stores)
		require.Len(t, counts, 1)
		assert.Equal(t, 2, counts[0].Count)
	})

	t.Run("no stores", func(t *testing.T) {
		assert.Empty(t, TagFrequency(nil))
	})
}

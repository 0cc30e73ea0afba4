package domain

import "sort"

const (
	// topStoresLimit caps the ranking length.
	topStoresLimit = 10
	// minReviewsForRanking excludes stores with a single review.
	minReviewsForRanking = 2
)

// RankedStore pairs a store with its computed review statistics.
type RankedStore struct {
	Store         Store
	ReviewCount   int
	AverageRating float64
}

// TagCount is one row of the tag popularity histogram.
type TagCount struct {
	Tag   string
	Count int
}

// TopStores joins reviews onto stores by store id, keeps stores with at
// least two reviews, computes the mean rating, and returns at most ten
// results sorted by average rating descending. Ties keep input order.
func TopStores(stores []Store, reviews []Review) []RankedStore {
	ratings := make(map[string][]float64, len(stores))
	for _, review := range reviews {
		ratings[review.StoreID] = append(ratings[review.StoreID], review.Rating)
	}

	ranked := make([]RankedStore, 0, len(stores))
	for _, store := range stores {
		rs := ratings[store.ID]
		if len(rs) < minReviewsForRanking {
			continue
		}
		sum := 0.0
		for _, r := range rs {
			sum += r
		}
		ranked = append(ranked, RankedStore{
			Store:         store,
			ReviewCount:   len(rs),
			AverageRating: sum / float64(len(rs)),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].AverageRating > ranked[j].AverageRating
	})
	if len(ranked) > topStoresLimit {
		ranked = ranked[:topStoresLimit]
	}
	return ranked
}

// TagFrequency flattens every store's tag list into individual
// occurrences, counts them per tag, and returns the full histogram
// sorted by count descending. Ties keep first-encountered order.
func TagFrequency(stores []Store) []TagCount {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, store := range stores {
		for _, tag := range store.Tags {
			if _, seen := counts[tag]; !seen {
				order = append(order, tag)
			}
			counts[tag]++
		}
	}

	result := make([]TagCount, 0, len(order))
	for _, tag := range order {
		result = append(result, TagCount{Tag: tag, Count: counts[tag]})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Count > result[j].Count
	})
	return result
}

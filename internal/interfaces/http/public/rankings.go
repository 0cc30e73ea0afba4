package public

import (
	"context"
	"net/http"

	"github.com/storeatlas/api/internal/interfaces/http/common"
)

func (h *Handler) topStoresHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()

		ranked, err := h.rankings.TopStores(ctx)
		if err != nil {
			writeDomainError(h.logger, w, err)
			return
		}

		items := make([]rankedStoreResponse, 0, len(ranked))
		for _, rs := range ranked {
			items = append(items, rankedStoreResponse{
				storeResponse: buildStoreResponse(rs.Store),
				ReviewCount:   rs.ReviewCount,
				AverageRating: rs.AverageRating,
			})
		}
		common.WriteJSON(h.logger, w, http.StatusOK, items)
	}
}

package public

import (
	"context"
	"net/http"
	"strings"

	"github.com/storeatlas/api/internal/interfaces/http/common"
)

func (h *Handler) searchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()

		query := strings.TrimSpace(r.URL.Query().Get("q"))
		if query == "" {
			common.WriteError(h.logger, w, http.StatusBadRequest, "missing search query")
			return
		}

		stores, err := h.storeQueries.Search(ctx, query)
		if err != nil {
			writeDomainError(h.logger, w, err)
			return
		}

		items := make([]storeResponse, 0, len(stores))
		for _, store := range stores {
			items = append(items, buildStoreResponse(store))
		}
		common.WriteJSON(h.logger, w, http.StatusOK, items)
	}
}

func (h *Handler) nearbyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()

		query := r.URL.Query()
		lng, okLng := common.ParseFloat(query.Get("lng"))
		lat, okLat := common.ParseFloat(query.Get("lat"))
		if !okLng || !okLat {
			common.WriteError(h.logger, w, http.StatusBadRequest, "lng and lat are required")
			return
		}

		cards, err := h.storeQueries.Nearby(ctx, lng, lat)
		if err != nil {
			writeDomainError(h.logger, w, err)
			return
		}

		items := make([]storeCardResponse, 0, len(cards))
		for _, card := range cards {
			items = append(items, buildStoreCardResponse(card))
		}
		common.WriteJSON(h.logger, w, http.StatusOK, items)
	}
}

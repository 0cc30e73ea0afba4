package public

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/storeatlas/api/internal/directory/application"
	"github.com/storeatlas/api/internal/interfaces/http/common"
)

const requestTimeout = 5 * time.Second

func (h *Handler) storeListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()

		page, _ := common.ParsePositiveInt(r.URL.Query().Get("page"), 1)
		result, err := h.storeQueries.ListPage(ctx, page)
		if err != nil {
			writeDomainError(h.logger, w, err)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, buildStoreListResponse(result))
	}
}

func (h *Handler) storeBySlugHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()

		slug := strings.TrimSpace(chi.URLParam(r, "slug"))
		if slug == "" {
			common.WriteError(h.logger, w, http.StatusBadRequest, "missing store slug")
			return
		}

		detail, err := h.storeQueries.GetBySlug(ctx, slug)
		if err != nil {
			writeDomainError(h.logger, w, err)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, buildStoreDetailResponse(detail))
	}
}

func (h *Handler) storeCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()

		user, ok := common.UserFromContext(ctx)
		if !ok {
			common.WriteError(h.logger, w, http.StatusUnauthorized, "authentication required")
			return
		}

		var req storeCreateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.WriteError(h.logger, w, http.StatusBadRequest, "malformed request body")
			return
		}

		store, err := h.storeCommands.Create(ctx, application.CreateStoreCommand{
			Name:        req.Name,
			Description: req.Description,
			Tags:        req.Tags,
			Location:    toLocation(req.Location),
			Photo:       req.Photo,
			AuthorID:    user.ID,
		})
		if err != nil {
			writeDomainError(h.logger, w, err)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusCreated, buildStoreResponse(*store))
	}
}

func (h *Handler) storeUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()

		user, ok := common.UserFromContext(ctx)
		if !ok {
			common.WriteError(h.logger, w, http.StatusUnauthorized, "authentication required")
			return
		}

		id := strings.TrimSpace(chi.URLParam(r, "id"))
		if id == "" {
			common.WriteError(h.logger, w, http.StatusBadRequest, "missing store id")
			return
		}

		var req storeUpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.WriteError(h.logger, w, http.StatusBadRequest, "malformed request body")
			return
		}

		patch := application.UpdateStorePatch{
			Name:        req.Name,
			Description: req.Description,
			Tags:        req.Tags,
			Photo:       req.Photo,
		}
		if req.Location != nil {
			loc := toLocation(*req.Location)
			patch.Location = &loc
		}

		store, err := h.storeCommands.Update(ctx, id, user.ID, patch)
		if err != nil {
			writeDomainError(h.logger, w, err)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, buildStoreResponse(*store))
	}
}

func (h *Handler) tagListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()

		tag := strings.TrimSpace(chi.URLParam(r, "tag"))
		listing, err := h.storeQueries.ByTag(ctx, tag)
		if err != nil {
			writeDomainError(h.logger, w, err)
			return
		}

		tags := make([]tagCountResponse, 0, len(listing.Tags))
		for _, tc := range listing.Tags {
			tags = append(tags, tagCountResponse{Tag: tc.Tag, Count: tc.Count})
		}
		stores := make([]storeResponse, 0, len(listing.Stores))
		for _, store := range listing.Stores {
			stores = append(stores, buildStoreResponse(store))
		}
		common.WriteJSON(h.logger, w, http.StatusOK, tagListingResponse{
			Tag:    listing.Tag,
			Tags:   tags,
			Stores: stores,
		})
	}
}

package public

import (
	"time"

	"github.com/storeatlas/api/internal/directory/application"
	"github.com/storeatlas/api/internal/directory/domain"
)

type locationRequest struct {
	Address     string    `json:"address"`
	Coordinates []float64 `json:"coordinates"`
}

type storeCreateRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Tags        []string        `json:"tags"`
	Location    locationRequest `json:"location"`
	Photo       string          `json:"photo"`
}

type storeUpdateRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Tags        []string         `json:"tags"`
	Location    *locationRequest `json:"location"`
	Photo       *string          `json:"photo"`
}

type locationResponse struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
	Address     string    `json:"address"`
}

type storeResponse struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Slug        string           `json:"slug"`
	Description string           `json:"description,omitempty"`
	Tags        []string         `json:"tags,omitempty"`
	Location    locationResponse `json:"location"`
	Photo       string           `json:"photo,omitempty"`
	Author      string           `json:"author"`
	CreatedAt   time.Time        `json:"createdAt"`
}

type storeCardResponse struct {
	Slug        string           `json:"slug"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Location    locationResponse `json:"location"`
	Photo       string           `json:"photo,omitempty"`
}

type storeListResponse struct {
	Items []storeResponse `json:"items"`
	Page  int             `json:"page"`
	Pages int             `json:"pages"`
	Total int64           `json:"total"`
	// RedirectPage points at the last valid page when the requested one
	// is past the end; clients are expected to follow it.
	RedirectPage int `json:"redirectPage,omitempty"`
}

type reviewResponse struct {
	ID        string    `json:"id"`
	Author    string    `json:"author,omitempty"`
	Text      string    `json:"text,omitempty"`
	Rating    float64   `json:"rating"`
	CreatedAt time.Time `json:"createdAt"`
}

type storeDetailResponse struct {
	storeResponse
	AuthorName string           `json:"authorName,omitempty"`
	Reviews    []reviewResponse `json:"reviews"`
}

type rankedStoreResponse struct {
	storeResponse
	ReviewCount   int     `json:"reviewCount"`
	AverageRating float64 `json:"averageRating"`
}

type tagCountResponse struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

type tagListingResponse struct {
	Tag    string             `json:"tag,omitempty"`
	Tags   []tagCountResponse `json:"tags"`
	Stores []storeResponse    `json:"stores"`
}

type registerRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID     string   `json:"id"`
	Email  string   `json:"email"`
	Name   string   `json:"name"`
	Hearts []string `json:"hearts"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

func buildLocationResponse(loc domain.Location) locationResponse {
	return locationResponse{
		Type:        loc.Type,
		Coordinates: loc.Coordinates,
		Address:     loc.Address,
	}
}

func buildStoreResponse(store domain.Store) storeResponse {
	return storeResponse{
		ID:          store.ID,
		Name:        store.Name,
		Slug:        store.Slug,
		Description: store.Description,
		Tags:        store.Tags,
		Location:    buildLocationResponse(store.Location),
		Photo:       store.Photo,
		Author:      store.AuthorID,
		CreatedAt:   store.CreatedAt,
	}
}

func buildStoreListResponse(page *application.StorePage) storeListResponse {
	items := make([]storeResponse, 0, len(page.Stores))
	for _, store := range page.Stores {
		items = append(items, buildStoreResponse(store))
	}
	resp := storeListResponse{
		Items: items,
		Page:  page.Page,
		Pages: page.Pages,
		Total: page.Total,
	}
	if page.OutOfRange {
		resp.RedirectPage = page.Pages
	}
	return resp
}

func buildStoreDetailResponse(detail *application.StoreDetail) storeDetailResponse {
	reviews := make([]reviewResponse, 0, len(detail.Reviews))
	for _, review := range detail.Reviews {
		reviews = append(reviews, reviewResponse{
			ID:        review.ID,
			Author:    review.AuthorID,
			Text:      review.Text,
			Rating:    review.Rating,
			CreatedAt: review.CreatedAt,
		})
	}
	resp := storeDetailResponse{
		storeResponse: buildStoreResponse(detail.Store),
		Reviews:       reviews,
	}
	if detail.Author != nil {
		resp.AuthorName = detail.Author.Name
	}
	return resp
}

func buildStoreCardResponse(card domain.StoreCard) storeCardResponse {
	return storeCardResponse{
		Slug:        card.Slug,
		Name:        card.Name,
		Description: card.Description,
		Location:    buildLocationResponse(card.Location),
		Photo:       card.Photo,
	}
}

func buildUserResponse(user domain.User) userResponse {
	hearts := user.Hearts
	if hearts == nil {
		hearts = []string{}
	}
	return userResponse{
		ID:     user.ID,
		Email:  user.Email,
		Name:   user.Name,
		Hearts: hearts,
	}
}

func toLocation(req locationRequest) domain.Location {
	return domain.Location{
		Type:        domain.GeoJSONPoint,
		Coordinates: req.Coordinates,
		Address:     req.Address,
	}
}

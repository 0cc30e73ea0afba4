package public

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/storeatlas/api/internal/directory/application"
)

// Handler wires public HTTP endpoints to application services.
type Handler struct {
	logger        *log.Logger
	storeCommands application.StoreCommandService
	storeQueries  application.StoreQueryService
	rankings      application.RankingService
	accounts      application.AccountService
	jwtSecret     []byte
	jwtIssuer     string
	jwtAudience   string
	tokenTTL      time.Duration
}

// Config defines dependencies required by Handler.
type Config struct {
	Logger        *log.Logger
	StoreCommands application.StoreCommandService
	StoreQueries  application.StoreQueryService
	Rankings      application.RankingService
	Accounts      application.AccountService
	JWTSecret     []byte
	JWTIssuer     string
	JWTAudience   string
	TokenTTL      time.Duration
}

// NewHandler constructs a public HTTP handler set.
func NewHandler(cfg Config) *Handler {
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Handler{
		logger:        cfg.Logger,
		storeCommands: cfg.StoreCommands,
		storeQueries:  cfg.StoreQueries,
		rankings:      cfg.Rankings,
		accounts:      cfg.Accounts,
		jwtSecret:     cfg.JWTSecret,
		jwtIssuer:     cfg.JWTIssuer,
		jwtAudience:   cfg.JWTAudience,
		tokenTTL:      ttl,
	}
}

// Register mounts all public routes onto the router.
func (h *Handler) Register(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Get("/stores", h.storeListHandler())
	r.Get("/stores/near", h.nearbyHandler())
	r.Get("/stores/{slug}", h.storeBySlugHandler())
	r.Get("/tags", h.tagListHandler())
	r.Get("/tags/{tag}", h.tagListHandler())
	r.Get("/search", h.searchHandler())
	r.Get("/top", h.topStoresHandler())

	r.Post("/register", h.registerHandler())
	r.Post("/login", h.loginHandler())

	r.With(authMiddleware).Post("/stores", h.storeCreateHandler())
	r.With(authMiddleware).Patch("/stores/{id}", h.storeUpdateHandler())
	r.With(authMiddleware).Post("/stores/{id}/heart", h.heartToggleHandler())
	r.With(authMiddleware).Get("/hearts", h.heartedStoresHandler())
}

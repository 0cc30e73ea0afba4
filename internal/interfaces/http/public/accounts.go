package public

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/storeatlas/api/internal/directory/application"
	"github.com/storeatlas/api/internal/directory/domain"
	"github.com/storeatlas/api/internal/interfaces/http/common"
)

func (h *Handler) registerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()

		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.WriteError(h.logger, w, http.StatusBadRequest, "malformed request body")
			return
		}

		user, err := h.accounts.Register(ctx, application.RegisterCommand{
			Email:    req.Email,
			Name:     req.Name,
			Password: req.Password,
		})
		if err != nil {
			writeDomainError(h.logger, w, err)
			return
		}

		token, err := h.issueToken(user)
		if err != nil {
			writeDomainError(h.logger, w, err)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusCreated, authResponse{
			Token: token,
			User:  buildUserResponse(*user),
		})
	}
}

func (h *Handler) loginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()

		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.WriteError(h.logger, w, http.StatusBadRequest, "malformed request body")
			return
		}

		user, err := h.accounts.Login(ctx, req.Email, req.Password)
		if err != nil {
			if errors.Is(err, application.ErrInvalidCredentials) {
				common.WriteError(h.logger, w, http.StatusUnauthorized, err.Error())
				return
			}
			writeDomainError(h.logger, w, err)
			return
		}

		token, err := h.issueToken(user)
		if err != nil {
			writeDomainError(h.logger, w, err)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, authResponse{
			Token: token,
			User:  buildUserResponse(*user),
		})
	}
}

// issueToken signs an HS256 token carrying the account identity. The
// server-side middleware validates issuer and audience on the way back
// in.
func (h *Handler) issueToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"name":  user.Name,
		"email": user.Email,
		"iss":   h.jwtIssuer,
		"aud":   h.jwtAudience,
		"iat":   now.Unix(),
		"exp":   now.Add(h.tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(h.jwtSecret)
}

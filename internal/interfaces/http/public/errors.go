package public

import (
	"errors"
	"log"
	"net/http"

	"github.com/storeatlas/api/internal/directory/domain"
	"github.com/storeatlas/api/internal/interfaces/http/common"
)

// writeDomainError maps the domain error taxonomy onto HTTP statuses.
// Validation details travel to the client; anything unrecognised is a
// logged 500.
func writeDomainError(logger *log.Logger, w http.ResponseWriter, err error) {
	var validation *domain.ValidationError
	if errors.As(err, &validation) {
		common.WriteJSON(logger, w, http.StatusUnprocessableEntity, map[string]any{
			"error":  "validation failed",
			"fields": validation.Fields,
		})
		return
	}

	var notFound *domain.NotFoundError
	if errors.As(err, &notFound) {
		common.WriteError(logger, w, http.StatusNotFound, notFound.Error())
		return
	}

	var conflict *domain.ConflictError
	if errors.As(err, &conflict) {
		common.WriteError(logger, w, http.StatusConflict, conflict.Error())
		return
	}

	var forbidden *domain.AuthorizationError
	if errors.As(err, &forbidden) {
		common.WriteError(logger, w, http.StatusForbidden, forbidden.Error())
		return
	}

	if logger != nil {
		logger.Printf("request failed: %v", err)
	}
	common.WriteError(logger, w, http.StatusInternalServerError, "internal error")
}

package handlers

import (
	"errors"

	"github.com/RMahshie/rfdesk/internal/repository"
	"github.com/RMahshie/rfdesk/pkg/rf"
	"github.com/RMahshie/rfdesk/pkg/touchstone"
	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// CalculatorMetrics receives rejected calculator inputs. *observability.Collector implements it.
type CalculatorMetrics interface {
	CalculatorError(calculator string, err error)
}

// TouchstoneMetrics receives parsed documents. *observability.Collector implements it.
type TouchstoneMetrics interface {
	TouchstoneParsed(source string, doc *touchstone.Document)
}

// domainError maps an rf error onto a 422, anything else onto a 400
func domainError(err error) error {
	if errors.Is(err, rf.ErrOutOfDomain) {
		return huma.Error422UnprocessableEntity(err.Error())
	}
	return huma.Error400BadRequest("Invalid calculator input", err)
}

// storeError maps repository errors onto HTTP errors
func storeError(err error, what string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return huma.Error404NotFound(what + " not found")
	case errors.Is(err, repository.ErrConflict):
		return huma.Error409Conflict(what+" already exists", err)
	}
	log.Error().Err(err).Str("entity", what).Msg("Repository operation failed")
	return huma.Error500InternalServerError("Failed to access " + what)
}

func parseID(raw, what string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, huma.Error400BadRequest("Invalid "+what+" ID", err)
	}
	return id, nil
}

package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/jwebster45206/rpg-engine/pkg/actor"
	"github.com/jwebster45206/rpg-engine/pkg/quest"
	"github.com/jwebster45206/rpg-engine/pkg/storage"
	"github.com/jwebster45206/rpg-engine/pkg/world"
)

// errInvalidInput marks a well-formed request with unusable arguments.
var errInvalidInput = errors.New("invalid input")

type ErrorResponse struct {
	Error string `json:"error"`
}

// statusFor maps a domain error to its HTTP status. Anything unrecognized
// is an infrastructure failure.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, storage.ErrNotFound),
		errors.Is(err, actor.ErrItemNotInInventory):
		return http.StatusNotFound
	case errors.Is(err, world.ErrNoEnemiesAvailable),
		errors.Is(err, world.ErrNoItemsAvailable),
		errors.Is(err, world.ErrEncounterActive),
		errors.Is(err, world.ErrNoEncounter),
		errors.Is(err, world.ErrPlayerDefeated),
		errors.Is(err, quest.ErrNoQuestsPending):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, logger *slog.Logger, status int, msg string) {
	writeJSON(w, logger, status, ErrorResponse{Error: msg})
}

// writeDomainError reports err with the status statusFor assigns. Internal
// errors are logged and hidden from the client.
func writeDomainError(w http.ResponseWriter, logger *slog.Logger, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error("Request failed", "error", err)
		writeError(w, logger, status, "Internal server error")
		return
	}
	logger.Debug("Request refused", "error", err, "status", status)
	writeError(w, logger, status, err.Error())
}

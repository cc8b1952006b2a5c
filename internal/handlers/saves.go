package handlers

import (
	"log/slog"
	"net/http"

	"github.com/jwebster45206/rpg-engine/pkg/storage"
)

type SavesResponse struct {
	Saves []storage.Save `json:"saves"`
}

// SavesHandler lists saved players, newest first.
type SavesHandler struct {
	storage storage.PlayerStore
	logger  *slog.Logger
}

func NewSavesHandler(storage storage.PlayerStore, logger *slog.Logger) *SavesHandler {
	return &SavesHandler{storage: storage, logger: logger}
}

func (h *SavesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method != http.MethodGet {
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: GET")
		return
	}

	saves, err := h.storage.ListSaves(r.Context())
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	if saves == nil {
		saves = []storage.Save{}
	}
	writeJSON(w, h.logger, http.StatusOK, SavesResponse{Saves: saves})
}

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/jwebster45206/rpg-engine/pkg/storage"
)

// HealthTimeout bounds the backend checks of one health request.
const HealthTimeout = 2 * time.Second

type HealthResponse struct {
	Status     string            `json:"status"`
	Timestamp  time.Time         `json:"timestamp"`
	Service    string            `json:"service"`
	Components map[string]string `json:"components"`
}

// ComponentPinger is implemented by stores that span several backends and
// can check each one separately.
type ComponentPinger interface {
	PingComponents(ctx context.Context) map[string]error
}

// HealthHandler reports whether the save database and session cache answer.
type HealthHandler struct {
	storage storage.Storage
	logger  *slog.Logger
}

func NewHealthHandler(storage storage.Storage, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		storage: storage,
		logger:  logger,
	}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), HealthTimeout)
	defer cancel()

	resp := HealthResponse{
		Status:     "healthy",
		Timestamp:  time.Now(),
		Service:    "rpg-engine",
		Components: make(map[string]string),
	}
	for name, err := range h.check(ctx) {
		if err != nil {
			h.logger.Warn("Health check failed", "component", name, "error", err)
			resp.Components[name] = "unhealthy"
			resp.Status = "degraded"
			continue
		}
		resp.Components[name] = "healthy"
	}

	status := http.StatusOK
	if resp.Status != "healthy" {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, h.logger, status, resp)
}

func (h *HealthHandler) check(ctx context.Context) map[string]error {
	if cp, ok := h.storage.(ComponentPinger); ok {
		return cp.PingComponents(ctx)
	}
	return map[string]error{"storage": h.storage.Ping(ctx)}
}

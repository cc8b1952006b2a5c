package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jwebster45206/rpg-engine/internal/logger"
	"github.com/jwebster45206/rpg-engine/pkg/actor"
	"github.com/jwebster45206/rpg-engine/pkg/dice"
	"github.com/jwebster45206/rpg-engine/pkg/state"
	"github.com/jwebster45206/rpg-engine/pkg/storage"
	"github.com/jwebster45206/rpg-engine/pkg/world"
)

// HistoryWindow is how many log lines a game response carries.
const HistoryWindow = 20

// GameRequest is the body of create, load and use-item requests.
type GameRequest struct {
	Name string `json:"name,omitempty"`
	Item string `json:"item,omitempty"`
}

// GameResponse is the client's view of a session.
type GameResponse struct {
	ID           uuid.UUID     `json:"id"`
	Player       *actor.Player `json:"player"`
	CurrentEnemy *actor.Enemy  `json:"current_enemy,omitempty"`
	EnemiesLeft  int           `json:"enemies_left"`
	ItemsLeft    int           `json:"items_left"`
	GameOver     bool          `json:"game_over"`
	History      []string      `json:"history"`
}

// ActionResponse carries the log lines an action produced, its typed result
// and the session after the action.
type ActionResponse struct {
	Log    []string     `json:"log"`
	Result any          `json:"result,omitempty"`
	Game   GameResponse `json:"game"`
}

// MapResponse is a map view with its rendered rows.
type MapResponse struct {
	world.MapView
	Rows []string `json:"rows"`
}

// SaveResponse reports a durable save.
type SaveResponse struct {
	SaveID int64 `json:"save_id"`
}

// EventPublisher announces session changes to live subscribers.
type EventPublisher interface {
	PublishGameCreated(ctx context.Context, gameID uuid.UUID, player string, level int) error
	PublishAction(ctx context.Context, gameID uuid.UUID, action string, log []string) error
	PublishGameOver(ctx context.Context, gameID uuid.UUID, player string) error
	PublishPlayerSaved(ctx context.Context, gameID uuid.UUID, saveID int64) error
}

// action runs one command against a session. It returns the lines to log
// and the typed result.
type action func(r *http.Request, gs *state.GameState, req GameRequest) ([]string, any, error)

type GameHandler struct {
	storage   storage.Storage
	events    EventPublisher
	logger    *slog.Logger
	newRoller func() dice.Roller
	actions   map[string]action
	views     map[string]bool
}

// NewGameHandler creates the game handler. newRoller is called once per
// request, since sessions are decoded fresh every time. events may be nil.
func NewGameHandler(storage storage.Storage, newRoller func() dice.Roller, events EventPublisher, logger *slog.Logger) *GameHandler {
	h := &GameHandler{
		storage:   storage,
		events:    events,
		logger:    logger,
		newRoller: newRoller,
	}
	h.actions = map[string]action{
		"explore":        h.explore,
		"encounter":      h.encounter,
		"battle":         h.battle,
		"flee":           h.flee,
		"find":           h.find,
		"heal":           h.heal,
		"use":            h.use,
		"assign-quest":   h.assignQuest,
		"complete-quest": h.completeQuest,
		"save":           h.save,
		"map":            h.showMap,
		"stats":          h.stats,
		"inventory":      h.inventory,
	}
	// Views do not change the session and are not recorded.
	h.views = map[string]bool{"map": true, "stats": true, "inventory": true}
	return h
}

// ServeHTTP handles HTTP requests for game sessions
// Routes:
// POST /v1/games                 - Start a new game
// POST /v1/games/load            - Start a session from a player's latest save
// GET /v1/games/{id}             - Read a session
// DELETE /v1/games/{id}          - End a session
// POST /v1/games/{id}/{action}   - Run an action
func (h *GameHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/games"), "/")
	parts := strings.Split(path, "/")

	switch {
	case path == "":
		if r.Method != http.MethodPost {
			h.methodNotAllowed(w, r, "POST")
			return
		}
		h.handleCreate(w, r)
		return
	case path == "load":
		if r.Method != http.MethodPost {
			h.methodNotAllowed(w, r, "POST")
			return
		}
		h.handleLoad(w, r)
		return
	case len(parts) > 2:
		writeError(w, h.logger, http.StatusNotFound, "Unknown route")
		return
	}

	id, err := uuid.Parse(parts[0])
	if err != nil {
		h.logger.Warn("Invalid game ID", "id", parts[0], "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid game ID format")
		return
	}

	if len(parts) == 2 {
		if r.Method != http.MethodPost {
			h.methodNotAllowed(w, r, "POST")
			return
		}
		h.handleAction(w, r, id, parts[1])
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.handleRead(w, r, id)
	case http.MethodDelete:
		h.handleDelete(w, r, id)
	default:
		h.methodNotAllowed(w, r, "GET, DELETE")
	}
}

func (h *GameHandler) methodNotAllowed(w http.ResponseWriter, r *http.Request, allowed string) {
	h.logger.Warn("Method not allowed for games endpoint", "method", r.Method, "path", r.URL.Path)
	writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: "+allowed)
}

func (h *GameHandler) decodeRequest(w http.ResponseWriter, r *http.Request) (GameRequest, bool) {
	var req GameRequest
	if r.Body == nil || r.ContentLength == 0 {
		return req, true
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid request body", "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid JSON in request body")
		return req, false
	}
	return req, true
}

func (h *GameHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		writeError(w, h.logger, http.StatusBadRequest, "Player name is required")
		return
	}

	p := actor.NewPlayer(name)
	if _, err := h.storage.SavePlayer(r.Context(), p); err != nil {
		writeDomainError(w, h.logger, fmt.Errorf("save new player: %w", err))
		return
	}

	gs := state.NewGameState(world.New(p, h.newRoller()))
	gs.Record(fmt.Sprintf("Welcome, %s! Your adventure begins.", p.Name))
	if err := h.storage.SaveGameState(r.Context(), gs); err != nil {
		writeDomainError(w, h.logger, fmt.Errorf("save session: %w", err))
		return
	}

	logger.WithGameID(h.logger, gs.ID).Info("Game created", "player", p.Name)
	h.publish(gs.ID, func(ctx context.Context, e EventPublisher) error {
		return e.PublishGameCreated(ctx, gs.ID, p.Name, p.Level)
	})
	writeJSON(w, h.logger, http.StatusCreated, gameResponse(gs))
}

func (h *GameHandler) handleLoad(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		writeError(w, h.logger, http.StatusBadRequest, "Player name is required")
		return
	}

	p, err := h.storage.LoadPlayer(r.Context(), name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, h.logger, http.StatusNotFound, "Player not found.")
			return
		}
		writeDomainError(w, h.logger, err)
		return
	}

	gs := state.NewGameState(world.New(p, h.newRoller()))
	gs.Record(fmt.Sprintf("Welcome back, %s!", p.Name))
	if err := h.storage.SaveGameState(r.Context(), gs); err != nil {
		writeDomainError(w, h.logger, fmt.Errorf("save session: %w", err))
		return
	}

	logger.WithGameID(h.logger, gs.ID).Info("Game loaded", "player", p.Name, "level", p.Level)
	h.publish(gs.ID, func(ctx context.Context, e EventPublisher) error {
		return e.PublishGameCreated(ctx, gs.ID, p.Name, p.Level)
	})
	writeJSON(w, h.logger, http.StatusCreated, gameResponse(gs))
}

func (h *GameHandler) handleRead(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	gs, err := h.storage.LoadGameState(r.Context(), id)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, gameResponse(gs))
}

func (h *GameHandler) handleDelete(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	if err := h.storage.DeleteGameState(r.Context(), id); err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	logger.WithGameID(h.logger, id).Info("Game deleted")
	w.WriteHeader(http.StatusNoContent)
}

func (h *GameHandler) handleAction(w http.ResponseWriter, r *http.Request, id uuid.UUID, name string) {
	act, ok := h.actions[name]
	if !ok {
		writeError(w, h.logger, http.StatusBadRequest, fmt.Sprintf("Unknown action %q", name))
		return
	}
	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	log := logger.WithGameID(h.logger, id)
	gs, err := h.storage.LoadGameState(r.Context(), id)
	if err != nil {
		writeDomainError(w, log, err)
		return
	}
	if gs.World == nil {
		writeDomainError(w, log, fmt.Errorf("session %s has no world", id))
		return
	}
	gs.World.SetRoller(h.newRoller())

	if gs.GameOver && !h.views[name] {
		writeDomainError(w, log, world.ErrPlayerDefeated)
		return
	}

	lines, result, err := act(r, gs, req)
	if err != nil {
		writeDomainError(w, log, err)
		return
	}

	if !h.views[name] {
		wasOver := gs.GameOver
		gs.Record(lines...)
		if err := h.storage.SaveGameState(r.Context(), gs); err != nil {
			writeDomainError(w, log, fmt.Errorf("save session: %w", err))
			return
		}
		h.publish(id, func(ctx context.Context, e EventPublisher) error {
			return e.PublishAction(ctx, id, name, lines)
		})
		if gs.GameOver && !wasOver {
			log.Info("Player defeated", "player", gs.Player().Name)
			h.publish(id, func(ctx context.Context, e EventPublisher) error {
				return e.PublishGameOver(ctx, id, gs.Player().Name)
			})
		}
	}
	log.Debug("Action completed", "action", name, "game_over", gs.GameOver)

	writeJSON(w, log, http.StatusOK, ActionResponse{
		Log:    lines,
		Result: result,
		Game:   gameResponse(gs),
	})
}

func (h *GameHandler) explore(_ *http.Request, gs *state.GameState, _ GameRequest) ([]string, any, error) {
	ex, err := gs.World.Explore()
	if err != nil {
		return nil, nil, err
	}
	return ex.Log, ex, nil
}

func (h *GameHandler) encounter(_ *http.Request, gs *state.GameState, _ GameRequest) ([]string, any, error) {
	e, msg, err := gs.World.EncounterEnemy()
	if err != nil {
		return nil, nil, err
	}
	return []string{msg}, e, nil
}

func (h *GameHandler) battle(_ *http.Request, gs *state.GameState, _ GameRequest) ([]string, any, error) {
	res, err := gs.World.Battle()
	if err != nil {
		return nil, nil, err
	}
	return res.Log, res, nil
}

func (h *GameHandler) flee(_ *http.Request, gs *state.GameState, _ GameRequest) ([]string, any, error) {
	msg, err := gs.World.Flee()
	if err != nil {
		return nil, nil, err
	}
	return []string{msg}, nil, nil
}

func (h *GameHandler) find(_ *http.Request, gs *state.GameState, _ GameRequest) ([]string, any, error) {
	s, msg, err := gs.World.FindItem()
	if err != nil {
		return nil, nil, err
	}
	return []string{msg}, s, nil
}

func (h *GameHandler) heal(_ *http.Request, gs *state.GameState, _ GameRequest) ([]string, any, error) {
	msg, err := gs.World.Heal()
	if err != nil {
		return nil, nil, err
	}
	return []string{msg}, nil, nil
}

func (h *GameHandler) use(_ *http.Request, gs *state.GameState, req GameRequest) ([]string, any, error) {
	if strings.TrimSpace(req.Item) == "" {
		return nil, nil, fmt.Errorf("item name is required: %w", errInvalidInput)
	}
	msg, err := gs.World.UseItem(req.Item)
	if err != nil {
		return nil, nil, err
	}
	return []string{msg}, nil, nil
}

func (h *GameHandler) assignQuest(_ *http.Request, gs *state.GameState, _ GameRequest) ([]string, any, error) {
	rec, msg, err := gs.World.AssignQuest()
	if err != nil {
		return nil, nil, err
	}
	return []string{msg}, rec, nil
}

func (h *GameHandler) completeQuest(_ *http.Request, gs *state.GameState, _ GameRequest) ([]string, any, error) {
	rec, msg, err := gs.World.CompleteQuest()
	if err != nil {
		return nil, nil, err
	}
	return []string{msg}, rec, nil
}

func (h *GameHandler) save(r *http.Request, gs *state.GameState, _ GameRequest) ([]string, any, error) {
	id, err := h.storage.SavePlayer(r.Context(), gs.Player())
	if err != nil {
		return nil, nil, fmt.Errorf("save player: %w", err)
	}
	h.publish(gs.ID, func(ctx context.Context, e EventPublisher) error {
		return e.PublishPlayerSaved(ctx, gs.ID, id)
	})
	return []string{"Game saved."}, SaveResponse{SaveID: id}, nil
}

func (h *GameHandler) showMap(_ *http.Request, gs *state.GameState, _ GameRequest) ([]string, any, error) {
	view := gs.World.Map()
	rows := view.Rows()
	lines := append([]string{fmt.Sprintf("%s (Level %d)", view.Title, view.Level)}, rows...)
	return lines, MapResponse{MapView: view, Rows: rows}, nil
}

func (h *GameHandler) stats(_ *http.Request, gs *state.GameState, _ GameRequest) ([]string, any, error) {
	stats := gs.Player().Stats()
	lines := make([]string, 0, len(stats))
	for _, s := range stats {
		lines = append(lines, s.Attribute+": "+s.Value)
	}
	return lines, stats, nil
}

func (h *GameHandler) inventory(_ *http.Request, gs *state.GameState, _ GameRequest) ([]string, any, error) {
	lines := gs.Player().ShowInventory()
	return lines, gs.Player().Inventory, nil
}

// publish sends an event if a publisher is configured. Failures are logged;
// the action has already been applied.
func (h *GameHandler) publish(id uuid.UUID, send func(context.Context, EventPublisher) error) {
	if h.events == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := send(ctx, h.events); err != nil {
		logger.WithError(logger.WithGameID(h.logger, id), err).Warn("Failed to publish game event")
	}
}

func gameResponse(gs *state.GameState) GameResponse {
	history := gs.Recent(HistoryWindow)
	if history == nil {
		history = []string{}
	}
	return GameResponse{
		ID:           gs.ID,
		Player:       gs.Player(),
		CurrentEnemy: gs.World.CurrentEnemy(),
		EnemiesLeft:  len(gs.World.Enemies()),
		ItemsLeft:    len(gs.World.Items()),
		GameOver:     gs.GameOver,
		History:      history,
	}
}

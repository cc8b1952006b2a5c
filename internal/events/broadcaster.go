package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// EventType represents the type of event being broadcast
type EventType string

const (
	EventTypeGameCreated EventType = "game.created"
	EventTypeGameAction  EventType = "game.action"
	EventTypeGameOver    EventType = "game.over"
	EventTypePlayerSaved EventType = "player.saved"
)

// Event represents a generic event structure
type Event struct {
	Type   EventType      `json:"type"`
	GameID string         `json:"game_id,omitempty"`
	Data   map[string]any `json:"data,omitempty"`
}

// Channel is the Pub/Sub channel carrying one game's events.
func Channel(gameID uuid.UUID) string {
	return "game-events:" + gameID.String()
}

// Broadcaster publishes events to Redis Pub/Sub for SSE distribution
type Broadcaster struct {
	redisClient *redis.Client
	logger      *slog.Logger
}

// NewBroadcaster creates a new event broadcaster
func NewBroadcaster(redisClient *redis.Client, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		redisClient: redisClient,
		logger:      logger,
	}
}

// PublishGameCreated publishes a game.created event
func (b *Broadcaster) PublishGameCreated(ctx context.Context, gameID uuid.UUID, player string, level int) error {
	return b.publishToGame(ctx, gameID, Event{
		Type: EventTypeGameCreated,
		Data: map[string]any{
			"player": player,
			"level":  level,
		},
	})
}

// PublishAction publishes a game.action event with the lines the action logged
func (b *Broadcaster) PublishAction(ctx context.Context, gameID uuid.UUID, action string, log []string) error {
	return b.publishToGame(ctx, gameID, Event{
		Type: EventTypeGameAction,
		Data: map[string]any{
			"action": action,
			"log":    log,
		},
	})
}

// PublishGameOver publishes a game.over event
func (b *Broadcaster) PublishGameOver(ctx context.Context, gameID uuid.UUID, player string) error {
	return b.publishToGame(ctx, gameID, Event{
		Type: EventTypeGameOver,
		Data: map[string]any{
			"player": player,
		},
	})
}

// PublishPlayerSaved publishes a player.saved event
func (b *Broadcaster) PublishPlayerSaved(ctx context.Context, gameID uuid.UUID, saveID int64) error {
	return b.publishToGame(ctx, gameID, Event{
		Type: EventTypePlayerSaved,
		Data: map[string]any{
			"save_id": saveID,
		},
	})
}

func (b *Broadcaster) publishToGame(ctx context.Context, gameID uuid.UUID, event Event) error {
	event.GameID = gameID.String()
	channel := Channel(gameID)

	data, err := json.Marshal(event)
	if err != nil {
		b.logger.Error("Failed to marshal event", "error", err, "event_type", event.Type)
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := b.redisClient.Publish(ctx, channel, data).Err(); err != nil {
		b.logger.Error("Failed to publish event", "error", err, "channel", channel)
		return fmt.Errorf("failed to publish event: %w", err)
	}

	b.logger.Debug("Event published", "channel", channel, "event_type", event.Type)
	return nil
}

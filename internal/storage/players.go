package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jwebster45206/rpg-engine/pkg/actor"
	"github.com/jwebster45206/rpg-engine/pkg/item"
	"github.com/jwebster45206/rpg-engine/pkg/quest"
	"github.com/jwebster45206/rpg-engine/pkg/storage"
)

// PlayerRepo stores player snapshots in SQLite.
type PlayerRepo struct {
	db     *sql.DB
	logger *slog.Logger
}

// Ensure PlayerRepo implements PlayerStore interface
var _ storage.PlayerStore = (*PlayerRepo)(nil)

func NewPlayerRepo(db *sql.DB, logger *slog.Logger) *PlayerRepo {
	return &PlayerRepo{db: db, logger: logger}
}

// SavePlayer inserts a new player record with its inventory and quests.
func (r *PlayerRepo) SavePlayer(ctx context.Context, p *actor.Player) (int64, error) {
	if p == nil {
		return 0, errors.New("player cannot be nil")
	}

	var id int64
	err := WithTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO players (name, health, attack_power, level, experience, quests_completed)
			VALUES (?, ?, ?, ?, ?, ?)
		`, p.Name, p.Health, p.AttackPower, p.Level, p.Experience, p.QuestsCompleted)
		if err != nil {
			return fmt.Errorf("player insert: %w", err)
		}
		id, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("player insert id: %w", err)
		}

		for _, s := range p.Inventory {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO inventory (player_id, item_name, quantity) VALUES (?, ?, ?)`,
				id, s.Name, s.Quantity); err != nil {
				return fmt.Errorf("inventory insert: %w", err)
			}
		}
		for _, q := range p.Quests {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO quests (player_id, description, is_completed) VALUES (?, ?, ?)`,
				id, q.Description, q.Completed); err != nil {
				return fmt.Errorf("quest insert: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		r.logger.Error("Failed to save player", "name", p.Name, "error", err)
		return 0, err
	}

	r.logger.Debug("Player saved", "name", p.Name, "player_id", id,
		"items", len(p.Inventory), "quests", len(p.Quests))
	return id, nil
}

// LoadPlayer rebuilds the most recently saved player called name.
// Stored items carry no effect, so every loaded stack is inert.
func (r *PlayerRepo) LoadPlayer(ctx context.Context, name string) (*actor.Player, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, health, attack_power, level, experience, quests_completed
		FROM players WHERE name = ? ORDER BY id DESC LIMIT 1
	`, name)

	var id int64
	p := actor.NewPlayer(name)
	if err := row.Scan(&id, &p.Name, &p.Health, &p.AttackPower, &p.Level, &p.Experience, &p.QuestsCompleted); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.logger.Warn("Player not found", "name", name)
			return nil, fmt.Errorf("player %q: %w", name, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("player get: %w", err)
	}

	inv, err := r.loadInventory(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Inventory = inv

	quests, err := r.loadQuests(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Quests = quests

	r.logger.Debug("Player loaded", "name", name, "player_id", id)
	return p, nil
}

func (r *PlayerRepo) loadInventory(ctx context.Context, playerID int64) ([]item.Stack, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT item_name, quantity FROM inventory WHERE player_id = ? ORDER BY id`, playerID)
	if err != nil {
		return nil, fmt.Errorf("inventory list: %w", err)
	}
	defer rows.Close()

	inv := []item.Stack{}
	for rows.Next() {
		s := item.Stack{Item: item.Item{Kind: item.KindInert}}
		if err := rows.Scan(&s.Name, &s.Quantity); err != nil {
			return nil, fmt.Errorf("inventory scan: %w", err)
		}
		inv = append(inv, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("inventory rows: %w", err)
	}
	return inv, nil
}

func (r *PlayerRepo) loadQuests(ctx context.Context, playerID int64) (quest.Log, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT description, is_completed FROM quests WHERE player_id = ? ORDER BY id`, playerID)
	if err != nil {
		return nil, fmt.Errorf("quest list: %w", err)
	}
	defer rows.Close()

	log := quest.Log{}
	for rows.Next() {
		var rec quest.Record
		if err := rows.Scan(&rec.Description, &rec.Completed); err != nil {
			return nil, fmt.Errorf("quest scan: %w", err)
		}
		log = append(log, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("quest rows: %w", err)
	}
	return log, nil
}

// ListSaves returns every saved record, newest first.
func (r *PlayerRepo) ListSaves(ctx context.Context) ([]storage.Save, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, level FROM players ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("player list: %w", err)
	}
	defer rows.Close()

	saves := []storage.Save{}
	for rows.Next() {
		var s storage.Save
		if err := rows.Scan(&s.ID, &s.Name, &s.Level); err != nil {
			return nil, fmt.Errorf("player scan: %w", err)
		}
		saves = append(saves, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("player rows: %w", err)
	}
	return saves, nil
}

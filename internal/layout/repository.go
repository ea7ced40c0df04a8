package layout

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/avashisht/homeplan-core/internal/device"
)

// ErrNotFound is returned when no saved position exists for a channel.
var ErrNotFound = errors.New("layout: position not found")

// Entry is one saved floor-plan position.
type Entry struct {
	Channel   device.Channel  `json:"channel"`
	Position  device.Position `json:"position"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Repository defines the interface for layout persistence operations.
// This abstraction allows for different implementations (SQLite, mock)
// and enables unit testing without database dependencies.
type Repository interface {
	// Save upserts the position for a channel.
	Save(ctx context.Context, ch device.Channel, pos device.Position) error

	// Get retrieves the saved position for a channel.
	// Returns ErrNotFound if no position has been saved.
	Get(ctx context.Context, ch device.Channel) (device.Position, error)

	// List retrieves all saved positions.
	List(ctx context.Context) ([]Entry, error)

	// Delete removes the saved position for a channel.
	// Returns ErrNotFound if no position has been saved.
	Delete(ctx context.Context, ch device.Channel) error
}

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite-backed repository.
// The db parameter should be an open SQLite connection with the
// layouts migration applied.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Save upserts the position for a channel.
func (r *SQLiteRepository) Save(ctx context.Context, ch device.Channel, pos device.Position) error {
	query := `
		INSERT INTO layouts (device_id, switch_number, x, y, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (device_id, switch_number)
		DO UPDATE SET x = excluded.x, y = excluded.y, updated_at = excluded.updated_at`

	_, err := r.db.ExecContext(ctx, query,
		ch.DeviceID,
		ch.SwitchNumber,
		pos.X,
		pos.Y,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("saving layout for %s/%d: %w", ch.DeviceID, ch.SwitchNumber, err)
	}
	return nil
}

// Get retrieves the saved position for a channel.
func (r *SQLiteRepository) Get(ctx context.Context, ch device.Channel) (device.Position, error) {
	query := `
		SELECT x, y
		FROM layouts
		WHERE device_id = ? AND switch_number = ?`

	var pos device.Position
	err := r.db.QueryRowContext(ctx, query, ch.DeviceID, ch.SwitchNumber).Scan(&pos.X, &pos.Y)
	if errors.Is(err, sql.ErrNoRows) {
		return device.Position{}, ErrNotFound
	}
	if err != nil {
		return device.Position{}, fmt.Errorf("loading layout for %s/%d: %w", ch.DeviceID, ch.SwitchNumber, err)
	}
	return pos, nil
}

// List retrieves all saved positions, ordered by channel.
func (r *SQLiteRepository) List(ctx context.Context) ([]Entry, error) {
	query := `
		SELECT device_id, switch_number, x, y, updated_at
		FROM layouts
		ORDER BY device_id, switch_number`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing layouts: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var updatedAt string
		if err := rows.Scan(&e.Channel.DeviceID, &e.Channel.SwitchNumber, &e.Position.X, &e.Position.Y, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning layout row: %w", err)
		}
		e.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt) //nolint:errcheck // Format is controlled
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating layouts: %w", err)
	}
	return entries, nil
}

// Delete removes the saved position for a channel.
func (r *SQLiteRepository) Delete(ctx context.Context, ch device.Channel) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM layouts WHERE device_id = ? AND switch_number = ?",
		ch.DeviceID, ch.SwitchNumber,
	)
	if err != nil {
		return fmt.Errorf("deleting layout for %s/%d: %w", ch.DeviceID, ch.SwitchNumber, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Apply copies every saved position onto the catalog, overriding the
// discovery defaults. Positions saved for channels no longer in the
// catalog are skipped.
func Apply(ctx context.Context, repo Repository, catalog *device.Catalog) error {
	entries, err := repo.List(ctx)
	if err != nil {
		return err
	}

	for _, e := range entries {
		if err := catalog.SetPosition(e.Channel, e.Position); err != nil {
			if errors.Is(err, device.ErrChannelNotFound) {
				continue
			}
			return err
		}
	}
	return nil
}

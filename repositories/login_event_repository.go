package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fysikteknologsektionen/ftek-login/models"
)

// LoginEventRepository handles login event persistence
type LoginEventRepository interface {
	Create(ctx context.Context, event *models.LoginEvent) error
	ListRecent(ctx context.Context, limit int) ([]models.LoginEvent, error)
}

type sqliteLoginEventRepository struct {
	db *sql.DB
}

// NewLoginEventRepository creates a new login event repository
func NewLoginEventRepository(db *sql.DB) LoginEventRepository {
	return &sqliteLoginEventRepository{db: db}
}

// Create inserts a new login event
func (r *sqliteLoginEventRepository) Create(ctx context.Context, event *models.LoginEvent) error {
	query := `
		INSERT INTO login_events (occurred_at, email, outcome, reason, user_agent, ip_address)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	result, err := r.db.ExecContext(ctx,
		query,
		event.OccurredAt,
		event.Email,
		string(event.Outcome),
		event.Reason,
		event.UserAgent,
		event.IPAddress,
	)
	if err != nil {
		return fmt.Errorf("failed to create login event: %w", err)
	}

	if event.ID, err = result.LastInsertId(); err != nil {
		return fmt.Errorf("failed to get login event ID: %w", err)
	}
	return nil
}

// ListRecent returns the newest events first
func (r *sqliteLoginEventRepository) ListRecent(ctx context.Context, limit int) ([]models.LoginEvent, error) {
	query := `
		SELECT id, occurred_at, email, outcome, reason, user_agent, ip_address
		FROM login_events
		ORDER BY occurred_at DESC, id DESC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query login events: %w", err)
	}
	defer rows.Close()

	var events []models.LoginEvent
	for rows.Next() {
		var event models.LoginEvent
		var outcome string
		if err := rows.Scan(
			&event.ID,
			&event.OccurredAt,
			&event.Email,
			&outcome,
			&event.Reason,
			&event.UserAgent,
			&event.IPAddress,
		); err != nil {
			return nil, fmt.Errorf("failed to scan login event: %w", err)
		}
		event.Outcome = models.LoginOutcome(outcome)
		events = append(events, event)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating login events: %w", err)
	}

	return events, nil
}

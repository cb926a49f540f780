// Package conference stores the notification-side configuration of
// conference editions, primarily the display label for the event date that
// goes into confirmation emails.
package conference

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/ahmedkucuk23/balance-notifications/internal/domain"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a conference edition. Activating one deactivates the
// others; at most one edition drives the emails at a time.
func (r *Repository) Create(ctx context.Context, conf *domain.Conference) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	conf.ID = uuid.New().String()
	conf.CreatedAt = time.Now().UTC()

	if conf.Active {
		if _, err := tx.ExecContext(ctx, `UPDATE conferences SET active = FALSE WHERE active`); err != nil {
			return err
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO conferences (id, name, event_date_label, active, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, conf.ID, conf.Name, conf.EventDateLabel, conf.Active, conf.CreatedAt)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// ActiveEventDate returns the event-date label of the active conference, or
// an empty string when none is configured.
func (r *Repository) ActiveEventDate(ctx context.Context) (string, error) {
	var label string
	err := r.db.QueryRowContext(ctx, `
		SELECT event_date_label
		FROM conferences
		WHERE active
		ORDER BY created_at DESC
		LIMIT 1
	`).Scan(&label)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", err
	}
	return label, nil
}

// List returns all editions, newest first.
func (r *Repository) List(ctx context.Context) ([]domain.Conference, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, event_date_label, active, created_at
		FROM conferences
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var confs []domain.Conference
	for rows.Next() {
		var c domain.Conference
		if err := rows.Scan(&c.ID, &c.Name, &c.EventDateLabel, &c.Active, &c.CreatedAt); err != nil {
			return nil, err
		}
		confs = append(confs, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return confs, nil
}

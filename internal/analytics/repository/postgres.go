package repository

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-mall-service/internal/model"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) RecordEvent(ctx context.Context, e *model.BapEvent) error {
	query := `
        INSERT INTO bap_events (id, bap_id, merchant_id, action, occurred_at)
        VALUES (:id, :bap_id, :merchant_id, :action, :occurred_at)
        ON CONFLICT (id) DO NOTHING
    `
	_, err := r.DB.NamedExecContext(ctx, query, e)
	return err
}

func (r *PGRepository) DistinctBapCounts(ctx context.Context, merchantID string, now time.Time) (*model.DistinctBapCounts, error) {
	query := `
        SELECT
            COUNT(DISTINCT bap_id) AS last_month,
            COUNT(DISTINCT bap_id) FILTER (WHERE occurred_at > $2) AS last_week,
            COUNT(DISTINCT bap_id) FILTER (WHERE occurred_at > $3) AS last_day
        FROM bap_events
        WHERE occurred_at > $1 AND occurred_at <= $4
    `
	args := []interface{}{
		now.AddDate(0, 0, -30),
		now.AddDate(0, 0, -7),
		now.AddDate(0, 0, -1),
		now,
	}
	if merchantID != "" {
		query += ` AND merchant_id = $5`
		args = append(args, merchantID)
	}

	var counts model.DistinctBapCounts
	if err := r.DB.GetContext(ctx, &counts, query, args...); err != nil {
		return nil, err
	}
	return &counts, nil
}

package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/activity/domain"
	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/platform/logger"
)

type ActivityRepository interface {
	InsertActivity(ctx context.Context, activity *domain.Activity) error
	ListRecent(ctx context.Context, limit int) ([]domain.Activity, error)
}

type postgresActivityRepository struct {
	db *sql.DB
}

func NewPostgresActivityRepository(db *sql.DB) ActivityRepository {
	return &postgresActivityRepository{db: db}
}

func (r *postgresActivityRepository) InsertActivity(ctx context.Context, activity *domain.Activity) error {
	query := `INSERT INTO actividad (usuario_id, accion, detalle, fecha) VALUES ($1, $2, $3, $4) RETURNING id`
	activity.CreatedAt = time.Now()

	var userID sql.NullInt64
	if activity.UserID != nil {
		userID = sql.NullInt64{Int64: int64(*activity.UserID), Valid: true}
	}

	err := r.db.QueryRowContext(ctx, query, userID, activity.Action, activity.Detail, activity.CreatedAt).Scan(&activity.ID)
	if err != nil {
		logger.Error("InsertActivity: failed to insert activity", err, nil)
		return err
	}
	return nil
}

func (r *postgresActivityRepository) ListRecent(ctx context.Context, limit int) ([]domain.Activity, error) {
	// LEFT JOIN keeps entries whose user was deleted afterwards.
	query := `
        SELECT a.id, a.usuario_id, COALESCE(u.nombre, ''), a.accion, a.detalle, a.fecha
        FROM actividad a
        LEFT JOIN usuarios u ON a.usuario_id = u.id
        ORDER BY a.fecha DESC
        LIMIT $1`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		logger.Error("ListRecent: query failed", err, nil)
		return nil, err
	}
	defer rows.Close()

	activities := []domain.Activity{}
	for rows.Next() {
		var a domain.Activity
		var userID sql.NullInt64
		if err := rows.Scan(&a.ID, &userID, &a.UserName, &a.Action, &a.Detail, &a.CreatedAt); err != nil {
			logger.Error("ListRecent: scan failed", err, nil)
			return nil, err
		}
		if userID.Valid {
			id := int(userID.Int64)
			a.UserID = &id
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}

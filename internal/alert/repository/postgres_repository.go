package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/alert/domain"
	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/platform/database"
	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/platform/logger"
)

var (
	ErrAlertNotFound = errors.New("alert not found")
	// ErrDuplicateAlert means a PENDING alert already references this entity
	// with the same type. Callers treat it as "already flagged".
	ErrDuplicateAlert = errors.New("pending alert already exists for this entity")
	// ErrInvalidReference means the referenced product or lot no longer exists.
	ErrInvalidReference = errors.New("alert references a missing entity")
	ErrAlertNotPending  = errors.New("alert is not in pending status")
)

type AlertRepository interface {
	// Scans feeding the reconciler.
	ListStockViolations(ctx context.Context) ([]domain.StockViolation, error)
	ListExpiringLots(ctx context.Context, days int, asOf time.Time) ([]domain.ExpiringLot, error)

	InsertAlert(ctx context.Context, alert *domain.Alert) error
	ListAlerts(ctx context.Context) ([]domain.Alert, error)
	GetAlertByID(ctx context.Context, id int) (*domain.Alert, error)
	UpdateAlertStatus(ctx context.Context, id int, status domain.AlertStatus) error
	DeleteAlert(ctx context.Context, id int) error
}

type postgresAlertRepository struct {
	db *sql.DB
}

func NewPostgresAlertRepository(db *sql.DB) AlertRepository {
	return &postgresAlertRepository{db: db}
}

func (r *postgresAlertRepository) ListStockViolations(ctx context.Context) ([]domain.StockViolation, error) {
	query := `SELECT id, nombre, stock, stock_minimo FROM productos WHERE stock <= stock_minimo`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.Error("ListStockViolations: query failed", err, nil)
		return nil, err
	}
	defer rows.Close()

	violations := []domain.StockViolation{}
	for rows.Next() {
		var v domain.StockViolation
		if err := rows.Scan(&v.ProductID, &v.ProductName, &v.Stock, &v.MinStock); err != nil {
			logger.Error("ListStockViolations: scan failed", err, nil)
			return nil, err
		}
		violations = append(violations, v)
	}
	return violations, rows.Err()
}

func (r *postgresAlertRepository) ListExpiringLots(ctx context.Context, days int, asOf time.Time) ([]domain.ExpiringLot, error) {
	query := `
        SELECT l.id, l.codigo, p.nombre, l.fecha_caducidad
        FROM lotes l
        JOIN productos p ON l.producto_id = p.id
        WHERE l.estado = 'Active'
          AND l.fecha_caducidad > $1
          AND l.fecha_caducidad <= $2`
	rows, err := r.db.QueryContext(ctx, query, asOf, asOf.AddDate(0, 0, days))
	if err != nil {
		logger.Error("ListExpiringLots: query failed", err, nil)
		return nil, err
	}
	defer rows.Close()

	lots := []domain.ExpiringLot{}
	for rows.Next() {
		var l domain.ExpiringLot
		if err := rows.Scan(&l.LotID, &l.Code, &l.ProductName, &l.ExpiryDate); err != nil {
			logger.Error("ListExpiringLots: scan failed", err, nil)
			return nil, err
		}
		lots = append(lots, l)
	}
	return lots, rows.Err()
}

// InsertAlert relies on the partial unique index on
// (tipo, ref_tipo, ref_id) WHERE estado = 'PENDING' for race-safe dedup:
// a conflicting insert is a no-op and surfaces as ErrDuplicateAlert.
func (r *postgresAlertRepository) InsertAlert(ctx context.Context, alert *domain.Alert) error {
	query := `
        INSERT INTO alertas (titulo, mensaje, tipo, prioridad, estado, ref_tipo, ref_id, generado_por, fecha)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        ON CONFLICT (tipo, ref_tipo, ref_id) WHERE estado = 'PENDING' DO NOTHING
        RETURNING id`

	var refType sql.NullString
	if alert.RefType != nil {
		refType = sql.NullString{String: string(*alert.RefType), Valid: true}
	}
	var refID, generatedBy sql.NullInt64
	if alert.RefID != nil {
		refID = sql.NullInt64{Int64: int64(*alert.RefID), Valid: true}
	}
	if alert.GeneratedBy != nil {
		generatedBy = sql.NullInt64{Int64: int64(*alert.GeneratedBy), Valid: true}
	}

	err := r.db.QueryRowContext(ctx, query,
		alert.Title, alert.Message, alert.Type, alert.Priority, alert.Status,
		refType, refID, generatedBy, alert.CreatedAt,
	).Scan(&alert.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// ON CONFLICT DO NOTHING returned no row: duplicate pending alert.
			return ErrDuplicateAlert
		}
		switch {
		case database.IsUniqueViolation(err): // same dedup invariant
			return ErrDuplicateAlert
		case database.IsForeignKeyViolation(err): // entity deleted mid-scan
			return ErrInvalidReference
		}
		logger.Error("InsertAlert: failed to insert alert", err, nil)
		return err
	}
	return nil
}

func (r *postgresAlertRepository) ListAlerts(ctx context.Context) ([]domain.Alert, error) {
	// PENDING first, newest first inside each status group.
	query := `
        SELECT id, titulo, mensaje, tipo, prioridad, estado, ref_tipo, ref_id, generado_por, fecha
        FROM alertas
        ORDER BY CASE WHEN estado = 'PENDING' THEN 0 ELSE 1 END, fecha DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.Error("ListAlerts: query failed", err, nil)
		return nil, err
	}
	defer rows.Close()

	alerts := []domain.Alert{}
	for rows.Next() {
		a, err := scanAlert(rows.Scan)
		if err != nil {
			logger.Error("ListAlerts: scan failed", err, nil)
			return nil, err
		}
		alerts = append(alerts, *a)
	}
	return alerts, rows.Err()
}

func (r *postgresAlertRepository) GetAlertByID(ctx context.Context, id int) (*domain.Alert, error) {
	query := `
        SELECT id, titulo, mensaje, tipo, prioridad, estado, ref_tipo, ref_id, generado_por, fecha
        FROM alertas WHERE id = $1`
	a, err := scanAlert(r.db.QueryRowContext(ctx, query, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAlertNotFound
		}
		logger.Error("GetAlertByID: query failed", err, nil)
		return nil, err
	}
	return a, nil
}

// UpdateAlertStatus only moves alerts out of PENDING. Terminal states stay
// terminal; a persisting violation produces a fresh alert instead.
func (r *postgresAlertRepository) UpdateAlertStatus(ctx context.Context, id int, status domain.AlertStatus) error {
	query := `UPDATE alertas SET estado = $1 WHERE id = $2 AND estado = 'PENDING'`
	res, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		logger.Error("UpdateAlertStatus: exec failed", err, nil)
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		if _, err := r.GetAlertByID(ctx, id); errors.Is(err, ErrAlertNotFound) {
			return ErrAlertNotFound
		}
		return ErrAlertNotPending
	}
	return nil
}

func (r *postgresAlertRepository) DeleteAlert(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM alertas WHERE id = $1`, id)
	if err != nil {
		logger.Error("DeleteAlert: exec failed", err, nil)
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrAlertNotFound
	}
	return nil
}

func scanAlert(scan func(dest ...interface{}) error) (*domain.Alert, error) {
	var a domain.Alert
	var refType sql.NullString
	var refID, generatedBy sql.NullInt64
	err := scan(&a.ID, &a.Title, &a.Message, &a.Type, &a.Priority, &a.Status, &refType, &refID, &generatedBy, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	if refType.Valid {
		rt := domain.RefType(refType.String)
		a.RefType = &rt
	}
	if refID.Valid {
		id := int(refID.Int64)
		a.RefID = &id
	}
	if generatedBy.Valid {
		gb := int(generatedBy.Int64)
		a.GeneratedBy = &gb
	}
	return &a, nil
}

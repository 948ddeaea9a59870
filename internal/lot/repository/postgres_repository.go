package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/lot/domain"
	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/platform/database"
	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/platform/logger"
)

var (
	ErrLotNotFound       = errors.New("lot not found")
	ErrLotCodeConflict   = errors.New("a lot with this code already exists")
	ErrUnknownProductRef = errors.New("referenced product does not exist")
)

type LotRepository interface {
	CreateLot(ctx context.Context, lot *domain.Lot) error
	GetLotByID(ctx context.Context, id int) (*domain.Lot, error)
	ListLots(ctx context.Context) ([]domain.Lot, error)
	UpdateLot(ctx context.Context, lot *domain.Lot) error
	UpdateLotStatus(ctx context.Context, id int, status string) error
	DeleteLot(ctx context.Context, id int) error
}

type postgresLotRepository struct {
	db *sql.DB
}

func NewPostgresLotRepository(db *sql.DB) LotRepository {
	return &postgresLotRepository{db: db}
}

func (r *postgresLotRepository) CreateLot(ctx context.Context, lot *domain.Lot) error {
	query := `INSERT INTO lotes (codigo, producto_id, origen, tipo_tueste, peso_kg, fecha_tueste, fecha_caducidad, estado, fecha, fecha_actualizacion)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	lot.Status = domain.StatusActive
	lot.CreatedAt = time.Now()
	lot.UpdatedAt = lot.CreatedAt

	err := r.db.QueryRowContext(ctx, query,
		lot.Code, lot.ProductID, nullString(lot.Origin), nullString(lot.RoastType),
		lot.WeightKg, lot.RoastDate, lot.ExpiryDate, lot.Status, lot.CreatedAt, lot.UpdatedAt,
	).Scan(&lot.ID)
	if err != nil {
		switch {
		case database.IsUniqueViolation(err): // codigo
			return ErrLotCodeConflict
		case database.IsForeignKeyViolation(err): // producto_id
			return ErrUnknownProductRef
		}
		logger.Error("CreateLot: failed to insert lot", err, nil)
		return err
	}
	return nil
}

func (r *postgresLotRepository) GetLotByID(ctx context.Context, id int) (*domain.Lot, error) {
	query := `
        SELECT l.id, l.codigo, l.producto_id, p.nombre, l.origen, l.tipo_tueste, l.peso_kg,
               l.fecha_tueste, l.fecha_caducidad, l.estado, l.fecha, l.fecha_actualizacion
        FROM lotes l
        JOIN productos p ON l.producto_id = p.id
        WHERE l.id = $1`
	l, err := scanLot(r.db.QueryRowContext(ctx, query, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLotNotFound
		}
		logger.Error("GetLotByID: query failed", err, nil)
		return nil, err
	}
	return l, nil
}

func (r *postgresLotRepository) ListLots(ctx context.Context) ([]domain.Lot, error) {
	query := `
        SELECT l.id, l.codigo, l.producto_id, p.nombre, l.origen, l.tipo_tueste, l.peso_kg,
               l.fecha_tueste, l.fecha_caducidad, l.estado, l.fecha, l.fecha_actualizacion
        FROM lotes l
        JOIN productos p ON l.producto_id = p.id
        ORDER BY l.fecha DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.Error("ListLots: query failed", err, nil)
		return nil, err
	}
	defer rows.Close()

	lots := []domain.Lot{}
	for rows.Next() {
		l, err := scanLot(rows.Scan)
		if err != nil {
			logger.Error("ListLots: scan failed", err, nil)
			return nil, err
		}
		lots = append(lots, *l)
	}
	return lots, rows.Err()
}

func (r *postgresLotRepository) UpdateLot(ctx context.Context, lot *domain.Lot) error {
	query := `UPDATE lotes SET origen = $1, tipo_tueste = $2, peso_kg = $3, fecha_tueste = $4,
                   fecha_caducidad = $5, fecha_actualizacion = $6
              WHERE id = $7`
	lot.UpdatedAt = time.Now()

	res, err := r.db.ExecContext(ctx, query,
		nullString(lot.Origin), nullString(lot.RoastType), lot.WeightKg,
		lot.RoastDate, lot.ExpiryDate, lot.UpdatedAt, lot.ID,
	)
	if err != nil {
		logger.Error("UpdateLot: exec failed", err, nil)
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrLotNotFound
	}
	return nil
}

func (r *postgresLotRepository) UpdateLotStatus(ctx context.Context, id int, status string) error {
	query := `UPDATE lotes SET estado = $1, fecha_actualizacion = $2 WHERE id = $3`
	res, err := r.db.ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		logger.Error("UpdateLotStatus: exec failed", err, nil)
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrLotNotFound
	}
	return nil
}

func (r *postgresLotRepository) DeleteLot(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM lotes WHERE id = $1`, id)
	if err != nil {
		logger.Error("DeleteLot: exec failed", err, nil)
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrLotNotFound
	}
	return nil
}

func scanLot(scan func(dest ...interface{}) error) (*domain.Lot, error) {
	var l domain.Lot
	var origin, roastType sql.NullString
	err := scan(&l.ID, &l.Code, &l.ProductID, &l.ProductName, &origin, &roastType, &l.WeightKg,
		&l.RoastDate, &l.ExpiryDate, &l.Status, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if origin.Valid {
		l.Origin = &origin.String
	}
	if roastType.Valid {
		l.RoastType = &roastType.String
	}
	return &l, nil
}

func nullString(s *string) sql.NullString {
	if s != nil {
		return sql.NullString{String: *s, Valid: true}
	}
	return sql.NullString{}
}

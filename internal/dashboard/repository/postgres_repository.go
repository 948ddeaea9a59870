package repository

import (
	"context"
	"database/sql"

	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/dashboard/domain"
	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/platform/logger"
)

type DashboardRepository interface {
	GetKPIs(ctx context.Context) (*domain.KPIs, error)
	CountAlertsByType(ctx context.Context) ([]domain.ChartSlice, error)
	CountLotsByStatus(ctx context.Context) ([]domain.ChartSlice, error)
}

type postgresDashboardRepository struct {
	db *sql.DB
}

func NewPostgresDashboardRepository(db *sql.DB) DashboardRepository {
	return &postgresDashboardRepository{db: db}
}

func (r *postgresDashboardRepository) GetKPIs(ctx context.Context) (*domain.KPIs, error) {
	query := `
        SELECT
          (SELECT COUNT(*) FROM lotes WHERE estado = 'Active'),
          (SELECT COUNT(*) FROM productos WHERE stock <= stock_minimo),
          (SELECT COUNT(*) FROM alertas WHERE estado = 'PENDING'),
          (SELECT COALESCE(SUM(peso_kg), 0) FROM lotes WHERE estado = 'Active')`
	var k domain.KPIs
	err := r.db.QueryRowContext(ctx, query).Scan(
		&k.ActiveLots, &k.LowStockProducts, &k.PendingAlerts, &k.ActiveWeightKg,
	)
	if err != nil {
		logger.Error("GetKPIs: query failed", err, nil)
		return nil, err
	}
	return &k, nil
}

func (r *postgresDashboardRepository) CountAlertsByType(ctx context.Context) ([]domain.ChartSlice, error) {
	query := `SELECT tipo, COUNT(*) FROM alertas GROUP BY tipo ORDER BY tipo`
	return r.countGrouped(ctx, query, "CountAlertsByType")
}

func (r *postgresDashboardRepository) CountLotsByStatus(ctx context.Context) ([]domain.ChartSlice, error) {
	query := `SELECT estado, COUNT(*) FROM lotes GROUP BY estado ORDER BY estado`
	return r.countGrouped(ctx, query, "CountLotsByStatus")
}

func (r *postgresDashboardRepository) countGrouped(ctx context.Context, query, tag string) ([]domain.ChartSlice, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.Error(tag+": query failed", err, nil)
		return nil, err
	}
	defer rows.Close()

	slices := []domain.ChartSlice{}
	for rows.Next() {
		var s domain.ChartSlice
		if err := rows.Scan(&s.Label, &s.Count); err != nil {
			logger.Error(tag+": scan failed", err, nil)
			return nil, err
		}
		slices = append(slices, s)
	}
	return slices, rows.Err()
}

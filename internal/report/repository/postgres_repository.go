package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/platform/logger"
	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/report/domain"
)

type ReportRepository interface {
	InsertReport(ctx context.Context, report *domain.Report) error
	ListReports(ctx context.Context) ([]domain.Report, error)
}

type postgresReportRepository struct {
	db *sql.DB
}

func NewPostgresReportRepository(db *sql.DB) ReportRepository {
	return &postgresReportRepository{db: db}
}

func (r *postgresReportRepository) InsertReport(ctx context.Context, report *domain.Report) error {
	query := `INSERT INTO reportes (id, nombre, tipo, formato, generado_por, fecha)
              VALUES ($1, $2, $3, $4, $5, $6)`
	report.CreatedAt = time.Now()

	var generatedBy sql.NullInt64
	if report.GeneratedBy != nil {
		generatedBy = sql.NullInt64{Int64: int64(*report.GeneratedBy), Valid: true}
	}

	_, err := r.db.ExecContext(ctx, query,
		report.ID, report.Name, report.Type, report.Format, generatedBy, report.CreatedAt,
	)
	if err != nil {
		logger.Error("InsertReport: failed to insert report", err, nil)
		return err
	}
	return nil
}

func (r *postgresReportRepository) ListReports(ctx context.Context) ([]domain.Report, error) {
	query := `SELECT id, nombre, tipo, formato, generado_por, fecha FROM reportes ORDER BY fecha DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.Error("ListReports: query failed", err, nil)
		return nil, err
	}
	defer rows.Close()

	reports := []domain.Report{}
	for rows.Next() {
		var rep domain.Report
		var generatedBy sql.NullInt64
		if err := rows.Scan(&rep.ID, &rep.Name, &rep.Type, &rep.Format, &generatedBy, &rep.CreatedAt); err != nil {
			logger.Error("ListReports: scan failed", err, nil)
			return nil, err
		}
		if generatedBy.Valid {
			id := int(generatedBy.Int64)
			rep.GeneratedBy = &id
		}
		reports = append(reports, rep)
	}
	return reports, rows.Err()
}

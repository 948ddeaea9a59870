package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	alertdomain "github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/alert/domain"
	lotdomain "github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/lot/domain"
	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/platform/logger"
	productdomain "github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/product/domain"
	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/report/domain"
	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/report/repository"
)

var (
	ErrUnknownReportType = errors.New("unknown report type")
	// ErrUnsupportedFormat covers formats the original tool renders on the
	// client; the server only produces CSV.
	ErrUnsupportedFormat = errors.New("report format not generated server-side")
	ErrInvalidDateRange  = errors.New("invalid report date range")
)

// Narrow read-only views over the other repositories, kept small so tests
// can stub them.
type LotSource interface {
	ListLots(ctx context.Context) ([]lotdomain.Lot, error)
}

type ProductSource interface {
	ListProducts(ctx context.Context) ([]productdomain.Product, error)
}

type AlertSource interface {
	ListAlerts(ctx context.Context) ([]alertdomain.Alert, error)
}

// GeneratedReport is the downloadable artifact plus its registry entry.
type GeneratedReport struct {
	Filename string
	Content  []byte
	Report   domain.Report
}

type ReportService interface {
	Generate(ctx context.Context, actorID int, req domain.GenerateReportRequest) (*GeneratedReport, error)
	ListReports(ctx context.Context) ([]domain.Report, error)
}

type reportServiceImpl struct {
	repo     repository.ReportRepository
	lots     LotSource
	products ProductSource
	alerts   AlertSource
	now      func() time.Time
}

func NewReportService(repo repository.ReportRepository, lots LotSource, products ProductSource, alerts AlertSource) ReportService {
	return &reportServiceImpl{repo: repo, lots: lots, products: products, alerts: alerts, now: time.Now}
}

func (s *reportServiceImpl) Generate(ctx context.Context, actorID int, req domain.GenerateReportRequest) (*GeneratedReport, error) {
	format := req.Format
	if format == "" {
		format = domain.FormatCSV
	}
	if format != domain.FormatCSV {
		return nil, ErrUnsupportedFormat
	}

	from, to, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	var records [][]string
	switch req.Type {
	case domain.TypeLots:
		records, err = s.lotRecords(ctx, from, to)
	case domain.TypeProducts:
		records, err = s.productRecords(ctx)
	case domain.TypeAlerts:
		records, err = s.alertRecords(ctx, from, to)
	default:
		return nil, ErrUnknownReportType
	}
	if err != nil {
		logger.Error("Svc.Generate: data source failed for "+req.Type, err, nil)
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(records); err != nil {
		logger.Error("Svc.Generate: csv write failed", err, nil)
		return nil, err
	}

	now := s.now()
	report := domain.Report{
		ID:     uuid.NewString(),
		Name:   fmt.Sprintf("reporte-%s-%s", req.Type, now.Format("2006-01-02")),
		Type:   req.Type,
		Format: format,
	}
	if actorID > 0 {
		id := actorID
		report.GeneratedBy = &id
	}
	if err := s.repo.InsertReport(ctx, &report); err != nil {
		// Registry write failure should not lose the generated file.
		logger.Error("Svc.Generate: failed to register report", err, nil)
	}

	return &GeneratedReport{
		Filename: report.Name + ".csv",
		Content:  buf.Bytes(),
		Report:   report,
	}, nil
}

func (s *reportServiceImpl) ListReports(ctx context.Context) ([]domain.Report, error) {
	return s.repo.ListReports(ctx)
}

func (s *reportServiceImpl) lotRecords(ctx context.Context, from, to *time.Time) ([][]string, error) {
	lots, err := s.lots.ListLots(ctx)
	if err != nil {
		return nil, err
	}
	records := [][]string{{"codigo", "producto", "peso_kg", "fecha_tueste", "fecha_caducidad", "estado"}}
	for _, l := range lots {
		if !inRange(l.CreatedAt, from, to) {
			continue
		}
		records = append(records, []string{
			l.Code,
			l.ProductName,
			strconv.FormatFloat(l.WeightKg, 'f', 2, 64),
			l.RoastDate.Format("2006-01-02"),
			l.ExpiryDate.Format("2006-01-02"),
			l.Status,
		})
	}
	return records, nil
}

func (s *reportServiceImpl) productRecords(ctx context.Context) ([][]string, error) {
	products, err := s.products.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	records := [][]string{{"nombre", "stock", "stock_minimo", "precio", "estado"}}
	for _, p := range products {
		records = append(records, []string{
			p.Name,
			strconv.FormatFloat(p.Stock, 'f', 1, 64),
			strconv.FormatFloat(p.MinStock, 'f', 1, 64),
			strconv.FormatFloat(p.Price, 'f', 2, 64),
			p.Status,
		})
	}
	return records, nil
}

func (s *reportServiceImpl) alertRecords(ctx context.Context, from, to *time.Time) ([][]string, error) {
	alerts, err := s.alerts.ListAlerts(ctx)
	if err != nil {
		return nil, err
	}
	records := [][]string{{"titulo", "mensaje", "tipo", "prioridad", "estado", "fecha"}}
	for _, a := range alerts {
		if !inRange(a.CreatedAt, from, to) {
			continue
		}
		records = append(records, []string{
			a.Title,
			a.Message,
			string(a.Type),
			string(a.Priority),
			string(a.Status),
			a.CreatedAt.Format("2006-01-02 15:04"),
		})
	}
	return records, nil
}

func parseDateRange(start, end string) (*time.Time, *time.Time, error) {
	var from, to *time.Time
	if start != "" {
		t, err := time.Parse("2006-01-02", start)
		if err != nil {
			return nil, nil, ErrInvalidDateRange
		}
		from = &t
	}
	if end != "" {
		t, err := time.Parse("2006-01-02", end)
		if err != nil {
			return nil, nil, ErrInvalidDateRange
		}
		// inclusive end of day
		t = t.Add(24*time.Hour - time.Nanosecond)
		to = &t
	}
	if from != nil && to != nil && to.Before(*from) {
		return nil, nil, ErrInvalidDateRange
	}
	return from, to, nil
}

func inRange(t time.Time, from, to *time.Time) bool {
	if from != nil && t.Before(*from) {
		return false
	}
	if to != nil && t.After(*to) {
		return false
	}
	return true
}

package service

import (
	"context"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	alertdomain "github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/alert/domain"
	lotdomain "github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/lot/domain"
	productdomain "github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/product/domain"
	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/report/domain"
	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/report/repository/mocks"
)

var reportNow = time.Date(2025, 11, 10, 12, 0, 0, 0, time.UTC)

type stubLotSource struct{ lots []lotdomain.Lot }

func (s stubLotSource) ListLots(ctx context.Context) ([]lotdomain.Lot, error) { return s.lots, nil }

type stubProductSource struct{ products []productdomain.Product }

func (s stubProductSource) ListProducts(ctx context.Context) ([]productdomain.Product, error) {
	return s.products, nil
}

type stubAlertSource struct{ alerts []alertdomain.Alert }

func (s stubAlertSource) ListAlerts(ctx context.Context) ([]alertdomain.Alert, error) {
	return s.alerts, nil
}

func newTestReportService(repo *mocks.MockReportRepository, lots stubLotSource, products stubProductSource, alerts stubAlertSource) ReportService {
	svc := NewReportService(repo, lots, products, alerts).(*reportServiceImpl)
	svc.now = func() time.Time { return reportNow }
	return svc
}

func TestGenerateLotReportCSV(t *testing.T) {
	mockRepo := new(mocks.MockReportRepository)
	mockRepo.On("InsertReport", mock.Anything, mock.Anything).Return(nil)

	lots := stubLotSource{lots: []lotdomain.Lot{
		{
			Code:        "L-2025-001",
			ProductName: "Chiapas Altura",
			WeightKg:    12.5,
			RoastDate:   time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC),
			ExpiryDate:  time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
			Status:      lotdomain.StatusActive,
			CreatedAt:   time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC),
		},
	}}
	svc := newTestReportService(mockRepo, lots, stubProductSource{}, stubAlertSource{})

	generated, err := svc.Generate(context.Background(), 7, domain.GenerateReportRequest{Type: domain.TypeLots})

	assert.NoError(t, err)
	assert.Equal(t, "reporte-lotes-2025-11-10.csv", generated.Filename)
	assert.Equal(t, domain.TypeLots, generated.Report.Type)
	assert.Equal(t, domain.FormatCSV, generated.Report.Format)
	assert.NotNil(t, generated.Report.GeneratedBy)
	assert.Equal(t, 7, *generated.Report.GeneratedBy)

	records, err := csv.NewReader(strings.NewReader(string(generated.Content))).ReadAll()
	assert.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, []string{"codigo", "producto", "peso_kg", "fecha_tueste", "fecha_caducidad", "estado"}, records[0])
	assert.Equal(t, []string{"L-2025-001", "Chiapas Altura", "12.50", "2025-10-01", "2025-12-01", "Active"}, records[1])
	mockRepo.AssertExpectations(t)
}

func TestGenerateProductReportCSV(t *testing.T) {
	mockRepo := new(mocks.MockReportRepository)
	mockRepo.On("InsertReport", mock.Anything, mock.Anything).Return(nil)

	products := stubProductSource{products: []productdomain.Product{
		{Name: "Veracruz Lavado", Stock: 8, MinStock: 10, Price: 245.5, Status: productdomain.StatusActive},
	}}
	svc := newTestReportService(mockRepo, stubLotSource{}, products, stubAlertSource{})

	generated, err := svc.Generate(context.Background(), 0, domain.GenerateReportRequest{Type: domain.TypeProducts})

	assert.NoError(t, err)
	assert.Nil(t, generated.Report.GeneratedBy)

	records, err := csv.NewReader(strings.NewReader(string(generated.Content))).ReadAll()
	assert.NoError(t, err)
	assert.Equal(t, []string{"Veracruz Lavado", "8.0", "10.0", "245.50", "Active"}, records[1])
}

func TestGenerateAlertReportFiltersByDateRange(t *testing.T) {
	mockRepo := new(mocks.MockReportRepository)
	mockRepo.On("InsertReport", mock.Anything, mock.Anything).Return(nil)

	alerts := stubAlertSource{alerts: []alertdomain.Alert{
		{Title: "Stock bajo", Type: alertdomain.TypeStock, Priority: alertdomain.PriorityHigh, Status: alertdomain.StatusPending, CreatedAt: time.Date(2025, 11, 5, 10, 0, 0, 0, time.UTC)},
		{Title: "Caducidad próxima", Type: alertdomain.TypeExpiry, Priority: alertdomain.PriorityMedium, Status: alertdomain.StatusPending, CreatedAt: time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)},
	}}
	svc := newTestReportService(mockRepo, stubLotSource{}, stubProductSource{}, alerts)

	generated, err := svc.Generate(context.Background(), 1, domain.GenerateReportRequest{
		Type:      domain.TypeAlerts,
		StartDate: "2025-11-01",
		EndDate:   "2025-11-10",
	})

	assert.NoError(t, err)
	records, err := csv.NewReader(strings.NewReader(string(generated.Content))).ReadAll()
	assert.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, "Stock bajo", records[1][0])
}

func TestGenerateRejectsUnknownTypeAndBadRange(t *testing.T) {
	mockRepo := new(mocks.MockReportRepository)
	svc := newTestReportService(mockRepo, stubLotSource{}, stubProductSource{}, stubAlertSource{})

	_, err := svc.Generate(context.Background(), 1, domain.GenerateReportRequest{Type: "clientes"})
	assert.ErrorIs(t, err, ErrUnknownReportType)

	_, err = svc.Generate(context.Background(), 1, domain.GenerateReportRequest{
		Type:      domain.TypeLots,
		StartDate: "2025-11-10",
		EndDate:   "2025-11-01",
	})
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	mockRepo.AssertNotCalled(t, "InsertReport", mock.Anything, mock.Anything)
}

func TestGenerateRejectsNonCSVFormats(t *testing.T) {
	mockRepo := new(mocks.MockReportRepository)
	svc := newTestReportService(mockRepo, stubLotSource{}, stubProductSource{}, stubAlertSource{})

	for _, format := range []string{domain.FormatPDF, domain.FormatExcel} {
		_, err := svc.Generate(context.Background(), 1, domain.GenerateReportRequest{Type: domain.TypeLots, Format: format})
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	}
}

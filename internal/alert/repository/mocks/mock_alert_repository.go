package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/alert/domain"
)

type MockAlertRepository struct {
	mock.Mock
}

func (m *MockAlertRepository) ListStockViolations(ctx context.Context) ([]domain.StockViolation, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]domain.StockViolation), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAlertRepository) ListExpiringLots(ctx context.Context, days int, asOf time.Time) ([]domain.ExpiringLot, error) {
	args := m.Called(ctx, days, asOf)
	if l := args.Get(0); l != nil {
		return l.([]domain.ExpiringLot), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAlertRepository) InsertAlert(ctx context.Context, alert *domain.Alert) error {
	args := m.Called(ctx, alert)
	if alert != nil && args.Error(0) == nil {
		alert.ID = 999 // ID assigned by mock
	}
	return args.Error(0)
}

func (m *MockAlertRepository) ListAlerts(ctx context.Context) ([]domain.Alert, error) {
	args := m.Called(ctx)
	if a := args.Get(0); a != nil {
		return a.([]domain.Alert), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAlertRepository) GetAlertByID(ctx context.Context, id int) (*domain.Alert, error) {
	args := m.Called(ctx, id)
	if a := args.Get(0); a != nil {
		return a.(*domain.Alert), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAlertRepository) UpdateAlertStatus(ctx context.Context, id int, status domain.AlertStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockAlertRepository) DeleteAlert(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

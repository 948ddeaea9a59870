package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/report/domain"
)

type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) InsertReport(ctx context.Context, report *domain.Report) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockReportRepository) ListReports(ctx context.Context) ([]domain.Report, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Report), args.Error(1)
}

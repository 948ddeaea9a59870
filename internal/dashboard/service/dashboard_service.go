package service

import (
	"context"

	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/dashboard/domain"
	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/dashboard/repository"
	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/platform/logger"
)

type DashboardService interface {
	GetDashboard(ctx context.Context) (*domain.Dashboard, error)
}

type dashboardServiceImpl struct {
	repo repository.DashboardRepository
}

func NewDashboardService(repo repository.DashboardRepository) DashboardService {
	return &dashboardServiceImpl{repo: repo}
}

func (s *dashboardServiceImpl) GetDashboard(ctx context.Context) (*domain.Dashboard, error) {
	kpis, err := s.repo.GetKPIs(ctx)
	if err != nil {
		logger.Error("Svc.GetDashboard: KPI query failed", err, nil)
		return nil, err
	}
	alertsByType, err := s.repo.CountAlertsByType(ctx)
	if err != nil {
		logger.Error("Svc.GetDashboard: alert chart query failed", err, nil)
		return nil, err
	}
	lotsByStatus, err := s.repo.CountLotsByStatus(ctx)
	if err != nil {
		logger.Error("Svc.GetDashboard: lot chart query failed", err, nil)
		return nil, err
	}
	return &domain.Dashboard{
		KPIs:         *kpis,
		AlertsByType: alertsByType,
		LotsByStatus: lotsByStatus,
	}, nil
}

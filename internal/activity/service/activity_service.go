package service

import (
	"context"

	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/activity/domain"
	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/activity/repository"
	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/platform/logger"
)

const defaultListLimit = 50

type ActivityService interface {
	// Record writes an audit entry. Failures are logged and swallowed:
	// auditing must never fail the operation that triggered it.
	Record(ctx context.Context, userID int, action, detail string)
	ListRecent(ctx context.Context, limit int) ([]domain.Activity, error)
}

type activityServiceImpl struct {
	repo repository.ActivityRepository
}

func NewActivityService(repo repository.ActivityRepository) ActivityService {
	return &activityServiceImpl{repo: repo}
}

func (s *activityServiceImpl) Record(ctx context.Context, userID int, action, detail string) {
	a := &domain.Activity{Action: action, Detail: detail}
	if userID > 0 {
		id := userID
		a.UserID = &id
	}
	if err := s.repo.InsertActivity(ctx, a); err != nil {
		logger.Error("Svc.Record: failed to record activity "+action, err, nil)
	}
}

func (s *activityServiceImpl) ListRecent(ctx context.Context, limit int) ([]domain.Activity, error) {
	if limit <= 0 || limit > 200 {
		limit = defaultListLimit
	}
	return s.repo.ListRecent(ctx, limit)
}

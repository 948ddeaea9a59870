package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/lot/domain"
	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/lot/repository"
	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/platform/logger"
)

var ErrInvalidLotDates = errors.New("expiry date must be after roast date")

// ActivityRecorder receives audit entries for mutating operations. A nil
// recorder disables auditing; recording never fails the operation.
type ActivityRecorder interface {
	Record(ctx context.Context, userID int, action, detail string)
}

type LotService interface {
	CreateLot(ctx context.Context, actorID int, req domain.CreateLotRequest) (*domain.Lot, error)
	GetLot(ctx context.Context, id int) (*domain.Lot, error)
	ListLots(ctx context.Context) ([]domain.Lot, error)
	UpdateLot(ctx context.Context, actorID, id int, req domain.UpdateLotRequest) (*domain.Lot, error)
	UpdateLotStatus(ctx context.Context, actorID, id int, status string) error
	DeleteLot(ctx context.Context, actorID, id int) error
}

type lotServiceImpl struct {
	repo     repository.LotRepository
	activity ActivityRecorder
}

func NewLotService(repo repository.LotRepository, activity ActivityRecorder) LotService {
	return &lotServiceImpl{repo: repo, activity: activity}
}

func (s *lotServiceImpl) CreateLot(ctx context.Context, actorID int, req domain.CreateLotRequest) (*domain.Lot, error) {
	if !req.ExpiryDate.After(req.RoastDate) {
		return nil, ErrInvalidLotDates
	}
	l := &domain.Lot{
		Code:       strings.TrimSpace(req.Code),
		ProductID:  req.ProductID,
		Origin:     req.Origin,
		RoastType:  req.RoastType,
		WeightKg:   req.WeightKg,
		RoastDate:  req.RoastDate,
		ExpiryDate: req.ExpiryDate,
	}
	if err := s.repo.CreateLot(ctx, l); err != nil {
		logger.Error("Svc.CreateLot: repo error", err, nil)
		return nil, err
	}
	s.record(ctx, actorID, "lote.crear", fmt.Sprintf("Lote %s (id %d) creado", l.Code, l.ID))
	return l, nil
}

func (s *lotServiceImpl) GetLot(ctx context.Context, id int) (*domain.Lot, error) {
	return s.repo.GetLotByID(ctx, id)
}

func (s *lotServiceImpl) ListLots(ctx context.Context) ([]domain.Lot, error) {
	return s.repo.ListLots(ctx)
}

func (s *lotServiceImpl) UpdateLot(ctx context.Context, actorID, id int, req domain.UpdateLotRequest) (*domain.Lot, error) {
	if !req.ExpiryDate.After(req.RoastDate) {
		return nil, ErrInvalidLotDates
	}
	l, err := s.repo.GetLotByID(ctx, id)
	if err != nil {
		return nil, err
	}
	l.Origin = req.Origin
	l.RoastType = req.RoastType
	l.WeightKg = req.WeightKg
	l.RoastDate = req.RoastDate
	l.ExpiryDate = req.ExpiryDate

	if err := s.repo.UpdateLot(ctx, l); err != nil {
		logger.Error("Svc.UpdateLot: repo error", err, nil)
		return nil, err
	}
	s.record(ctx, actorID, "lote.actualizar", fmt.Sprintf("Lote %s (id %d) actualizado", l.Code, l.ID))
	return l, nil
}

func (s *lotServiceImpl) UpdateLotStatus(ctx context.Context, actorID, id int, status string) error {
	if _, err := s.repo.GetLotByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.UpdateLotStatus(ctx, id, status); err != nil {
		logger.Error("Svc.UpdateLotStatus: repo error", err, nil)
		return err
	}
	s.record(ctx, actorID, "lote.estado", fmt.Sprintf("Lote %d marcado como %s", id, status))
	return nil
}

func (s *lotServiceImpl) DeleteLot(ctx context.Context, actorID, id int) error {
	if err := s.repo.DeleteLot(ctx, id); err != nil {
		return err
	}
	s.record(ctx, actorID, "lote.eliminar", fmt.Sprintf("Lote %d eliminado", id))
	return nil
}

func (s *lotServiceImpl) record(ctx context.Context, actorID int, action, detail string) {
	if s.activity == nil {
		return
	}
	s.activity.Record(ctx, actorID, action, detail)
}

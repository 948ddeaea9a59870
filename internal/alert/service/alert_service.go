package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/alert/domain"
	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/alert/repository"
	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/platform/logger"
)

var (
	// ErrAlertsUnavailable means a scan or the final listing failed; the
	// caller never receives a partial alert set.
	ErrAlertsUnavailable   = errors.New("alerts unavailable")
	ErrInvalidStatusChange = errors.New("alert status can only move from PENDING to RESOLVED or DISMISSED")
)

// reconcileConcurrency bounds the per-entity check-then-insert fan-out.
const reconcileConcurrency = 4

type AlertService interface {
	// ReconcileAndList scans products and lots for threshold violations,
	// inserts the missing alerts (deduplicated against existing PENDING
	// ones) and returns the full alert list in display order.
	ReconcileAndList(ctx context.Context, actingUserID int) ([]domain.Alert, error)
	UpdateStatus(ctx context.Context, id int, status domain.AlertStatus) error
	Delete(ctx context.Context, id int) error
}

type Options struct {
	ExpiryWindowDays int // lookahead for expiry alerts, default 30
	HighPriorityDays int // daysLeft below this is HIGH, default 7
	Now              func() time.Time
}

type alertServiceImpl struct {
	repo             repository.AlertRepository
	expiryWindowDays int
	highPriorityDays int
	now              func() time.Time
}

func NewAlertService(repo repository.AlertRepository, opts Options) AlertService {
	if opts.ExpiryWindowDays <= 0 {
		opts.ExpiryWindowDays = 30
	}
	if opts.HighPriorityDays <= 0 {
		opts.HighPriorityDays = 7
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &alertServiceImpl{
		repo:             repo,
		expiryWindowDays: opts.ExpiryWindowDays,
		highPriorityDays: opts.HighPriorityDays,
		now:              opts.Now,
	}
}

func (s *alertServiceImpl) ReconcileAndList(ctx context.Context, actingUserID int) ([]domain.Alert, error) {
	now := s.now()

	violations, err := s.repo.ListStockViolations(ctx)
	if err != nil {
		logger.Error("Svc.ReconcileAndList: stock scan failed", err, nil)
		return nil, fmt.Errorf("%w: %v", ErrAlertsUnavailable, err)
	}
	expiring, err := s.repo.ListExpiringLots(ctx, s.expiryWindowDays, now)
	if err != nil {
		logger.Error("Svc.ReconcileAndList: expiry scan failed", err, nil)
		return nil, fmt.Errorf("%w: %v", ErrAlertsUnavailable, err)
	}

	// Each entity is an independent unit of work: an insert failure is
	// logged and skipped, it never aborts the remaining entities. Errors
	// are therefore swallowed inside the group.
	g := &errgroup.Group{}
	g.SetLimit(reconcileConcurrency)
	for _, v := range violations {
		v := v
		g.Go(func() error {
			s.raiseStockAlert(ctx, now, actingUserID, v)
			return nil
		})
	}
	for _, l := range expiring {
		l := l
		g.Go(func() error {
			s.raiseExpiryAlert(ctx, now, actingUserID, l)
			return nil
		})
	}
	g.Wait()

	alerts, err := s.repo.ListAlerts(ctx)
	if err != nil {
		logger.Error("Svc.ReconcileAndList: listing failed", err, nil)
		return nil, fmt.Errorf("%w: %v", ErrAlertsUnavailable, err)
	}
	return alerts, nil
}

func (s *alertServiceImpl) raiseStockAlert(ctx context.Context, now time.Time, actingUserID int, v domain.StockViolation) {
	priority := domain.PriorityMedium
	message := fmt.Sprintf("El producto %s está en stock mínimo (%.1f/%.1f)", v.ProductName, v.Stock, v.MinStock)
	if v.Stock == 0 {
		priority = domain.PriorityHigh
		message = fmt.Sprintf("El producto %s está agotado", v.ProductName)
	}

	refType := domain.RefProduct
	productID := v.ProductID
	alert := &domain.Alert{
		Title:     "Stock bajo",
		Message:   message,
		Type:      domain.TypeStock,
		Priority:  priority,
		Status:    domain.StatusPending,
		RefType:   &refType,
		RefID:     &productID,
		CreatedAt: now,
	}
	if actingUserID > 0 {
		userID := actingUserID
		alert.GeneratedBy = &userID
	}
	s.insertAlert(ctx, alert, fmt.Sprintf("product %d", v.ProductID))
}

func (s *alertServiceImpl) raiseExpiryAlert(ctx context.Context, now time.Time, actingUserID int, l domain.ExpiringLot) {
	daysLeft := int(math.Ceil(l.ExpiryDate.Sub(now).Hours() / 24))
	priority := domain.PriorityMedium
	if daysLeft < s.highPriorityDays {
		priority = domain.PriorityHigh
	}

	refType := domain.RefLot
	lotID := l.LotID
	alert := &domain.Alert{
		Title:     "Caducidad próxima",
		Message:   fmt.Sprintf("El lote %s (%s) caduca en %d días", l.Code, l.ProductName, daysLeft),
		Type:      domain.TypeExpiry,
		Priority:  priority,
		Status:    domain.StatusPending,
		RefType:   &refType,
		RefID:     &lotID,
		CreatedAt: now,
	}
	if actingUserID > 0 {
		userID := actingUserID
		alert.GeneratedBy = &userID
	}
	s.insertAlert(ctx, alert, fmt.Sprintf("lot %d", l.LotID))
}

func (s *alertServiceImpl) insertAlert(ctx context.Context, alert *domain.Alert, entity string) {
	err := s.repo.InsertAlert(ctx, alert)
	switch {
	case err == nil:
	case errors.Is(err, repository.ErrDuplicateAlert):
		// Already flagged and still pending, nothing to do.
	case errors.Is(err, repository.ErrInvalidReference):
		logger.Warn("Svc.ReconcileAndList: %s vanished before insert, skipping", entity)
	default:
		// Skip and retry on the next reconciliation.
		logger.Error("Svc.ReconcileAndList: insert failed for "+entity, err, nil)
	}
}

func (s *alertServiceImpl) UpdateStatus(ctx context.Context, id int, status domain.AlertStatus) error {
	if status != domain.StatusResolved && status != domain.StatusDismissed {
		return ErrInvalidStatusChange
	}
	err := s.repo.UpdateAlertStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, repository.ErrAlertNotPending) {
			return ErrInvalidStatusChange
		}
		return err
	}
	return nil
}

func (s *alertServiceImpl) Delete(ctx context.Context, id int) error {
	return s.repo.DeleteAlert(ctx, id)
}

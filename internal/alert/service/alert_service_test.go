package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/alert/domain"
	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/alert/repository"
	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/alert/repository/mocks"
)

var testNow = time.Date(2025, 11, 10, 12, 0, 0, 0, time.UTC)

func newTestService(repo repository.AlertRepository) AlertService {
	return NewAlertService(repo, Options{
		ExpiryWindowDays: 30,
		HighPriorityDays: 7,
		Now:              func() time.Time { return testNow },
	})
}

func stockAlertFor(productID int) interface{} {
	return mock.MatchedBy(func(a *domain.Alert) bool {
		return a.Type == domain.TypeStock && a.RefID != nil && *a.RefID == productID
	})
}

func expiryAlertFor(lotID int) interface{} {
	return mock.MatchedBy(func(a *domain.Alert) bool {
		return a.Type == domain.TypeExpiry && a.RefID != nil && *a.RefID == lotID
	})
}

func TestAlertService_ReconcileAndList_StockScenario(t *testing.T) {
	// P1 out of stock, P2 below minimum, P3 not violating (absent from scan).
	mockRepo := new(mocks.MockAlertRepository)
	svc := newTestService(mockRepo)
	ctx := context.TODO()

	violations := []domain.StockViolation{
		{ProductID: 1, ProductName: "Espresso Mexhi", Stock: 0, MinStock: 10},
		{ProductID: 2, ProductName: "Blend Casa", Stock: 15, MinStock: 20},
	}
	mockRepo.On("ListStockViolations", ctx).Return(violations, nil).Once()
	mockRepo.On("ListExpiringLots", ctx, 30, testNow).Return([]domain.ExpiringLot{}, nil).Once()

	var p1Alert, p2Alert *domain.Alert
	mockRepo.On("InsertAlert", ctx, stockAlertFor(1)).Run(func(args mock.Arguments) {
		p1Alert = args.Get(1).(*domain.Alert)
	}).Return(nil).Once()
	mockRepo.On("InsertAlert", ctx, stockAlertFor(2)).Run(func(args mock.Arguments) {
		p2Alert = args.Get(1).(*domain.Alert)
	}).Return(nil).Once()
	mockRepo.On("ListAlerts", ctx).Return([]domain.Alert{}, nil).Once()

	_, err := svc.ReconcileAndList(ctx, 7)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)

	assert.Equal(t, domain.PriorityHigh, p1Alert.Priority)
	assert.Contains(t, p1Alert.Message, "agotado")
	assert.Equal(t, domain.StatusPending, p1Alert.Status)
	assert.Equal(t, 7, *p1Alert.GeneratedBy)
	assert.Equal(t, testNow, p1Alert.CreatedAt)

	assert.Equal(t, domain.PriorityMedium, p2Alert.Priority)
	assert.Contains(t, p2Alert.Message, "15.0/20.0")
}

func TestAlertService_ReconcileAndList_StockAtMinimumIsMedium(t *testing.T) {
	mockRepo := new(mocks.MockAlertRepository)
	svc := newTestService(mockRepo)
	ctx := context.TODO()

	violations := []domain.StockViolation{
		{ProductID: 5, ProductName: "Descafeinado", Stock: 8, MinStock: 8},
	}
	mockRepo.On("ListStockViolations", ctx).Return(violations, nil).Once()
	mockRepo.On("ListExpiringLots", ctx, 30, testNow).Return([]domain.ExpiringLot{}, nil).Once()

	var captured *domain.Alert
	mockRepo.On("InsertAlert", ctx, stockAlertFor(5)).Run(func(args mock.Arguments) {
		captured = args.Get(1).(*domain.Alert)
	}).Return(nil).Once()
	mockRepo.On("ListAlerts", ctx).Return([]domain.Alert{}, nil).Once()

	_, err := svc.ReconcileAndList(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, domain.PriorityMedium, captured.Priority)
}

func TestAlertService_ReconcileAndList_ExpiryPriorities(t *testing.T) {
	mockRepo := new(mocks.MockAlertRepository)
	svc := newTestService(mockRepo)
	ctx := context.TODO()

	// 5 days left -> HIGH, 10 days left -> MEDIUM, 29 days left -> MEDIUM.
	// The 31-day lot never appears: the scan window excludes it.
	expiring := []domain.ExpiringLot{
		{LotID: 10, Code: "L-2025-010", ProductName: "Espresso Mexhi", ExpiryDate: testNow.AddDate(0, 0, 5)},
		{LotID: 11, Code: "L-2025-011", ProductName: "Blend Casa", ExpiryDate: testNow.AddDate(0, 0, 10)},
		{LotID: 12, Code: "L-2025-012", ProductName: "Descafeinado", ExpiryDate: testNow.AddDate(0, 0, 29)},
	}
	mockRepo.On("ListStockViolations", ctx).Return([]domain.StockViolation{}, nil).Once()
	mockRepo.On("ListExpiringLots", ctx, 30, testNow).Return(expiring, nil).Once()

	captured := map[int]*domain.Alert{}
	var mu sync.Mutex
	for _, l := range expiring {
		lotID := l.LotID
		mockRepo.On("InsertAlert", ctx, expiryAlertFor(lotID)).Run(func(args mock.Arguments) {
			mu.Lock()
			captured[lotID] = args.Get(1).(*domain.Alert)
			mu.Unlock()
		}).Return(nil).Once()
	}
	mockRepo.On("ListAlerts", ctx).Return([]domain.Alert{}, nil).Once()

	_, err := svc.ReconcileAndList(ctx, 1)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)

	assert.Equal(t, domain.PriorityHigh, captured[10].Priority)
	assert.Contains(t, captured[10].Message, "L-2025-010")
	assert.Contains(t, captured[10].Message, "5 días")

	assert.Equal(t, domain.PriorityMedium, captured[11].Priority)
	assert.Contains(t, captured[11].Message, "10 días")

	assert.Equal(t, domain.PriorityMedium, captured[12].Priority)
	assert.Contains(t, captured[12].Message, "29 días")
}

func TestAlertService_ReconcileAndList_DuplicateIsBenign(t *testing.T) {
	// A pending alert already exists for the product; repeated calls keep
	// exactly one and still succeed.
	mockRepo := new(mocks.MockAlertRepository)
	svc := newTestService(mockRepo)
	ctx := context.TODO()

	violations := []domain.StockViolation{
		{ProductID: 3, ProductName: "Orgánico Chiapas", Stock: 2, MinStock: 5},
	}
	existing := []domain.Alert{{ID: 40, Type: domain.TypeStock, Status: domain.StatusPending}}

	for i := 0; i < 3; i++ {
		mockRepo.On("ListStockViolations", ctx).Return(violations, nil).Once()
		mockRepo.On("ListExpiringLots", ctx, 30, testNow).Return([]domain.ExpiringLot{}, nil).Once()
		mockRepo.On("InsertAlert", ctx, stockAlertFor(3)).Return(repository.ErrDuplicateAlert).Once()
		mockRepo.On("ListAlerts", ctx).Return(existing, nil).Once()

		alerts, err := svc.ReconcileAndList(ctx, 1)
		assert.NoError(t, err)
		assert.Len(t, alerts, 1)
	}
	mockRepo.AssertExpectations(t)
}

func TestAlertService_ReconcileAndList_PartialInsertFailure(t *testing.T) {
	// P2's insert fails transiently; the call still succeeds and P1's alert
	// is present. P2 is only retried on the next reconciliation.
	mockRepo := new(mocks.MockAlertRepository)
	svc := newTestService(mockRepo)
	ctx := context.TODO()

	violations := []domain.StockViolation{
		{ProductID: 1, ProductName: "Espresso Mexhi", Stock: 0, MinStock: 10},
		{ProductID: 2, ProductName: "Blend Casa", Stock: 15, MinStock: 20},
	}
	mockRepo.On("ListStockViolations", ctx).Return(violations, nil).Once()
	mockRepo.On("ListExpiringLots", ctx, 30, testNow).Return([]domain.ExpiringLot{}, nil).Once()
	mockRepo.On("InsertAlert", ctx, stockAlertFor(1)).Return(nil).Once()
	mockRepo.On("InsertAlert", ctx, stockAlertFor(2)).Return(errors.New("connection reset")).Once()

	listed := []domain.Alert{{ID: 50, Type: domain.TypeStock, Status: domain.StatusPending}}
	mockRepo.On("ListAlerts", ctx).Return(listed, nil).Once()

	alerts, err := svc.ReconcileAndList(ctx, 1)
	assert.NoError(t, err)
	assert.Len(t, alerts, 1)
	mockRepo.AssertExpectations(t)
}

func TestAlertService_ReconcileAndList_VanishedEntitySkipped(t *testing.T) {
	mockRepo := new(mocks.MockAlertRepository)
	svc := newTestService(mockRepo)
	ctx := context.TODO()

	expiring := []domain.ExpiringLot{
		{LotID: 20, Code: "L-GONE", ProductName: "Espresso Mexhi", ExpiryDate: testNow.AddDate(0, 0, 3)},
	}
	mockRepo.On("ListStockViolations", ctx).Return([]domain.StockViolation{}, nil).Once()
	mockRepo.On("ListExpiringLots", ctx, 30, testNow).Return(expiring, nil).Once()
	mockRepo.On("InsertAlert", ctx, expiryAlertFor(20)).Return(repository.ErrInvalidReference).Once()
	mockRepo.On("ListAlerts", ctx).Return([]domain.Alert{}, nil).Once()

	_, err := svc.ReconcileAndList(ctx, 1)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestAlertService_ReconcileAndList_ScanFailureAborts(t *testing.T) {
	mockRepo := new(mocks.MockAlertRepository)
	svc := newTestService(mockRepo)
	ctx := context.TODO()

	t.Run("stock scan fails", func(t *testing.T) {
		mockRepo.On("ListStockViolations", ctx).Return(nil, errors.New("relation missing")).Once()

		alerts, err := svc.ReconcileAndList(ctx, 1)
		assert.Nil(t, alerts)
		assert.ErrorIs(t, err, ErrAlertsUnavailable)
		mockRepo.AssertNotCalled(t, "ListAlerts", ctx)
	})

	t.Run("expiry scan fails", func(t *testing.T) {
		mockRepo.On("ListStockViolations", ctx).Return([]domain.StockViolation{}, nil).Once()
		mockRepo.On("ListExpiringLots", ctx, 30, testNow).Return(nil, errors.New("timeout")).Once()

		alerts, err := svc.ReconcileAndList(ctx, 1)
		assert.Nil(t, alerts)
		assert.ErrorIs(t, err, ErrAlertsUnavailable)
		mockRepo.AssertNotCalled(t, "ListAlerts", ctx)
	})

	t.Run("final listing fails", func(t *testing.T) {
		mockRepo.On("ListStockViolations", ctx).Return([]domain.StockViolation{}, nil).Once()
		mockRepo.On("ListExpiringLots", ctx, 30, testNow).Return([]domain.ExpiringLot{}, nil).Once()
		mockRepo.On("ListAlerts", ctx).Return(nil, errors.New("timeout")).Once()

		alerts, err := svc.ReconcileAndList(ctx, 1)
		assert.Nil(t, alerts)
		assert.ErrorIs(t, err, ErrAlertsUnavailable)
	})
}

func TestAlertService_ReconcileAndList_ReturnsListingOrder(t *testing.T) {
	// Ordering is produced by the repository; the service must return it
	// untouched: PENDING first, newest first inside each group.
	mockRepo := new(mocks.MockAlertRepository)
	svc := newTestService(mockRepo)
	ctx := context.TODO()

	listed := []domain.Alert{
		{ID: 4, Status: domain.StatusPending, CreatedAt: testNow},
		{ID: 2, Status: domain.StatusPending, CreatedAt: testNow.Add(-time.Hour)},
		{ID: 3, Status: domain.StatusResolved, CreatedAt: testNow.Add(-time.Minute)},
		{ID: 1, Status: domain.StatusDismissed, CreatedAt: testNow.Add(-2 * time.Hour)},
	}
	mockRepo.On("ListStockViolations", ctx).Return([]domain.StockViolation{}, nil).Once()
	mockRepo.On("ListExpiringLots", ctx, 30, testNow).Return([]domain.ExpiringLot{}, nil).Once()
	mockRepo.On("ListAlerts", ctx).Return(listed, nil).Once()

	alerts, err := svc.ReconcileAndList(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, []int{4, 2, 3, 1}, []int{alerts[0].ID, alerts[1].ID, alerts[2].ID, alerts[3].ID})
}

func TestAlertService_UpdateStatus(t *testing.T) {
	mockRepo := new(mocks.MockAlertRepository)
	svc := newTestService(mockRepo)
	ctx := context.TODO()

	t.Run("resolve pending alert", func(t *testing.T) {
		mockRepo.On("UpdateAlertStatus", ctx, 7, domain.StatusResolved).Return(nil).Once()
		assert.NoError(t, svc.UpdateStatus(ctx, 7, domain.StatusResolved))
	})

	t.Run("pending is not a valid target", func(t *testing.T) {
		err := svc.UpdateStatus(ctx, 7, domain.StatusPending)
		assert.ErrorIs(t, err, ErrInvalidStatusChange)
		mockRepo.AssertNotCalled(t, "UpdateAlertStatus", ctx, 7, domain.StatusPending)
	})

	t.Run("terminal alerts stay terminal", func(t *testing.T) {
		mockRepo.On("UpdateAlertStatus", ctx, 8, domain.StatusDismissed).Return(repository.ErrAlertNotPending).Once()
		err := svc.UpdateStatus(ctx, 8, domain.StatusDismissed)
		assert.ErrorIs(t, err, ErrInvalidStatusChange)
	})

	t.Run("missing alert", func(t *testing.T) {
		mockRepo.On("UpdateAlertStatus", ctx, 9, domain.StatusResolved).Return(repository.ErrAlertNotFound).Once()
		err := svc.UpdateStatus(ctx, 9, domain.StatusResolved)
		assert.ErrorIs(t, err, repository.ErrAlertNotFound)
	})

	mockRepo.AssertExpectations(t)
}

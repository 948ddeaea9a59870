package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/lot/domain"
	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/lot/repository"
	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/lot/repository/mocks"
)

func TestLotService_CreateLot(t *testing.T) {
	mockRepo := new(mocks.MockLotRepository)
	svc := NewLotService(mockRepo, nil)
	ctx := context.TODO()

	roast := time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)
	req := domain.CreateLotRequest{
		Code: " L-2025-042 ", ProductID: 3, WeightKg: 12.5,
		RoastDate: roast, ExpiryDate: roast.AddDate(0, 6, 0),
	}

	t.Run("creates active lot with trimmed code", func(t *testing.T) {
		mockRepo.On("CreateLot", ctx, mock.MatchedBy(func(l *domain.Lot) bool {
			return l.Code == "L-2025-042" && l.ProductID == 3
		})).Return(nil).Once()

		l, err := svc.CreateLot(ctx, 1, req)
		assert.NoError(t, err)
		assert.Equal(t, 201, l.ID) // ID set by mock
		mockRepo.AssertExpectations(t)
	})

	t.Run("rejects expiry before roast", func(t *testing.T) {
		freshRepo := new(mocks.MockLotRepository)
		freshSvc := NewLotService(freshRepo, nil)
		bad := req
		bad.ExpiryDate = roast.AddDate(0, 0, -1)
		_, err := freshSvc.CreateLot(ctx, 1, bad)
		assert.ErrorIs(t, err, ErrInvalidLotDates)
		freshRepo.AssertNotCalled(t, "CreateLot", ctx, mock.Anything)
	})

	t.Run("duplicate code", func(t *testing.T) {
		mockRepo.On("CreateLot", ctx, mock.Anything).Return(repository.ErrLotCodeConflict).Once()
		_, err := svc.CreateLot(ctx, 1, req)
		assert.ErrorIs(t, err, repository.ErrLotCodeConflict)
	})
}

func TestLotService_UpdateLotStatus(t *testing.T) {
	mockRepo := new(mocks.MockLotRepository)
	svc := NewLotService(mockRepo, nil)
	ctx := context.TODO()

	t.Run("marks lot depleted", func(t *testing.T) {
		mockRepo.On("GetLotByID", ctx, 9).Return(&domain.Lot{ID: 9, Status: domain.StatusActive}, nil).Once()
		mockRepo.On("UpdateLotStatus", ctx, 9, domain.StatusDepleted).Return(nil).Once()

		assert.NoError(t, svc.UpdateLotStatus(ctx, 1, 9, domain.StatusDepleted))
		mockRepo.AssertExpectations(t)
	})

	t.Run("missing lot", func(t *testing.T) {
		mockRepo.On("GetLotByID", ctx, 10).Return(nil, repository.ErrLotNotFound).Once()

		err := svc.UpdateLotStatus(ctx, 1, 10, domain.StatusExpired)
		assert.ErrorIs(t, err, repository.ErrLotNotFound)
	})
}

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/lot/domain"
)

type MockLotRepository struct {
	mock.Mock
}

func (m *MockLotRepository) CreateLot(ctx context.Context, lot *domain.Lot) error {
	args := m.Called(ctx, lot)
	if lot != nil && args.Error(0) == nil {
		lot.ID = 201 // ID assigned by mock
	}
	return args.Error(0)
}

func (m *MockLotRepository) GetLotByID(ctx context.Context, id int) (*domain.Lot, error) {
	args := m.Called(ctx, id)
	if l := args.Get(0); l != nil {
		return l.(*domain.Lot), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLotRepository) ListLots(ctx context.Context) ([]domain.Lot, error) {
	args := m.Called(ctx)
	if list := args.Get(0); list != nil {
		return list.([]domain.Lot), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLotRepository) UpdateLot(ctx context.Context, lot *domain.Lot) error {
	args := m.Called(ctx, lot)
	return args.Error(0)
}

func (m *MockLotRepository) UpdateLotStatus(ctx context.Context, id int, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockLotRepository) DeleteLot(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/product/domain"
)

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) CreateProduct(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	if product != nil && args.Error(0) == nil {
		product.ID = 101 // ID assigned by mock
	}
	return args.Error(0)
}

func (m *MockProductRepository) GetProductByID(ctx context.Context, id int) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if p := args.Get(0); p != nil {
		return p.(*domain.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	if list := args.Get(0); list != nil {
		return list.([]domain.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductRepository) UpdateProduct(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) AdjustStock(ctx context.Context, id int, delta float64) (*domain.Product, error) {
	args := m.Called(ctx, id, delta)
	if p := args.Get(0); p != nil {
		return p.(*domain.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductRepository) DeleteProduct(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/product/domain"
	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/product/repository"
	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/product/repository/mocks"
)

func TestProductService_CreateProduct(t *testing.T) {
	mockRepo := new(mocks.MockProductRepository)
	svc := NewProductService(mockRepo, nil)
	ctx := context.TODO()

	req := domain.CreateProductRequest{Name: "  Espresso Mexhi ", Stock: 20, MinStock: 5, Price: 180}

	t.Run("trims name and creates", func(t *testing.T) {
		mockRepo.On("CreateProduct", ctx, mock.MatchedBy(func(p *domain.Product) bool {
			return p.Name == "Espresso Mexhi" && p.MinStock == 5
		})).Return(nil).Once()

		p, err := svc.CreateProduct(ctx, 1, req)
		assert.NoError(t, err)
		assert.Equal(t, 101, p.ID) // ID set by mock
		mockRepo.AssertExpectations(t)
	})

	t.Run("duplicate name", func(t *testing.T) {
		mockRepo.On("CreateProduct", ctx, mock.Anything).Return(repository.ErrProductConflict).Once()

		_, err := svc.CreateProduct(ctx, 1, req)
		assert.ErrorIs(t, err, repository.ErrProductConflict)
	})
}

func TestProductService_AdjustStock(t *testing.T) {
	mockRepo := new(mocks.MockProductRepository)
	svc := NewProductService(mockRepo, nil)
	ctx := context.TODO()

	t.Run("restock", func(t *testing.T) {
		updated := &domain.Product{ID: 7, Name: "Blend Casa", Stock: 12}
		mockRepo.On("AdjustStock", ctx, 7, 4.0).Return(updated, nil).Once()

		p, err := svc.AdjustStock(ctx, 1, 7, domain.AdjustStockRequest{Delta: 4, Reason: "reabastecimiento"})
		assert.NoError(t, err)
		assert.Equal(t, 12.0, p.Stock)
	})

	t.Run("cannot go negative", func(t *testing.T) {
		mockRepo.On("AdjustStock", ctx, 7, -50.0).Return(nil, repository.ErrStockOutOfBounds).Once()

		_, err := svc.AdjustStock(ctx, 1, 7, domain.AdjustStockRequest{Delta: -50})
		assert.ErrorIs(t, err, repository.ErrStockOutOfBounds)
	})

	mockRepo.AssertExpectations(t)
}

func TestProductService_UpdateProduct(t *testing.T) {
	mockRepo := new(mocks.MockProductRepository)
	svc := NewProductService(mockRepo, nil)
	ctx := context.TODO()

	existing := &domain.Product{ID: 3, Name: "Descafeinado", Stock: 9, MinStock: 4, Status: domain.StatusActive}
	mockRepo.On("GetProductByID", ctx, 3).Return(existing, nil).Once()
	mockRepo.On("UpdateProduct", ctx, mock.MatchedBy(func(p *domain.Product) bool {
		return p.ID == 3 && p.MinStock == 6 && p.Stock == 9 // stock untouched by update
	})).Return(nil).Once()

	p, err := svc.UpdateProduct(ctx, 1, 3, domain.UpdateProductRequest{
		Name: "Descafeinado", MinStock: 6, Price: 150, Status: domain.StatusActive,
	})
	assert.NoError(t, err)
	assert.Equal(t, 6.0, p.MinStock)
	mockRepo.AssertExpectations(t)
}

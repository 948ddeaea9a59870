package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/platform/logger"
	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/product/domain"
	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/product/repository"
)

// ActivityRecorder receives audit entries for mutating operations. A nil
// recorder disables auditing; recording never fails the operation.
type ActivityRecorder interface {
	Record(ctx context.Context, userID int, action, detail string)
}

type ProductService interface {
	CreateProduct(ctx context.Context, actorID int, req domain.CreateProductRequest) (*domain.Product, error)
	GetProduct(ctx context.Context, id int) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	UpdateProduct(ctx context.Context, actorID, id int, req domain.UpdateProductRequest) (*domain.Product, error)
	AdjustStock(ctx context.Context, actorID, id int, req domain.AdjustStockRequest) (*domain.Product, error)
	DeleteProduct(ctx context.Context, actorID, id int) error
}

type productServiceImpl struct {
	repo     repository.ProductRepository
	activity ActivityRecorder
}

func NewProductService(repo repository.ProductRepository, activity ActivityRecorder) ProductService {
	return &productServiceImpl{repo: repo, activity: activity}
}

func (s *productServiceImpl) CreateProduct(ctx context.Context, actorID int, req domain.CreateProductRequest) (*domain.Product, error) {
	p := &domain.Product{
		Name:     strings.TrimSpace(req.Name),
		Origin:   req.Origin,
		Stock:    req.Stock,
		MinStock: req.MinStock,
		Price:    req.Price,
	}
	if err := s.repo.CreateProduct(ctx, p); err != nil {
		logger.Error("Svc.CreateProduct: repo error", err, nil)
		return nil, err
	}
	s.record(ctx, actorID, "producto.crear", fmt.Sprintf("Producto %s (id %d) creado", p.Name, p.ID))
	return p, nil
}

func (s *productServiceImpl) GetProduct(ctx context.Context, id int) (*domain.Product, error) {
	return s.repo.GetProductByID(ctx, id)
}

func (s *productServiceImpl) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.repo.ListProducts(ctx)
}

func (s *productServiceImpl) UpdateProduct(ctx context.Context, actorID, id int, req domain.UpdateProductRequest) (*domain.Product, error) {
	p, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Name = strings.TrimSpace(req.Name)
	p.Origin = req.Origin
	p.MinStock = req.MinStock
	p.Price = req.Price
	p.Status = req.Status

	if err := s.repo.UpdateProduct(ctx, p); err != nil {
		logger.Error("Svc.UpdateProduct: repo error", err, nil)
		return nil, err
	}
	s.record(ctx, actorID, "producto.actualizar", fmt.Sprintf("Producto %s (id %d) actualizado", p.Name, p.ID))
	return p, nil
}

func (s *productServiceImpl) AdjustStock(ctx context.Context, actorID, id int, req domain.AdjustStockRequest) (*domain.Product, error) {
	p, err := s.repo.AdjustStock(ctx, id, req.Delta)
	if err != nil {
		logger.Error("Svc.AdjustStock: repo error", err, nil)
		return nil, err
	}
	s.record(ctx, actorID, "producto.stock", fmt.Sprintf("Stock de %s ajustado en %+.1f (%s)", p.Name, req.Delta, req.Reason))
	return p, nil
}

func (s *productServiceImpl) DeleteProduct(ctx context.Context, actorID, id int) error {
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return err
	}
	s.record(ctx, actorID, "producto.eliminar", fmt.Sprintf("Producto %d eliminado", id))
	return nil
}

func (s *productServiceImpl) record(ctx context.Context, actorID int, action, detail string) {
	if s.activity == nil {
		return
	}
	s.activity.Record(ctx, actorID, action, detail)
}

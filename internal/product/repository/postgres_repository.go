package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/platform/database"
	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/platform/logger"
	"github.com/Gatitobailarin/mcm-mexhi-coffee-manager/internal/product/domain"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrProductConflict  = errors.New("a product with this name already exists")
	ErrStockOutOfBounds = errors.New("stock adjustment results in negative stock")
)

type ProductRepository interface {
	CreateProduct(ctx context.Context, product *domain.Product) error
	GetProductByID(ctx context.Context, id int) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	UpdateProduct(ctx context.Context, product *domain.Product) error
	AdjustStock(ctx context.Context, id int, delta float64) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id int) error
}

type postgresProductRepository struct {
	db *sql.DB
}

func NewPostgresProductRepository(db *sql.DB) ProductRepository {
	return &postgresProductRepository{db: db}
}

func (r *postgresProductRepository) CreateProduct(ctx context.Context, product *domain.Product) error {
	query := `INSERT INTO productos (nombre, origen, stock, stock_minimo, precio, estado, fecha, fecha_actualizacion)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	product.Status = domain.StatusActive
	product.CreatedAt = time.Now()
	product.UpdatedAt = product.CreatedAt

	var origin sql.NullString
	if product.Origin != nil {
		origin = sql.NullString{String: *product.Origin, Valid: true}
	}

	err := r.db.QueryRowContext(ctx, query,
		product.Name, origin, product.Stock, product.MinStock, product.Price,
		product.Status, product.CreatedAt, product.UpdatedAt,
	).Scan(&product.ID)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return ErrProductConflict
		}
		logger.Error("CreateProduct: failed to insert product", err, nil)
		return err
	}
	return nil
}

func (r *postgresProductRepository) GetProductByID(ctx context.Context, id int) (*domain.Product, error) {
	query := `SELECT id, nombre, origen, stock, stock_minimo, precio, estado, fecha, fecha_actualizacion
              FROM productos WHERE id = $1`
	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		logger.Error("GetProductByID: query failed", err, nil)
		return nil, err
	}
	return p, nil
}

func (r *postgresProductRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	query := `SELECT id, nombre, origen, stock, stock_minimo, precio, estado, fecha, fecha_actualizacion
              FROM productos ORDER BY nombre ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.Error("ListProducts: query failed", err, nil)
		return nil, err
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows.Scan)
		if err != nil {
			logger.Error("ListProducts: scan failed", err, nil)
			return nil, err
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

func (r *postgresProductRepository) UpdateProduct(ctx context.Context, product *domain.Product) error {
	query := `UPDATE productos SET nombre = $1, origen = $2, stock_minimo = $3, precio = $4, estado = $5, fecha_actualizacion = $6
              WHERE id = $7`
	product.UpdatedAt = time.Now()

	var origin sql.NullString
	if product.Origin != nil {
		origin = sql.NullString{String: *product.Origin, Valid: true}
	}

	res, err := r.db.ExecContext(ctx, query,
		product.Name, origin, product.MinStock, product.Price, product.Status, product.UpdatedAt, product.ID,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return ErrProductConflict
		}
		logger.Error("UpdateProduct: exec failed", err, nil)
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// AdjustStock applies a signed delta and refuses to go below zero in a
// single statement, so concurrent adjustments stay consistent.
func (r *postgresProductRepository) AdjustStock(ctx context.Context, id int, delta float64) (*domain.Product, error) {
	query := `UPDATE productos SET stock = stock + $1, fecha_actualizacion = NOW()
              WHERE id = $2 AND stock + $1 >= 0
              RETURNING id, nombre, origen, stock, stock_minimo, precio, estado, fecha, fecha_actualizacion`
	p, err := scanProduct(r.db.QueryRowContext(ctx, query, delta, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			if _, getErr := r.GetProductByID(ctx, id); errors.Is(getErr, ErrProductNotFound) {
				return nil, ErrProductNotFound
			}
			return nil, ErrStockOutOfBounds
		}
		logger.Error("AdjustStock: exec failed", err, nil)
		return nil, err
	}
	return p, nil
}

func (r *postgresProductRepository) DeleteProduct(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM productos WHERE id = $1`, id)
	if err != nil {
		logger.Error("DeleteProduct: exec failed", err, nil)
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func scanProduct(scan func(dest ...interface{}) error) (*domain.Product, error) {
	var p domain.Product
	var origin sql.NullString
	err := scan(&p.ID, &p.Name, &origin, &p.Stock, &p.MinStock, &p.Price, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if origin.Valid {
		p.Origin = &origin.String
	}
	return &p, nil
}

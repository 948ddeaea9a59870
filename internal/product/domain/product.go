package domain

import (
	"time"
)

const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

type Product struct {
	ID        int       `json:"id"`
	Name      string    `json:"nombre"`
	Origin    *string   `json:"origen,omitempty"`
	Stock     float64   `json:"stock"`
	MinStock  float64   `json:"stockMinimo"`
	Price     float64   `json:"precio"` // float for simplicity, decimal is better for money
	Status    string    `json:"estado"`
	CreatedAt time.Time `json:"fecha"`
	UpdatedAt time.Time `json:"fechaActualizacion"`
}

type CreateProductRequest struct {
	Name     string  `json:"nombre" binding:"required"`
	Origin   *string `json:"origen"`
	Stock    float64 `json:"stock" binding:"gte=0"`
	MinStock float64 `json:"stockMinimo" binding:"gte=0"`
	Price    float64 `json:"precio" binding:"gte=0"`
}

type UpdateProductRequest struct {
	Name     string  `json:"nombre" binding:"required"`
	Origin   *string `json:"origen"`
	MinStock float64 `json:"stockMinimo" binding:"gte=0"`
	Price    float64 `json:"precio" binding:"gte=0"`
	Status   string  `json:"estado" binding:"required"`
}

// AdjustStockRequest changes the stock level by a signed delta: positive on
// restock, negative on consumption.
type AdjustStockRequest struct {
	Delta  float64 `json:"delta" binding:"required"`
	Reason string  `json:"motivo"`
}

package domain

import (
	"time"
)

// Lot status is an open set in the stored data; these are the values the
// application itself writes. Only Active lots feed the expiry scan.
const (
	StatusActive   = "Active"
	StatusExpired  = "Expired"
	StatusDepleted = "Depleted"
)

type Lot struct {
	ID          int       `json:"id"`
	Code        string    `json:"codigo"`
	ProductID   int       `json:"productoId"`
	ProductName string    `json:"productoNombre,omitempty"`
	Origin      *string   `json:"origen,omitempty"`
	RoastType   *string   `json:"tipoTueste,omitempty"`
	WeightKg    float64   `json:"pesoKg"`
	RoastDate   time.Time `json:"fechaTueste"`
	ExpiryDate  time.Time `json:"fechaCaducidad"`
	Status      string    `json:"estado"`
	CreatedAt   time.Time `json:"fecha"`
	UpdatedAt   time.Time `json:"fechaActualizacion"`
}

type CreateLotRequest struct {
	Code       string    `json:"codigo" binding:"required"`
	ProductID  int       `json:"productoId" binding:"required"`
	Origin     *string   `json:"origen"`
	RoastType  *string   `json:"tipoTueste"`
	WeightKg   float64   `json:"pesoKg" binding:"required,gt=0"`
	RoastDate  time.Time `json:"fechaTueste" binding:"required"`
	ExpiryDate time.Time `json:"fechaCaducidad" binding:"required"`
}

type UpdateLotRequest struct {
	Origin     *string   `json:"origen"`
	RoastType  *string   `json:"tipoTueste"`
	WeightKg   float64   `json:"pesoKg" binding:"required,gt=0"`
	RoastDate  time.Time `json:"fechaTueste" binding:"required"`
	ExpiryDate time.Time `json:"fechaCaducidad" binding:"required"`
}

type UpdateLotStatusRequest struct {
	Status string `json:"estado" binding:"required"`
}

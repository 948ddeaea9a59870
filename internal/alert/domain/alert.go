package domain

import (
	"time"
)

type AlertType string

const (
	TypeStock  AlertType = "STOCK"
	TypeExpiry AlertType = "EXPIRY"
	TypeSystem AlertType = "SYSTEM"
)

type AlertPriority string

const (
	PriorityHigh   AlertPriority = "HIGH"
	PriorityMedium AlertPriority = "MEDIUM"
)

type AlertStatus string

const (
	StatusPending   AlertStatus = "PENDING"
	StatusResolved  AlertStatus = "RESOLVED"
	StatusDismissed AlertStatus = "DISMISSED"
)

type RefType string

const (
	RefProduct RefType = "PRODUCT"
	RefLot     RefType = "LOT"
)

type Alert struct {
	ID          int           `json:"id"`
	Title       string        `json:"titulo"`
	Message     string        `json:"mensaje"`
	Type        AlertType     `json:"tipo"`
	Priority    AlertPriority `json:"prioridad"`
	Status      AlertStatus   `json:"estado"`
	RefType     *RefType      `json:"refTipo,omitempty"`
	RefID       *int          `json:"refId,omitempty"`
	GeneratedBy *int          `json:"generadoPor,omitempty"`
	CreatedAt   time.Time     `json:"fecha"`
}

// StockViolation is a product at or below its minimum stock, as returned by
// the stock scan.
type StockViolation struct {
	ProductID   int
	ProductName string
	Stock       float64
	MinStock    float64
}

// ExpiringLot is an active lot whose expiry date falls inside the lookahead
// window of the expiry scan.
type ExpiringLot struct {
	LotID       int
	Code        string
	ProductName string
	ExpiryDate  time.Time
}

type UpdateAlertStatusRequest struct {
	Status AlertStatus `json:"estado" binding:"required"`
}

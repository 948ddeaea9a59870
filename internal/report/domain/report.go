package domain

import (
	"time"
)

const (
	TypeLots     = "lotes"
	TypeProducts = "productos"
	TypeAlerts   = "alertas"
)

const (
	FormatCSV   = "csv"
	FormatPDF   = "pdf"
	FormatExcel = "excel"
)

// Report is a registry entry for a generated export. The file itself is
// streamed to the client, only the metadata is kept.
type Report struct {
	ID          string    `json:"id"`
	Name        string    `json:"nombre"`
	Type        string    `json:"tipo"`
	Format      string    `json:"formato"`
	GeneratedBy *int      `json:"generadoPor,omitempty"`
	CreatedAt   time.Time `json:"fecha"`
}

type GenerateReportRequest struct {
	Type      string `json:"type" binding:"required"`
	Format    string `json:"format"`
	StartDate string `json:"startDate"` // YYYY-MM-DD, optional
	EndDate   string `json:"endDate"`   // YYYY-MM-DD, optional
}

package domain

type KPIs struct {
	ActiveLots       int     `json:"lotesActivos"`
	LowStockProducts int     `json:"productosBajoStock"`
	PendingAlerts    int     `json:"alertasActivas"`
	ActiveWeightKg   float64 `json:"pesoActivoKg"`
}

type ChartSlice struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

type Dashboard struct {
	KPIs         KPIs         `json:"kpis"`
	AlertsByType []ChartSlice `json:"alertasPorTipo"`
	LotsByStatus []ChartSlice `json:"lotesPorEstado"`
}

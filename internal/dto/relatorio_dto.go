package dto

import "github.com/shopspring/decimal"

// CategoriaCount is scanned directly from the grouped query.
type CategoriaCount struct {
	Categoria string `json:"categoria"`
	Count     int64  `json:"count"`
}

// TipoCount groups movement totals by direction.
type TipoCount struct {
	Tipo  string `json:"tipo"`
	Count int64  `json:"count"`
}

type DashboardResponse struct {
	TotalProducts   int64                  `json:"total_products"`
	LowStockCount   int64                  `json:"low_stock_count"`
	TotalValue      decimal.Decimal        `json:"total_value"`
	RecentMovements []MovimentacaoResponse `json:"recent_movements"`
	Categories      []CategoriaCount       `json:"categories"`
	MovementStats   []TipoCount            `json:"movement_stats"`
}

package models

import "github.com/shopspring/decimal"

// StockSummaryRow is one item in the stock summary report, with its
// valuation at average cost.
type StockSummaryRow struct {
	ItemID       string          `json:"item_id"`
	Name         string          `json:"name"`
	Unit         string          `json:"unit"`
	CurrentStock int64           `json:"current_stock"`
	AverageCost  decimal.Decimal `json:"average_cost"`
	StockValue   decimal.Decimal `json:"stock_value"`
	ReorderLevel int64           `json:"reorder_level"`
	LowStock     bool            `json:"low_stock"`
}

// DashboardStats aggregates the headline numbers for the dashboard.
type DashboardStats struct {
	TotalItems      int64           `json:"total_items"`
	TotalStockValue decimal.Decimal `json:"total_stock_value"`
	LowStockCount   int64           `json:"low_stock_count"`
	InwardCount     int64           `json:"inward_count"`
	OutwardCount    int64           `json:"outward_count"`
	ReturnCount     int64           `json:"return_count"`
	RecentMovements []Movement      `json:"recent_movements"`
}

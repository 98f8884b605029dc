package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item represents a tracked stock item in the mirror store.
// Name is unique case-insensitively; inward receipts naming an existing
// item merge into it instead of creating a duplicate.
type Item struct {
	ID               string          `json:"id" db:"id"`
	Name             string          `json:"name" db:"name"`
	Unit             string          `json:"unit" db:"unit"`
	AverageCost      decimal.Decimal `json:"average_cost" db:"average_cost"`
	CurrentStock     int64           `json:"current_stock" db:"current_stock"`
	ReorderLevel     int64           `json:"reorder_level" db:"reorder_level"`
	Description      *string         `json:"description,omitempty" db:"description"`
	OpeningStockDate *time.Time      `json:"opening_stock_date,omitempty" db:"opening_stock_date"`
	CreatedAt        time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at" db:"updated_at"`
}

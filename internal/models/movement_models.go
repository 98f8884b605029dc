package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Movement types mirrored from the ledger core.
const (
	MovementInward  = "INWARD"
	MovementOutward = "OUTWARD"
	MovementReturn  = "RETURN"
)

// Movement represents one immutable stock-affecting record. Item name
// and unit are denormalized snapshots taken when the movement was made,
// so reports stay stable even after item edits.
type Movement struct {
	ID                string           `json:"id" db:"id"`
	ItemID            string           `json:"item_id" db:"item_id"`
	ItemName          string           `json:"item_name" db:"item_name"`
	Unit              string           `json:"unit" db:"unit"`
	MovementType      string           `json:"movement_type" db:"movement_type"`
	Quantity          int64            `json:"quantity" db:"quantity"`
	MovementDate      time.Time        `json:"movement_date" db:"movement_date"`
	PricePerUnit      *decimal.Decimal `json:"price_per_unit,omitempty" db:"price_per_unit"`
	BillNumber        *string          `json:"bill_number,omitempty" db:"bill_number"`
	BillDate          *time.Time       `json:"bill_date,omitempty" db:"bill_date"`
	ReferenceNumber   *string          `json:"reference_number,omitempty" db:"reference_number"`
	SourceDestination *string          `json:"source_destination,omitempty" db:"source_destination"`
	Mode              *string          `json:"mode,omitempty" db:"mode"`
	LaborerName       *string          `json:"laborer_name,omitempty" db:"laborer_name"`
	CreatedAt         time.Time        `json:"created_at" db:"created_at"`
}

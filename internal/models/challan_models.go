package models

import "time"

// Challan dispatch modes.
const (
	ChallanModeSite    = "SITE"
	ChallanModeFactory = "FACTORY"
)

// Challan represents a delivery challan: the dispatch document grouping
// the line items of one outward issue. Immutable once recorded.
type Challan struct {
	ID            string        `json:"id" db:"id"`
	ChallanNumber string        `json:"challan_number" db:"challan_number"`
	ChallanDate   time.Time     `json:"challan_date" db:"challan_date"`
	Mode          string        `json:"mode" db:"mode"`
	CompanyName   *string       `json:"company_name,omitempty" db:"company_name"`
	SiteName      *string       `json:"site_name,omitempty" db:"site_name"`
	VehicleNumber *string       `json:"vehicle_number,omitempty" db:"vehicle_number"`
	LaborerName   *string       `json:"laborer_name,omitempty" db:"laborer_name"`
	MovementID    *string       `json:"movement_id,omitempty" db:"movement_id"`
	CreatedAt     time.Time     `json:"created_at" db:"created_at"`
	Items         []ChallanItem `json:"items,omitempty"`
}

// ChallanItem is one dispatched line on a challan.
type ChallanItem struct {
	ID        int64  `json:"id" db:"id"`
	ChallanID string `json:"challan_id" db:"challan_id"`
	ItemID    string `json:"item_id" db:"item_id"`
	ItemName  string `json:"item_name" db:"item_name"`
	Unit      string `json:"unit" db:"unit"`
	Quantity  int64  `json:"quantity" db:"quantity"`
}

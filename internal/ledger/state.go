package ledger

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// MovementKind identifies the direction of a stock movement.
type MovementKind string

const (
	MovementInward  MovementKind = "INWARD"
	MovementOutward MovementKind = "OUTWARD"
	MovementReturn  MovementKind = "RETURN"
)

// ChallanMode identifies where an outward dispatch is headed.
type ChallanMode string

const (
	ModeSite    ChallanMode = "SITE"
	ModeFactory ChallanMode = "FACTORY"
)

// Item is a tracked stock item. Name acts as a secondary unique key,
// matched case-insensitively when inward receipts are merged.
type Item struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Unit             string          `json:"unit"`
	AverageCost      decimal.Decimal `json:"average_cost"`
	CurrentStock     int64           `json:"current_stock"`
	ReorderLevel     int64           `json:"reorder_level"`
	Description      string          `json:"description,omitempty"`
	OpeningStockDate *time.Time      `json:"opening_stock_date,omitempty"`
}

// Movement is an immutable record of one stock-affecting event. The item
// name and unit are denormalized snapshots taken at recording time.
type Movement struct {
	ID                string           `json:"id"`
	ItemID            string           `json:"item_id"`
	ItemName          string           `json:"item_name"`
	Unit              string           `json:"unit"`
	Kind              MovementKind     `json:"kind"`
	Quantity          int64            `json:"quantity"`
	Date              time.Time        `json:"date"`
	PricePerUnit      *decimal.Decimal `json:"price_per_unit,omitempty"`
	BillNumber        string           `json:"bill_number,omitempty"`
	BillDate          *time.Time       `json:"bill_date,omitempty"`
	ReferenceNumber   string           `json:"reference_number,omitempty"`
	SourceDestination string           `json:"source_destination,omitempty"`
	Mode              ChallanMode      `json:"mode,omitempty"`
	LaborerName       string           `json:"laborer_name,omitempty"`
}

// ChallanLine is one dispatched line item on a delivery challan.
type ChallanLine struct {
	ItemID   string `json:"item_id"`
	ItemName string `json:"item_name"`
	Unit     string `json:"unit"`
	Quantity int64  `json:"quantity"`
}

// Challan groups the outward movements issued together as one dispatch
// document. It is immutable once recorded.
type Challan struct {
	ID            string        `json:"id"`
	Number        string        `json:"number"`
	Date          time.Time     `json:"date"`
	Mode          ChallanMode   `json:"mode"`
	CompanyName   string        `json:"company_name,omitempty"`
	SiteName      string        `json:"site_name,omitempty"`
	VehicleNumber string        `json:"vehicle_number,omitempty"`
	LaborerName   string        `json:"laborer_name,omitempty"`
	Lines         []ChallanLine `json:"line_items"`
}

// State is one immutable snapshot of the whole ledger. Reducers return a
// fresh snapshot and never modify the one they were given.
type State struct {
	Items     []Item     `json:"items"`
	Movements []Movement `json:"movements"`
	Challans  []Challan  `json:"challans"`
}

// EmptyState returns the zero snapshot persisted stores fall back to.
func EmptyState() State {
	return State{Items: []Item{}, Movements: []Movement{}, Challans: []Challan{}}
}

// clone copies the snapshot's slices so appends and element replacement
// cannot leak into the previous snapshot.
func (s State) clone() State {
	next := State{
		Items:     make([]Item, len(s.Items)),
		Movements: make([]Movement, len(s.Movements)),
		Challans:  make([]Challan, len(s.Challans)),
	}
	copy(next.Items, s.Items)
	copy(next.Movements, s.Movements)
	copy(next.Challans, s.Challans)
	return next
}

func (s State) itemIndexByID(id string) int {
	if id == "" {
		return -1
	}
	for i := range s.Items {
		if s.Items[i].ID == id {
			return i
		}
	}
	return -1
}

func (s State) itemIndexByName(name string) int {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return -1
	}
	for i := range s.Items {
		if strings.EqualFold(s.Items[i].Name, trimmed) {
			return i
		}
	}
	return -1
}

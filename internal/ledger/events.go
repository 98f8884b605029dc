package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event is one ledger transition. Events carry everything the reducer
// needs; the reducer itself never reaches outside the snapshot.
type Event interface {
	isEvent()
}

// Outcome reports whether an event changed the snapshot. Events that
// reference a missing item are ignored rather than failed, so callers
// that care get the status here instead of diffing states.
type Outcome int

const (
	Applied Outcome = iota
	IgnoredMissingItem
)

// InwardEvent records a stock receipt. If neither the id nor the name
// (case-insensitive) resolves to an existing item, a new item is created.
// Optional fields override the item only when explicitly supplied.
type InwardEvent struct {
	ItemID            string
	ItemName          string
	Unit              string
	Quantity          int64
	PricePerUnit      *decimal.Decimal
	Description       *string
	ReorderLevel      *int64
	OpeningStockDate  *time.Time
	Date              time.Time
	MovementID        string
	BillNumber        string
	BillDate          *time.Time
	SourceDestination string
}

// OutwardEvent records a stock issue to a site or factory. Quantities
// beyond available stock are accepted but clamp stock at zero.
type OutwardEvent struct {
	ItemID            string
	Quantity          int64
	Date              time.Time
	MovementID        string
	Mode              ChallanMode
	ReferenceNumber   string
	SourceDestination string
	LaborerName       string
}

// ReturnEvent records a stock-increasing reversal of a prior outward.
// Average cost is not affected.
type ReturnEvent struct {
	ItemID          string
	Quantity        int64
	Date            time.Time
	MovementID      string
	ReferenceNumber string
	LaborerName     string
}

// AddChallanEvent appends a delivery challan. The reducer does not
// cross-check the challan lines against recorded movements; callers keep
// the two consistent.
type AddChallanEvent struct {
	Challan Challan
}

// ItemPatch carries the fields an explicit item edit may change. Nil
// fields are left untouched by the merge. CurrentStock and AverageCost
// deliberately bypass the movement-derived values so manual corrections
// stay possible.
type ItemPatch struct {
	Name             *string
	Unit             *string
	Description      *string
	ReorderLevel     *int64
	CurrentStock     *int64
	AverageCost      *decimal.Decimal
	OpeningStockDate *time.Time
}

// UpdateItemEvent merges a patch into an existing item.
type UpdateItemEvent struct {
	ItemID string
	Patch  ItemPatch
}

// DeleteItemEvent removes an item and cascades to every movement that
// references it. Challans are left untouched.
type DeleteItemEvent struct {
	ItemID string
}

func (InwardEvent) isEvent()     {}
func (OutwardEvent) isEvent()    {}
func (ReturnEvent) isEvent()     {}
func (AddChallanEvent) isEvent() {}
func (UpdateItemEvent) isEvent() {}
func (DeleteItemEvent) isEvent() {}

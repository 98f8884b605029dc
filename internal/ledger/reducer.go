package ledger

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Apply reduces one event onto a snapshot and returns the next snapshot.
// It is a total function: invalid quantities are floored to zero and
// events referencing a missing item leave the snapshot unchanged with an
// IgnoredMissingItem outcome. The input snapshot is never mutated.
func Apply(s State, e Event) (State, Outcome) {
	switch ev := e.(type) {
	case InwardEvent:
		return applyInward(s, ev)
	case OutwardEvent:
		return applyOutward(s, ev)
	case ReturnEvent:
		return applyReturn(s, ev)
	case AddChallanEvent:
		return applyAddChallan(s, ev)
	case UpdateItemEvent:
		return applyUpdateItem(s, ev)
	case DeleteItemEvent:
		return applyDeleteItem(s, ev)
	}
	return s, Applied
}

// WeightedAverage recomputes the running average cost after receiving
// addQty units at the given price on top of prevQty units at prevAvg.
// A zero resulting quantity resets the average to zero.
func WeightedAverage(prevAvg decimal.Decimal, prevQty int64, price decimal.Decimal, addQty int64) decimal.Decimal {
	total := prevQty + addQty
	if total == 0 {
		return decimal.Zero
	}
	prevValue := prevAvg.Mul(decimal.NewFromInt(prevQty))
	addValue := price.Mul(decimal.NewFromInt(addQty))
	return prevValue.Add(addValue).Div(decimal.NewFromInt(total))
}

func applyInward(s State, e InwardEvent) (State, Outcome) {
	next := s.clone()
	qty := floorQuantity(e.Quantity)

	idx := next.itemIndexByID(e.ItemID)
	if idx < 0 {
		idx = next.itemIndexByName(e.ItemName)
	}

	var item Item
	if idx >= 0 {
		item = next.Items[idx]
		price := item.AverageCost
		if e.PricePerUnit != nil {
			price = *e.PricePerUnit
		}
		item.AverageCost = WeightedAverage(item.AverageCost, item.CurrentStock, price, qty)
		item.CurrentStock += qty
		if e.Unit != "" {
			item.Unit = e.Unit
		}
		if e.Description != nil {
			item.Description = *e.Description
		}
		if e.ReorderLevel != nil {
			item.ReorderLevel = *e.ReorderLevel
		}
		if e.OpeningStockDate != nil {
			item.OpeningStockDate = e.OpeningStockDate
		}
		next.Items[idx] = item
	} else {
		price := decimal.Zero
		if e.PricePerUnit != nil {
			price = *e.PricePerUnit
		}
		item = Item{
			ID:               orGenerated(e.ItemID),
			Name:             strings.TrimSpace(e.ItemName),
			Unit:             e.Unit,
			AverageCost:      price,
			CurrentStock:     qty,
			OpeningStockDate: e.OpeningStockDate,
		}
		if e.Description != nil {
			item.Description = *e.Description
		}
		if e.ReorderLevel != nil {
			item.ReorderLevel = *e.ReorderLevel
		}
		next.Items = append(next.Items, item)
	}

	next.Movements = append(next.Movements, Movement{
		ID:                orGenerated(e.MovementID),
		ItemID:            item.ID,
		ItemName:          item.Name,
		Unit:              item.Unit,
		Kind:              MovementInward,
		Quantity:          qty,
		Date:              e.Date,
		PricePerUnit:      e.PricePerUnit,
		BillNumber:        e.BillNumber,
		BillDate:          e.BillDate,
		SourceDestination: e.SourceDestination,
	})
	return next, Applied
}

func applyOutward(s State, e OutwardEvent) (State, Outcome) {
	idx := s.itemIndexByID(e.ItemID)
	if idx < 0 {
		return s, IgnoredMissingItem
	}
	next := s.clone()
	qty := floorQuantity(e.Quantity)

	item := next.Items[idx]
	item.CurrentStock -= qty
	if item.CurrentStock < 0 {
		item.CurrentStock = 0
	}
	next.Items[idx] = item

	next.Movements = append(next.Movements, Movement{
		ID:                orGenerated(e.MovementID),
		ItemID:            item.ID,
		ItemName:          item.Name,
		Unit:              item.Unit,
		Kind:              MovementOutward,
		Quantity:          qty,
		Date:              e.Date,
		Mode:              e.Mode,
		ReferenceNumber:   e.ReferenceNumber,
		SourceDestination: e.SourceDestination,
		LaborerName:       e.LaborerName,
	})
	return next, Applied
}

func applyReturn(s State, e ReturnEvent) (State, Outcome) {
	idx := s.itemIndexByID(e.ItemID)
	if idx < 0 {
		return s, IgnoredMissingItem
	}
	next := s.clone()
	qty := floorQuantity(e.Quantity)

	item := next.Items[idx]
	item.CurrentStock += qty
	next.Items[idx] = item

	next.Movements = append(next.Movements, Movement{
		ID:              orGenerated(e.MovementID),
		ItemID:          item.ID,
		ItemName:        item.Name,
		Unit:            item.Unit,
		Kind:            MovementReturn,
		Quantity:        qty,
		Date:            e.Date,
		ReferenceNumber: e.ReferenceNumber,
		LaborerName:     e.LaborerName,
	})
	return next, Applied
}

func applyAddChallan(s State, e AddChallanEvent) (State, Outcome) {
	next := s.clone()
	challan := e.Challan
	challan.ID = orGenerated(challan.ID)
	next.Challans = append(next.Challans, challan)
	return next, Applied
}

func applyUpdateItem(s State, e UpdateItemEvent) (State, Outcome) {
	idx := s.itemIndexByID(e.ItemID)
	if idx < 0 {
		return s, IgnoredMissingItem
	}
	next := s.clone()
	next.Items[idx] = mergeItemPatch(next.Items[idx], e.Patch)
	return next, Applied
}

// mergeItemPatch applies only the explicitly supplied patch fields and
// leaves everything else as it was.
func mergeItemPatch(item Item, p ItemPatch) Item {
	if p.Name != nil {
		item.Name = *p.Name
	}
	if p.Unit != nil {
		item.Unit = *p.Unit
	}
	if p.Description != nil {
		item.Description = *p.Description
	}
	if p.ReorderLevel != nil {
		item.ReorderLevel = *p.ReorderLevel
	}
	if p.CurrentStock != nil {
		item.CurrentStock = *p.CurrentStock
	}
	if p.AverageCost != nil {
		item.AverageCost = *p.AverageCost
	}
	if p.OpeningStockDate != nil {
		item.OpeningStockDate = p.OpeningStockDate
	}
	return item
}

func applyDeleteItem(s State, e DeleteItemEvent) (State, Outcome) {
	idx := s.itemIndexByID(e.ItemID)
	if idx < 0 {
		return s, IgnoredMissingItem
	}
	next := s.clone()
	next.Items = append(next.Items[:idx], next.Items[idx+1:]...)

	kept := next.Movements[:0]
	for _, m := range next.Movements {
		if m.ItemID != e.ItemID {
			kept = append(kept, m)
		}
	}
	next.Movements = kept
	return next, Applied
}

// floorQuantity coerces invalid quantities to zero instead of failing.
func floorQuantity(q int64) int64 {
	if q < 0 {
		return 0
	}
	return q
}

func orGenerated(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}

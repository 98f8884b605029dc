package ledger

import (
	"sort"
	"time"
)

// LowStock returns the items at or below their reorder level, most
// overdrawn first.
func LowStock(s State) []Item {
	low := []Item{}
	for _, item := range s.Items {
		if item.CurrentStock <= item.ReorderLevel {
			low = append(low, item)
		}
	}
	sort.SliceStable(low, func(i, j int) bool {
		return low[i].CurrentStock-low[i].ReorderLevel < low[j].CurrentStock-low[j].ReorderLevel
	})
	return low
}

// RecentMovements returns up to n movements of the given kind, newest
// first. An empty kind matches every movement.
func RecentMovements(s State, kind MovementKind, n int) []Movement {
	recent := []Movement{}
	for _, m := range s.Movements {
		if kind == "" || m.Kind == kind {
			recent = append(recent, m)
		}
	}
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].Date.After(recent[j].Date)
	})
	if n >= 0 && len(recent) > n {
		recent = recent[:n]
	}
	return recent
}

// MovementFilter selects movements for range and category reports. Zero
// time bounds are open ends; the range is inclusive at calendar-day
// granularity.
type MovementFilter struct {
	From        time.Time
	To          time.Time
	Kind        MovementKind
	Mode        ChallanMode
	LaborerName string
	ItemID      string
}

// FilterMovements returns the movements matching every set filter field.
func FilterMovements(s State, f MovementFilter) []Movement {
	matched := []Movement{}
	for _, m := range s.Movements {
		if f.Kind != "" && m.Kind != f.Kind {
			continue
		}
		if f.Mode != "" && m.Mode != f.Mode {
			continue
		}
		if f.LaborerName != "" && m.LaborerName != f.LaborerName {
			continue
		}
		if f.ItemID != "" && m.ItemID != f.ItemID {
			continue
		}
		if !f.From.IsZero() && dayOf(m.Date).Before(dayOf(f.From)) {
			continue
		}
		if !f.To.IsZero() && dayOf(m.Date).After(dayOf(f.To)) {
			continue
		}
		matched = append(matched, m)
	}
	return matched
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

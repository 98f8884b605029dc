package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func TestInwardCreatesItem(t *testing.T) {
	state, outcome := Apply(EmptyState(), InwardEvent{
		ItemID:       "A",
		ItemName:     "Bolt",
		Unit:         "pcs",
		Quantity:     100,
		PricePerUnit: decPtr("2"),
	})

	require.Equal(t, Applied, outcome)
	require.Len(t, state.Items, 1)
	item := state.Items[0]
	require.Equal(t, "A", item.ID)
	require.Equal(t, "Bolt", item.Name)
	require.EqualValues(t, 100, item.CurrentStock)
	require.True(t, item.AverageCost.Equal(dec("2")), "average cost %s", item.AverageCost)

	require.Len(t, state.Movements, 1)
	m := state.Movements[0]
	require.Equal(t, MovementInward, m.Kind)
	require.Equal(t, "A", m.ItemID)
	require.Equal(t, "Bolt", m.ItemName)
	require.EqualValues(t, 100, m.Quantity)
}

func TestInwardGeneratesIDsWhenMissing(t *testing.T) {
	state, _ := Apply(EmptyState(), InwardEvent{ItemName: "Cement", Unit: "bag", Quantity: 10})
	require.NotEmpty(t, state.Items[0].ID)
	require.NotEmpty(t, state.Movements[0].ID)
	require.True(t, state.Items[0].AverageCost.IsZero())
}

func TestInwardWeightedAverage(t *testing.T) {
	state, _ := Apply(EmptyState(), InwardEvent{ItemID: "A", ItemName: "Bolt", Quantity: 10, PricePerUnit: decPtr("2")})
	state, _ = Apply(state, InwardEvent{ItemID: "A", ItemName: "Bolt", Quantity: 30, PricePerUnit: decPtr("4")})

	// (2*10 + 4*30) / 40 = 3.5
	require.True(t, state.Items[0].AverageCost.Equal(dec("3.5")), "average cost %s", state.Items[0].AverageCost)
	require.EqualValues(t, 40, state.Items[0].CurrentStock)
}

func TestInwardWithoutPriceKeepsAverage(t *testing.T) {
	state, _ := Apply(EmptyState(), InwardEvent{ItemID: "A", ItemName: "Bolt", Quantity: 10, PricePerUnit: decPtr("5")})
	state, _ = Apply(state, InwardEvent{ItemID: "A", ItemName: "Bolt", Quantity: 90})

	require.True(t, state.Items[0].AverageCost.Equal(dec("5")), "average cost %s", state.Items[0].AverageCost)
	require.EqualValues(t, 100, state.Items[0].CurrentStock)
}

func TestInwardMergesByNameCaseInsensitive(t *testing.T) {
	state, _ := Apply(EmptyState(), InwardEvent{ItemID: "A", ItemName: "Bolt", Quantity: 60, PricePerUnit: decPtr("2")})
	state, _ = Apply(state, InwardEvent{ItemID: "B", ItemName: "bolt", Quantity: 40, PricePerUnit: decPtr("2")})

	require.Len(t, state.Items, 1)
	require.Equal(t, "A", state.Items[0].ID)
	require.Equal(t, "Bolt", state.Items[0].Name)
	require.EqualValues(t, 100, state.Items[0].CurrentStock)
	// both movements land on the surviving item
	for _, m := range state.Movements {
		require.Equal(t, "A", m.ItemID)
	}
}

func TestInwardOverridesOnlySuppliedFields(t *testing.T) {
	desc := "galvanized"
	reorder := int64(25)
	state, _ := Apply(EmptyState(), InwardEvent{ItemID: "A", ItemName: "Bolt", Unit: "pcs", Quantity: 10, Description: &desc, ReorderLevel: &reorder})
	state, _ = Apply(state, InwardEvent{ItemID: "A", ItemName: "Bolt", Quantity: 5})

	item := state.Items[0]
	require.Equal(t, "galvanized", item.Description)
	require.EqualValues(t, 25, item.ReorderLevel)
	require.Equal(t, "pcs", item.Unit)
}

func TestInwardFloorsNegativeQuantity(t *testing.T) {
	state, _ := Apply(EmptyState(), InwardEvent{ItemID: "A", ItemName: "Bolt", Quantity: -7})
	require.EqualValues(t, 0, state.Items[0].CurrentStock)
	require.EqualValues(t, 0, state.Movements[0].Quantity)
	require.True(t, state.Items[0].AverageCost.IsZero())
}

func TestOutwardSubtractsAndClamps(t *testing.T) {
	state, _ := Apply(EmptyState(), InwardEvent{ItemID: "A", ItemName: "Bolt", Quantity: 100, PricePerUnit: decPtr("2")})

	state, outcome := Apply(state, OutwardEvent{ItemID: "A", Quantity: 30, Mode: ModeSite})
	require.Equal(t, Applied, outcome)
	require.EqualValues(t, 70, state.Items[0].CurrentStock)

	// over-issue clamps at zero instead of going negative
	state, _ = Apply(state, OutwardEvent{ItemID: "A", Quantity: 1000})
	require.EqualValues(t, 0, state.Items[0].CurrentStock)

	state, _ = Apply(state, ReturnEvent{ItemID: "A", Quantity: 5})
	require.EqualValues(t, 5, state.Items[0].CurrentStock)
	require.Len(t, state.Movements, 4)
}

func TestStockNeverNegativeAtAnyPrefix(t *testing.T) {
	state := EmptyState()
	events := []Event{
		InwardEvent{ItemID: "A", ItemName: "Rod", Quantity: 10},
		OutwardEvent{ItemID: "A", Quantity: 15},
		ReturnEvent{ItemID: "A", Quantity: 3},
		OutwardEvent{ItemID: "A", Quantity: 1},
		InwardEvent{ItemID: "A", ItemName: "Rod", Quantity: 4},
	}
	for _, e := range events {
		state, _ = Apply(state, e)
		require.GreaterOrEqual(t, state.Items[0].CurrentStock, int64(0))
	}
	// 10 -15(clamped to 0) +3 -1 +4
	require.EqualValues(t, 6, state.Items[0].CurrentStock)
}

func TestReturnDoesNotChangeAverageCost(t *testing.T) {
	state, _ := Apply(EmptyState(), InwardEvent{ItemID: "A", ItemName: "Bolt", Quantity: 10, PricePerUnit: decPtr("3")})
	state, _ = Apply(state, ReturnEvent{ItemID: "A", Quantity: 90})

	require.True(t, state.Items[0].AverageCost.Equal(dec("3")))
	require.EqualValues(t, 100, state.Items[0].CurrentStock)
}

func TestMissingItemEventsAreNoOps(t *testing.T) {
	base, _ := Apply(EmptyState(), InwardEvent{ItemID: "A", ItemName: "Bolt", Quantity: 10, PricePerUnit: decPtr("2")})

	events := []Event{
		OutwardEvent{ItemID: "ghost", Quantity: 5},
		ReturnEvent{ItemID: "ghost", Quantity: 5},
		UpdateItemEvent{ItemID: "ghost", Patch: ItemPatch{Name: strPtr("x")}},
		DeleteItemEvent{ItemID: "ghost"},
	}
	for _, e := range events {
		next, outcome := Apply(base, e)
		require.Equal(t, IgnoredMissingItem, outcome)
		require.Equal(t, base, next)
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	base, _ := Apply(EmptyState(), InwardEvent{ItemID: "A", ItemName: "Bolt", Quantity: 10, PricePerUnit: decPtr("2")})
	snapshot := base.clone()

	_, _ = Apply(base, OutwardEvent{ItemID: "A", Quantity: 4})
	_, _ = Apply(base, InwardEvent{ItemID: "A", ItemName: "Bolt", Quantity: 1})
	_, _ = Apply(base, DeleteItemEvent{ItemID: "A"})

	require.Equal(t, snapshot, base)
}

func TestUpdateItemMergesPatch(t *testing.T) {
	state, _ := Apply(EmptyState(), InwardEvent{ItemID: "A", ItemName: "Bolt", Unit: "pcs", Quantity: 10, PricePerUnit: decPtr("2")})

	stock := int64(500)
	state, outcome := Apply(state, UpdateItemEvent{
		ItemID: "A",
		Patch:  ItemPatch{CurrentStock: &stock, AverageCost: decPtr("9.75")},
	})

	require.Equal(t, Applied, outcome)
	item := state.Items[0]
	require.EqualValues(t, 500, item.CurrentStock)
	require.True(t, item.AverageCost.Equal(dec("9.75")))
	// untouched fields survive
	require.Equal(t, "Bolt", item.Name)
	require.Equal(t, "pcs", item.Unit)
}

func TestDeleteItemCascadesToItsMovements(t *testing.T) {
	state, _ := Apply(EmptyState(), InwardEvent{ItemID: "A", ItemName: "Bolt", Quantity: 10})
	state, _ = Apply(state, InwardEvent{ItemID: "B", ItemName: "Nut", Quantity: 20})
	state, _ = Apply(state, OutwardEvent{ItemID: "A", Quantity: 2})
	state, _ = Apply(state, OutwardEvent{ItemID: "B", Quantity: 3})

	state, outcome := Apply(state, DeleteItemEvent{ItemID: "A"})
	require.Equal(t, Applied, outcome)
	require.Len(t, state.Items, 1)
	require.Equal(t, "B", state.Items[0].ID)
	require.Len(t, state.Movements, 2)
	for _, m := range state.Movements {
		require.Equal(t, "B", m.ItemID)
	}
}

func TestDeleteItemLeavesChallans(t *testing.T) {
	state, _ := Apply(EmptyState(), InwardEvent{ItemID: "A", ItemName: "Bolt", Quantity: 10})
	state, _ = Apply(state, AddChallanEvent{Challan: Challan{
		Number: "NEWN-DC-001",
		Date:   time.Now(),
		Mode:   ModeSite,
		Lines:  []ChallanLine{{ItemID: "A", ItemName: "Bolt", Unit: "pcs", Quantity: 2}},
	}})

	state, _ = Apply(state, DeleteItemEvent{ItemID: "A"})
	require.Empty(t, state.Items)
	require.Len(t, state.Challans, 1)
}

func TestAddChallanAppendsWithGeneratedID(t *testing.T) {
	state, outcome := Apply(EmptyState(), AddChallanEvent{Challan: Challan{Number: "NEWN-DC-001", Mode: ModeFactory}})
	require.Equal(t, Applied, outcome)
	require.Len(t, state.Challans, 1)
	require.NotEmpty(t, state.Challans[0].ID)
}

func TestWeightedAverageZeroTotal(t *testing.T) {
	require.True(t, WeightedAverage(dec("5"), 0, dec("7"), 0).IsZero())
}

func strPtr(s string) *string { return &s }

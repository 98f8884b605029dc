package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"stocktrack_backend/internal/ledger"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestWriteLowStockCSV(t *testing.T) {
	var buf bytes.Buffer
	items := []ledger.Item{
		{Name: "Bolt", Unit: "pcs", CurrentStock: 2, ReorderLevel: 30},
		{Name: "Nut, hex \"large\"", Unit: "pcs", CurrentStock: 5, ReorderLevel: 10},
	}
	require.NoError(t, WriteLowStockCSV(&buf, items))

	rows, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, []string{"Item", "Unit", "Current Stock", "Reorder Level", "Shortfall"}, rows[0])
	require.Equal(t, []string{"Bolt", "pcs", "2", "30", "28"}, rows[1])
	// quoting survives a round trip
	require.Equal(t, "Nut, hex \"large\"", rows[2][0])
}

func TestWriteStockListCSV(t *testing.T) {
	var buf bytes.Buffer
	items := []ledger.Item{
		{Name: "Bolt", Unit: "pcs", CurrentStock: 40, AverageCost: decimal.RequireFromString("3.5"), ReorderLevel: 10},
	}
	require.NoError(t, WriteStockListCSV(&buf, items))

	rows, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Equal(t, []string{"Bolt", "pcs", "40", "3.50", "140.00", "10"}, rows[1])
}

func TestWriteMovementsCSV(t *testing.T) {
	var buf bytes.Buffer
	price := decimal.RequireFromString("2")
	movements := []ledger.Movement{
		{Date: time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC), Kind: ledger.MovementInward, ItemName: "Bolt", Unit: "pcs", Quantity: 100, PricePerUnit: &price},
		{Date: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), Kind: ledger.MovementOutward, ItemName: "Bolt", Unit: "pcs", Quantity: 30, Mode: ledger.ModeFactory, LaborerName: "Ramesh"},
	}
	require.NoError(t, WriteMovementsCSV(&buf, movements))

	rows, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, []string{"2026-03-14", "INWARD", "Bolt", "pcs", "100", "2.00", "", "", ""}, rows[1])
	require.Equal(t, []string{"2026-03-15", "OUTWARD", "Bolt", "pcs", "30", "", "FACTORY", "Ramesh", ""}, rows[2])
}

package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"stocktrack_backend/internal/ledger"

	"github.com/shopspring/decimal"
)

const csvDateLayout = "2006-01-02"

// WriteLowStockCSV serialises the low-stock report, one row per item.
func WriteLowStockCSV(w io.Writer, items []ledger.Item) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write([]string{"Item", "Unit", "Current Stock", "Reorder Level", "Shortfall"}); err != nil {
		return err
	}
	for _, item := range items {
		if err := writer.Write([]string{
			item.Name,
			item.Unit,
			strconv.FormatInt(item.CurrentStock, 10),
			strconv.FormatInt(item.ReorderLevel, 10),
			strconv.FormatInt(item.ReorderLevel-item.CurrentStock, 10),
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteStockListCSV serialises the full stock list with valuation.
func WriteStockListCSV(w io.Writer, items []ledger.Item) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write([]string{"Item", "Unit", "Current Stock", "Average Cost", "Stock Value", "Reorder Level"}); err != nil {
		return err
	}
	for _, item := range items {
		value := item.AverageCost.Mul(decimal.NewFromInt(item.CurrentStock))
		if err := writer.Write([]string{
			item.Name,
			item.Unit,
			strconv.FormatInt(item.CurrentStock, 10),
			item.AverageCost.StringFixed(2),
			value.StringFixed(2),
			strconv.FormatInt(item.ReorderLevel, 10),
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteMovementsCSV serialises a filtered movement report.
func WriteMovementsCSV(w io.Writer, movements []ledger.Movement) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write([]string{"Date", "Type", "Item", "Unit", "Quantity", "Price Per Unit", "Mode", "Laborer", "Reference"}); err != nil {
		return err
	}
	for _, m := range movements {
		price := ""
		if m.PricePerUnit != nil {
			price = m.PricePerUnit.StringFixed(2)
		}
		if err := writer.Write([]string{
			m.Date.Format(csvDateLayout),
			string(m.Kind),
			m.ItemName,
			m.Unit,
			strconv.FormatInt(m.Quantity, 10),
			price,
			string(m.Mode),
			m.LaborerName,
			m.ReferenceNumber,
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

package export

import (
	"bytes"
	"testing"
	"time"

	"stocktrack_backend/internal/ledger"

	"github.com/stretchr/testify/require"
)

func sampleChallan(mode ledger.ChallanMode) ledger.Challan {
	return ledger.Challan{
		ID:          "c1",
		Number:      "NEWN-DC-004",
		Date:        time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		Mode:        mode,
		SiteName:    "Riverside Plot",
		LaborerName: "Ramesh",
		Lines: []ledger.ChallanLine{
			{ItemID: "A", ItemName: "Bolt", Unit: "pcs", Quantity: 30},
			{ItemID: "B", ItemName: "Cement", Unit: "bag", Quantity: 4},
		},
	}
}

func TestCopyLabels(t *testing.T) {
	require.Equal(t, [2]string{"Transport Copy", "Office Copy"}, CopyLabels(ledger.ModeSite))
	require.Equal(t, [2]string{"Labor Copy", "Office Copy"}, CopyLabels(ledger.ModeFactory))
}

func TestRenderChallanSiteMode(t *testing.T) {
	var buf bytes.Buffer
	err := RenderChallanHTML(&buf, ChallanDocument{
		Challan:     sampleChallan(ledger.ModeSite),
		CompanyName: "Naveen Traders",
	})
	require.NoError(t, err)

	html := buf.String()
	require.Contains(t, html, "Transport Copy")
	require.Contains(t, html, "Office Copy")
	require.Contains(t, html, "NEWN-DC-004")
	require.Contains(t, html, "Naveen Traders")
	require.Contains(t, html, "Site Name")
	require.Contains(t, html, "Riverside Plot")
	require.Contains(t, html, "Bolt")
	require.Contains(t, html, "Cement")
	require.Contains(t, html, "14-03-2026")
}

func TestRenderChallanFactoryMode(t *testing.T) {
	var buf bytes.Buffer
	err := RenderChallanHTML(&buf, ChallanDocument{
		Challan:     sampleChallan(ledger.ModeFactory),
		CompanyName: "Naveen Traders",
	})
	require.NoError(t, err)

	html := buf.String()
	require.Contains(t, html, "Labor Copy")
	require.Contains(t, html, "Laborer Name")
	require.Contains(t, html, "Ramesh")
	require.NotContains(t, html, "Transport Copy")
}

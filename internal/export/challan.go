package export

import (
	"html/template"
	"io"

	"stocktrack_backend/internal/ledger"
)

// ChallanDocument is everything the printable delivery challan needs:
// the challan itself plus the issuing company's letterhead details.
type ChallanDocument struct {
	Challan        ledger.Challan
	CompanyName    string
	CompanyAddress string
	CompanyPhone   string
}

// MetaPair is one labeled value in the document header.
type MetaPair struct {
	Label string
	Value string
}

type challanCopy struct {
	Label string
	Doc   ChallanDocument
	Meta  []MetaPair
}

// CopyLabels returns the two copy captions printed for a dispatch mode.
func CopyLabels(mode ledger.ChallanMode) [2]string {
	if mode == ledger.ModeFactory {
		return [2]string{"Labor Copy", "Office Copy"}
	}
	return [2]string{"Transport Copy", "Office Copy"}
}

// MetaPairs returns the mode-specific header fields for a challan.
func MetaPairs(c ledger.Challan) []MetaPair {
	if c.Mode == ledger.ModeFactory {
		return []MetaPair{{Label: "Laborer Name", Value: c.LaborerName}}
	}
	pairs := []MetaPair{{Label: "Site Name", Value: c.SiteName}}
	if c.VehicleNumber != "" {
		pairs = append(pairs, MetaPair{Label: "Vehicle Number", Value: c.VehicleNumber})
	}
	return pairs
}

var challanTemplate = template.Must(template.New("challan").Funcs(template.FuncMap{
	"addOne": func(i int) int { return i + 1 },
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Delivery Challan {{(index .Copies 0).Doc.Challan.Number}}</title>
<style>
body { font-family: sans-serif; font-size: 13px; margin: 0; }
.copy { padding: 24px; border-bottom: 1px dashed #888; page-break-inside: avoid; }
.copy-label { text-align: right; font-weight: bold; text-transform: uppercase; }
.company { text-align: center; }
.company h1 { margin: 0; font-size: 20px; }
table.lines { width: 100%; border-collapse: collapse; margin-top: 12px; }
table.lines th, table.lines td { border: 1px solid #333; padding: 4px 8px; text-align: left; }
.signatures { display: flex; justify-content: space-between; margin-top: 48px; }
.signatures div { border-top: 1px solid #333; padding-top: 4px; width: 180px; text-align: center; }
</style>
</head>
<body>
{{range .Copies}}
<div class="copy">
  <div class="copy-label">{{.Label}}</div>
  <div class="company">
    <h1>{{.Doc.CompanyName}}</h1>
    {{if .Doc.CompanyAddress}}<div>{{.Doc.CompanyAddress}}</div>{{end}}
    {{if .Doc.CompanyPhone}}<div>{{.Doc.CompanyPhone}}</div>{{end}}
    <h2>Delivery Challan</h2>
  </div>
  <div>
    <strong>Challan No:</strong> {{.Doc.Challan.Number}} &nbsp;
    <strong>Date:</strong> {{.Doc.Challan.Date.Format "02-01-2006"}} &nbsp;
    <strong>Mode:</strong> {{.Doc.Challan.Mode}}
  </div>
  <div>
    {{range .Meta}}<strong>{{.Label}}:</strong> {{.Value}} &nbsp; {{end}}
  </div>
  <table class="lines">
    <tr><th>#</th><th>Item</th><th>Unit</th><th>Quantity</th></tr>
    {{range $i, $line := .Doc.Challan.Lines}}
    <tr><td>{{addOne $i}}</td><td>{{$line.ItemName}}</td><td>{{$line.Unit}}</td><td>{{$line.Quantity}}</td></tr>
    {{end}}
  </table>
  <div class="signatures">
    <div>Received By</div>
    <div>Authorised Signatory</div>
  </div>
</div>
{{end}}
</body>
</html>
`))

// RenderChallanHTML writes the printable challan document: two labeled
// copies of the same dispatch, stacked for a single print job.
func RenderChallanHTML(w io.Writer, doc ChallanDocument) error {
	labels := CopyLabels(doc.Challan.Mode)
	meta := MetaPairs(doc.Challan)
	data := struct {
		Copies []challanCopy
	}{
		Copies: []challanCopy{
			{Label: labels[0], Doc: doc, Meta: meta},
			{Label: labels[1], Doc: doc, Meta: meta},
		},
	}
	return challanTemplate.Execute(w, data)
}

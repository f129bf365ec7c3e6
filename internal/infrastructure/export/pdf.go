package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// Ancho de cada columna en la grilla de 12.
var pdfColumnSizes = []int{1, 3, 3, 1, 1, 2, 1}

// PDFExporter reporte de inventario A4 generado con Maroto v2.
type PDFExporter struct {
	title string
	now   func() time.Time
}

// NewPDFExporter construye el generador; title aparece en el encabezado.
func NewPDFExporter(title string) *PDFExporter {
	if title == "" {
		title = "Inventory"
	}
	return &PDFExporter{title: title, now: time.Now}
}

func (*PDFExporter) Extension() string   { return "pdf" }
func (*PDFExporter) ContentType() string { return "application/pdf" }

// Write genera el PDF y lo escribe en w.
func (e *PDFExporter) Write(w io.Writer, products []*entity.Product) error {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle(e.title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(e.title, e.now()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(products)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(products))

	doc, err := m.Generate()
	if err != nil {
		return fmt.Errorf("pdf: generar documento: %w", err)
	}
	_, err = w.Write(doc.GetBytes())
	return err
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(title string, at time.Time) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New(title, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
		),
		col.New(4).Add(
			text.New("Generated: "+at.Format("01/02/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	cols := make([]core.Col, len(columns))
	for i, label := range columns {
		cols[i] = col.New(pdfColumnSizes[i]).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1, Left: 1,
		}))
	}
	return row.New(7).Add(cols...)
}

func tableRows(products []*entity.Product) []core.Row {
	result := make([]core.Row, 0, len(products))
	for _, p := range products {
		cells := []string{
			fmt.Sprintf("%d", p.ID),
			p.Name,
			p.Description,
			fmt.Sprintf("%d", p.Quantity),
			"$" + formatMoney(p.Price),
			p.Category,
			p.CreatedAt.Format("01/02/2006"),
		}
		cols := make([]core.Col, len(cells))
		for i, c := range cells {
			a := align.Left
			if i == 3 || i == 4 {
				a = align.Right
			}
			cols[i] = col.New(pdfColumnSizes[i]).Add(text.New(c, props.Text{Size: 7.5, Align: a, Top: 1, Left: 1, Right: 1}))
		}
		result = append(result, row.New(6).Add(cols...))
	}
	return result
}

// totalsRow: unidades y valor del stock (cantidad × precio).
func totalsRow(products []*entity.Product) core.Row {
	units := 0
	value := decimal.Zero
	for _, p := range products {
		units += p.Quantity
		value = value.Add(p.TotalValue())
	}
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Color: colorPrimary})
	}
	return row.New(10).Add(
		col.New(6),
		col.New(3).Add(label(fmt.Sprintf("Units: %d", units))),
		col.New(3).Add(label("Stock value: $"+formatMoney(value))),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// formatMoney separa miles con coma y deja dos decimales. Ej: 1234567.5 → "1,234,567.50"
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	n := len(intPart)
	if n <= 3 {
		return sign + intPart + "." + frac
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	return sign + string(buf) + "." + frac
}

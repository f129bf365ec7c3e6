package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

const sheetName = "Inventory"

// XLSXExporter hoja "Inventory": encabezado en negrita, una fila por producto y fila de totales
// (SUM de cantidad y precio).
type XLSXExporter struct{}

func NewXLSXExporter() *XLSXExporter { return &XLSXExporter{} }

func (XLSXExporter) Extension() string { return "xlsx" }

func (XLSXExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Write genera el libro y lo escribe en w.
func (XLSXExporter) Write(w io.Writer, products []*entity.Product) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return err
	}

	header := make([]any, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetName, "A1", "G1", bold); err != nil {
		return err
	}

	for i, p := range products {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []any{
			p.ID, p.Name, p.Description, p.Quantity,
			p.Price.InexactFloat64(), p.Category, p.CreatedAt,
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return err
		}
	}

	if len(products) > 0 {
		if err := writeTotals(f, len(products)+1); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(sheetName, "A", "A", 8); err != nil {
		return err
	}
	if err := f.SetColWidth(sheetName, "B", "C", 30); err != nil {
		return err
	}
	if err := f.SetColWidth(sheetName, "D", "G", 14); err != nil {
		return err
	}
	return f.Write(w)
}

// writeTotals aplica formatos a las columnas de datos y agrega la fila "Total:".
func writeTotals(f *excelize.File, lastRow int) error {
	integer, err := f.NewStyle(&excelize.Style{NumFmt: 1})
	if err != nil {
		return err
	}
	currencyFmt := "$#,##0.00"
	currency, err := f.NewStyle(&excelize.Style{CustomNumFmt: &currencyFmt})
	if err != nil {
		return err
	}
	dateFmt := "mm/dd/yyyy"
	date, err := f.NewStyle(&excelize.Style{CustomNumFmt: &dateFmt})
	if err != nil {
		return err
	}

	totalRow := lastRow + 1
	styles := []struct {
		col   string
		style int
		to    int
	}{
		{"D", integer, totalRow},
		{"E", currency, totalRow},
		{"G", date, lastRow},
	}
	for _, s := range styles {
		if err := f.SetCellStyle(sheetName, s.col+"2", fmt.Sprintf("%s%d", s.col, s.to), s.style); err != nil {
			return err
		}
	}

	if err := f.SetCellValue(sheetName, fmt.Sprintf("C%d", totalRow), "Total:"); err != nil {
		return err
	}
	if err := f.SetCellFormula(sheetName, fmt.Sprintf("D%d", totalRow), fmt.Sprintf("SUM(D2:D%d)", lastRow)); err != nil {
		return err
	}
	return f.SetCellFormula(sheetName, fmt.Sprintf("E%d", totalRow), fmt.Sprintf("SUM(E2:E%d)", lastRow))
}

package export_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/export"
)

type staticSource []*entity.Product

func (s staticSource) ListProducts(context.Context) ([]*entity.Product, error) { return s, nil }

func sample() staticSource {
	created := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	return staticSource{
		{ID: 2, Name: "Nut", Quantity: 10, Price: decimal.RequireFromString("0.25"), CreatedAt: created},
		{ID: 1, Name: "Bolt", Description: "M8", Quantity: 70, Price: decimal.RequireFromString("1234.50"), Category: "Hardware", CreatedAt: created},
	}
}

func TestXLSXExporter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.NewXLSXExporter().Write(&buf, sample()))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetRows("Inventory")
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(header), 3)
	assert.Equal(t, []string{"ID", "Name", "Description", "Quantity", "Price", "Category", "Created Date"}, header[0])

	name, err := f.GetCellValue("Inventory", "B3")
	require.NoError(t, err)
	assert.Equal(t, "Bolt", name, "respeta el orden recibido")

	label, err := f.GetCellValue("Inventory", "C4")
	require.NoError(t, err)
	assert.Equal(t, "Total:", label)

	formula, err := f.GetCellFormula("Inventory", "D4")
	require.NoError(t, err)
	assert.Equal(t, "SUM(D2:D3)", formula)
	formula, err = f.GetCellFormula("Inventory", "E4")
	require.NoError(t, err)
	assert.Equal(t, "SUM(E2:E3)", formula)

	styleID, err := f.GetCellStyle("Inventory", "A1")
	require.NoError(t, err)
	style, err := f.GetStyle(styleID)
	require.NoError(t, err)
	require.NotNil(t, style.Font)
	assert.True(t, style.Font.Bold)
}

func TestPDFExporter(t *testing.T) {
	var buf bytes.Buffer
	ex := export.NewPDFExporter("")
	require.NoError(t, ex.Write(&buf, sample()))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
	assert.Equal(t, "application/pdf", ex.ContentType())
}

func TestService_ExportFile(t *testing.T) {
	dir := t.TempDir()
	svc := export.NewService(sample(), filepath.Join(dir, "exports"), nil)

	path, err := svc.ExportFile(context.Background(), export.NewXLSXExporter())
	require.NoError(t, err)
	assert.Regexp(t, `Inventory_\d{8}_\d{6}\.xlsx$`, path)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestService_SinProductos(t *testing.T) {
	svc := export.NewService(staticSource{}, t.TempDir(), nil)
	var buf bytes.Buffer
	err := svc.Export(context.Background(), &buf, export.NewXLSXExporter())
	assert.ErrorIs(t, err, domain.ErrValidationFailed)
	assert.Zero(t, buf.Len())
}

func TestFileName(t *testing.T) {
	at := time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, "Inventory_20240102_150405.pdf", export.FileName("pdf", at))
}

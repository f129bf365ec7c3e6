// Package export genera el listado completo de productos como hoja de cálculo o PDF.
// Siempre exporta la lista completa sin filtros, en el orden del almacenamiento.
package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/pkg/logger"
)

// Columnas del listado exportado.
var columns = []string{"ID", "Name", "Description", "Quantity", "Price", "Category", "Created Date"}

// Exporter escribe la lista de productos en un formato concreto.
type Exporter interface {
	// Extension sin punto: "xlsx", "pdf".
	Extension() string
	ContentType() string
	Write(w io.Writer, products []*entity.Product) error
}

// ProductSource fuente de la lista completa (el LedgerService).
type ProductSource interface {
	ListProducts(ctx context.Context) ([]*entity.Product, error)
}

// Service obtiene la lista completa y la entrega al exportador.
type Service struct {
	source ProductSource
	dir    string
	log    *logger.Logger
	now    func() time.Time
}

// NewService construye el servicio. dir es el directorio de ExportFile.
func NewService(source ProductSource, dir string, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{source: source, dir: dir, log: log.Component("export"), now: time.Now}
}

// Export escribe todos los productos en w. Sin productos devuelve error de validación.
func (s *Service) Export(ctx context.Context, w io.Writer, ex Exporter) error {
	products, err := s.source.ListProducts(ctx)
	if err != nil {
		return err
	}
	if len(products) == 0 {
		return domain.Validation("no hay productos para exportar")
	}
	if err := ex.Write(w, products); err != nil {
		return fmt.Errorf("export %s: %w", ex.Extension(), err)
	}
	s.log.Info().Str("format", ex.Extension()).Int("products", len(products)).Msg("inventario exportado")
	return nil
}

// ExportFile escribe el archivo Inventory_<fecha>.<ext> en el directorio configurado y devuelve su ruta.
func (s *Service) ExportFile(ctx context.Context, ex Exporter) (string, error) {
	var buf bytes.Buffer
	if err := s.Export(ctx, &buf, ex); err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("export: crear directorio: %w", err)
	}
	path := filepath.Join(s.dir, FileName(ex.Extension(), s.now()))
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("export: escribir archivo: %w", err)
	}
	return path, nil
}

// FileName nombre del archivo exportado: Inventory_20060102_150405.xlsx
func FileName(ext string, at time.Time) string {
	return fmt.Sprintf("Inventory_%s.%s", at.Format("20060102_150405"), ext)
}

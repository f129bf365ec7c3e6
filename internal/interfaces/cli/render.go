package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/application/listing"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

const dateLayout = "2006-01-02 15:04:05"

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func printProducts(w io.Writer, products []*entity.Product) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tQTY\tPRICE\tTOTAL")
	for _, p := range products {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\t%s\n",
			p.ID, p.Name, p.DisplayCategory(), p.Quantity, p.Price.StringFixed(2), p.TotalValue().StringFixed(2))
	}
	return tw.Flush()
}

func printPage(w io.Writer, page listing.Page) error {
	if err := printProducts(w, page.Items); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Página %d de %d (%d productos)\n", page.Page, page.TotalPages, page.TotalItems)
	return err
}

func printMovements(w io.Writer, movements []*entity.ProductMovement) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tPRODUCT\tTYPE\tQTY\tDATE\tNOTES")
	for _, m := range movements {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%+d\t%s\t%s\n",
			m.ID, m.ProductID, m.Type, m.Signed(), m.Date.Format(dateLayout), m.Notes)
	}
	return tw.Flush()
}

func printProduct(w io.Writer, p *entity.Product) {
	fmt.Fprintf(w, "ID:          %d\n", p.ID)
	fmt.Fprintf(w, "Nombre:      %s\n", p.Name)
	fmt.Fprintf(w, "Descripción: %s\n", p.Description)
	fmt.Fprintf(w, "Categoría:   %s\n", p.DisplayCategory())
	fmt.Fprintf(w, "Cantidad:    %d\n", p.Quantity)
	fmt.Fprintf(w, "Precio:      %s\n", p.Price.StringFixed(2))
	fmt.Fprintf(w, "Creado:      %s\n", p.CreatedAt.Format(dateLayout))
}

func printReconciliation(w io.Writer, r *inventory.Reconciliation) {
	status := "OK"
	if !r.Consistent {
		status = "DESCUADRE"
	}
	fmt.Fprintf(w, "Libro: +%d -%d = %d | Cantidad: %d | %s\n",
		r.Incoming, r.Outgoing, r.LedgerBalance, r.Quantity, status)
}

package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jhoicas/inventario-ledger/internal/application/listing"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

const browseHelp = `Comandos:
  n | next        página siguiente
  p | prev        página anterior
  f | first       primera página
  l | last        última página
  g <n>           ir a la página n
  s [texto]       buscar (sin texto limpia la búsqueda)
  c [categoría]   filtrar por categoría (sin valor = All)
  cats            categorías disponibles
  z <n>           productos por página
  x               limpiar filtros
  r               recargar desde el almacenamiento
  h               ayuda
  q               salir`

func newBrowseCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Navegador interactivo del listado (búsqueda, categoría y páginas)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.run(cmd, func(ctx context.Context, app *App) error {
				b := &browser{
					view:  listing.NewView(app.Config.Listing.PageSize),
					load:  app.Ledger.ListProducts,
					out:   cmd.OutOrStdout(),
					sizes: app.Config.Listing.PageSizes,
				}
				return b.loop(ctx, cmd.InOrStdin())
			})
		},
	}
}

// browser conecta la vista del listado con comandos de texto.
type browser struct {
	view  *listing.View
	load  func(ctx context.Context) ([]*entity.Product, error)
	out   io.Writer
	sizes []int
}

func (b *browser) loop(ctx context.Context, in io.Reader) error {
	if err := b.reload(ctx); err != nil {
		return err
	}
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(b.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(b.out)
			return scanner.Err()
		}
		quit, err := b.exec(ctx, scanner.Text())
		if err != nil {
			fmt.Fprintf(b.out, "error: %v\n", err)
		}
		if quit {
			return nil
		}
	}
}

// exec interpreta una línea. Devuelve true para salir.
func (b *browser) exec(ctx context.Context, line string) (bool, error) {
	verb, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	var page listing.Page
	switch strings.ToLower(verb) {
	case "":
		return false, nil
	case "q", "quit", "exit":
		return true, nil
	case "h", "help", "?":
		fmt.Fprintln(b.out, browseHelp)
		return false, nil
	case "n", "next":
		page = b.view.Next()
	case "p", "prev":
		page = b.view.Previous()
	case "f", "first":
		page = b.view.First()
	case "l", "last":
		page = b.view.Last()
	case "g", "goto":
		n, err := strconv.Atoi(arg)
		if err != nil {
			return false, fmt.Errorf("página inválida %q", arg)
		}
		page = b.view.GoTo(n)
	case "s", "search":
		page = b.view.SetSearch(arg)
	case "c", "category":
		page = b.view.SetCategory(arg)
	case "cats":
		fmt.Fprintln(b.out, strings.Join(b.view.Categories(), ", "))
		return false, nil
	case "z", "size":
		n, err := strconv.Atoi(arg)
		if err != nil || n <= 0 {
			return false, fmt.Errorf("tamaño de página inválido %q (sugeridos: %s)", arg, joinInts(b.sizes))
		}
		page = b.view.SetPageSize(n)
	case "x", "clear":
		page = b.view.ClearFilters()
	case "r", "reload":
		return false, b.reload(ctx)
	default:
		return false, fmt.Errorf("comando desconocido %q (h = ayuda)", verb)
	}
	return false, b.render(page)
}

// reload toma una nueva instantánea; la categoría vuelve a All y se conserva la búsqueda.
func (b *browser) reload(ctx context.Context) error {
	snapshot, err := b.load(ctx)
	if err != nil {
		return err
	}
	return b.render(b.view.Load(snapshot))
}

func (b *browser) render(page listing.Page) error {
	fmt.Fprintf(b.out, "[%s] búsqueda=%q categoría=%s\n", b.view.State(), b.view.Search(), b.view.Category())
	return printPage(b.out, page)
}

func joinInts(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ", ")
}

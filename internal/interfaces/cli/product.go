package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jhoicas/inventario-ledger/internal/application/listing"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

type productFlags struct {
	name        string
	description string
	quantity    string
	price       string
	category    string
}

func (f *productFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "Nombre del producto")
	cmd.Flags().StringVar(&f.description, "description", "", "Descripción")
	cmd.Flags().StringVar(&f.quantity, "quantity", "0", "Cantidad (entero no negativo)")
	cmd.Flags().StringVar(&f.price, "price", "0", "Precio unitario (decimal no negativo)")
	cmd.Flags().StringVar(&f.category, "category", "", "Categoría (vacía = sin categoría)")
}

// apply copia al producto los flags indicados; con onlyChanged solo los que el usuario pasó.
func (f *productFlags) apply(cmd *cobra.Command, p *entity.Product, onlyChanged bool) error {
	set := func(name string) bool { return !onlyChanged || cmd.Flags().Changed(name) }

	if set("name") {
		p.Name = f.name
	}
	if set("description") {
		p.Description = f.description
	}
	if set("category") {
		p.Category = f.category
	}
	if set("quantity") {
		q, err := domain.ParseQuantity(f.quantity)
		if err != nil {
			return err
		}
		p.Quantity = q
	}
	if set("price") {
		price, err := domain.ParsePrice(f.price)
		if err != nil {
			return err
		}
		p.Price = price
	}
	return nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.Validation("id inválido %q", s)
	}
	return id, nil
}

func newProductCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "product",
		Aliases: []string{"products"},
		Short:   "Alta, edición, baja y consulta de productos",
	}
	cmd.AddCommand(
		newProductAddCommand(opts),
		newProductUpdateCommand(opts),
		newProductDeleteCommand(opts),
		newProductListCommand(opts),
		newProductShowCommand(opts),
		newProductOutputCommand(opts),
		newProductDuplicateCommand(opts),
	)
	return cmd
}

func newProductAddCommand(opts *options) *cobra.Command {
	var flags productFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Crea un producto; una cantidad inicial registra una entrada en el libro",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.run(cmd, func(ctx context.Context, app *App) error {
				p := &entity.Product{}
				if err := flags.apply(cmd, p, false); err != nil {
					return err
				}
				id, err := app.Ledger.SaveProduct(ctx, p)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Producto %d creado\n", id)
				return nil
			})
		},
	}
	flags.bind(cmd)
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newProductUpdateCommand(opts *options) *cobra.Command {
	var flags productFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Edita un producto; un cambio de cantidad registra un ajuste en el libro",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return opts.run(cmd, func(ctx context.Context, app *App) error {
				p, err := app.Ledger.GetProduct(ctx, id)
				if err != nil {
					return err
				}
				if err := flags.apply(cmd, p, true); err != nil {
					return err
				}
				if _, err := app.Ledger.SaveProduct(ctx, p); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Producto %d actualizado\n", id)
				return nil
			})
		},
	}
	flags.bind(cmd)
	return cmd
}

func newProductDeleteCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Elimina un producto (sus movimientos se conservan)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return opts.run(cmd, func(ctx context.Context, app *App) error {
				if err := app.Ledger.DeleteProduct(ctx, id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Producto %d eliminado\n", id)
				return nil
			})
		},
	}
}

func newProductListCommand(opts *options) *cobra.Command {
	var q listing.Query
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Lista productos con búsqueda, categoría y paginación",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.run(cmd, func(ctx context.Context, app *App) error {
				snapshot, err := app.Ledger.ListProducts(ctx)
				if err != nil {
					return err
				}
				if q.PageSize <= 0 {
					q.PageSize = app.Config.Listing.PageSize
				}
				return printPage(cmd.OutOrStdout(), listing.Apply(snapshot, q))
			})
		},
	}
	cmd.Flags().StringVar(&q.Search, "search", "", "Texto a buscar en nombre, descripción o categoría")
	cmd.Flags().StringVar(&q.Category, "category", listing.AllCategories, "Categoría (All = todas)")
	cmd.Flags().IntVar(&q.Page, "page", 1, "Página")
	cmd.Flags().IntVar(&q.PageSize, "page-size", 0, "Productos por página (por defecto LISTING_PAGE_SIZE)")
	return cmd
}

func newProductShowCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Muestra un producto con su historial y la conciliación del libro",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return opts.run(cmd, func(ctx context.Context, app *App) error {
				h, err := app.Ledger.ProductHistory(ctx, id)
				if err != nil {
					return err
				}
				r, err := app.Ledger.Reconcile(ctx, id)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				printProduct(out, h.Product)
				printReconciliation(out, r)
				fmt.Fprintln(out)
				return printMovements(out, h.Movements)
			})
		},
	}
}

func newProductOutputCommand(opts *options) *cobra.Command {
	var (
		quantity string
		notes    string
	)
	cmd := &cobra.Command{
		Use:   "output <id>",
		Short: "Registra una salida de stock",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			q, err := domain.ParseQuantity(quantity)
			if err != nil {
				return err
			}
			return opts.run(cmd, func(ctx context.Context, app *App) error {
				if err := app.Ledger.RegisterOutput(ctx, id, q, notes); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Salida de %d unidades registrada para el producto %d\n", q, id)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&quantity, "quantity", "", "Unidades a retirar")
	cmd.Flags().StringVar(&notes, "notes", "", "Motivo de la salida")
	_ = cmd.MarkFlagRequired("quantity")
	return cmd
}

func newProductDuplicateCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "duplicate <id>",
		Short: "Crea una copia del producto con \"(Copy)\" en el nombre",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return opts.run(cmd, func(ctx context.Context, app *App) error {
				p, err := app.Ledger.DuplicateProduct(ctx, id)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Producto %d creado como copia de %d\n", p.ID, id)
				return nil
			})
		},
	}
}

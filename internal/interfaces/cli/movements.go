package cli

import (
	"context"

	"github.com/spf13/cobra"
)

func newMovementsCommand(opts *options) *cobra.Command {
	var movementType string
	cmd := &cobra.Command{
		Use:   "movements",
		Short: "Lista el libro de movimientos (más recientes primero)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.run(cmd, func(ctx context.Context, app *App) error {
				movements, err := app.Ledger.GetAllMovements(ctx, movementType)
				if err != nil {
					return err
				}
				return printMovements(cmd.OutOrStdout(), movements)
			})
		},
	}
	cmd.Flags().StringVar(&movementType, "type", "", "Filtra por tipo: INCOMING | OUTGOING")
	return cmd
}

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/inventario-ledger/internal/infrastructure/backup"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/export"
)

func newExportCommand(opts *options) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:       "export <xlsx|pdf>",
		Short:     "Exporta el inventario completo a Excel o PDF",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"xlsx", "pdf"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(ctx context.Context, app *App) error {
				var ex export.Exporter = export.NewXLSXExporter()
				if args[0] == "pdf" {
					ex = export.NewPDFExporter(app.Config.App.Name)
				}
				svc := app.Exports
				if dir != "" {
					svc = export.NewService(app.Ledger, dir, app.Log)
				}
				path, err := svc.ExportFile(ctx, ex)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exportado a %s\n", path)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "Directorio destino (por defecto EXPORT_DIR)")
	return cmd
}

func newBackupCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "backup",
		Short: "Copia el archivo de base de datos a BACKUP_DIR",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.run(cmd, func(ctx context.Context, app *App) error {
				if app.Backup == nil {
					return backup.ErrUnsupported
				}
				path, err := app.Backup.Create(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Respaldo creado en %s\n", path)
				return nil
			})
		},
	}
}

func newRestoreCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "restore <archivo>",
		Short: "Reemplaza la base de datos con un respaldo y reabre la conexión",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(ctx context.Context, app *App) error {
				if app.Backup == nil {
					return backup.ErrUnsupported
				}
				if err := app.Backup.Restore(ctx, args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Base de datos restaurada desde %s\n", args[0])
				return nil
			})
		},
	}
}

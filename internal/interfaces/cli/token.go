package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/inventario-ledger/pkg/jwt"
)

func newTokenCommand(opts *options) *cobra.Command {
	var (
		operator string
		scope    string
		minutes  int
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Emite un Bearer token para la API (requiere JWT_SECRET)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if cfg.JWT.Secret == "" {
				return errors.New("JWT_SECRET vacío: la API corre en modo local y no necesita token")
			}
			if minutes <= 0 {
				minutes = cfg.JWT.Expiration
			}
			token, err := jwt.Generate(cfg.JWT.Secret, operator, scope, cfg.JWT.Issuer, minutes)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&operator, "operator", "", "Nombre del operador")
	cmd.Flags().StringVar(&scope, "scope", jwt.ScopeRead, "Alcance: read | write")
	cmd.Flags().IntVar(&minutes, "expires", 0, "Vigencia en minutos (por defecto JWT_EXPIRATION_MINUTES)")
	_ = cmd.MarkFlagRequired("operator")
	return cmd
}

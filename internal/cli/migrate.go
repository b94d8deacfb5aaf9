package cli

import (
	"github.com/spf13/cobra"

	"github.com/ecolemusique/backoffice/internal/db/migrate"
)

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or revert the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	for _, dir := range []struct{ name, short string }{
		{migrate.Up, "Apply every pending migration"},
		{migrate.Down, "Revert the latest migration"},
	} {
		direction := dir.name
		cmd.AddCommand(&cobra.Command{
			Use:   direction,
			Short: dir.short,
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := opts.cfg.RequireDatabase(); err != nil {
					return err
				}
				if err := migrate.Run(opts.cfg.PostgresURI, direction); err != nil {
					return err
				}
				opts.log.WithField("direction", direction).Info("migrations applied")
				return nil
			},
		})
	}
	return cmd
}

// Package cli wires the back-office binary: serve, migrate and bootstrap-admin.
package cli

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ecolemusique/backoffice/config"
	"github.com/ecolemusique/backoffice/internal/logger"
)

// Version is set at build time with -ldflags.
var Version = "dev"

type rootOptions struct {
	envFile string
	cfg     *config.Config
	log     *logrus.Logger
}

func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "backoffice",
		Short:         "Music school back-office API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.envFile)
			if err != nil {
				return err
			}
			opts.cfg = cfg
			opts.log = logger.New(cfg.LogLevel)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file loaded before reading the environment")

	root.AddCommand(
		newServeCmd(opts),
		newMigrateCmd(opts),
		newBootstrapAdminCmd(opts),
	)
	return root
}

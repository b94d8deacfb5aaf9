package cli

import (
	"errors"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ecolemusique/backoffice/config"
	"github.com/ecolemusique/backoffice/internal/models"
	"github.com/ecolemusique/backoffice/internal/services"
)

// systemActor is recorded in the audit log for changes made from the command line.
var systemActor = uuid.Nil.String()

func newBootstrapAdminCmd(opts *rootOptions) *cobra.Command {
	var in services.CreateUserInput

	cmd := &cobra.Command{
		Use:   "bootstrap-admin",
		Short: "Create the first Admin identity and profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg
			if err := cfg.RequireDatabase(); err != nil {
				return err
			}
			if cfg.IdentityBackend != config.IdentitySupabase {
				return errors.New("bootstrap-admin needs IDENTITY_BACKEND=supabase")
			}
			if err := cfg.RequireIdentity(); err != nil {
				return err
			}

			a, err := newApp(cmd.Context(), cfg, opts.log)
			if err != nil {
				return err
			}
			defer a.close()

			in.Role = models.RoleAdmin
			ident, err := a.users.Create(cmd.Context(), systemActor, in)
			if err != nil {
				return err
			}
			opts.log.WithField("user_id", ident.ID).Info("admin created")
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Email, "email", "", "admin email (required)")
	cmd.Flags().StringVar(&in.Password, "password", "", "admin password (required)")
	cmd.Flags().StringVar(&in.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&in.LastName, "last-name", "", "last name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

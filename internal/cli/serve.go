package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/ecolemusique/backoffice/internal/api/handlers"
	"github.com/ecolemusique/backoffice/internal/api/middleware"
	"github.com/ecolemusique/backoffice/internal/api/routes"
	"github.com/ecolemusique/backoffice/internal/authz"
	"github.com/ecolemusique/backoffice/internal/telemetry"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log := opts.cfg, opts.log
			if err := cfg.RequireServer(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			tele := telemetry.Options{ServiceName: cfg.ServiceName, Version: Version, Endpoint: cfg.OTLPEndpoint}
			if cfg.TracesToStdout {
				tele.Stdout = os.Stdout
			}
			shutdownTracing, err := telemetry.Setup(ctx, tele)
			if err != nil {
				return err
			}
			defer func() {
				sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdownTracing(sctx); err != nil {
					log.WithError(err).Warn("tracer shutdown failed")
				}
			}()

			a, err := newApp(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer a.close()

			az, err := authz.NewOPAAuthorizer(ctx)
			if err != nil {
				return err
			}

			gin.SetMode(gin.ReleaseMode)
			r := gin.New()
			r.Use(gin.Recovery(), middleware.RequestLogger(log))
			routes.RegisterRoutes(r, routes.Deps{
				Users:        handlers.NewUserHandler(a.users),
				Catalog:      handlers.NewCatalogHandler(a.instruments, a.orchestras),
				Associations: handlers.NewAssociationHandler(a.associations),
				Session:      handlers.NewSessionHandler(a.profiles),
				JWT: middleware.JWTConfig{
					Secret:   cfg.JWTSecret,
					Issuer:   cfg.JWTIssuer,
					Audience: cfg.JWTAudience,
				},
				Roles:      a.profiles,
				Authorizer: az,
				Log:        log,
			})

			srv := &http.Server{
				Addr:              cfg.HTTPAddr,
				Handler:           otelhttp.NewHandler(r, "backoffice"),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				log.WithField("addr", cfg.HTTPAddr).Info("http server listening")
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			log.Info("shutting down")
			sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
			defer cancel()
			return srv.Shutdown(sctx)
		},
	}
}

package cli

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ecolemusique/backoffice/config"
	"github.com/ecolemusique/backoffice/internal/cache"
	"github.com/ecolemusique/backoffice/internal/providers/identity"
	pgrepo "github.com/ecolemusique/backoffice/internal/repositories/postgres"
	"github.com/ecolemusique/backoffice/internal/services"
)

// app holds the connections and services shared by the commands.
type app struct {
	cfg *config.Config
	log *logrus.Logger
	db  *gorm.DB
	rdb *redis.Client

	identities identity.Provider

	users        services.UserService
	profiles     services.ProfileService
	instruments  services.InstrumentService
	orchestras   services.OrchestraService
	associations services.AssociationService
}

func newApp(ctx context.Context, cfg *config.Config, log *logrus.Logger) (*app, error) {
	db, err := config.OpenPostgres(cfg.PostgresURI, log)
	if err != nil {
		return nil, fmt.Errorf("postgres: %w", err)
	}
	log.Info("PostgreSQL connected")

	a := &app{cfg: cfg, log: log, db: db}

	var c cache.Cache = cache.Nop{}
	if cfg.RedisURL != "" {
		rdb, err := config.OpenRedis(ctx, cfg.RedisURL)
		if err != nil {
			// listings fall back to the database
			log.WithError(err).Warn("redis unavailable, listing cache disabled")
		} else {
			a.rdb = rdb
			c = cache.NewRedisCache(rdb)
			log.Info("Redis connected")
		}
	}

	switch cfg.IdentityBackend {
	case config.IdentityMemory:
		log.Warn("using in-memory identity backend; identities are lost on restart")
		a.identities = identity.NewMemory(bcrypt.DefaultCost)
	default:
		sb, err := identity.NewSupabase(cfg.SupabaseURL, cfg.SupabaseServiceRoleKey, db)
		if err != nil {
			a.close()
			return nil, err
		}
		a.identities = sb
	}

	lc := services.NewListCache(c, cfg.CacheTTL, log)
	audit := services.NewAuditService(pgrepo.NewAuditRepo(db), log)

	profileRepo := pgrepo.NewProfileRepo(db)
	a.users = services.NewUserService(a.identities, profileRepo, audit, lc, log)
	a.profiles = services.NewProfileService(profileRepo, pgrepo.NewUserRepo(db))
	a.instruments = services.NewInstrumentService(pgrepo.NewInstrumentRepo(db), audit, lc)
	a.orchestras = services.NewOrchestraService(pgrepo.NewOrchestraRepo(db), audit, lc)
	a.associations = services.NewAssociationService(pgrepo.NewAssociationRepo(db), audit)
	return a, nil
}

func (a *app) close() {
	if a.rdb != nil {
		_ = a.rdb.Close()
	}
	if sqlDB, err := a.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

package router

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/empdesk/auth-service/config"
	"github.com/empdesk/auth-service/internal/application"
	pginfra "github.com/empdesk/auth-service/internal/infrastructure/postgres"
	handlers "github.com/empdesk/auth-service/internal/interface/http"
	"github.com/empdesk/auth-service/internal/router/modules"
	"github.com/empdesk/auth-service/pkg/helpers"
)

// InitModules wires the auth module from its infrastructure dependencies and
// registers it. Called once during startup.
func InitModules(r *Registry, cfg *config.Config, logger *logrus.Logger, pool *pgxpool.Pool, pub *helpers.RabbitPublisher) {
	repo := pginfra.NewEmployeeRepository(pool)
	audit := pginfra.NewAuditLogger(pool, logger)
	sessions := helpers.NewSessionManager(cfg.SessionSecret, cfg.SessionTTL)
	cookies := helpers.NewCookie(cfg.CookieName, cfg.CookieDomain(), cfg.CookieSecure(), cfg.CookieSecret)

	svc := application.NewService(repo, sessions, logger)
	handler := handlers.NewAuthHandler(svc, cookies, logger, cfg, pub, audit)

	r.Add(modules.NewAuthModule(handler))
}

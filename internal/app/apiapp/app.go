package apiapp

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Team-DogFoot/hm-admin-sub000/internal/config"
	"github.com/Team-DogFoot/hm-admin-sub000/internal/infra/httpclient"
	pgrepo "github.com/Team-DogFoot/hm-admin-sub000/internal/repo/postgres"
	redrepo "github.com/Team-DogFoot/hm-admin-sub000/internal/repo/redis"
	catsvc "github.com/Team-DogFoot/hm-admin-sub000/internal/services/catalog"
	matchsvc "github.com/Team-DogFoot/hm-admin-sub000/internal/services/matching"
	authsvc "github.com/Team-DogFoot/hm-admin-sub000/internal/services/operatorauth"
	reqsvc "github.com/Team-DogFoot/hm-admin-sub000/internal/services/requests"
	setsvc "github.com/Team-DogFoot/hm-admin-sub000/internal/services/settlements"
	"github.com/Team-DogFoot/hm-admin-sub000/internal/upstream"
)

type App struct {
	cfg        config.Config
	logger     *zap.Logger
	server     *http.Server
	postgres   *pgxpool.Pool
	redis      *goredis.Client
	httpRouter http.Handler

	auditRepo *pgrepo.AuditRepo
}

func New(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		return nil, fmt.Errorf("logger is nil")
	}

	r := chi.NewRouter()
	ApplyMiddlewares(r, log)

	var pool *pgxpool.Pool
	if p, err := pgrepo.NewPool(ctx, cfg.Postgres.DSN); err != nil {
		log.Warn("postgres init failed, continuing in degraded mode", zap.Error(err))
	} else {
		pool = p
	}

	redisClient := redrepo.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	sessionRepo := redrepo.NewSessionRepo(redisClient)
	queryCache := redrepo.NewQueryCache(redisClient)
	operatorRepo := pgrepo.NewOperatorRepo(pool)
	auditRepo := pgrepo.NewAuditRepo(pool)

	upstreamClient := upstream.NewClient(cfg.Upstream.BaseURL, httpclient.New(cfg.Upstream.Timeout))

	jwtManager := authsvc.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTAccessTTL)
	authService := authsvc.NewService(jwtManager, sessionRepo, operatorRepo, cfg.Auth.RefreshTTL)
	requestService := reqsvc.NewService(reqsvc.Dependencies{
		API:    upstreamClient,
		Cache:  queryCache,
		Audit:  auditRepo,
		Logger: log,
	}, reqsvc.ServiceConfig{
		ListTTL:   cfg.Cache.ListTTL,
		DetailTTL: cfg.Cache.DetailTTL,
	})
	matchingService := matchsvc.NewService(matchsvc.Dependencies{
		API:    upstreamClient,
		Cache:  queryCache,
		Audit:  auditRepo,
		Logger: log,
	}, matchsvc.Config{
		SearchDebounce: cfg.Matching.SearchDebounce,
		SearchLimit:    cfg.Matching.SearchLimit,
		ListTTL:        cfg.Cache.ListTTL,
	})
	settlementService := setsvc.NewService(setsvc.Dependencies{
		API:    upstreamClient,
		Cache:  queryCache,
		Audit:  auditRepo,
		Logger: log,
	}, setsvc.ServiceConfig{
		ListTTL:   cfg.Cache.ListTTL,
		DetailTTL: cfg.Cache.DetailTTL,
	})
	catalogService := catsvc.NewService(catsvc.Dependencies{
		API:    upstreamClient,
		Cache:  queryCache,
		Logger: log,
	}, catsvc.ServiceConfig{
		ListTTL: cfg.Cache.ListTTL,
	})

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	RegisterRoutes(r, Dependencies{
		AuthService:       authService,
		RequestService:    requestService,
		MatchingService:   matchingService,
		SettlementService: settlementService,
		CatalogService:    catalogService,
		Logger:            log,
		Config:            cfg,
	})

	return &App{
		cfg:        cfg,
		logger:     log,
		server:     server,
		postgres:   pool,
		redis:      redisClient,
		httpRouter: r,
		auditRepo:  auditRepo,
	}, nil
}

func (a *App) Run() error {
	a.logger.Info("api server started", zap.String("addr", a.cfg.HTTP.Addr))
	err := a.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (a *App) Shutdown(ctx context.Context) error {
	var shutdownErr error

	if err := a.server.Shutdown(ctx); err != nil {
		shutdownErr = err
	}
	if a.postgres != nil {
		a.postgres.Close()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil && shutdownErr == nil {
			shutdownErr = err
		}
	}

	return shutdownErr
}

func (a *App) Handler() http.Handler {
	return a.httpRouter
}

// AuditRepo exposes the audit store for the prune job wired in main.
func (a *App) AuditRepo() *pgrepo.AuditRepo {
	return a.auditRepo
}

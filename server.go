package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
	"github.com/urfave/cli/v2"

	"github.com/user/unidirectory-go/apperror"
	"github.com/user/unidirectory-go/auth"
	"github.com/user/unidirectory-go/cache"
	"github.com/user/unidirectory-go/config"
	"github.com/user/unidirectory-go/db"
	_ "github.com/user/unidirectory-go/docs" // Generated Swagger docs
	"github.com/user/unidirectory-go/events"
	"github.com/user/unidirectory-go/favorites"
	"github.com/user/unidirectory-go/listquery"
	"github.com/user/unidirectory-go/logging"
	"github.com/user/unidirectory-go/respond"
	"github.com/user/unidirectory-go/universities"
	"github.com/user/unidirectory-go/users"
	"github.com/user/unidirectory-go/validation"
	"github.com/user/unidirectory-go/web"
)

const shutdownTimeout = 30 * time.Second

// routes is everything the HTTP router mounts.
type routes struct {
	logger       logging.Logger
	responder    *respond.Responder
	origins      []string
	health       db.Pinger
	tokens       auth.TokenVerifier
	universities *universities.Handlers
	login        *auth.Handlers
	favorites    *favorites.Handlers
	users        *users.Handlers
}

func newRouter(rt routes) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.Middleware(rt.logger))
	r.Use(respond.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: rt.origins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Trace-ID"},
		ExposedHeaders: []string{"X-Trace-ID"},
		MaxAge:         300,
	}))

	r.Get("/healthz", handleHealth(rt.health, rt.responder))
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Route("/api", func(r chi.Router) {
		rt.universities.RegisterRoutes(r)
		rt.login.RegisterRoutes(r)

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(rt.tokens, rt.responder))
			rt.favorites.RegisterRoutes(r)
			rt.users.RegisterRoutes(r)
		})
	})

	r.Handle("/*", web.Handler())
	return r
}

type healthResponse struct {
	StatusCode int    `json:"statusCode"`
	Status     string `json:"status"`
}

// handleHealth reports whether the application pool can reach the database.
func handleHealth(pinger db.Pinger, rs *respond.Responder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pinger.Ping(ctx); err != nil {
			rs.Error(w, r, apperror.NewUnavailableError("database unavailable", err))
			return
		}
		respond.JSON(w, http.StatusOK, healthResponse{StatusCode: http.StatusOK, Status: "ok"})
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the HTTP API and frontend",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "migrate", Usage: "apply pending migrations before serving"},
		},
		Action: func(c *cli.Context) error {
			cfg, logger, closeLogger, err := bootstrap()
			if err != nil {
				return err
			}
			defer closeLogger()
			return serve(c.Context, cfg, logger, c.Bool("migrate"))
		},
	}
}

func serve(ctx context.Context, cfg *config.AppConfig, logger logging.Logger, migrate bool) error {
	appPool, importPool, err := db.NewDBPools(ctx, cfg.DBPools)
	if err != nil {
		return err
	}
	defer appPool.Close()
	defer importPool.Close()

	if err := db.EnableExtensions(ctx, importPool); err != nil {
		return err
	}
	if migrate {
		if err := db.RunMigrations(ctx, cfg.DBPools.ImportPool, cfg.MigrationsPath); err != nil {
			return err
		}
		logger.Info("Migrations applied", logging.Fields{"path": cfg.MigrationsPath})
	}

	var uniRepo universities.Repository = universities.NewPgRepository(appPool)
	if cfg.Cache.RedisURL != "" {
		redisCache, err := cache.NewRedisCache(ctx, cfg.Cache.RedisURL)
		if err != nil {
			// Search still works against the database alone.
			logger.Warn("Search cache disabled", logging.Fields{"error": err.Error()})
		} else {
			defer redisCache.Close()
			uniRepo = universities.NewCachedRepository(uniRepo, redisCache, cfg.Cache.TTL)
			logger.Info("Search cache enabled", logging.Fields{"ttl": cfg.Cache.TTL.String()})
		}
	}

	tokens, err := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenDuration, cfg.AppName)
	if err != nil {
		return err
	}
	userStore := users.NewStore(appPool)
	credentials, err := auth.NewCredentialVerifier(userStore)
	if err != nil {
		return err
	}

	rs := respond.New(cfg.Server.VerboseErrors)
	v := validation.NewValidator()
	defaults := listquery.Defaults{
		Page:        1,
		PageSize:    cfg.Pagination.DefaultPageSize,
		MaxPageSize: cfg.Pagination.MaxPageSize,
	}

	broadcaster := events.NewBroadcaster()
	favoriteService := favorites.NewService(favorites.NewPgRepository(appPool), broadcaster)
	favoriteHandlers := favorites.NewHandlers(favoriteService, v, defaults, rs).
		WithEventStream(events.Stream(broadcaster, rs))

	handler := newRouter(routes{
		logger:       logger,
		responder:    rs,
		origins:      cfg.Server.AllowedOrigins,
		health:       appPool,
		tokens:       tokens,
		universities: universities.NewHandlers(universities.NewService(uniRepo), defaults, rs),
		login:        auth.NewHandlers(credentials, tokens, v, rs),
		favorites:    favoriteHandlers,
		users:        users.NewHandlers(users.NewService(userStore, v), rs),
	})

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting", logging.Fields{"addr": addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Server shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	logger.Info("Server stopped gracefully", nil)
	return nil
}

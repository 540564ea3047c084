package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"article-service/internal/adapters/primary/http/handlers"
	"article-service/internal/adapters/primary/http/middleware"
	"article-service/internal/adapters/secondary/jwtauth"
	"article-service/internal/adapters/secondary/postgres"
	"article-service/internal/adapters/secondary/rediscache"
	"article-service/internal/adapters/secondary/sqlstore"
	"article-service/internal/config"
	"article-service/internal/core/ports/output"
	"article-service/internal/core/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

// storage bundles the repository with the hooks main needs for health checks
// and shutdown.
type storage struct {
	repo  ports.ArticleRepository
	ping  func(ctx context.Context) error
	close func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	initLogger(cfg)

	ctx := context.Background()

	store, err := openStorage(ctx, cfg)
	if err != nil {
		log.Fatalf("open storage: %v", err)
	}
	defer store.close()
	log.WithField("driver", cfg.Storage.Driver).Info("storage ready")

	// Response cache (optional)
	var cache ports.ResponseCache
	if cfg.Cache.Enabled {
		client, err := rediscache.NewClient(ctx, cfg.Cache.RedisAddr, cfg.Cache.RedisPassword, cfg.Cache.RedisDB)
		if err != nil {
			log.Warnf("redis cache init failed (continuing without response cache): %v", err)
		} else {
			defer client.Close()
			cache = rediscache.New(client, time.Duration(cfg.Cache.MaxAge)*time.Second)
			log.Info("redis response cache initialized")
		}
	} else {
		log.Info("response cache disabled")
	}

	// Bearer token verification (optional)
	var verifier ports.TokenVerifier
	if cfg.Auth.JWTSecret != "" {
		jwtSvc, err := jwtauth.NewService(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)
		if err != nil {
			log.Fatalf("init jwt verifier: %v", err)
		}
		verifier = jwtSvc
	} else {
		log.Warn("AUTH_JWT_SECRET not set: every request runs as anonymous")
	}

	articleSvc := services.NewArticleService(store.repo, cache)
	h := handlers.New(articleSvc, cache, cfg.Cache.MaxAge)

	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Metrics(),
		cors.New(corsConfig(cfg.CORS)),
		gin.Recovery(),
	)

	api := router.Group("/api", middleware.Authenticate(verifier))
	h.RegisterRoutes(api)

	router.GET("/healthz", func(c *gin.Context) {
		if err := store.ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if cfg.Metrics.Enabled {
		router.GET(cfg.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("server forced shutdown: %v", err)
		return
	}

	log.Info("server stopped")
}

func openStorage(ctx context.Context, cfg *config.Config) (*storage, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverSQLite:
		db, err := sqlstore.Open(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("sqlite handle: %w", err)
		}
		return &storage{
			repo:  sqlstore.NewArticleRepository(db),
			ping:  sqlDB.PingContext,
			close: func() { _ = sqlDB.Close() },
		}, nil

	default:
		poolCfg, err := pgxpool.ParseConfig(cfg.Database.DSN())
		if err != nil {
			return nil, fmt.Errorf("parse db config: %w", err)
		}
		poolCfg.MaxConns = int32(cfg.Database.MaxOpenConns)
		poolCfg.MinConns = int32(cfg.Database.MaxIdleConns)
		poolCfg.MaxConnLifetime = cfg.Database.ConnMaxLifetime

		pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err != nil {
			return nil, fmt.Errorf("create db pool: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("ping db: %w", err)
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		return &storage{
			repo:  postgres.NewArticleRepository(pool),
			ping:  pool.Ping,
			close: pool.Close,
		}, nil
	}
}

func corsConfig(cfg config.CORSConfig) cors.Config {
	c := cors.DefaultConfig()
	c.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions}
	c.AllowHeaders = append(c.AllowHeaders, "Authorization", "X-Request-ID")
	c.ExposeHeaders = []string{"Location", "X-Request-ID", "X-Cache", "X-Cache-Tags", "X-Cache-Contexts"}

	if len(cfg.AllowedOrigins) == 0 || (len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = cfg.AllowedOrigins
	}
	return c
}

func initLogger(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.Logger.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Logger.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}

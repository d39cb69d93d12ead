package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"example.com/storefront/internal/config"
	domkv "example.com/storefront/internal/domain/kv"
	domproduct "example.com/storefront/internal/domain/product"
	"example.com/storefront/internal/infra/mail"
	"example.com/storefront/internal/infra/persistence/kvrepo"
	"example.com/storefront/internal/infra/persistence/memory"
	dbmigrate "example.com/storefront/internal/infra/persistence/migrate"
	mysqlstore "example.com/storefront/internal/infra/persistence/mysql"
	pgstore "example.com/storefront/internal/infra/persistence/postgres"
	redisstore "example.com/storefront/internal/infra/persistence/redis"
	"example.com/storefront/internal/infra/security"
	httpapi "example.com/storefront/internal/interface/http"
	accountuc "example.com/storefront/internal/usecase/account"
	checkoutuc "example.com/storefront/internal/usecase/checkout"
	productuc "example.com/storefront/internal/usecase/product"
)

func main() {
	cfg := config.FromEnv()
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("storefront stopped", zap.Error(err))
	}
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	if lvl == zapcore.DebugLevel {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(lvl)
	return zc.Build()
}

type backends struct {
	kv      domkv.Store
	catalog domproduct.Repository
	mysqlDB *sql.DB
	closers []func()
}

// mysql opens and migrates the MySQL database once; storage and catalog share it.
func (b *backends) mysql(ctx context.Context, dsn string) (*sql.DB, error) {
	if b.mysqlDB != nil {
		return b.mysqlDB, nil
	}
	db, err := mysqlstore.Open(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if err := dbmigrate.ApplyMySQL(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	b.closers = append(b.closers, func() { _ = db.Close() })
	b.mysqlDB = db
	return db, nil
}

func (b *backends) close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
}

func openBackends(ctx context.Context, cfg config.Config, logger *zap.Logger) (*backends, error) {
	b := &backends{catalog: memory.NewProductRepository(memory.DefaultCatalog())}

	switch cfg.StorageDriver {
	case config.StorageMemory:
		b.kv = memory.NewKVStore()
	case config.StorageRedis:
		client, err := redisstore.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, func() { _ = client.Close() })
		b.kv = redisstore.NewKVStore(client, cfg.ProfileTTL)
	case config.StorageMySQL:
		db, err := b.mysql(ctx, cfg.MySQLDSN)
		if err != nil {
			return nil, err
		}
		b.kv = mysqlstore.NewKVStore(db)
	case config.StoragePostgres:
		pool, err := pgstore.Connect(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, pool.Close)
		if err := dbmigrate.ApplyPostgres(ctx, pool); err != nil {
			b.close()
			return nil, err
		}
		b.kv = pgstore.NewKVStore(pool)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}

	if cfg.CatalogSource == config.CatalogMySQL {
		db, err := b.mysql(ctx, cfg.MySQLDSN)
		if err != nil {
			b.close()
			return nil, err
		}
		b.catalog = mysqlstore.NewProductRepository(db)
	}

	logger.Info("storage ready",
		zap.String("driver", cfg.StorageDriver),
		zap.String("catalog", cfg.CatalogSource))
	return b, nil
}

func run(cfg config.Config, logger *zap.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	b, err := openBackends(ctx, cfg, logger)
	cancel()
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer b.close()

	tokens := security.NewJWTService(cfg.JWTSecret, cfg.ProfileTTL)
	var mailer accountuc.Mailer
	if cfg.SMTPAddr != "" {
		mailer = mail.NewSMTPMailer(cfg.SMTPAddr, cfg.SMTPFrom)
	}

	api := httpapi.NewAPI(httpapi.Dependencies{
		ProductService:  productuc.NewService(b.catalog),
		AccountService:  accountuc.NewService(kvrepo.NewAccountRepository(b.kv), security.NewBcryptService(0), tokens, mailer, logger),
		CheckoutService: checkoutuc.NewService(logger),
		Sessions:        httpapi.NewSessions(b.kv, cfg.ProfileTTL, logger),
		TokenService:    tokens,
		ProfileTTL:      cfg.ProfileTTL,
		Logger:          logger,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting http server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	case err := <-serverErr:
		return err
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelShutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"tradedocs/go_backend/internal/app/config"
	apphttp "tradedocs/go_backend/internal/app/http"
	"tradedocs/go_backend/internal/domain/store"
	"tradedocs/go_backend/internal/infra/db/postgres"
	"tradedocs/go_backend/internal/infra/db/sqlite"
	"tradedocs/go_backend/internal/infra/logger"
	sentryutil "tradedocs/go_backend/internal/infra/sentry"
	"tradedocs/go_backend/internal/infra/store/memory"
	"tradedocs/go_backend/internal/infra/supabase"
)

func Run() {
	cfg := config.MustLoad()

	log, err := logger.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	sentryutil.Init(sentryutil.Options{
		DSN:         cfg.SentryDSN,
		Environment: cfg.SentryEnvironment,
		Release:     cfg.SentryRelease,
	}, log)
	defer sentryutil.Flush()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, closer, err := OpenStore(ctx, cfg)
	if err != nil {
		log.Fatal("store", zap.String("driver", cfg.StoreDriver), zap.Error(err))
	}
	defer closer.Close()

	router, err := apphttp.NewRouter(cfg, st, log)
	if err != nil {
		log.Fatal("router", zap.Error(err))
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Info("listening", zap.String("addr", cfg.HTTPAddr), zap.String("store", cfg.StoreDriver))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("server", zap.Error(err))
	}
}

type closeFunc func() error

func (f closeFunc) Close() error { return f() }

var noClose = closeFunc(func() error { return nil })

// OpenStore connects the record store selected by cfg.StoreDriver.
func OpenStore(ctx context.Context, cfg config.Config) (store.Store, io.Closer, error) {
	switch cfg.StoreDriver {
	case config.DriverMemory:
		return memory.New(), noClose, nil
	case config.DriverPostgres:
		db, err := postgres.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		st := postgres.NewStore(db)
		if err := st.Migrate(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		return st, closeFunc(func() error { db.Close(); return nil }), nil
	case config.DriverSQLite:
		st, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return st, st, nil
	case config.DriverSupabase:
		st, err := supabase.New(cfg.SupabaseURL, cfg.SupabaseServiceRoleKey, cfg.HTTPTimeout)
		if err != nil {
			return nil, nil, err
		}
		return st, noClose, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

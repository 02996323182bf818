package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/launchpad-labs/project-starter/internal/bootstrap"
	cronjob "github.com/launchpad-labs/project-starter/internal/cron"
	"github.com/launchpad-labs/project-starter/internal/projects"
	"github.com/launchpad-labs/project-starter/internal/session"
	sessionhttp "github.com/launchpad-labs/project-starter/internal/session/http"
	"github.com/launchpad-labs/project-starter/internal/users"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web server",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bootstrap.SetGinMode(cfg.App.Environment)

	provider, err := newIdentityProvider(ctx)
	if err != nil {
		return err
	}

	pool, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{
		DSN:      cfg.Database.DSN,
		MaxConns: int32(cfg.Database.MaxConns),
		MinConns: int32(cfg.Database.MinConns),
	})
	if err != nil {
		return err
	}
	if pool != nil {
		defer pool.Close()
	}

	rdb, err := bootstrap.OpenRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if rdb != nil {
		defer rdb.Close()
	}

	gen, err := newGenerator(ctx)
	if err != nil {
		return err
	}

	forms := projects.NewRegistry(gen)
	sched := cronjob.NewScheduler()
	opts := []session.Option{session.WithSignOutHook(forms.Drop)}

	if pool != nil {
		repo := users.NewRepo(pool)
		if err := repo.Migrate(ctx); err != nil {
			return fmt.Errorf("migrate users: %w", err)
		}
		opts = append(opts, session.WithUserRegistry(repo))
	} else {
		logger.Info("DB_DSN not set, user registry disabled")
	}

	var (
		store  session.Store
		broker session.Broker
	)
	if rdb != nil {
		store = session.NewRedisStore(rdb)
		broker = session.NewRedisBroker(rdb)
	} else {
		mem := session.NewMemoryStore()
		if err := sched.AddSweep("session-sweep", cfg.Session.SweepSpec, mem); err != nil {
			return err
		}
		store = mem
		broker = session.NewMemoryBroker()
	}
	if err := sched.AddPrune("form-prune", cfg.Session.SweepSpec, forms, cfg.Session.TTL); err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	manager := session.NewManager(provider, store, broker, cfg.Session.TTL, opts...)

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:    cfg.App.ServiceName,
		Version:        cfg.App.Version,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Cookie: sessionhttp.CookieConfig{
			Name:   cfg.Session.CookieName,
			MaxAge: cfg.Session.TTL,
			Secure: cfg.Session.SecureCookie,
		},
		Firebase: cfg.Firebase,
		DevAuth:  cfg.DevAuth(),
		Sessions: manager,
		Forms:    forms,
		DB:       pool,
		Redis:    rdb,
	})

	// Event streams hang off baseCtx so they end when shutdown starts.
	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return baseCtx },
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", srv.Addr), zap.String("env", cfg.App.Environment))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	cancelBase()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
		return srv.Close()
	}
	return nil
}

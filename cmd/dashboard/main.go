package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/ai-stock-trading/dashboard/internal/admin"
	"github.com/ai-stock-trading/dashboard/internal/backend"
	"github.com/ai-stock-trading/dashboard/internal/config"
	"github.com/ai-stock-trading/dashboard/internal/dashboard"
	"github.com/ai-stock-trading/dashboard/internal/logger"
	"github.com/ai-stock-trading/dashboard/internal/server"
	"github.com/ai-stock-trading/dashboard/internal/session"
	"github.com/ai-stock-trading/dashboard/internal/settings"
)

const _cfgFilePath = "./configs/dashboard.yaml"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("can't detect .env file")
	}

	cfg, err := config.LoadDashboardConfig(_cfgFilePath)
	if err != nil {
		log.Fatalf("%s: can't load dashboard cfg", err)
	}

	zapLogger, loggerSync, err := logger.NewZapLogger(logger.ParseLevel(cfg.LogLevel))
	if err != nil {
		log.Fatalf("%s: can't init logger", err)
	}
	defer loggerSync()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	store := session.NewStore(cfg.SessionFile)
	if err := store.Load(); err != nil {
		zapLogger.Warnf("%s: can't load session, starting empty", err)
	}

	client := backend.NewClient(cfg.BackendAddress, store, zapLogger)

	if store.Expired() {
		username := os.Getenv("DASHBOARD_USERNAME")
		password := os.Getenv("DASHBOARD_PASSWORD")
		if username == "" || password == "" {
			zapLogger.Fatalf("no valid session and no DASHBOARD_USERNAME/DASHBOARD_PASSWORD set")
		}
		if err := client.Login(ctx, username, password); err != nil {
			zapLogger.Fatalf("%s: can't log in", err)
		}
	}

	// One teardown path for both triggers: a 401 from any call and the
	// optimistic 24h expiry check inside the refresh loop.
	client.OnUnauthorized(func() {
		zapLogger.Warnf("token expired or invalid, logging out")
		if err := store.Clear(); err != nil {
			zapLogger.Errorf("%s: can't clear session", err)
		}
		cancel()
	})

	dash := dashboard.New(client, store, cfg, zapLogger)
	settingsSvc := settings.NewService(client, zapLogger)
	adminSvc := admin.NewService(client, zapLogger)

	hub := server.NewHub(zapLogger)
	dash.OnUpdate(hub.Broadcast)
	go hub.Run(ctx)

	go func() {
		if err := dash.Run(ctx); err != nil {
			if errors.Is(err, dashboard.ErrSessionExpired) {
				if err := store.Clear(); err != nil {
					zapLogger.Errorf("%s: can't clear session", err)
				}
			} else if !errors.Is(err, context.Canceled) {
				zapLogger.Errorf("%s: dashboard loop stopped", err)
			}
			cancel()
		}
	}()

	api := server.NewAPI(client, dash, settingsSvc, adminSvc, store, hub, zapLogger)
	srv := server.NewHTTPServer(ctx, cfg.ListenPort, api.Router())

	zapLogger.Infof("dashboard listening on :%s", cfg.ListenPort)
	if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		zapLogger.Errorf("%s: server stopped", err)
	}
}

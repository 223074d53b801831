// usersctl is the account-management companion of the dashboard:
// list every account, approve a pending signup, or delete an account.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/joho/godotenv"

	"github.com/ai-stock-trading/dashboard/internal/admin"
	"github.com/ai-stock-trading/dashboard/internal/backend"
	"github.com/ai-stock-trading/dashboard/internal/config"
	"github.com/ai-stock-trading/dashboard/internal/logger"
	"github.com/ai-stock-trading/dashboard/internal/session"
)

func main() {
	var (
		cfgPath   = flag.String("config", "./configs/dashboard.yaml", "dashboard config file")
		approveID = flag.Int64("approve", 0, "approve the pending account with this id")
		deleteID  = flag.Int64("delete", 0, "delete the account with this id")
		yes       = flag.Bool("yes", false, "confirm deletion")
	)
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("can't detect .env file")
	}

	cfg, err := config.LoadDashboardConfig(*cfgPath)
	if err != nil {
		log.Fatalf("%s: can't load dashboard cfg", err)
	}

	zapLogger, loggerSync, err := logger.NewZapLogger(logger.Warn)
	if err != nil {
		log.Fatalf("%s: can't init logger", err)
	}
	defer loggerSync()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	store := session.NewStore(cfg.SessionFile)
	if err := store.Load(); err != nil {
		zapLogger.Fatalf("%s: can't load session", err)
	}

	client := backend.NewClient(cfg.BackendAddress, store, zapLogger)
	if store.Expired() {
		username := os.Getenv("DASHBOARD_USERNAME")
		password := os.Getenv("DASHBOARD_PASSWORD")
		if username == "" || password == "" {
			zapLogger.Fatalf("session expired, set DASHBOARD_USERNAME/DASHBOARD_PASSWORD to log in")
		}
		if err := client.Login(ctx, username, password); err != nil {
			zapLogger.Fatalf("%s: can't log in", err)
		}
	}

	svc := admin.NewService(client, zapLogger)

	switch {
	case *approveID != 0:
		if err := svc.Approve(ctx, *approveID); err != nil {
			zapLogger.Fatalf("%s: can't approve user %d", err, *approveID)
		}
		fmt.Printf("user %d approved\n", *approveID)

	case *deleteID != 0:
		if !*yes {
			zapLogger.Fatalf("deleting user %d requires -yes", *deleteID)
		}
		if err := svc.Delete(ctx, *deleteID); err != nil {
			zapLogger.Fatalf("%s: can't delete user %d", err, *deleteID)
		}
		fmt.Printf("user %d deleted\n", *deleteID)

	default:
		users, err := svc.Refresh(ctx)
		if err != nil {
			zapLogger.Fatalf("%s: can't list users", err)
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tUSERNAME\tSTATUS\tROLE")
		for _, u := range users {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", u.ID, u.Username, u.Status, u.Role)
		}
		w.Flush()
	}
}

package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"MerchantReports/internal/appmanager"
	"MerchantReports/internal/config"
	"MerchantReports/internal/dashboard"
	"MerchantReports/internal/notification"
	"MerchantReports/internal/store"
)

const ssePingInterval = 30 * time.Second

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the report HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	activity := notification.NewNotificationService(config.ActivityCapacity)
	sse := dashboard.NewSSEServer(ssePingInterval)
	detach := sse.Attach(activity)
	defer detach()

	manager := appmanager.NewAppManager(&appmanager.Deps{
		Config:   cfg,
		Store:    store.New(),
		Activity: activity,
		SSE:      sse,
	})

	servicesCfg, err := appmanager.LoadServiceSequence(cfg.ServicesFile)
	if errors.Is(err, os.ErrNotExist) {
		slog.Warn("service sequence not found, using defaults", "path", cfg.ServicesFile)
		servicesCfg = appmanager.DefaultServiceSequence()
	} else if err != nil {
		return fmt.Errorf("failed to load service sequence: %w", err)
	}

	manager.AutoRegisterServices(servicesCfg)

	if err := manager.StartAll(); err != nil {
		if stopErr := manager.StopAll(); stopErr != nil {
			slog.Error("cleanup after failed start", "error", stopErr)
		}
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	slog.Info("Shutdown signal received")

	// Streams must end before the server can drain.
	sse.Stop()
	return manager.StopAll()
}

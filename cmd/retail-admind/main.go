// Command retail-admind serves the retail API over plain HTTP for the
// admin deployment.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/abcretail/retail/internal/app"
	"github.com/abcretail/retail/internal/config"
	"github.com/abcretail/retail/internal/server"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("configuration error", "error", err)
		os.Exit(1)
	}

	services, err := app.Build(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}

	srv := server.New(
		services.Customers,
		services.Products,
		services.Orders,
		services.Audit,
		services.Files,
		logger,
	)

	logger.Info("admin server listening", "addr", cfg.HTTPAddr)
	if err := srv.Run(cfg.HTTPAddr); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

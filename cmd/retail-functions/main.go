// Command retail-functions is the Lambda entrypoint for the retail
// HTTP API. API Gateway proxies every /api/* route to this function.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/abcretail/retail/function"
	"github.com/abcretail/retail/internal/app"
	"github.com/abcretail/retail/internal/config"
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

	handler := function.NewHandler(
		services.Customers,
		services.Products,
		services.Orders,
		services.Audit,
		services.Files,
		logger,
	)
	lambda.Start(handler.Handle)
}

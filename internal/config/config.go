// Package config loads runtime configuration from the environment,
// with an optional .env file for local development.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds everything the binaries need to reach their backing
// services.
type Config struct {
	// Region is the AWS region for all clients.
	Region string
	// Endpoint overrides the AWS endpoint, for LocalStack and tests.
	// Empty means the real AWS endpoints.
	Endpoint string

	CustomersTable string
	ProductsTable  string
	OrdersTable    string

	CustomerPhotosBucket string
	ProductPhotosBucket  string

	// AuditQueueURL is the SQS queue URL for the audit log. Required.
	AuditQueueURL string

	// ShareDir is the mounted contracts directory.
	ShareDir string

	// HTTPAddr is the listen address of the admin server.
	HTTPAddr string
}

// Load reads configuration from the environment. A .env file in the
// working directory is merged in when present.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Region:               getenv("AWS_REGION", "af-south-1"),
		Endpoint:             os.Getenv("AWS_ENDPOINT_URL"),
		CustomersTable:       getenv("RETAIL_CUSTOMERS_TABLE", "customers"),
		ProductsTable:        getenv("RETAIL_PRODUCTS_TABLE", "products"),
		OrdersTable:          getenv("RETAIL_ORDERS_TABLE", "orders"),
		CustomerPhotosBucket: getenv("RETAIL_CUSTOMER_PHOTOS_BUCKET", "customer-photos"),
		ProductPhotosBucket:  getenv("RETAIL_PRODUCT_PHOTOS_BUCKET", "product-photos"),
		AuditQueueURL:        os.Getenv("RETAIL_AUDIT_QUEUE_URL"),
		ShareDir:             getenv("RETAIL_SHARE_DIR", "/mnt/contracts"),
		HTTPAddr:             getenv("RETAIL_HTTP_ADDR", ":8080"),
	}

	if cfg.AuditQueueURL == "" {
		return Config{}, fmt.Errorf("RETAIL_AUDIT_QUEUE_URL is required")
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

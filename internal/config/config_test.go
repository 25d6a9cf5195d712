package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("RETAIL_AUDIT_QUEUE_URL", "https://sqs.af-south-1.amazonaws.com/123456789012/audit-log")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.CustomersTable != "customers" || cfg.ProductsTable != "products" || cfg.OrdersTable != "orders" {
		t.Errorf("unexpected table defaults: %+v", cfg)
	}
	if cfg.CustomerPhotosBucket != "customer-photos" || cfg.ProductPhotosBucket != "product-photos" {
		t.Errorf("unexpected bucket defaults: %+v", cfg)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("unexpected HTTP addr default %q", cfg.HTTPAddr)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("RETAIL_AUDIT_QUEUE_URL", "https://sqs.test/queue")
	t.Setenv("RETAIL_CUSTOMERS_TABLE", "customers-staging")
	t.Setenv("AWS_ENDPOINT_URL", "http://localhost:4566")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.CustomersTable != "customers-staging" {
		t.Errorf("override not applied: %q", cfg.CustomersTable)
	}
	if cfg.Endpoint != "http://localhost:4566" {
		t.Errorf("endpoint override not applied: %q", cfg.Endpoint)
	}
}

func TestLoad_RequiresQueueURL(t *testing.T) {
	t.Setenv("RETAIL_AUDIT_QUEUE_URL", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected an error when the audit queue URL is unset")
	}
}

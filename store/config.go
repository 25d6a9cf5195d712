package store

// Config holds the table names used by the Store.
type Config struct {
	// CustomersTable is the DynamoDB table holding customer rows.
	// Default: "customers"
	CustomersTable string

	// ProductsTable is the DynamoDB table holding product rows.
	// Default: "products"
	ProductsTable string

	// OrdersTable is the DynamoDB table holding order rows.
	// Default: "orders"
	OrdersTable string
}

// DefaultConfig returns the default table names.
func DefaultConfig() Config {
	return Config{
		CustomersTable: "customers",
		ProductsTable:  "products",
		OrdersTable:    "orders",
	}
}

// validate fills in defaults for unset fields.
func (c *Config) validate() {
	if c.CustomersTable == "" {
		c.CustomersTable = "customers"
	}
	if c.ProductsTable == "" {
		c.ProductsTable = "products"
	}
	if c.OrdersTable == "" {
		c.OrdersTable = "orders"
	}
}

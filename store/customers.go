package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/abcretail/retail/model"
)

// DefaultCustomerPartition is used when a customer has no province.
const DefaultCustomerPartition = "Unknown"

// ListCustomers returns every customer row.
func (s *Store) ListCustomers(ctx context.Context) ([]model.Customer, error) {
	return scanAll[model.Customer](ctx, s, s.config.CustomersTable)
}

// GetCustomer looks up a customer by composite key.
func (s *Store) GetCustomer(ctx context.Context, partitionKey, rowKey string) (*model.Customer, error) {
	return getItem[model.Customer](ctx, s, s.config.CustomersTable, partitionKey, rowKey)
}

// InsertCustomer assigns the composite key and writes the row. The
// partition key is the customer's province, falling back to
// DefaultCustomerPartition when empty.
func (s *Store) InsertCustomer(ctx context.Context, customer *model.Customer) error {
	customer.PartitionKey = customer.Province
	if customer.PartitionKey == "" {
		customer.PartitionKey = DefaultCustomerPartition
	}
	customer.RowKey = uuid.NewString()

	return s.insertItem(ctx, s.config.CustomersTable, customer)
}

// UpdateCustomer replaces the row unconditionally. The partition key is
// never re-derived, even when the province changed.
func (s *Store) UpdateCustomer(ctx context.Context, customer *model.Customer) error {
	return s.replaceItem(ctx, s.config.CustomersTable, customer)
}

// DeleteCustomer removes a customer row by key.
func (s *Store) DeleteCustomer(ctx context.Context, partitionKey, rowKey string) error {
	return s.deleteItem(ctx, s.config.CustomersTable, partitionKey, rowKey)
}

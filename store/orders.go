package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/abcretail/retail/model"
)

// orderPartitionLayout groups orders by year-month of the order date.
const orderPartitionLayout = "2006-01"

// ListOrders returns every order row.
func (s *Store) ListOrders(ctx context.Context) ([]model.Order, error) {
	return scanAll[model.Order](ctx, s, s.config.OrdersTable)
}

// GetOrder looks up an order by composite key.
func (s *Store) GetOrder(ctx context.Context, partitionKey, rowKey string) (*model.Order, error) {
	return getItem[model.Order](ctx, s, s.config.OrdersTable, partitionKey, rowKey)
}

// InsertOrder assigns the composite key and writes the row. Orders are
// partitioned by the year-month of their order date; a zero date is set
// to the current time first.
func (s *Store) InsertOrder(ctx context.Context, order *model.Order) error {
	if order.OrderDate.IsZero() {
		order.OrderDate = time.Now().UTC()
	}
	order.PartitionKey = order.OrderDate.UTC().Format(orderPartitionLayout)
	order.RowKey = uuid.NewString()

	return s.insertItem(ctx, s.config.OrdersTable, order)
}

// UpdateOrder replaces the row unconditionally. The partition key is not
// re-derived when the order date changed.
func (s *Store) UpdateOrder(ctx context.Context, order *model.Order) error {
	return s.replaceItem(ctx, s.config.OrdersTable, order)
}

// DeleteOrder removes an order row by key.
func (s *Store) DeleteOrder(ctx context.Context, partitionKey, rowKey string) error {
	return s.deleteItem(ctx, s.config.OrdersTable, partitionKey, rowKey)
}

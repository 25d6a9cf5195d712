package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/abcretail/retail/model"
)

// DefaultProductPartition is used when a product has no category.
const DefaultProductPartition = "General"

// ListProducts returns every product row.
func (s *Store) ListProducts(ctx context.Context) ([]model.Product, error) {
	return scanAll[model.Product](ctx, s, s.config.ProductsTable)
}

// GetProduct looks up a product by composite key.
func (s *Store) GetProduct(ctx context.Context, partitionKey, rowKey string) (*model.Product, error) {
	return getItem[model.Product](ctx, s, s.config.ProductsTable, partitionKey, rowKey)
}

// InsertProduct assigns the composite key and writes the row. The
// partition key is the product's category, falling back to
// DefaultProductPartition when empty.
func (s *Store) InsertProduct(ctx context.Context, product *model.Product) error {
	product.PartitionKey = product.Category
	if product.PartitionKey == "" {
		product.PartitionKey = DefaultProductPartition
	}
	product.RowKey = uuid.NewString()

	return s.insertItem(ctx, s.config.ProductsTable, product)
}

// UpdateProduct replaces the row unconditionally.
func (s *Store) UpdateProduct(ctx context.Context, product *model.Product) error {
	return s.replaceItem(ctx, s.config.ProductsTable, product)
}

// DeleteProduct removes a product row by key.
func (s *Store) DeleteProduct(ctx context.Context, partitionKey, rowKey string) error {
	return s.deleteItem(ctx, s.config.ProductsTable, partitionKey, rowKey)
}

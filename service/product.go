package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/abcretail/retail/model"
)

// MaxProductPrice caps the accepted unit price.
const MaxProductPrice = 1_000_000

// ProductStore is the entity store surface the product service needs.
type ProductStore interface {
	ListProducts(ctx context.Context) ([]model.Product, error)
	GetProduct(ctx context.Context, partitionKey, rowKey string) (*model.Product, error)
	InsertProduct(ctx context.Context, product *model.Product) error
	UpdateProduct(ctx context.Context, product *model.Product) error
	DeleteProduct(ctx context.Context, partitionKey, rowKey string) error
}

// ProductService orchestrates product CRUD across the entity store, the
// photo bucket and the audit queue.
type ProductService struct {
	entities ProductStore
	photos   Photos
	audit    AuditSink
	logger   *slog.Logger
}

// NewProductService creates a ProductService.
func NewProductService(entities ProductStore, photos Photos, audit AuditSink, logger *slog.Logger) *ProductService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProductService{
		entities: entities,
		photos:   photos,
		audit:    audit,
		logger:   logger,
	}
}

// List returns all products.
func (s *ProductService) List(ctx context.Context) ([]model.Product, error) {
	products, err := s.entities.ListProducts(ctx)
	if err != nil {
		logError(ctx, s.audit, s.logger, "Product", "GetAllProducts", err)
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// Get returns a product by composite key, or ErrNotFound.
func (s *ProductService) Get(ctx context.Context, partitionKey, rowKey string) (*model.Product, error) {
	if partitionKey == "" || rowKey == "" {
		return nil, ErrNotFound
	}
	return s.entities.GetProduct(ctx, partitionKey, rowKey)
}

// ByCategory returns products in the given category, case-insensitively.
func (s *ProductService) ByCategory(ctx context.Context, category string) ([]model.Product, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	var matched []model.Product
	for _, p := range all {
		if strings.EqualFold(p.Category, category) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

// ByPriceRange returns products with minPrice <= Price <= maxPrice.
func (s *ProductService) ByPriceRange(ctx context.Context, minPrice, maxPrice float64) ([]model.Product, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	var matched []model.Product
	for _, p := range all {
		if p.Price >= minPrice && p.Price <= maxPrice {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

// Create validates the product, enforces name uniqueness, uploads the
// photo when supplied and inserts the record.
func (s *ProductService) Create(ctx context.Context, product *model.Product, photo *PhotoUpload) (*model.Product, error) {
	if err := s.validate(product); err != nil {
		return nil, err
	}

	unique, err := s.IsNameUnique(ctx, product.ProductName, "", "")
	if err != nil {
		return nil, fmt.Errorf("check product name uniqueness: %w", err)
	}
	if !unique {
		return nil, validationf("Product name already exists")
	}

	if photo != nil && photo.FileName != "" {
		url, err := s.photos.Upload(ctx, photo.FileName, photo.Body)
		if err != nil {
			logError(ctx, s.audit, s.logger, "Product", "CreateProduct", err)
			return nil, fmt.Errorf("upload product photo: %w", err)
		}
		product.ProductPhotoURL = url
	}

	if err := s.entities.InsertProduct(ctx, product); err != nil {
		logError(ctx, s.audit, s.logger, "Product", "CreateProduct", err)
		return nil, fmt.Errorf("create product: %w", err)
	}

	logEvent(ctx, s.audit, s.logger, "Product Created", "Product", productDetails(product))
	return product, nil
}

// Update validates and persists the product, replacing the photo first
// when a new one is supplied.
func (s *ProductService) Update(ctx context.Context, product *model.Product, photo *PhotoUpload) (*model.Product, error) {
	if err := s.validate(product); err != nil {
		return nil, err
	}

	unique, err := s.IsNameUnique(ctx, product.ProductName, product.PartitionKey, product.RowKey)
	if err != nil {
		return nil, fmt.Errorf("check product name uniqueness: %w", err)
	}
	if !unique {
		return nil, validationf("Product name already exists")
	}

	if photo != nil && photo.FileName != "" {
		if product.ProductPhotoURL != "" {
			if _, err := s.photos.Delete(ctx, product.ProductPhotoURL); err != nil {
				logError(ctx, s.audit, s.logger, "Product", "UpdateProduct", err)
				return nil, fmt.Errorf("delete old product photo: %w", err)
			}
		}
		url, err := s.photos.Upload(ctx, photo.FileName, photo.Body)
		if err != nil {
			logError(ctx, s.audit, s.logger, "Product", "UpdateProduct", err)
			return nil, fmt.Errorf("upload product photo: %w", err)
		}
		product.ProductPhotoURL = url
	}

	if err := s.entities.UpdateProduct(ctx, product); err != nil {
		logError(ctx, s.audit, s.logger, "Product", "UpdateProduct", err)
		return nil, fmt.Errorf("update product: %w", err)
	}

	logEvent(ctx, s.audit, s.logger, "Product Updated", "Product", productDetails(product))
	return product, nil
}

// Delete removes the product and its photo. It reports false, without
// error, when the product does not exist.
func (s *ProductService) Delete(ctx context.Context, partitionKey, rowKey string) (bool, error) {
	product, err := s.Get(ctx, partitionKey, rowKey)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		logError(ctx, s.audit, s.logger, "Product", "DeleteProduct", err)
		return false, fmt.Errorf("delete product: %w", err)
	}

	if product.ProductPhotoURL != "" {
		if _, err := s.photos.Delete(ctx, product.ProductPhotoURL); err != nil {
			logError(ctx, s.audit, s.logger, "Product", "DeleteProduct", err)
			return false, fmt.Errorf("delete product photo: %w", err)
		}
	}

	if err := s.entities.DeleteProduct(ctx, partitionKey, rowKey); err != nil {
		logError(ctx, s.audit, s.logger, "Product", "DeleteProduct", err)
		return false, fmt.Errorf("delete product: %w", err)
	}

	logEvent(ctx, s.audit, s.logger, "Product Deleted", "Product", productDetails(product))
	return true, nil
}

// IsNameUnique reports whether no other product uses the name,
// case-insensitively. Sequential guarantee only; see IsEmailUnique.
func (s *ProductService) IsNameUnique(ctx context.Context, name, excludePartitionKey, excludeRowKey string) (bool, error) {
	all, err := s.entities.ListProducts(ctx)
	if err != nil {
		return false, err
	}
	for _, p := range all {
		if p.PartitionKey == excludePartitionKey && p.RowKey == excludeRowKey {
			continue
		}
		if strings.EqualFold(p.ProductName, name) {
			return false, nil
		}
	}
	return true, nil
}

func (s *ProductService) validate(product *model.Product) error {
	if product.ProductName == "" {
		return validationf("Product name is required")
	}
	if product.Price < 0 {
		return validationf("Price cannot be negative")
	}
	if product.Price > MaxProductPrice {
		return validationf("Price cannot exceed R1,000,000")
	}
	return nil
}

func productDetails(p *model.Product) map[string]any {
	return map[string]any{
		"PartitionKey": p.PartitionKey,
		"RowKey":       p.RowKey,
		"ProductName":  p.ProductName,
		"Category":     p.Category,
		"Price":        p.Price,
	}
}

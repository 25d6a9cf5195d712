package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/abcretail/retail/model"
)

// OrderStore is the entity store surface the order service needs.
type OrderStore interface {
	ListOrders(ctx context.Context) ([]model.Order, error)
	GetOrder(ctx context.Context, partitionKey, rowKey string) (*model.Order, error)
	InsertOrder(ctx context.Context, order *model.Order) error
	UpdateOrder(ctx context.Context, order *model.Order) error
	DeleteOrder(ctx context.Context, partitionKey, rowKey string) error
}

// CustomerGetter resolves customer references on orders.
type CustomerGetter interface {
	GetCustomer(ctx context.Context, partitionKey, rowKey string) (*model.Customer, error)
}

// ProductGetter resolves product references on orders.
type ProductGetter interface {
	GetProduct(ctx context.Context, partitionKey, rowKey string) (*model.Product, error)
}

// OrderService orchestrates order CRUD. The total amount is always
// recomputed server-side from the current product price; a caller-supplied
// total is never trusted, and an order whose product cannot be resolved
// is rejected on both create and update.
type OrderService struct {
	entities  OrderStore
	customers CustomerGetter
	products  ProductGetter
	audit     AuditSink
	logger    *slog.Logger
}

// NewOrderService creates an OrderService.
func NewOrderService(entities OrderStore, customers CustomerGetter, products ProductGetter, audit AuditSink, logger *slog.Logger) *OrderService {
	if logger == nil {
		logger = slog.Default()
	}
	return &OrderService{
		entities:  entities,
		customers: customers,
		products:  products,
		audit:     audit,
		logger:    logger,
	}
}

// List returns all orders.
func (s *OrderService) List(ctx context.Context) ([]model.Order, error) {
	orders, err := s.entities.ListOrders(ctx)
	if err != nil {
		logError(ctx, s.audit, s.logger, "Order", "GetAllOrders", err)
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// Get returns an order by composite key, or ErrNotFound.
func (s *OrderService) Get(ctx context.Context, partitionKey, rowKey string) (*model.Order, error) {
	if partitionKey == "" || rowKey == "" {
		return nil, ErrNotFound
	}
	return s.entities.GetOrder(ctx, partitionKey, rowKey)
}

// ByCustomer returns all orders referencing the given customer key.
func (s *OrderService) ByCustomer(ctx context.Context, customerPartitionKey, customerRowKey string) ([]model.Order, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	var matched []model.Order
	for _, o := range all {
		if o.CustomerPartitionKey == customerPartitionKey && o.CustomerRowKey == customerRowKey {
			matched = append(matched, o)
		}
	}
	return matched, nil
}

// ByStatus returns all orders in the given state.
func (s *OrderService) ByStatus(ctx context.Context, status model.OrderStatus) ([]model.Order, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	var matched []model.Order
	for _, o := range all {
		if o.OrderStatus == status {
			matched = append(matched, o)
		}
	}
	return matched, nil
}

// ByDateRange returns orders with start <= OrderDate <= end.
func (s *OrderService) ByDateRange(ctx context.Context, start, end time.Time) ([]model.Order, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	var matched []model.Order
	for _, o := range all {
		if !o.OrderDate.Before(start) && !o.OrderDate.After(end) {
			matched = append(matched, o)
		}
	}
	return matched, nil
}

// TotalSales sums the total amount of non-cancelled orders, optionally
// bounded to a date range (zero times mean unbounded).
func (s *OrderService) TotalSales(ctx context.Context, start, end time.Time) (float64, error) {
	all, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	var total float64
	for _, o := range all {
		if o.OrderStatus == model.StatusCancelled {
			continue
		}
		if !start.IsZero() && o.OrderDate.Before(start) {
			continue
		}
		if !end.IsZero() && o.OrderDate.After(end) {
			continue
		}
		total += o.TotalAmount
	}
	return roundCents(total), nil
}

// Create validates the order, resolves its customer and product
// references, computes the total and inserts the record. The status
// defaults to Pending.
func (s *OrderService) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	if err := s.validate(order); err != nil {
		return nil, err
	}

	if _, err := s.customers.GetCustomer(ctx, order.CustomerPartitionKey, order.CustomerRowKey); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, validationf("Customer not found")
		}
		logError(ctx, s.audit, s.logger, "Order", "CreateOrder", err)
		return nil, fmt.Errorf("resolve order customer: %w", err)
	}

	product, err := s.products.GetProduct(ctx, order.ProductPartitionKey, order.ProductRowKey)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, validationf("Product not found")
		}
		logError(ctx, s.audit, s.logger, "Order", "CreateOrder", err)
		return nil, fmt.Errorf("resolve order product: %w", err)
	}

	order.TotalAmount = roundCents(product.Price * float64(order.Quantity))
	order.OrderStatus = model.StatusPending
	if order.OrderDate.IsZero() {
		order.OrderDate = time.Now().UTC()
	}

	if err := s.entities.InsertOrder(ctx, order); err != nil {
		logError(ctx, s.audit, s.logger, "Order", "CreateOrder", err)
		return nil, fmt.Errorf("create order: %w", err)
	}

	logEvent(ctx, s.audit, s.logger, "Order Created", "Order", orderDetails(order))
	return order, nil
}

// Update validates the order, recomputes the total from the current
// product price and replaces the record.
func (s *OrderService) Update(ctx context.Context, order *model.Order) (*model.Order, error) {
	if err := s.validate(order); err != nil {
		return nil, err
	}

	product, err := s.products.GetProduct(ctx, order.ProductPartitionKey, order.ProductRowKey)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, validationf("Product not found")
		}
		logError(ctx, s.audit, s.logger, "Order", "UpdateOrder", err)
		return nil, fmt.Errorf("resolve order product: %w", err)
	}
	order.TotalAmount = roundCents(product.Price * float64(order.Quantity))

	if err := s.entities.UpdateOrder(ctx, order); err != nil {
		logError(ctx, s.audit, s.logger, "Order", "UpdateOrder", err)
		return nil, fmt.Errorf("update order: %w", err)
	}

	logEvent(ctx, s.audit, s.logger, "Order Updated", "Order", orderDetails(order))
	return order, nil
}

// UpdateStatus moves the order to the given state.
func (s *OrderService) UpdateStatus(ctx context.Context, partitionKey, rowKey string, status model.OrderStatus) (*model.Order, error) {
	if !model.ValidStatus(status) {
		return nil, validationf("Invalid order status: %s", status)
	}

	order, err := s.Get(ctx, partitionKey, rowKey)
	if err != nil {
		return nil, err
	}

	order.OrderStatus = status
	if err := s.entities.UpdateOrder(ctx, order); err != nil {
		logError(ctx, s.audit, s.logger, "Order", "UpdateOrderStatus", err)
		return nil, fmt.Errorf("update order status: %w", err)
	}

	logEvent(ctx, s.audit, s.logger, "Order Status Updated", "Order", orderDetails(order))
	return order, nil
}

// Delete removes the order. It reports false, without error, when the
// order does not exist.
func (s *OrderService) Delete(ctx context.Context, partitionKey, rowKey string) (bool, error) {
	order, err := s.Get(ctx, partitionKey, rowKey)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		logError(ctx, s.audit, s.logger, "Order", "DeleteOrder", err)
		return false, fmt.Errorf("delete order: %w", err)
	}

	if err := s.entities.DeleteOrder(ctx, partitionKey, rowKey); err != nil {
		logError(ctx, s.audit, s.logger, "Order", "DeleteOrder", err)
		return false, fmt.Errorf("delete order: %w", err)
	}

	logEvent(ctx, s.audit, s.logger, "Order Deleted", "Order", orderDetails(order))
	return true, nil
}

func (s *OrderService) validate(order *model.Order) error {
	switch {
	case order.CustomerPartitionKey == "" || order.CustomerRowKey == "":
		return validationf("Customer information is required")
	case order.ProductPartitionKey == "" || order.ProductRowKey == "":
		return validationf("Product information is required")
	case order.Quantity <= 0:
		return validationf("Quantity must be greater than zero")
	}
	if order.OrderStatus != "" && !model.ValidStatus(order.OrderStatus) {
		return validationf("Invalid order status: %s", order.OrderStatus)
	}
	return nil
}

// roundCents rounds a money amount to two decimals.
func roundCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}

func orderDetails(o *model.Order) map[string]any {
	return map[string]any{
		"PartitionKey":         o.PartitionKey,
		"RowKey":               o.RowKey,
		"CustomerPartitionKey": o.CustomerPartitionKey,
		"CustomerRowKey":       o.CustomerRowKey,
		"ProductPartitionKey":  o.ProductPartitionKey,
		"ProductRowKey":        o.ProductRowKey,
		"Quantity":             o.Quantity,
		"TotalAmount":          o.TotalAmount,
		"OrderStatus":          string(o.OrderStatus),
	}
}

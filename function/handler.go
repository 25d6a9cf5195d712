// Package function hosts the Lambda HTTP API. It translates API Gateway
// proxy events into domain service calls and maps the service error
// taxonomy onto HTTP statuses: validation failures are 400, lookup
// misses 404, everything else 500.
package function

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"github.com/abcretail/retail/fileshare"
	"github.com/abcretail/retail/service"
)

// Handler dispatches API Gateway proxy requests to the domain services.
type Handler struct {
	customers *service.CustomerService
	products  *service.ProductService
	orders    *service.OrderService
	audit     *service.AuditService
	files     *fileshare.Share
	logger    *slog.Logger
}

// NewHandler creates a Handler.
func NewHandler(customers *service.CustomerService, products *service.ProductService, orders *service.OrderService, audit *service.AuditService, files *fileshare.Share, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		customers: customers,
		products:  products,
		orders:    orders,
		audit:     audit,
		files:     files,
		logger:    logger,
	}
}

// Handle routes a single API Gateway proxy request. This function is
// designed to be used as an AWS Lambda handler.
func (h *Handler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	segs := pathSegments(req.Path)

	switch {
	case matches(segs, "customers"):
		switch req.HTTPMethod {
		case http.MethodGet:
			return h.listCustomers(ctx)
		case http.MethodPost:
			return h.createCustomer(ctx, req)
		}
	case matches(segs, "customers", "*", "*"):
		partitionKey, rowKey := segs[1], segs[2]
		switch req.HTTPMethod {
		case http.MethodGet:
			return h.getCustomer(ctx, partitionKey, rowKey)
		case http.MethodPut:
			return h.updateCustomer(ctx, req, partitionKey, rowKey)
		case http.MethodDelete:
			return h.deleteCustomer(ctx, partitionKey, rowKey)
		}
	case matches(segs, "products"):
		switch req.HTTPMethod {
		case http.MethodGet:
			return h.listProducts(ctx)
		case http.MethodPost:
			return h.createProduct(ctx, req)
		}
	case matches(segs, "products", "*", "*"):
		partitionKey, rowKey := segs[1], segs[2]
		switch req.HTTPMethod {
		case http.MethodGet:
			return h.getProduct(ctx, partitionKey, rowKey)
		case http.MethodPut:
			return h.updateProduct(ctx, req, partitionKey, rowKey)
		case http.MethodDelete:
			return h.deleteProduct(ctx, partitionKey, rowKey)
		}
	case matches(segs, "orders"):
		switch req.HTTPMethod {
		case http.MethodGet:
			return h.listOrders(ctx)
		case http.MethodPost:
			return h.createOrder(ctx, req)
		}
	case matches(segs, "orders", "*", "*"):
		partitionKey, rowKey := segs[1], segs[2]
		switch req.HTTPMethod {
		case http.MethodGet:
			return h.getOrder(ctx, partitionKey, rowKey)
		case http.MethodPut:
			return h.updateOrder(ctx, req, partitionKey, rowKey)
		case http.MethodDelete:
			return h.deleteOrder(ctx, partitionKey, rowKey)
		}
	case matches(segs, "queue", "messages"):
		if req.HTTPMethod == http.MethodGet {
			return h.recentAuditLogs(ctx)
		}
	case matches(segs, "queue", "auditlog"):
		if req.HTTPMethod == http.MethodPost {
			return h.appendAuditLog(ctx, req)
		}
	case matches(segs, "fileshare", "upload"):
		if req.HTTPMethod == http.MethodPost {
			return h.uploadFile(ctx, req)
		}
	}

	return respondJSON(http.StatusNotFound, errorBody("Route not found"))
}

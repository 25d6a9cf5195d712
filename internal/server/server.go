// Package server exposes the retail API over a plain HTTP server for
// the admin deployment. It serves the same routes as the Lambda layer,
// plus the query endpoints the admin screens use.
package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abcretail/retail/fileshare"
	"github.com/abcretail/retail/service"
)

// Server wires the domain services into a gin router.
type Server struct {
	customers *service.CustomerService
	products  *service.ProductService
	orders    *service.OrderService
	audit     *service.AuditService
	files     *fileshare.Share
	logger    *slog.Logger
}

// New creates a Server.
func New(customers *service.CustomerService, products *service.ProductService, orders *service.OrderService, audit *service.AuditService, files *fileshare.Share, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		customers: customers,
		products:  products,
		orders:    orders,
		audit:     audit,
		files:     files,
		logger:    logger,
	}
}

// Router builds the route table.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api")

	api.GET("/customers", s.listCustomers)
	api.POST("/customers", s.createCustomer)
	api.GET("/customers/by-province/:province", s.customersByProvince)
	api.GET("/customers/:partitionKey/:rowKey", s.getCustomer)
	api.PUT("/customers/:partitionKey/:rowKey", s.updateCustomer)
	api.DELETE("/customers/:partitionKey/:rowKey", s.deleteCustomer)

	api.GET("/products", s.listProducts)
	api.POST("/products", s.createProduct)
	api.GET("/products/by-category/:category", s.productsByCategory)
	api.GET("/products/by-price", s.productsByPriceRange)
	api.GET("/products/:partitionKey/:rowKey", s.getProduct)
	api.PUT("/products/:partitionKey/:rowKey", s.updateProduct)
	api.DELETE("/products/:partitionKey/:rowKey", s.deleteProduct)

	api.GET("/orders", s.listOrders)
	api.POST("/orders", s.createOrder)
	api.GET("/orders/by-status/:status", s.ordersByStatus)
	api.GET("/orders/by-customer/:partitionKey/:rowKey", s.ordersByCustomer)
	api.GET("/orders/total-sales", s.totalSales)
	api.GET("/orders/:partitionKey/:rowKey", s.getOrder)
	api.PUT("/orders/:partitionKey/:rowKey", s.updateOrder)
	api.PUT("/orders/:partitionKey/:rowKey/status", s.updateOrderStatus)
	api.DELETE("/orders/:partitionKey/:rowKey", s.deleteOrder)

	api.GET("/queue/messages", s.recentAuditLogs)
	api.POST("/queue/auditlog", s.appendAuditLog)

	api.POST("/fileshare/upload", s.uploadFile)
	api.GET("/fileshare/files", s.listFiles)

	return r
}

// Run serves the router on addr until the listener fails.
func (s *Server) Run(addr string) error {
	return s.Router().Run(addr)
}

// respondError maps the service error taxonomy onto HTTP statuses, the
// same translation the Lambda layer applies.
func (s *Server) respondError(c *gin.Context, operation string, err error) {
	var validation *service.ValidationError
	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Reason})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	default:
		s.logger.Error("request failed",
			"operation", operation,
			"path", c.FullPath(),
			"error", err,
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// photoFromRequest wraps the uploaded photo, if any, for the photo
// store. The multipart file is left open; gin closes request resources
// when the handler returns.
func photoFromRequest(c *gin.Context) (*service.PhotoUpload, error) {
	header, err := c.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, err
	}
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	return &service.PhotoUpload{FileName: header.Filename, Body: file}, nil
}

package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abcretail/retail/model"
	"github.com/abcretail/retail/service"
)

func (s *Server) listOrders(c *gin.Context) {
	orders, err := s.orders.List(c.Request.Context())
	if err != nil {
		s.respondError(c, "ListOrders", err)
		return
	}
	if orders == nil {
		orders = []model.Order{}
	}
	c.JSON(http.StatusOK, orders)
}

func (s *Server) getOrder(c *gin.Context) {
	order, err := s.orders.Get(c.Request.Context(), c.Param("partitionKey"), c.Param("rowKey"))
	if err != nil {
		s.respondError(c, "GetOrder", err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (s *Server) ordersByStatus(c *gin.Context) {
	status := model.OrderStatus(c.Param("status"))
	if !model.ValidStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order status: " + c.Param("status")})
		return
	}
	orders, err := s.orders.ByStatus(c.Request.Context(), status)
	if err != nil {
		s.respondError(c, "OrdersByStatus", err)
		return
	}
	if orders == nil {
		orders = []model.Order{}
	}
	c.JSON(http.StatusOK, orders)
}

func (s *Server) ordersByCustomer(c *gin.Context) {
	orders, err := s.orders.ByCustomer(c.Request.Context(), c.Param("partitionKey"), c.Param("rowKey"))
	if err != nil {
		s.respondError(c, "OrdersByCustomer", err)
		return
	}
	if orders == nil {
		orders = []model.Order{}
	}
	c.JSON(http.StatusOK, orders)
}

func (s *Server) totalSales(c *gin.Context) {
	start, err := queryTime(c, "start")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start date"})
		return
	}
	end, err := queryTime(c, "end")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end date"})
		return
	}

	total, err := s.orders.TotalSales(c.Request.Context(), start, end)
	if err != nil {
		s.respondError(c, "TotalSales", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"totalSales": total})
}

func (s *Server) createOrder(c *gin.Context) {
	var order model.Order
	if err := c.ShouldBindJSON(&order); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	created, err := s.orders.Create(c.Request.Context(), &order)
	if err != nil {
		s.respondError(c, "CreateOrder", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":      "Order created successfully",
		"partitionKey": created.PartitionKey,
		"rowKey":       created.RowKey,
	})
}

func (s *Server) updateOrder(c *gin.Context) {
	var in model.Order
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	order, err := s.orders.Get(c.Request.Context(), c.Param("partitionKey"), c.Param("rowKey"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		s.respondError(c, "UpdateOrder", err)
		return
	}

	applyOrderInput(&in, order)
	updated, err := s.orders.Update(c.Request.Context(), order)
	if err != nil {
		s.respondError(c, "UpdateOrder", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":      "Order updated successfully",
		"partitionKey": updated.PartitionKey,
		"rowKey":       updated.RowKey,
	})
}

func (s *Server) updateOrderStatus(c *gin.Context) {
	var in struct {
		OrderStatus model.OrderStatus `json:"OrderStatus"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	updated, err := s.orders.UpdateStatus(c.Request.Context(), c.Param("partitionKey"), c.Param("rowKey"), in.OrderStatus)
	if err != nil {
		s.respondError(c, "UpdateOrderStatus", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":     "Order status updated successfully",
		"orderStatus": string(updated.OrderStatus),
	})
}

func (s *Server) deleteOrder(c *gin.Context) {
	deleted, err := s.orders.Delete(c.Request.Context(), c.Param("partitionKey"), c.Param("rowKey"))
	if err != nil {
		s.respondError(c, "DeleteOrder", err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
}

// applyOrderInput copies the supplied fields of in onto the stored
// order. The total is ignored: the order service always recomputes it.
func applyOrderInput(in, order *model.Order) {
	if in.CustomerPartitionKey != "" {
		order.CustomerPartitionKey = in.CustomerPartitionKey
	}
	if in.CustomerRowKey != "" {
		order.CustomerRowKey = in.CustomerRowKey
	}
	if in.ProductPartitionKey != "" {
		order.ProductPartitionKey = in.ProductPartitionKey
	}
	if in.ProductRowKey != "" {
		order.ProductRowKey = in.ProductRowKey
	}
	if in.Quantity != 0 {
		order.Quantity = in.Quantity
	}
	if !in.OrderDate.IsZero() {
		order.OrderDate = in.OrderDate
	}
	if in.OrderStatus != "" {
		order.OrderStatus = in.OrderStatus
	}
}

// queryTime parses an RFC 3339 date or date-time query parameter,
// returning the zero time when absent.
func queryTime(c *gin.Context, name string) (time.Time, error) {
	v := c.Query(name)
	if v == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", v)
}

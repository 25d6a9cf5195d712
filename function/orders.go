package function

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"github.com/abcretail/retail/model"
	"github.com/abcretail/retail/service"
)

func (h *Handler) listOrders(ctx context.Context) (events.APIGatewayProxyResponse, error) {
	orders, err := h.orders.List(ctx)
	if err != nil {
		return h.respondServiceError(ctx, "ListOrders", err)
	}
	if orders == nil {
		orders = []model.Order{}
	}
	return respondJSON(http.StatusOK, orders)
}

func (h *Handler) getOrder(ctx context.Context, partitionKey, rowKey string) (events.APIGatewayProxyResponse, error) {
	order, err := h.orders.Get(ctx, partitionKey, rowKey)
	if err != nil {
		return h.respondServiceError(ctx, "GetOrder", err)
	}
	return respondJSON(http.StatusOK, order)
}

func (h *Handler) createOrder(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	body, err := requestBody(req)
	if err != nil {
		return respondJSON(http.StatusBadRequest, errorBody("Invalid request body"))
	}

	var order model.Order
	if err := json.Unmarshal(body, &order); err != nil {
		return respondJSON(http.StatusBadRequest, errorBody("Invalid JSON body"))
	}

	created, err := h.orders.Create(ctx, &order)
	if err != nil {
		return h.respondServiceError(ctx, "CreateOrder", err)
	}
	return respondJSON(http.StatusOK, keyBody("Order created successfully", created.PartitionKey, created.RowKey))
}

func (h *Handler) updateOrder(ctx context.Context, req events.APIGatewayProxyRequest, partitionKey, rowKey string) (events.APIGatewayProxyResponse, error) {
	body, err := requestBody(req)
	if err != nil {
		return respondJSON(http.StatusBadRequest, errorBody("Invalid request body"))
	}

	var in model.Order
	if err := json.Unmarshal(body, &in); err != nil {
		return respondJSON(http.StatusBadRequest, errorBody("Invalid JSON body"))
	}

	order, err := h.orders.Get(ctx, partitionKey, rowKey)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return respondJSON(http.StatusNotFound, errorBody("Order not found"))
		}
		return h.respondServiceError(ctx, "UpdateOrder", err)
	}

	applyOrderInput(&in, order)
	updated, err := h.orders.Update(ctx, order)
	if err != nil {
		return h.respondServiceError(ctx, "UpdateOrder", err)
	}
	return respondJSON(http.StatusOK, keyBody("Order updated successfully", updated.PartitionKey, updated.RowKey))
}

func (h *Handler) deleteOrder(ctx context.Context, partitionKey, rowKey string) (events.APIGatewayProxyResponse, error) {
	deleted, err := h.orders.Delete(ctx, partitionKey, rowKey)
	if err != nil {
		return h.respondServiceError(ctx, "DeleteOrder", err)
	}
	if !deleted {
		return respondJSON(http.StatusNotFound, errorBody("Order not found"))
	}
	return respondJSON(http.StatusOK, map[string]string{"message": "Order deleted successfully"})
}

// applyOrderInput copies the supplied fields of in onto the stored
// order, leaving zero-valued fields untouched. The total is ignored
// here: it is always recomputed by the order service.
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

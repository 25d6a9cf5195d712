package function

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/aws/aws-lambda-go/events"

	"github.com/abcretail/retail/model"
	"github.com/abcretail/retail/service"
)

func (h *Handler) listProducts(ctx context.Context) (events.APIGatewayProxyResponse, error) {
	products, err := h.products.List(ctx)
	if err != nil {
		return h.respondServiceError(ctx, "ListProducts", err)
	}
	if products == nil {
		products = []model.Product{}
	}
	return respondJSON(http.StatusOK, products)
}

func (h *Handler) getProduct(ctx context.Context, partitionKey, rowKey string) (events.APIGatewayProxyResponse, error) {
	product, err := h.products.Get(ctx, partitionKey, rowKey)
	if err != nil {
		return h.respondServiceError(ctx, "GetProduct", err)
	}
	return respondJSON(http.StatusOK, product)
}

func (h *Handler) createProduct(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	form, err := parseMultipart(req)
	if err != nil {
		return respondJSON(http.StatusBadRequest, errorBody("Multipart form data required"))
	}

	var product model.Product
	if err := applyProductForm(form, &product); err != nil {
		return respondJSON(http.StatusBadRequest, errorBody(err.Error()))
	}

	created, err := h.products.Create(ctx, &product, photoFromForm(form))
	if err != nil {
		return h.respondServiceError(ctx, "CreateProduct", err)
	}
	return respondJSON(http.StatusOK, keyBody("Product created successfully", created.PartitionKey, created.RowKey))
}

func (h *Handler) updateProduct(ctx context.Context, req events.APIGatewayProxyRequest, partitionKey, rowKey string) (events.APIGatewayProxyResponse, error) {
	form, err := parseMultipart(req)
	if err != nil {
		return respondJSON(http.StatusBadRequest, errorBody("Multipart form data required"))
	}

	product, err := h.products.Get(ctx, partitionKey, rowKey)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return respondJSON(http.StatusNotFound, errorBody("Product not found"))
		}
		return h.respondServiceError(ctx, "UpdateProduct", err)
	}

	if err := applyProductForm(form, product); err != nil {
		return respondJSON(http.StatusBadRequest, errorBody(err.Error()))
	}
	updated, err := h.products.Update(ctx, product, photoFromForm(form))
	if err != nil {
		return h.respondServiceError(ctx, "UpdateProduct", err)
	}
	return respondJSON(http.StatusOK, keyBody("Product updated successfully", updated.PartitionKey, updated.RowKey))
}

func (h *Handler) deleteProduct(ctx context.Context, partitionKey, rowKey string) (events.APIGatewayProxyResponse, error) {
	deleted, err := h.products.Delete(ctx, partitionKey, rowKey)
	if err != nil {
		return h.respondServiceError(ctx, "DeleteProduct", err)
	}
	if !deleted {
		return respondJSON(http.StatusNotFound, errorBody("Product not found"))
	}
	return respondJSON(http.StatusOK, map[string]string{"message": "Product deleted successfully"})
}

// applyProductForm copies non-empty form fields onto the product, same
// partial-update semantics as applyCustomerForm.
func applyProductForm(form *Form, p *model.Product) error {
	if v := form.Value("ProductName"); v != "" {
		p.ProductName = v
	}
	if v := form.Value("Description"); v != "" {
		p.Description = v
	}
	if v := form.Value("Category"); v != "" {
		p.Category = v
	}
	if v := form.Value("Price"); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return errors.New("Invalid price")
		}
		p.Price = price
	}
	return nil
}

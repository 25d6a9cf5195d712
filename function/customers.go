package function

import (
	"context"
	"errors"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"github.com/abcretail/retail/model"
	"github.com/abcretail/retail/service"
)

func (h *Handler) listCustomers(ctx context.Context) (events.APIGatewayProxyResponse, error) {
	customers, err := h.customers.List(ctx)
	if err != nil {
		return h.respondServiceError(ctx, "ListCustomers", err)
	}
	if customers == nil {
		customers = []model.Customer{}
	}
	return respondJSON(http.StatusOK, customers)
}

func (h *Handler) getCustomer(ctx context.Context, partitionKey, rowKey string) (events.APIGatewayProxyResponse, error) {
	customer, err := h.customers.Get(ctx, partitionKey, rowKey)
	if err != nil {
		return h.respondServiceError(ctx, "GetCustomer", err)
	}
	return respondJSON(http.StatusOK, customer)
}

func (h *Handler) createCustomer(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	form, err := parseMultipart(req)
	if err != nil {
		return respondJSON(http.StatusBadRequest, errorBody("Multipart form data required"))
	}

	var customer model.Customer
	applyCustomerForm(form, &customer)

	created, err := h.customers.Create(ctx, &customer, photoFromForm(form))
	if err != nil {
		return h.respondServiceError(ctx, "CreateCustomer", err)
	}
	return respondJSON(http.StatusOK, keyBody("Customer created successfully", created.PartitionKey, created.RowKey))
}

func (h *Handler) updateCustomer(ctx context.Context, req events.APIGatewayProxyRequest, partitionKey, rowKey string) (events.APIGatewayProxyResponse, error) {
	form, err := parseMultipart(req)
	if err != nil {
		return respondJSON(http.StatusBadRequest, errorBody("Multipart form data required"))
	}

	customer, err := h.customers.Get(ctx, partitionKey, rowKey)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return respondJSON(http.StatusNotFound, errorBody("Customer not found"))
		}
		return h.respondServiceError(ctx, "UpdateCustomer", err)
	}

	applyCustomerForm(form, customer)
	updated, err := h.customers.Update(ctx, customer, photoFromForm(form))
	if err != nil {
		return h.respondServiceError(ctx, "UpdateCustomer", err)
	}
	return respondJSON(http.StatusOK, keyBody("Customer updated successfully", updated.PartitionKey, updated.RowKey))
}

func (h *Handler) deleteCustomer(ctx context.Context, partitionKey, rowKey string) (events.APIGatewayProxyResponse, error) {
	deleted, err := h.customers.Delete(ctx, partitionKey, rowKey)
	if err != nil {
		return h.respondServiceError(ctx, "DeleteCustomer", err)
	}
	if !deleted {
		return respondJSON(http.StatusNotFound, errorBody("Customer not found"))
	}
	return respondJSON(http.StatusOK, map[string]string{"message": "Customer deleted successfully"})
}

// applyCustomerForm copies non-empty form fields onto the customer.
// Absent or empty fields leave the existing values untouched, giving
// PUT its partial-update semantics.
func applyCustomerForm(form *Form, c *model.Customer) {
	set := func(name string, dst *string) {
		if v := form.Value(name); v != "" {
			*dst = v
		}
	}
	set("Name", &c.Name)
	set("Surname", &c.Surname)
	set("Email", &c.Email)
	set("PhoneNumber", &c.PhoneNumber)
	set("StreetAddress", &c.StreetAddress)
	set("City", &c.City)
	set("Province", &c.Province)
	set("PostalCode", &c.PostalCode)
	set("Country", &c.Country)
}

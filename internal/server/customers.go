package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abcretail/retail/model"
	"github.com/abcretail/retail/service"
)

func (s *Server) listCustomers(c *gin.Context) {
	customers, err := s.customers.List(c.Request.Context())
	if err != nil {
		s.respondError(c, "ListCustomers", err)
		return
	}
	if customers == nil {
		customers = []model.Customer{}
	}
	c.JSON(http.StatusOK, customers)
}

func (s *Server) getCustomer(c *gin.Context) {
	customer, err := s.customers.Get(c.Request.Context(), c.Param("partitionKey"), c.Param("rowKey"))
	if err != nil {
		s.respondError(c, "GetCustomer", err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (s *Server) customersByProvince(c *gin.Context) {
	customers, err := s.customers.ByProvince(c.Request.Context(), c.Param("province"))
	if err != nil {
		s.respondError(c, "CustomersByProvince", err)
		return
	}
	if customers == nil {
		customers = []model.Customer{}
	}
	c.JSON(http.StatusOK, customers)
}

func (s *Server) createCustomer(c *gin.Context) {
	var customer model.Customer
	bindCustomerForm(c, &customer)

	photo, err := photoFromRequest(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file upload"})
		return
	}

	created, err := s.customers.Create(c.Request.Context(), &customer, photo)
	if err != nil {
		s.respondError(c, "CreateCustomer", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":      "Customer created successfully",
		"partitionKey": created.PartitionKey,
		"rowKey":       created.RowKey,
	})
}

func (s *Server) updateCustomer(c *gin.Context) {
	customer, err := s.customers.Get(c.Request.Context(), c.Param("partitionKey"), c.Param("rowKey"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
			return
		}
		s.respondError(c, "UpdateCustomer", err)
		return
	}

	bindCustomerForm(c, customer)
	photo, err := photoFromRequest(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file upload"})
		return
	}

	updated, err := s.customers.Update(c.Request.Context(), customer, photo)
	if err != nil {
		s.respondError(c, "UpdateCustomer", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":      "Customer updated successfully",
		"partitionKey": updated.PartitionKey,
		"rowKey":       updated.RowKey,
	})
}

func (s *Server) deleteCustomer(c *gin.Context) {
	deleted, err := s.customers.Delete(c.Request.Context(), c.Param("partitionKey"), c.Param("rowKey"))
	if err != nil {
		s.respondError(c, "DeleteCustomer", err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Customer deleted successfully"})
}

// bindCustomerForm copies non-empty form fields onto the customer,
// giving PUT its partial-update semantics.
func bindCustomerForm(c *gin.Context, customer *model.Customer) {
	set := func(name string, dst *string) {
		if v := c.PostForm(name); v != "" {
			*dst = v
		}
	}
	set("Name", &customer.Name)
	set("Surname", &customer.Surname)
	set("Email", &customer.Email)
	set("PhoneNumber", &customer.PhoneNumber)
	set("StreetAddress", &customer.StreetAddress)
	set("City", &customer.City)
	set("Province", &customer.Province)
	set("PostalCode", &customer.PostalCode)
	set("Country", &customer.Country)
}

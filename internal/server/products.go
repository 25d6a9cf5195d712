package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/abcretail/retail/model"
	"github.com/abcretail/retail/service"
)

func (s *Server) listProducts(c *gin.Context) {
	products, err := s.products.List(c.Request.Context())
	if err != nil {
		s.respondError(c, "ListProducts", err)
		return
	}
	if products == nil {
		products = []model.Product{}
	}
	c.JSON(http.StatusOK, products)
}

func (s *Server) getProduct(c *gin.Context) {
	product, err := s.products.Get(c.Request.Context(), c.Param("partitionKey"), c.Param("rowKey"))
	if err != nil {
		s.respondError(c, "GetProduct", err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (s *Server) productsByCategory(c *gin.Context) {
	products, err := s.products.ByCategory(c.Request.Context(), c.Param("category"))
	if err != nil {
		s.respondError(c, "ProductsByCategory", err)
		return
	}
	if products == nil {
		products = []model.Product{}
	}
	c.JSON(http.StatusOK, products)
}

func (s *Server) productsByPriceRange(c *gin.Context) {
	minPrice, err := strconv.ParseFloat(c.DefaultQuery("min", "0"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price range"})
		return
	}
	maxPrice, err := strconv.ParseFloat(c.DefaultQuery("max", strconv.Itoa(service.MaxProductPrice)), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price range"})
		return
	}

	products, err := s.products.ByPriceRange(c.Request.Context(), minPrice, maxPrice)
	if err != nil {
		s.respondError(c, "ProductsByPriceRange", err)
		return
	}
	if products == nil {
		products = []model.Product{}
	}
	c.JSON(http.StatusOK, products)
}

func (s *Server) createProduct(c *gin.Context) {
	var product model.Product
	if err := bindProductForm(c, &product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	photo, err := photoFromRequest(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file upload"})
		return
	}

	created, err := s.products.Create(c.Request.Context(), &product, photo)
	if err != nil {
		s.respondError(c, "CreateProduct", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":      "Product created successfully",
		"partitionKey": created.PartitionKey,
		"rowKey":       created.RowKey,
	})
}

func (s *Server) updateProduct(c *gin.Context) {
	product, err := s.products.Get(c.Request.Context(), c.Param("partitionKey"), c.Param("rowKey"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		s.respondError(c, "UpdateProduct", err)
		return
	}

	if err := bindProductForm(c, product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	photo, err := photoFromRequest(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file upload"})
		return
	}

	updated, err := s.products.Update(c.Request.Context(), product, photo)
	if err != nil {
		s.respondError(c, "UpdateProduct", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":      "Product updated successfully",
		"partitionKey": updated.PartitionKey,
		"rowKey":       updated.RowKey,
	})
}

func (s *Server) deleteProduct(c *gin.Context) {
	deleted, err := s.products.Delete(c.Request.Context(), c.Param("partitionKey"), c.Param("rowKey"))
	if err != nil {
		s.respondError(c, "DeleteProduct", err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

// bindProductForm copies non-empty form fields onto the product.
func bindProductForm(c *gin.Context, product *model.Product) error {
	if v := c.PostForm("ProductName"); v != "" {
		product.ProductName = v
	}
	if v := c.PostForm("Description"); v != "" {
		product.Description = v
	}
	if v := c.PostForm("Category"); v != "" {
		product.Category = v
	}
	if v := c.PostForm("Price"); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return errors.New("Invalid price")
		}
		product.Price = price
	}
	return nil
}

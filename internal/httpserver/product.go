package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"agriconnect/internal/catalog"
	"agriconnect/internal/domain"
)

func listProductsHandler(cat *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := cat.ByCategory(c.Request.Context(), c.Query("category"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "load products failed"})
			return
		}
		if products == nil {
			products = []domain.Product{}
		}
		c.JSON(http.StatusOK, gin.H{"products": products})
	}
}

func getProductHandler(cat *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := cat.ByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "load product failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"product": product})
	}
}

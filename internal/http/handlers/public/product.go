package public

import (
	"github.com/aurelia-jewelry/aurelia/internal/http/response"

	"github.com/gin-gonic/gin"
)

// ListProducts returns the listed catalog in sort order.
func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.ProductRepo.ListActive()
	if err != nil {
		response.Error(c, response.CodeInternal, "product lookup failed")
		return
	}
	response.Success(c, gin.H{"products": products})
}

// GetProduct returns one catalog entry by its handle.
func (h *Handler) GetProduct(c *gin.Context) {
	product, err := h.ProductRepo.GetBySlug(c.Param("slug"))
	if err != nil {
		response.Error(c, response.CodeInternal, "product lookup failed")
		return
	}
	if product == nil || !product.IsActive {
		response.NotFound(c, "product not found")
		return
	}
	response.Success(c, product)
}

package public

import (
	"strconv"

	"github.com/aurelia-jewelry/aurelia/internal/cart"
	"github.com/aurelia-jewelry/aurelia/internal/http/response"
	"github.com/aurelia-jewelry/aurelia/internal/models"

	"github.com/gin-gonic/gin"
)

// GetCart returns the current cart state.
func (h *Handler) GetCart(c *gin.Context) {
	store := h.CartManager.Get(c.Request.Context(), cartSessionID(c))
	response.Success(c, store.Snapshot())
}

type addCartItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	VariantID string `json:"variantId"`
	Quantity  int    `json:"quantity"`
}

// AddCartItem adds or merges a line into the cart.
func (h *Handler) AddCartItem(c *gin.Context) {
	var req addCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	candidate, ok := h.buildLineCandidate(c, req.ProductID, req.VariantID)
	if !ok {
		return
	}

	store := h.CartManager.Get(c.Request.Context(), cartSessionID(c))
	if err := store.AddLine(c.Request.Context(), candidate, req.Quantity); err != nil {
		respondCartMutationError(c, err)
		return
	}
	response.Success(c, store.Snapshot())
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateCartItem sets a line to an absolute quantity. Zero removes it.
func (h *Handler) UpdateCartItem(c *gin.Context) {
	var req setQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	store := h.CartManager.Get(c.Request.Context(), cartSessionID(c))
	if err := store.SetQuantity(c.Request.Context(), c.Param("line_id"), req.Quantity); err != nil {
		respondCartMutationError(c, err)
		return
	}
	response.Success(c, store.Snapshot())
}

// RemoveCartItem drops a line. Removing an absent line succeeds.
func (h *Handler) RemoveCartItem(c *gin.Context) {
	store := h.CartManager.Get(c.Request.Context(), cartSessionID(c))
	if err := store.RemoveLine(c.Request.Context(), c.Param("line_id")); err != nil {
		respondCartMutationError(c, err)
		return
	}
	response.Success(c, store.Snapshot())
}

// ClearCart empties the cart and erases its durable slot.
func (h *Handler) ClearCart(c *gin.Context) {
	store := h.CartManager.Get(c.Request.Context(), cartSessionID(c))
	store.Clear(c.Request.Context())
	response.SuccessWithMsg(c, "cart cleared", store.Snapshot())
}

// ValidateCart re-checks every line against current stock without mutating.
func (h *Handler) ValidateCart(c *gin.Context) {
	store := h.CartManager.Get(c.Request.Context(), cartSessionID(c))
	response.Success(c, store.ValidateAll(c.Request.Context()))
}

// buildLineCandidate snapshots a catalog row into an add candidate. Writes
// the error response itself when the product cannot be sold.
func (h *Handler) buildLineCandidate(c *gin.Context, productID, variantID string) (cart.LineCandidate, bool) {
	product, err := h.ProductRepo.GetByID(productID)
	if err != nil {
		response.Error(c, response.CodeInternal, "product lookup failed")
		return cart.LineCandidate{}, false
	}
	if product == nil || !product.IsActive {
		response.NotFound(c, "product not found")
		return cart.LineCandidate{}, false
	}

	candidate := cart.LineCandidate{
		ProductID:      strconv.FormatUint(uint64(product.ID), 10),
		Name:           product.Name,
		Slug:           product.Slug,
		UnitPrice:      product.PriceAmount,
		CompareAtPrice: product.CompareAtPrice,
	}
	if len(product.Images) > 0 {
		candidate.Image = product.Images[0]
	}

	stock := product.StockQuantity
	if variantID != "" {
		variant := findVariant(product, variantID)
		if variant == nil || !variant.IsActive {
			response.NotFound(c, "variant not found")
			return cart.LineCandidate{}, false
		}
		candidate.VariantID = variantID
		candidate.SKU = variant.SKUCode
		candidate.VariantOptions = variant.Options
		if variant.PriceAmount.IsPositive() {
			candidate.UnitPrice = variant.PriceAmount
		}
		if variant.CompareAtPrice.IsPositive() {
			candidate.CompareAtPrice = variant.CompareAtPrice
		}
		if variant.HasOwnStock {
			stock = variant.StockQuantity
		}
	}

	// A purchase limit only exists for tracked stock without backorder.
	if product.TrackQuantity && !product.AllowBackorder {
		candidate.MaxQuantity = stock
	}
	return candidate, true
}

func findVariant(product *models.Product, variantID string) *models.ProductVariant {
	numeric, err := strconv.ParseUint(variantID, 10, 64)
	if err != nil {
		return nil
	}
	for i := range product.Variants {
		if product.Variants[i].ID == uint(numeric) {
			return &product.Variants[i]
		}
	}
	return nil
}

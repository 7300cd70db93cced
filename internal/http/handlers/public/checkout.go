package public

import (
	"github.com/aurelia-jewelry/aurelia/internal/http/response"
	"github.com/aurelia-jewelry/aurelia/internal/service"

	"github.com/gin-gonic/gin"
)

// GetCheckout returns the checkout state. The payment processor's return
// redirect lands here with ?payment=cancelled|failed&order=<id>, which
// forces the payment step; any other query values are ignored.
func (h *Handler) GetCheckout(c *gin.Context) {
	sessionID := cartSessionID(c)
	status := c.Query("payment")
	orderID := c.Query("order")

	var view service.CheckoutView
	if status != "" {
		view = h.CheckoutService.Reenter(c.Request.Context(), sessionID, status, orderID)
	} else {
		view = h.CheckoutService.Enter(c.Request.Context(), sessionID)
	}
	response.Success(c, view)
}

type advanceCheckoutRequest struct {
	SaveProfile bool `json:"saveProfile"`
}

// AdvanceCheckout moves the workflow one step forward.
func (h *Handler) AdvanceCheckout(c *gin.Context) {
	var req advanceCheckoutRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "invalid request body")
			return
		}
	}

	view, err := h.CheckoutService.Advance(c.Request.Context(), cartSessionID(c), getUserID(c), req.SaveProfile)
	if err != nil {
		respondCheckoutAdvanceError(c, err, view)
		return
	}
	response.Success(c, view)
}

// BackCheckout moves one step backward, no validation.
func (h *Handler) BackCheckout(c *gin.Context) {
	view := h.CheckoutService.Back(c.Request.Context(), cartSessionID(c))
	response.Success(c, view)
}

// UpdateShipping stores the shipping form as typed.
func (h *Handler) UpdateShipping(c *gin.Context) {
	var info service.ShippingInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	view := h.CheckoutService.SetShippingInfo(c.Request.Context(), cartSessionID(c), info)
	response.Success(c, view)
}

// PlaceOrder runs the create-order → init-payment → clear-cart sequence and
// returns the rendered payment handoff.
func (h *Handler) PlaceOrder(c *gin.Context) {
	result, err := h.CheckoutService.PlaceOrder(c.Request.Context(), cartSessionID(c))
	if err != nil {
		respondPlaceOrderError(c, err)
		return
	}
	response.Success(c, result)
}

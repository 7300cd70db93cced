package public

import (
	"errors"

	"github.com/aurelia-jewelry/aurelia/internal/cart"
	"github.com/aurelia-jewelry/aurelia/internal/http/response"
	"github.com/aurelia-jewelry/aurelia/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError maps a business error to an API error response.
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

// respondWithMappedError answers a business error. An AppError in the chain
// carries its own code and message; otherwise the sentinel rules apply, and
// anything unmatched is wrapped under the fallback code.
func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	var appErr *response.AppError
	if errors.As(err, &appErr) {
		response.Error(c, appErr.Code, appErr.Error())
		return
	}
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			response.Error(c, rule.code, rule.msg)
			return
		}
	}
	appErr = response.WrapError(fallbackCode, fallbackMsg, err)
	response.Error(c, appErr.Code, appErr.Error())
}

var cartMutationErrorRules = []mappedHandlerError{
	{target: cart.ErrInvalidQuantity, code: response.CodeBadRequest, msg: "quantity must be at least 1"},
	{target: cart.ErrStockUnavailable, code: response.CodeBadRequest, msg: "requested quantity is not available"},
	{target: cart.ErrQuantityExceedsStock, code: response.CodeBadRequest, msg: "requested quantity exceeds the purchase limit"},
}

var checkoutAdvanceErrorRules = []mappedHandlerError{
	{target: service.ErrCartEmpty, code: response.CodeBadRequest, msg: "cart is empty"},
	{target: service.ErrShippingIncomplete, code: response.CodeBadRequest, msg: "shipping information is incomplete"},
	{target: service.ErrInvalidStep, code: response.CodeBadRequest, msg: "step transition not permitted"},
}

var placeOrderErrorRules = []mappedHandlerError{
	{target: service.ErrCartEmpty, code: response.CodeBadRequest, msg: "cart is empty"},
	{target: service.ErrInvalidStep, code: response.CodeBadRequest, msg: "order placement is only available on the payment step"},
	{target: service.ErrCheckoutBusy, code: response.CodeConflict, msg: "an order placement is already in progress"},
}

func respondCartMutationError(c *gin.Context, err error) {
	respondWithMappedError(c, err, cartMutationErrorRules, response.CodeInternal, "cart update failed")
}

// respondCheckoutAdvanceError answers a gate failure. A snapshot rejection
// attaches the per-line failures so the storefront can render them.
func respondCheckoutAdvanceError(c *gin.Context, err error, view service.CheckoutView) {
	if errors.Is(err, service.ErrCartInvalid) {
		response.ErrorWithData(c, response.CodeBadRequest, "some cart items are no longer available",
			gin.H{"cartSnapshotErrors": view.CartSnapshotErrors})
		return
	}
	respondWithMappedError(c, err, checkoutAdvanceErrorRules, response.CodeInternal, "checkout failed")
}

func respondPlaceOrderError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrOrderCreationFailed) || errors.Is(err, service.ErrPaymentInitFailed) {
		err = response.WrapError(response.CodeBadGateway, "order placement failed", err)
	}
	respondWithMappedError(c, err, placeOrderErrorRules, response.CodeInternal, "order placement failed")
}

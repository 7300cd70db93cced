package service

import "errors"

var (
	// ErrCartEmpty blocks checkout entry and order placement on an empty cart.
	ErrCartEmpty = errors.New("cart is empty")
	// ErrCartInvalid is returned when the review snapshot still carries stock errors.
	ErrCartInvalid = errors.New("cart failed stock validation")
	// ErrShippingIncomplete blocks the shipping step exit while required fields are missing.
	ErrShippingIncomplete = errors.New("shipping information is incomplete")
	// ErrInvalidStep is returned for a forward transition the current step does not permit.
	ErrInvalidStep = errors.New("step transition not permitted")
	// ErrCheckoutBusy guards against a double-submitted order placement.
	ErrCheckoutBusy = errors.New("an order placement is already in progress")
	// ErrOrderCreationFailed wraps the order collaborator's rejection; the
	// checkout stays on the payment step so the buyer can retry.
	ErrOrderCreationFailed = errors.New("order creation failed")
	// ErrPaymentInitFailed wraps a payment initialization failure after the
	// order already exists server-side.
	ErrPaymentInitFailed = errors.New("payment initialization failed")
)

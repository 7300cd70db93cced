package cart

import "errors"

var (
	// ErrInvalidQuantity is returned when an add is requested with quantity < 1.
	ErrInvalidQuantity = errors.New("cart: quantity must be at least 1")
	// ErrStockUnavailable is returned by a StockChecker when the requested
	// quantity cannot be fulfilled.
	ErrStockUnavailable = errors.New("cart: requested quantity exceeds available stock")
	// ErrQuantityExceedsStock is returned under the fail merge policy when a
	// merged quantity would pass the line's purchase limit.
	ErrQuantityExceedsStock = errors.New("cart: merged quantity exceeds the purchase limit")
)

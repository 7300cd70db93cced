package service

import (
	"context"

	"github.com/aurelia-jewelry/aurelia/internal/cart"
	"github.com/aurelia-jewelry/aurelia/internal/logger"
	"github.com/aurelia-jewelry/aurelia/internal/repository"
)

// StockValidator answers cart availability questions from the catalog.
// Policy, in order: untracked products are always available; backorderable
// products are always available; otherwise the tracked stock must cover the
// requested absolute quantity.
type StockValidator struct {
	products repository.ProductRepository
	failOpen bool
}

// NewStockValidator creates the validator. failOpen decides what a lookup
// error means: true treats it as available so a transient read never blocks
// a buyer, false treats it as unavailable.
func NewStockValidator(products repository.ProductRepository, failOpen bool) *StockValidator {
	return &StockValidator{products: products, failOpen: failOpen}
}

// Check implements cart.StockChecker.
func (v *StockValidator) Check(ctx context.Context, productID, variantID string, requestedQty int) error {
	product, err := v.products.GetByID(productID)
	if err != nil {
		return v.resolveLookupFailure(productID, variantID, err)
	}
	if product == nil {
		return v.resolveLookupFailure(productID, variantID, nil)
	}

	stock := product.StockQuantity
	if variantID != "" {
		variant, err := v.products.GetVariant(productID, variantID)
		if err != nil || variant == nil {
			return v.resolveLookupFailure(productID, variantID, err)
		}
		if variant.HasOwnStock {
			stock = variant.StockQuantity
		}
	}

	if !product.TrackQuantity {
		return nil
	}
	if product.AllowBackorder {
		return nil
	}
	if stock >= requestedQty {
		return nil
	}
	return cart.ErrStockUnavailable
}

func (v *StockValidator) resolveLookupFailure(productID, variantID string, err error) error {
	logger.Warnw("stock_lookup_failed",
		"product_id", productID,
		"variant_id", variantID,
		"fail_open", v.failOpen,
		"error", err,
	)
	if v.failOpen {
		return nil
	}
	return cart.ErrStockUnavailable
}

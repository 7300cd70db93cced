package cart

import (
	"context"

	"github.com/aurelia-jewelry/aurelia/internal/constants"
	"github.com/aurelia-jewelry/aurelia/internal/models"

	"github.com/shopspring/decimal"
)

// Line is one addressable entry in the cart. Display metadata is snapshotted
// at add time and never re-fetched.
type Line struct {
	ID             string            `json:"id"`
	ProductID      string            `json:"productId"`
	VariantID      string            `json:"variantId,omitempty"`
	Name           string            `json:"name"`
	Slug           string            `json:"slug"`
	SKU            string            `json:"sku,omitempty"`
	Image          string            `json:"image,omitempty"`
	UnitPrice      models.Money      `json:"unitPrice"`
	CompareAtPrice models.Money      `json:"compareAtPrice,omitempty"`
	Quantity       int               `json:"quantity"`
	MaxQuantity    int               `json:"maxQuantity,omitempty"` // 0 = unlimited
	VariantOptions map[string]string `json:"variantOptions,omitempty"`
}

// LineCandidate describes a catalog entity about to enter the cart. The line
// id is derived from it, never supplied by the caller.
type LineCandidate struct {
	ProductID      string
	VariantID      string
	Name           string
	Slug           string
	SKU            string
	Image          string
	UnitPrice      models.Money
	CompareAtPrice models.Money
	MaxQuantity    int
	VariantOptions map[string]string
}

// LineID derives the merge key for a product/variant pair.
func LineID(productID, variantID string) string {
	if variantID == "" {
		variantID = constants.DefaultVariantKey
	}
	return productID + ":" + variantID
}

// State is the aggregate cart snapshot. Totals are derived from Lines and
// recomputed on every mutation.
type State struct {
	Lines        []Line       `json:"lines"`
	TotalItems   int          `json:"totalItems"`
	TotalPrice   models.Money `json:"totalPrice"`
	TotalSavings models.Money `json:"totalSavings"`
	IsOpen       bool         `json:"isOpen"`
	IsLoading    bool         `json:"isLoading"`
}

// ValidationResult is the outcome of re-checking every line against stock.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// Persister round-trips the serialized line sequence through a durable slot.
type Persister interface {
	Load(ctx context.Context, sessionID string) ([]Line, error)
	Save(ctx context.Context, sessionID string, lines []Line) error
	Delete(ctx context.Context, sessionID string) error
}

// StockChecker answers whether a requested absolute quantity of a
// product/variant can be fulfilled. A nil return means available; lookup
// failures are resolved by the implementation's own policy.
type StockChecker interface {
	Check(ctx context.Context, productID, variantID string, requestedQty int) error
}

func computeTotals(state *State) {
	items := 0
	price := decimal.Zero
	savings := decimal.Zero
	for _, line := range state.Lines {
		qty := decimal.NewFromInt(int64(line.Quantity))
		items += line.Quantity
		price = price.Add(line.UnitPrice.Decimal.Mul(qty))
		diff := line.CompareAtPrice.Decimal.Sub(line.UnitPrice.Decimal)
		if diff.IsPositive() {
			savings = savings.Add(diff.Mul(qty))
		}
	}
	state.TotalItems = items
	state.TotalPrice = models.NewMoneyFromDecimal(price)
	state.TotalSavings = models.NewMoneyFromDecimal(savings)
}

func cloneLines(lines []Line) []Line {
	out := make([]Line, len(lines))
	copy(out, lines)
	for i := range out {
		if len(lines[i].VariantOptions) > 0 {
			opts := make(map[string]string, len(lines[i].VariantOptions))
			for k, v := range lines[i].VariantOptions {
				opts[k] = v
			}
			out[i].VariantOptions = opts
		}
	}
	return out
}

package service

import (
	"strings"

	"github.com/aurelia-jewelry/aurelia/internal/backend"
	"github.com/aurelia-jewelry/aurelia/internal/config"
	"github.com/aurelia-jewelry/aurelia/internal/constants"
	"github.com/aurelia-jewelry/aurelia/internal/logger"
	"github.com/aurelia-jewelry/aurelia/internal/models"

	"github.com/shopspring/decimal"
)

// ShippingInfo is the checkout address form. The wire shape is shared with
// the order collaborator.
type ShippingInfo = backend.ShippingInfo

// requiredShippingFields lists the fields that must be non-empty before the
// shipping step can be left. Address2 is the only optional field.
var requiredShippingFields = []struct {
	label string
	get   func(ShippingInfo) string
}{
	{"fullName", func(i ShippingInfo) string { return i.FullName }},
	{"email", func(i ShippingInfo) string { return i.Email }},
	{"phone", func(i ShippingInfo) string { return i.Phone }},
	{"address1", func(i ShippingInfo) string { return i.Address1 }},
	{"city", func(i ShippingInfo) string { return i.City }},
	{"region", func(i ShippingInfo) string { return i.Region }},
	{"postalCode", func(i ShippingInfo) string { return i.PostalCode }},
	{"country", func(i ShippingInfo) string { return i.Country }},
}

// missingShippingFields returns the labels of required fields still empty.
func missingShippingFields(info ShippingInfo) []string {
	var missing []string
	for _, field := range requiredShippingFields {
		if strings.TrimSpace(field.get(info)) == "" {
			missing = append(missing, field.label)
		}
	}
	return missing
}

// splitFullName derives the first/last name pair the payment collaborator
// wants from the single full-name field.
func splitFullName(fullName string) (string, string) {
	parts := strings.Fields(fullName)
	if len(parts) == 0 {
		return "", ""
	}
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

// Totals is the derived checkout money block.
type Totals struct {
	Subtotal     models.Money `json:"subtotal"`
	ShippingCost models.Money `json:"shippingCost"`
	TaxAmount    models.Money `json:"taxAmount"`
	GrandTotal   models.Money `json:"grandTotal"`
}

// totalsRules holds the three injectable checkout constants, parsed once.
type totalsRules struct {
	freeShippingThreshold decimal.Decimal
	flatShippingFee       decimal.Decimal
	taxRate               decimal.Decimal
}

func newTotalsRules(cfg config.CheckoutConfig) totalsRules {
	return totalsRules{
		freeShippingThreshold: parseRate(cfg.FreeShippingThreshold, "75", "checkout.free_shipping_threshold"),
		flatShippingFee:       parseRate(cfg.FlatShippingFee, "10", "checkout.flat_shipping_fee"),
		taxRate:               parseRate(cfg.TaxRate, "0.15", "checkout.tax_rate"),
	}
}

func parseRate(raw, fallback, key string) decimal.Decimal {
	value, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		logger.Warnw("checkout_rate_invalid", "key", key, "value", raw, "fallback", fallback)
		value, _ = decimal.NewFromString(fallback)
	}
	return value
}

// compute applies the two pure rules: free shipping at or above the
// threshold, flat fee below it; tax as a straight rate on the subtotal.
func (r totalsRules) compute(subtotal models.Money) Totals {
	sub := subtotal.Decimal
	shipping := decimal.Zero
	if sub.LessThan(r.freeShippingThreshold) {
		shipping = r.flatShippingFee
	}
	tax := sub.Mul(r.taxRate).Round(2)
	grand := sub.Add(shipping).Add(tax)
	return Totals{
		Subtotal:     models.NewMoneyFromDecimal(sub),
		ShippingCost: models.NewMoneyFromDecimal(shipping),
		TaxAmount:    models.NewMoneyFromDecimal(tax),
		GrandTotal:   models.NewMoneyFromDecimal(grand),
	}
}

// stepOrdinal maps a step name to its 1-based position.
func stepOrdinal(step string) int {
	switch step {
	case constants.CheckoutStepReview:
		return 1
	case constants.CheckoutStepShipping:
		return 2
	case constants.CheckoutStepPayment:
		return 3
	case constants.CheckoutStepConfirmation:
		return 4
	default:
		return 0
	}
}

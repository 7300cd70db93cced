package constants

// Cart merge policies applied when an add collides with an existing line
// and the combined quantity exceeds the line's maximum.
const (
	MergePolicyClamp = "clamp" // silently drop the excess quantity
	MergePolicyFail  = "fail"  // reject the whole add
)

// Soft quantity ceiling used for lines without a tracked maximum.
const SoftQuantityCeiling = 99

// Default variant key for products added without an explicit variant.
const DefaultVariantKey = "default"

// Checkout step names, ordinal 1-4.
const (
	CheckoutStepReview       = "review"
	CheckoutStepShipping     = "shipping"
	CheckoutStepPayment      = "payment"
	CheckoutStepConfirmation = "confirmation"
)

// Payment gateway return statuses recognized on checkout re-entry.
const (
	PaymentReturnCancelled = "cancelled"
	PaymentReturnFailed    = "failed"
)

// Cart session transport.
const (
	CartSessionHeader = "X-Cart-Session"
	CartSessionCookie = "aurelia_cart"
)

// Queue names.
const (
	QueueDefault = "default"
)

// Async task type names.
const (
	TaskShippingProfileSave = "checkout:shipping_profile_save"
	TaskOrderCancelRequest  = "checkout:order_cancel_request"
)

package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/aurelia-jewelry/aurelia/internal/backend"
	"github.com/aurelia-jewelry/aurelia/internal/cart"
	"github.com/aurelia-jewelry/aurelia/internal/config"
	"github.com/aurelia-jewelry/aurelia/internal/constants"
	"github.com/aurelia-jewelry/aurelia/internal/logger"
	"github.com/aurelia-jewelry/aurelia/internal/models"
	"github.com/aurelia-jewelry/aurelia/internal/payment/handoff"
	"github.com/aurelia-jewelry/aurelia/internal/queue"

	"github.com/hibiken/asynq"
)

// OrderPlacer is the slice of the backend client the orchestrator drives.
type OrderPlacer interface {
	CreateOrder(ctx context.Context, req backend.OrderRequest) (*backend.Order, error)
	InitializePayment(ctx context.Context, req backend.PaymentRequest) (*backend.PaymentSession, error)
}

// TaskEnqueuer is the slice of the queue client the orchestrator drives.
type TaskEnqueuer interface {
	EnqueueShippingProfileSave(payload queue.ShippingProfileSavePayload, opts ...asynq.Option) error
	EnqueueOrderCancelRequest(payload queue.OrderCancelRequestPayload, opts ...asynq.Option) error
}

// checkoutSession is the per-cart workflow state. Ephemeral: it lives for
// one checkout attempt and is never persisted.
type checkoutSession struct {
	step               string
	cartSnapshotErrors []string
	shippingInfo       ShippingInfo
	message            string
	placedOrder        *backend.Order
	busy               bool
}

// CheckoutView is the read-only session snapshot handed to the HTTP layer.
type CheckoutView struct {
	Step               string         `json:"step"`
	StepOrdinal        int            `json:"stepOrdinal"`
	CartSnapshotErrors []string       `json:"cartSnapshotErrors"`
	ShippingInfo       ShippingInfo   `json:"shippingInfo"`
	Totals             Totals         `json:"totals"`
	Message            string         `json:"message,omitempty"`
	Order              *backend.Order `json:"order,omitempty"`
	Busy               bool           `json:"busy"`
}

// PlacementResult is a successful order placement: the created order plus
// the rendered payment handoff.
type PlacementResult struct {
	Order    *backend.Order    `json:"order"`
	Redirect *handoff.Redirect `json:"redirect"`
}

// CheckoutService runs the four-step workflow
// Review → Shipping → Payment → Confirmation for every cart session.
type CheckoutService struct {
	mu       sync.Mutex
	sessions map[string]*checkoutSession

	carts      *cart.Manager
	placer     OrderPlacer
	enqueuer   TaskEnqueuer
	rules      totalsRules
	compensate bool
}

// NewCheckoutService wires the orchestrator.
func NewCheckoutService(carts *cart.Manager, placer OrderPlacer, enqueuer TaskEnqueuer, cfg config.CheckoutConfig) *CheckoutService {
	return &CheckoutService{
		sessions:   make(map[string]*checkoutSession),
		carts:      carts,
		placer:     placer,
		enqueuer:   enqueuer,
		rules:      newTotalsRules(cfg),
		compensate: cfg.CompensateOnPaymentInitFailure,
	}
}

// Enter returns the checkout state for a session, creating it at the Review
// step on first use. While the session sits on Review the cart snapshot
// errors are recomputed, so a buyer who fixed their cart can advance.
func (s *CheckoutService) Enter(ctx context.Context, sessionID string) CheckoutView {
	store := s.carts.Get(ctx, sessionID)

	s.mu.Lock()
	sess := s.sessionLocked(sessionID)
	onReview := sess.step == constants.CheckoutStepReview
	s.mu.Unlock()

	if onReview {
		result := store.ValidateAll(ctx)
		s.mu.Lock()
		sess.cartSnapshotErrors = result.Errors
		s.mu.Unlock()
	}
	return s.view(ctx, sessionID)
}

// Reenter handles a return from the payment processor. A cancelled or
// failed status with an order id forces the Payment step regardless of
// prior position and leaves the cart untouched; anything else is ignored.
func (s *CheckoutService) Reenter(ctx context.Context, sessionID, status, orderID string) CheckoutView {
	recognized := status == constants.PaymentReturnCancelled || status == constants.PaymentReturnFailed
	if !recognized || orderID == "" {
		return s.Enter(ctx, sessionID)
	}

	s.mu.Lock()
	sess := s.sessionLocked(sessionID)
	sess.step = constants.CheckoutStepPayment
	if status == constants.PaymentReturnCancelled {
		sess.message = fmt.Sprintf("Payment for order %s was cancelled. You can try again.", orderID)
	} else {
		sess.message = fmt.Sprintf("Payment for order %s failed. You can try again.", orderID)
	}
	s.mu.Unlock()

	logger.Infow("checkout_payment_return",
		"session_id", sessionID,
		"status", status,
		"order_id", orderID,
	)
	return s.view(ctx, sessionID)
}

// SetShippingInfo stores the form as typed. Completeness is only enforced
// when leaving the Shipping step.
func (s *CheckoutService) SetShippingInfo(ctx context.Context, sessionID string, info ShippingInfo) CheckoutView {
	s.mu.Lock()
	sess := s.sessionLocked(sessionID)
	sess.shippingInfo = info
	s.mu.Unlock()
	return s.view(ctx, sessionID)
}

// Advance moves the workflow one step forward, applying the gate for the
// current step. userID 0 means guest; a non-zero id with saveProfile set
// enqueues a fire-and-forget profile save when leaving Shipping.
func (s *CheckoutService) Advance(ctx context.Context, sessionID string, userID uint, saveProfile bool) (CheckoutView, error) {
	store := s.carts.Get(ctx, sessionID)

	s.mu.Lock()
	sess := s.sessionLocked(sessionID)
	step := sess.step
	info := sess.shippingInfo
	s.mu.Unlock()

	switch step {
	case constants.CheckoutStepReview:
		if store.Snapshot().TotalItems == 0 {
			return s.view(ctx, sessionID), ErrCartEmpty
		}
		// The gate validates here rather than trusting the Enter-time
		// snapshot, which a client can skip by posting advance directly.
		result := store.ValidateAll(ctx)
		s.mu.Lock()
		sess.cartSnapshotErrors = result.Errors
		s.mu.Unlock()
		if !result.Valid {
			return s.view(ctx, sessionID), ErrCartInvalid
		}
		s.setStep(sessionID, constants.CheckoutStepShipping)

	case constants.CheckoutStepShipping:
		if missing := missingShippingFields(info); len(missing) > 0 {
			return s.view(ctx, sessionID), fmt.Errorf("%w: %v", ErrShippingIncomplete, missing)
		}
		if userID != 0 && saveProfile {
			s.saveShippingProfile(userID, info)
		}
		s.setStep(sessionID, constants.CheckoutStepPayment)

	default:
		// Payment advances only through PlaceOrder; Confirmation is terminal.
		return s.view(ctx, sessionID), ErrInvalidStep
	}
	return s.view(ctx, sessionID), nil
}

// Back moves one step backward without validation. Review and Confirmation
// stay where they are.
func (s *CheckoutService) Back(ctx context.Context, sessionID string) CheckoutView {
	s.mu.Lock()
	sess := s.sessionLocked(sessionID)
	switch sess.step {
	case constants.CheckoutStepShipping:
		sess.step = constants.CheckoutStepReview
	case constants.CheckoutStepPayment:
		sess.step = constants.CheckoutStepShipping
	}
	s.mu.Unlock()
	return s.view(ctx, sessionID)
}

// PlaceOrder runs the placement sequence from the Payment step:
// create order → initialize payment → clear cart → build handoff. Any
// failure leaves the session on Payment with the cart intact; a busy flag
// rejects a second submission while one is in flight.
func (s *CheckoutService) PlaceOrder(ctx context.Context, sessionID string) (*PlacementResult, error) {
	store := s.carts.Get(ctx, sessionID)

	s.mu.Lock()
	sess := s.sessionLocked(sessionID)
	if sess.step != constants.CheckoutStepPayment {
		s.mu.Unlock()
		return nil, ErrInvalidStep
	}
	if sess.busy {
		s.mu.Unlock()
		return nil, ErrCheckoutBusy
	}
	sess.busy = true
	info := sess.shippingInfo
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		sess.busy = false
		s.mu.Unlock()
	}()

	snapshot := store.Snapshot()
	if snapshot.TotalItems == 0 {
		return nil, ErrCartEmpty
	}
	totals := s.rules.compute(snapshot.TotalPrice)

	order, err := s.placer.CreateOrder(ctx, backend.OrderRequest{
		Items:          snapshot.Lines,
		ShippingInfo:   info,
		Subtotal:       totals.Subtotal,
		TaxAmount:      totals.TaxAmount,
		ShippingAmount: totals.ShippingCost,
		TotalAmount:    totals.GrandTotal,
		DiscountAmount: models.Money{},
	})
	if err != nil {
		logger.Warnw("order_creation_failed", "session_id", sessionID, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrOrderCreationFailed, err)
	}

	firstName, lastName := splitFullName(info.FullName)
	paySession, err := s.placer.InitializePayment(ctx, backend.PaymentRequest{
		OrderID:     order.ID,
		Amount:      totals.GrandTotal,
		Description: "Aurelia order " + order.OrderNumber,
		Email:       info.Email,
		FirstName:   firstName,
		LastName:    lastName,
	})
	if err != nil {
		logger.Errorw("payment_init_failed",
			"session_id", sessionID,
			"order_id", order.ID,
			"compensate", s.compensate,
			"error", err,
		)
		if s.compensate {
			s.requestOrderCancel(order.ID)
		}
		return nil, fmt.Errorf("%w: %w", ErrPaymentInitFailed, err)
	}

	store.Clear(ctx)

	redirect, err := handoff.Build(paySession.PaymentURL, paySession.Fields)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPaymentInitFailed, err)
	}

	s.mu.Lock()
	sess.step = constants.CheckoutStepConfirmation
	sess.placedOrder = order
	sess.message = ""
	s.mu.Unlock()

	logger.Infow("order_placed",
		"session_id", sessionID,
		"order_id", order.ID,
		"order_number", order.OrderNumber,
		"grand_total", totals.GrandTotal.String(),
	)
	return &PlacementResult{Order: order, Redirect: redirect}, nil
}

// Totals recomputes the money block for the current cart contents.
func (s *CheckoutService) Totals(ctx context.Context, sessionID string) Totals {
	snapshot := s.carts.Get(ctx, sessionID).Snapshot()
	return s.rules.compute(snapshot.TotalPrice)
}

// saveShippingProfile enqueues the profile write. Failures only warn; the
// step transition never blocks on it.
func (s *CheckoutService) saveShippingProfile(userID uint, info ShippingInfo) {
	if s.enqueuer == nil {
		return
	}
	err := s.enqueuer.EnqueueShippingProfileSave(queue.ShippingProfileSavePayload{
		UserID:     userID,
		FullName:   info.FullName,
		Email:      info.Email,
		Phone:      info.Phone,
		Address1:   info.Address1,
		Address2:   info.Address2,
		City:       info.City,
		Region:     info.Region,
		PostalCode: info.PostalCode,
		Country:    info.Country,
	})
	if err != nil {
		logger.Warnw("shipping_profile_enqueue_failed", "user_id", userID, "error", err)
	}
}

func (s *CheckoutService) requestOrderCancel(orderID string) {
	if s.enqueuer == nil {
		return
	}
	err := s.enqueuer.EnqueueOrderCancelRequest(queue.OrderCancelRequestPayload{
		OrderID: orderID,
		Reason:  "payment initialization failed",
	})
	if err != nil {
		logger.Warnw("order_cancel_enqueue_failed", "order_id", orderID, "error", err)
	}
}

func (s *CheckoutService) sessionLocked(sessionID string) *checkoutSession {
	sess, ok := s.sessions[sessionID]
	if !ok {
		sess = &checkoutSession{
			step:               constants.CheckoutStepReview,
			cartSnapshotErrors: []string{},
		}
		s.sessions[sessionID] = sess
	}
	return sess
}

func (s *CheckoutService) setStep(sessionID, step string) {
	s.mu.Lock()
	s.sessions[sessionID].step = step
	s.mu.Unlock()
}

func (s *CheckoutService) view(ctx context.Context, sessionID string) CheckoutView {
	totals := s.Totals(ctx, sessionID)

	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.sessionLocked(sessionID)
	errs := make([]string, len(sess.cartSnapshotErrors))
	copy(errs, sess.cartSnapshotErrors)
	return CheckoutView{
		Step:               sess.step,
		StepOrdinal:        stepOrdinal(sess.step),
		CartSnapshotErrors: errs,
		ShippingInfo:       sess.shippingInfo,
		Totals:             totals,
		Message:            sess.message,
		Order:              sess.placedOrder,
		Busy:               sess.busy,
	}
}

package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aurelia-jewelry/aurelia/internal/cart"
	"github.com/aurelia-jewelry/aurelia/internal/models"
)

// ShippingInfo is the checkout address block as the collaborator expects it.
type ShippingInfo struct {
	FullName   string `json:"fullName"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address1   string `json:"address1"`
	Address2   string `json:"address2,omitempty"`
	City       string `json:"city"`
	Region     string `json:"region"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// OrderRequest is the order creation body.
type OrderRequest struct {
	Items          []cart.Line  `json:"items"`
	ShippingInfo   ShippingInfo `json:"shippingInfo"`
	Subtotal       models.Money `json:"subtotal"`
	TaxAmount      models.Money `json:"taxAmount"`
	ShippingAmount models.Money `json:"shippingAmount"`
	TotalAmount    models.Money `json:"totalAmount"`
	DiscountAmount models.Money `json:"discountAmount"`
}

// Order is the collaborator's view of a created order, opaque beyond the
// two identifiers.
type Order struct {
	ID          string `json:"id"`
	OrderNumber string `json:"orderNumber"`
}

// CreateOrder submits the order. A non-2xx response becomes ErrOrderRejected
// carrying the collaborator's message when one was provided.
func (c *Client) CreateOrder(ctx context.Context, req OrderRequest) (*Order, error) {
	status, raw, err := c.postJSON(ctx, c.orderPath, req)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		if msg := decodeCollaboratorMessage(raw); msg != "" {
			return nil, fmt.Errorf("%w: %s", ErrOrderRejected, msg)
		}
		return nil, fmt.Errorf("%w: status %d", ErrOrderRejected, status)
	}
	var resp struct {
		Order Order `json:"order"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil || resp.Order.ID == "" {
		return nil, fmt.Errorf("%w: order body", ErrResponseInvalid)
	}
	return &resp.Order, nil
}

// CancelOrder asks the collaborator to void an order. Used only by the
// optional payment-init compensation task.
func (c *Client) CancelOrder(ctx context.Context, orderID string) error {
	status, raw, err := c.postJSON(ctx, c.orderPath+"/"+orderID+"/cancel", struct{}{})
	if err != nil {
		return err
	}
	if status == http.StatusNotFound {
		return nil
	}
	if status < 200 || status >= 300 {
		if msg := decodeCollaboratorMessage(raw); msg != "" {
			return fmt.Errorf("%w: %s", ErrOrderRejected, msg)
		}
		return fmt.Errorf("%w: status %d", ErrOrderRejected, status)
	}
	return nil
}

package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/aurelia-jewelry/aurelia/internal/models"
)

// PaymentRequest is the payment initialization body.
type PaymentRequest struct {
	OrderID     string       `json:"orderId"`
	Amount      models.Money `json:"amount"`
	Description string       `json:"description"`
	Email       string       `json:"email"`
	FirstName   string       `json:"firstName"`
	LastName    string       `json:"lastName"`
}

// PaymentSession is the initialized payment handoff target. Fields holds the
// processor's paymentData values coerced to strings without reformatting:
// numbers keep their exact wire literal. The processor verifies a signature
// over these values, so no re-derivation is allowed downstream.
type PaymentSession struct {
	PaymentURL string
	Fields     map[string]string
}

// InitializePayment creates the payment session for an order.
func (c *Client) InitializePayment(ctx context.Context, req PaymentRequest) (*PaymentSession, error) {
	status, raw, err := c.postJSON(ctx, c.paymentPath, req)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		if msg := decodeCollaboratorMessage(raw); msg != "" {
			return nil, fmt.Errorf("%w: %s", ErrPaymentRejected, msg)
		}
		return nil, fmt.Errorf("%w: status %d", ErrPaymentRejected, status)
	}

	var resp struct {
		PaymentURL  string                     `json:"paymentUrl"`
		PaymentData map[string]json.RawMessage `json:"paymentData"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil || resp.PaymentURL == "" {
		return nil, fmt.Errorf("%w: payment body", ErrResponseInvalid)
	}

	fields := make(map[string]string, len(resp.PaymentData))
	for name, value := range resp.PaymentData {
		coerced, err := coerceFieldValue(value)
		if err != nil {
			return nil, fmt.Errorf("%w: paymentData field %q", ErrResponseInvalid, name)
		}
		fields[name] = coerced
	}
	return &PaymentSession{PaymentURL: resp.PaymentURL, Fields: fields}, nil
}

// coerceFieldValue turns one paymentData value into its string form without
// reformatting. Strings are decoded as-is (untrimmed); numbers keep the exact
// literal from the wire, bypassing any float round-trip.
func coerceFieldValue(raw json.RawMessage) (string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return "", err
	}
	switch value := v.(type) {
	case string:
		return value, nil
	case json.Number:
		return value.String(), nil
	case bool:
		if value {
			return "true", nil
		}
		return "false", nil
	case nil:
		return "", nil
	default:
		return "", fmt.Errorf("unsupported value type %T", v)
	}
}

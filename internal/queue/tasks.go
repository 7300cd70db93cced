package queue

import (
	"encoding/json"

	"github.com/aurelia-jewelry/aurelia/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskShippingProfileSave persists a checkout address to a user profile.
	TaskShippingProfileSave = constants.TaskShippingProfileSave
	// TaskOrderCancelRequest asks the backend to void an order after a failed
	// payment initialization. Only enqueued when compensation is enabled.
	TaskOrderCancelRequest = constants.TaskOrderCancelRequest
)

// ShippingProfileSavePayload carries one saved checkout address.
type ShippingProfileSavePayload struct {
	UserID     uint   `json:"user_id"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address1   string `json:"address1"`
	Address2   string `json:"address2"`
	City       string `json:"city"`
	Region     string `json:"region"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// OrderCancelRequestPayload identifies the order to void.
type OrderCancelRequestPayload struct {
	OrderID string `json:"order_id"`
	Reason  string `json:"reason"`
}

// NewShippingProfileSaveTask builds the profile save task.
func NewShippingProfileSaveTask(payload ShippingProfileSavePayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskShippingProfileSave, body), nil
}

// NewOrderCancelRequestTask builds the order cancel task.
func NewOrderCancelRequestTask(payload OrderCancelRequestPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderCancelRequest, body), nil
}

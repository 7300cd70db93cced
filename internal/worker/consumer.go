package worker

import (
	"context"
	"encoding/json"

	"github.com/aurelia-jewelry/aurelia/internal/logger"
	"github.com/aurelia-jewelry/aurelia/internal/models"
	"github.com/aurelia-jewelry/aurelia/internal/provider"
	"github.com/aurelia-jewelry/aurelia/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer handles the async checkout tasks.
type Consumer struct {
	*provider.Container
}

// NewConsumer creates the consumer.
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register binds the task handlers.
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskShippingProfileSave, c.handleShippingProfileSave)
	mux.HandleFunc(queue.TaskOrderCancelRequest, c.handleOrderCancelRequest)
}

func (c *Consumer) handleShippingProfileSave(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_shipping_profile_save_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.ShippingProfileSavePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_shipping_profile_save_unmarshal_failed", "error", err)
		return err
	}
	if payload.UserID == 0 {
		logger.Debugw("worker_shipping_profile_save_skip_invalid_payload", "user_id", payload.UserID)
		return nil
	}
	if c.ShippingProfileRepo == nil {
		logger.Warnw("worker_shipping_profile_save_skip_repo_nil", "user_id", payload.UserID)
		return nil
	}
	profile := &models.ShippingProfile{
		UserID:     payload.UserID,
		FullName:   payload.FullName,
		Email:      payload.Email,
		Phone:      payload.Phone,
		Address1:   payload.Address1,
		Address2:   payload.Address2,
		City:       payload.City,
		Region:     payload.Region,
		PostalCode: payload.PostalCode,
		Country:    payload.Country,
	}
	if err := c.ShippingProfileRepo.Upsert(profile); err != nil {
		logger.Warnw("worker_shipping_profile_save_failed", "user_id", payload.UserID, "error", err)
		return err
	}
	return nil
}

func (c *Consumer) handleOrderCancelRequest(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_cancel_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderCancelRequestPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_cancel_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == "" {
		logger.Debugw("worker_order_cancel_skip_invalid_payload")
		return nil
	}
	if c.BackendClient == nil {
		logger.Warnw("worker_order_cancel_skip_client_nil", "order_id", payload.OrderID)
		return nil
	}
	if err := c.BackendClient.CancelOrder(ctx, payload.OrderID); err != nil {
		logger.Warnw("worker_order_cancel_failed", "order_id", payload.OrderID, "reason", payload.Reason, "error", err)
		return err
	}
	logger.Infow("worker_order_cancelled", "order_id", payload.OrderID, "reason", payload.Reason)
	return nil
}

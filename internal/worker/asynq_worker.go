package worker

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/bec-billdesk/internal/logger"
	"github.com/bec-billdesk/internal/provider"
	"github.com/bec-billdesk/internal/queue"
	"github.com/bec-billdesk/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer handles queued tasks.
type Consumer struct {
	*provider.Container
}

// NewConsumer creates the consumer.
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register binds task handlers.
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskReceiptRender, c.handleReceiptRender)
}

func (c *Consumer) handleReceiptRender(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_receipt_render_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.ReceiptRenderPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_receipt_render_unmarshal_failed", "error", err)
		return err
	}
	if strings.TrimSpace(payload.PaymentID) == "" {
		logger.Debugw("worker_receipt_render_skip_invalid_payload")
		return nil
	}
	if c.ReceiptService == nil {
		logger.Warnw("worker_receipt_render_skip_service_nil", "payment_id", payload.PaymentID)
		return nil
	}
	if err := c.ReceiptService.RenderAndStore(payload.PaymentID); err != nil {
		// The payment may have been wiped by an operational reset; a
		// missing row is terminal, everything else retries.
		if errors.Is(err, service.ErrPaymentNotFound) {
			logger.Debugw("worker_receipt_render_skip_payment_not_found", "payment_id", payload.PaymentID)
			return nil
		}
		logger.Warnw("worker_receipt_render_failed", "payment_id", payload.PaymentID, "error", err)
		return err
	}
	return nil
}

package queue

import (
	"encoding/json"

	"github.com/bec-billdesk/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskReceiptRender renders and stores a payment's receipt snapshot.
	TaskReceiptRender = constants.TaskReceiptRender
)

// ReceiptRenderPayload carries the payment to render a receipt for.
type ReceiptRenderPayload struct {
	PaymentID string `json:"payment_id"`
}

// NewReceiptRenderTask builds a receipt render task.
func NewReceiptRenderTask(payload ReceiptRenderPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskReceiptRender, body), nil
}

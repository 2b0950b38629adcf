package interfaces

import (
	"context"

	"github.com/m-mizutani/prscout/pkg/domain/model"
)

// WebhookUseCase defines the interface for webhook event processing
type WebhookUseCase interface {
	// ProcessEvent runs the review pipeline for one webhook delivery. It never returns a
	// nil result; failures are reported as model.Failed outcomes.
	ProcessEvent(ctx context.Context, eventType model.WebhookEventType, payload *model.Payload) *model.Result
}

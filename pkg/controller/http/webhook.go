package http

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/google/go-github/v82/github"
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/prscout/pkg/domain/interfaces"
	"github.com/m-mizutani/prscout/pkg/domain/model"
	"github.com/m-mizutani/prscout/pkg/utils/logging"
)

// GitHub caps webhook payloads at 25MB
const maxPayloadSize = 25 << 20

// WebhookHandler handles GitHub webhooks
type WebhookHandler struct {
	webhookUC interfaces.WebhookUseCase
}

// NewWebhookHandler creates a new WebhookHandler
func NewWebhookHandler(webhookUC interfaces.WebhookUseCase) *WebhookHandler {
	return &WebhookHandler{
		webhookUC: webhookUC,
	}
}

// Handle processes webhook requests
func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	event := &model.WebhookEvent{
		ID:         github.DeliveryID(r),
		Type:       model.WebhookEventType(github.WebHookType(r)),
		ReceivedAt: time.Now(),
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}

	logger := logging.From(ctx).With("delivery_id", event.ID)
	ctx = logging.With(ctx, logger)

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxPayloadSize))
	if err != nil {
		logger.Error("Failed to read request body", "error", err)
		writeError(w, goerr.Wrap(err, "failed to read request body"), http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	// Out-of-scope events are rejected by the use case without looking at the body
	if event.Type.IsSupported() {
		var payload model.Payload
		if err := json.Unmarshal(body, &payload); err != nil {
			logger.Warn("Failed to parse webhook payload", "error", err)
			writeError(w, goerr.New("invalid JSON payload"), http.StatusBadRequest)
			return
		}
		event.Payload = &payload
	}

	result := h.webhookUC.ProcessEvent(ctx, event.Type, event.Payload)

	logger.Info("Webhook event processed",
		"type", event.Type,
		"status", result.StatusCode,
		"elapsed_ms", time.Since(event.ReceivedAt).Milliseconds(),
	)

	writeJSON(w, result.Outcome, result.StatusCode)
}

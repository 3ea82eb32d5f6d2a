package http

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/herald/pkg/domain/interfaces"
	"github.com/m-mizutani/herald/pkg/domain/model"
	"github.com/m-mizutani/herald/pkg/infra/webhook"
)

// UpdateHandler receives issue updates from the tracker and runs the
// notification pipeline for each of them
type UpdateHandler struct {
	secret   string
	limit    int64
	notifyUC interfaces.NotifyUseCase
}

// UpdateResponse is returned to the host after processing an update
type UpdateResponse struct {
	Status     string                `json:"status"`
	Changes    []model.FieldName     `json:"changes"`
	DeliveryID string                `json:"delivery_id,omitempty"`
	Outcome    model.DeliveryOutcome `json:"outcome"`
}

// NewUpdateHandler creates a new UpdateHandler
func NewUpdateHandler(secret string, notifyUC interfaces.NotifyUseCase) *UpdateHandler {
	return &UpdateHandler{
		secret:   secret,
		limit:    DefaultUpdateLimit,
		notifyUC: notifyUC,
	}
}

// Handle processes issue update requests
func (h *UpdateHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ctxlog.From(ctx)

	// Read payload
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.limit))
	if err != nil {
		logger.Error("Failed to read request body", "error", err)
		writeError(ctx, w, goerr.Wrap(err, "failed to read request body"), http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	// Verify signature
	if h.secret != "" && !webhook.VerifySignature(h.secret, body, r.Header.Get(webhook.HeaderSignature)) {
		logger.Warn("Invalid issue update signature")
		writeError(ctx, w, goerr.New("invalid signature"), http.StatusUnauthorized)
		return
	}

	var update model.IssueUpdate
	if err := json.Unmarshal(body, &update); err != nil {
		logger.Warn("Failed to parse issue update", "error", err)
		writeError(ctx, w, goerr.Wrap(err, "invalid JSON payload"), http.StatusBadRequest)
		return
	}

	// Process update via UseCase; delivery failures never reach here
	payload, delivery, err := h.notifyUC.ProcessUpdate(ctx, &update)
	if err != nil {
		logger.Warn("Rejected issue update", "error", err)
		writeError(ctx, w, err, http.StatusBadRequest)
		return
	}

	resp := UpdateResponse{
		Status:  "success",
		Changes: payload.ChangedFields(),
	}
	if delivery != nil {
		resp.DeliveryID = delivery.ID
		resp.Outcome = delivery.Outcome
	}
	writeJSON(ctx, w, resp, http.StatusOK)
}

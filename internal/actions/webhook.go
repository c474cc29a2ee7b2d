package actions

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/actiongym/gymbot/internal/fulfillment"
)

const maxRequestBody = 1 << 20

// TurnHandler produces the reply for a decoded turn. It may mutate
// turn.Session; the result is written back to the platform.
type TurnHandler func(ctx context.Context, turn *Turn) (fulfillment.Reply, error)

type WebhookHandler struct {
	onTurn TurnHandler
	log    *zap.Logger
}

func NewWebhookHandler(onTurn TurnHandler, log *zap.Logger) *WebhookHandler {
	return &WebhookHandler{onTurn: onTurn, log: log}
}

// HandleFulfillment serves the dialog platform's POST for one turn.
// Reference: https://cloud.google.com/dialogflow/es/docs/fulfillment-webhook
func (h *WebhookHandler) HandleFulfillment(w http.ResponseWriter, r *http.Request) {
	var req WebhookRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&req); err != nil {
		h.log.Warn("webhook: failed to decode request", zap.Error(err))
		WriteError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	turn, err := req.Turn()
	if err != nil {
		h.log.Error("webhook: failed to read turn",
			zap.String("session", req.Session),
			zap.String("intent", req.QueryResult.Intent.DisplayName),
			zap.Error(err))
		if errors.Is(err, fulfillment.ErrUnknownIntent) {
			WriteError(w, http.StatusInternalServerError, "unhandled intent")
			return
		}
		WriteError(w, http.StatusBadRequest, "malformed request")
		return
	}

	reply, err := h.onTurn(r.Context(), turn)
	if err != nil {
		h.log.Error("webhook: turn failed",
			zap.String("conversation", turn.ConversationID),
			zap.Stringer("intent", turn.Request.Intent),
			zap.Error(err))
		WriteError(w, http.StatusInternalServerError, "could not handle turn")
		return
	}

	resp, err := NewResponse(turn, reply)
	if err != nil {
		h.log.Error("webhook: failed to encode reply", zap.Error(err))
		WriteError(w, http.StatusInternalServerError, "could not encode reply")
		return
	}
	WriteJSON(w, http.StatusOK, resp)
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, map[string]string{"error": msg})
}

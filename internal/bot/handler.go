package bot

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/actiongym/gymbot/internal/actions"
	"github.com/actiongym/gymbot/internal/fulfillment"
	"github.com/actiongym/gymbot/internal/session"
	"github.com/actiongym/gymbot/internal/store"
)

// Handler runs turns through the router and keeps the side records:
// confirmed registrations and the per-conversation turn log.
type Handler struct {
	router *fulfillment.Router
	store  store.Store
	locks  *session.Manager
	log    *zap.Logger
	now    func() time.Time

	dispatch func(*fulfillment.Session, fulfillment.Request) (fulfillment.Reply, error)
}

func NewHandler(router *fulfillment.Router, s store.Store, locks *session.Manager, log *zap.Logger) *Handler {
	return &Handler{
		router:   router,
		store:    s,
		locks:    locks,
		log:      log,
		now:      time.Now,
		dispatch: router.Dispatch,
	}
}

// HandleTurn implements actions.TurnHandler. Dispatch and the side records
// of one conversation run under its lock, so the turn log keeps dispatch order.
func (h *Handler) HandleTurn(ctx context.Context, turn *actions.Turn) (fulfillment.Reply, error) {
	log := h.log.With(
		zap.String("conversation", turn.ConversationID),
		zap.Stringer("intent", turn.Request.Intent),
	)

	var reply fulfillment.Reply
	err := h.locks.WithLock(turn.ConversationID, func() error {
		var err error
		reply, err = h.dispatch(&turn.Session, turn.Request)
		if err != nil {
			return err
		}
		log.Debug("bot: turn handled",
			zap.Stringer("outcome", reply.Outcome),
			zap.Int("fallback_count", turn.Session.FallbackCount))

		if turn.Request.Intent == fulfillment.IntentConfirmUpdates && turn.Request.Args.Registered.OK() {
			h.saveRegistration(ctx, log, turn)
		}

		rec := store.TurnRecord{
			Intent:   turn.Request.Intent.String(),
			Outcome:  reply.Outcome.String(),
			Messages: reply.Messages,
			At:       h.now().UTC(),
		}
		if err := h.store.AppendTurn(ctx, turn.ConversationID, rec); err != nil {
			log.Warn("bot: failed to record turn", zap.Error(err))
		}
		return nil
	})
	if err != nil {
		return fulfillment.Reply{}, err
	}
	return reply, nil
}

func (h *Handler) saveRegistration(ctx context.Context, log *zap.Logger, turn *actions.Turn) {
	userID := turn.UserID
	if userID == "" {
		userID = turn.ConversationID
	}
	reg := store.Registration{
		ID:        uuid.NewString(),
		UserID:    userID,
		Intent:    fulfillment.IntentClassList.String(),
		Frequency: string(fulfillment.FrequencyDaily),
		CreatedAt: h.now().UTC(),
	}
	if err := h.store.SaveRegistration(ctx, reg); err != nil {
		log.Warn("bot: failed to save registration", zap.Error(err))
		return
	}
	log.Info("bot: daily updates registered", zap.String("user", userID))
}

// HandleRegistrations lists confirmed update registrations.
func (h *Handler) HandleRegistrations(w http.ResponseWriter, r *http.Request) {
	regs, err := h.store.ListRegistrations(r.Context())
	if err != nil {
		h.log.Error("bot: listing registrations", zap.Error(err))
		actions.WriteError(w, http.StatusInternalServerError, "could not list registrations")
		return
	}
	actions.WriteJSON(w, http.StatusOK, map[string]any{"total": len(regs), "registrations": regs})
}

// HandleConversation returns the turn log of one conversation.
func (h *Handler) HandleConversation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	turns, err := h.store.GetTurns(r.Context(), id)
	if err != nil {
		h.log.Error("bot: loading turns", zap.String("conversation", id), zap.Error(err))
		actions.WriteError(w, http.StatusInternalServerError, "could not load conversation")
		return
	}
	if len(turns) == 0 {
		actions.WriteError(w, http.StatusNotFound, "conversation not found")
		return
	}
	actions.WriteJSON(w, http.StatusOK, map[string]any{"conversation_id": id, "turns": turns})
}

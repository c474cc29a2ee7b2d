package bot

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/actiongym/gymbot/internal/actions"
	"github.com/actiongym/gymbot/internal/logger"
)

// Routes mounts the fulfillment webhook and the read-only admin endpoints.
func Routes(h *Handler, log *zap.Logger) http.Handler {
	webhook := actions.NewWebhookHandler(h.HandleTurn, log)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logger.Middleware(log))
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Post("/fulfillment", webhook.HandleFulfillment)

	r.Get("/registrations", h.HandleRegistrations)
	r.Get("/conversations/{id}", h.HandleConversation)

	return r
}

package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/wordwizards/duel-server/internal/engine"
	"github.com/wordwizards/duel-server/internal/hub"
	"github.com/wordwizards/duel-server/internal/spellbook"
	"github.com/wordwizards/duel-server/internal/ws"
)

func SetupRoutes(h *hub.Hub, book *spellbook.Book, rules engine.Rules, log *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Public routes
	r.Get("/healthz", Healthz)
	r.Get("/spells", ListSpells(book, rules))
	r.Get("/ws", ws.Handler(h, log))
	return r
}

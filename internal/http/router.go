package httpx

import (
	"net/http"

	"log/slog"

	"github.com/S-Dhruv/codingAssistant/internal/app"
	"github.com/S-Dhruv/codingAssistant/internal/mail"
	"github.com/S-Dhruv/codingAssistant/internal/store"
	"github.com/S-Dhruv/codingAssistant/internal/ws"
	"github.com/S-Dhruv/codingAssistant/pkg/auth"
	"github.com/S-Dhruv/codingAssistant/pkg/metrics"
)

// NewRouter wires up all HTTP routes, middleware, and handlers
func NewRouter(cfg app.Config, logger *slog.Logger, hub *ws.Hub, db *store.Postgres, cache QuizCache, mailer mail.Sender) http.Handler {
	mw := NewMiddleware(cfg)

	quizAPI := &QuizAPI{DB: db, Cache: cache}
	roomAPI := &RoomAPI{Mail: mailer, Log: logger}
	authAPI := &AuthAPI{DB: db, JWT: auth.New(cfg.JWTSecret)}

	mux := http.NewServeMux()

	// Health / readiness / metrics
	mux.Handle("/healthz", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(200) }))
	mux.Handle("/readyz", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(200) }))
	mux.Handle("/metrics", metrics.Handler())

	// WebSocket relay endpoint
	mux.Handle("/ws", http.HandlerFunc(hub.ServeWS))

	// Auth endpoints
	mux.Handle("POST /api/auth/register", http.HandlerFunc(authAPI.Register))
	mux.Handle("POST /api/auth/login", http.HandlerFunc(authAPI.Login))
	mux.Handle("GET /api/auth/me", mw.Auth(http.HandlerFunc(authAPI.Me)))

	// Quiz + results endpoints
	mux.Handle("POST /api/save-quiz", http.HandlerFunc(quizAPI.Save))
	mux.Handle("POST /api/get-quiz", http.HandlerFunc(quizAPI.Get))
	mux.Handle("POST /results", http.HandlerFunc(quizAPI.Results))

	// Room-code invitation mail
	mux.Handle("POST /send-code", http.HandlerFunc(roomAPI.SendCode))

	// CORS + rate limit applied globally
	return mw.Wrap(mux)
}

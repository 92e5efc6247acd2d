// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/classpulse/cliparse"
	"github.com/danielhkuo/classpulse/handlers"
	"github.com/danielhkuo/classpulse/middleware"
	"github.com/danielhkuo/classpulse/realtime"
	"github.com/danielhkuo/classpulse/session"
)

func NewRouter(coord *session.Coordinator, hub *realtime.Hub, cfg cliparse.Config) http.Handler {
	mux := http.NewServeMux()

	// Initialize handlers
	sessionHandler := handlers.NewSessionHandler(coord)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Real-time protocol
	mux.HandleFunc("GET /ws", realtime.ServeWS(hub, coord, cfg.AllowedOrigin))

	// Read-only session views
	mux.HandleFunc("GET /api/poll", middleware.WithLogging(sessionHandler.GetCurrentPoll))
	mux.HandleFunc("GET /api/history", middleware.WithLogging(sessionHandler.GetHistory))
	mux.HandleFunc("GET /api/roster", middleware.WithLogging(sessionHandler.GetRoster))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("classpulse API v1"))
	})

	return middleware.CORS(cfg.AllowedOrigin, mux)
}

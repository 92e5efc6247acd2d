// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/classpulse/middleware"
	"github.com/danielhkuo/classpulse/models"
	"github.com/danielhkuo/classpulse/session"
)

type SessionHandler struct {
	coord *session.Coordinator
}

func NewSessionHandler(coord *session.Coordinator) *SessionHandler {
	return &SessionHandler{coord: coord}
}

// GetCurrentPoll handles GET /api/poll
func (h *SessionHandler) GetCurrentPoll(w http.ResponseWriter, r *http.Request) {
	poll, ok := h.coord.ActivePoll()
	if !ok {
		middleware.ErrorResponse(w, http.StatusNotFound, "No active poll")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.CurrentPollResponse{Poll: &poll})
}

// GetHistory handles GET /api/history
func (h *SessionHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, models.HistoryData{
		Polls: h.coord.History(),
	})
}

// GetRoster handles GET /api/roster
func (h *SessionHandler) GetRoster(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, models.StudentsData{
		Students: h.coord.Roster(),
	})
}

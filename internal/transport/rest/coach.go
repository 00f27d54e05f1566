package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/prismcrm/prism-backend/internal/domain"
	"github.com/prismcrm/prism-backend/internal/service/coach"
)

// coachService defines the minimal interface needed by CoachHandler.
type coachService interface {
	Ask(ctx context.Context, history []domain.ChatTurn, message string) (coach.Reply, error)
}

// CoachHandler serves the sales-coach chat endpoint.
type CoachHandler struct {
	svc coachService
	log *slog.Logger
}

// NewCoachHandler creates a CoachHandler.
func NewCoachHandler(svc coachService, logger *slog.Logger) *CoachHandler {
	return &CoachHandler{svc: svc, log: logger.With("handler", "coach")}
}

type chatTurnDTO struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

type chatRequest struct {
	Message string        `json:"message"`
	History []chatTurnDTO `json:"history"`
}

type chatResponse struct {
	Reply    chatTurnDTO `json:"reply"`
	Degraded bool        `json:"degraded"`
}

// Chat handles POST /api/coach/chat.
func (h *CoachHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	history := make([]domain.ChatTurn, 0, len(req.History))
	for _, turn := range req.History {
		role := domain.ChatRole(turn.Role)
		if !role.IsValid() {
			writeError(w, http.StatusBadRequest, "history: unknown role "+turn.Role)
			return
		}
		history = append(history, domain.ChatTurn{Role: role, Text: turn.Text})
	}

	reply, err := h.svc.Ask(r.Context(), history, req.Message)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{
		Reply: chatTurnDTO{
			Role: reply.Turn.Role.String(),
			Text: reply.Turn.Text,
		},
		Degraded: reply.Degraded,
	})
}

func (h *CoachHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

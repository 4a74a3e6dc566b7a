package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"energyskill/backend/services/energy-skill/internal/http/middleware"
	"energyskill/backend/services/energy-skill/internal/models"
)

const maxEventBytes = 256 << 10

// EventRouter answers one voice-platform event.
type EventRouter interface {
	Handle(ctx context.Context, event models.Event) (models.Envelope, error)
}

// SkillHandler serves the voice-platform webhook.
type SkillHandler struct {
	router EventRouter
	logger *zap.Logger
}

// NewSkillHandler returns handler.
func NewSkillHandler(router EventRouter, logger *zap.Logger) *SkillHandler {
	return &SkillHandler{router: router, logger: logger}
}

// ServeHTTP handles POST /skill.
func (h *SkillHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var event models.Event
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxEventBytes)).Decode(&event); err != nil {
		writeError(w, http.StatusBadRequest, "invalid event")
		return
	}

	envelope, err := h.router.Handle(r.Context(), event)
	if err != nil {
		h.logger.Error("skill invocation failed",
			zap.String("request_id", middleware.RequestIDFromContext(r.Context())),
			zap.String("request_type", event.Request.Type),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, envelope)
}

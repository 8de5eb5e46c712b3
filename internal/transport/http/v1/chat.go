package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dualquery/orchestrator/internal/domain"
)

// Chat processes one query within a session.
// POST /v1/chat
func (h *Handler) Chat(c echo.Context) error {
	var req domain.ChatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.Message == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "message is required"})
	}
	if req.SessionID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "session_id is required"})
	}

	result := h.service.Process(c.Request().Context(), req.Message, req.SessionID)

	// Orchestration-level failures still answer 200; success=false and the
	// embedded error carry the outcome.
	return c.JSON(http.StatusOK, result)
}

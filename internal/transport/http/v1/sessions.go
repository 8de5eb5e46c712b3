package v1

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// GetSessionHistory retrieves the stored conversation for a session.
// GET /v1/sessions/:session_id/history
func (h *Handler) GetSessionHistory(c echo.Context) error {
	sessionID := c.Param("session_id")
	limit := 50
	if l := c.QueryParam("limit"); l != "" {
		if val, err := strconv.Atoi(l); err == nil {
			limit = val
		}
	}

	messages, err := h.service.History(c.Request().Context(), sessionID, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"session_id": sessionID,
		"messages":   messages,
	})
}

// GetSessionStats retrieves the metadata view for a session.
// GET /v1/sessions/:session_id/stats
func (h *Handler) GetSessionStats(c echo.Context) error {
	sessionID := c.Param("session_id")

	stats, err := h.service.SessionStats(c.Request().Context(), sessionID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"stats":          stats,
		"session_ttl_ms": h.service.SessionTTL().Milliseconds(),
	})
}

// ClearSession deletes all messages for a session.
// DELETE /v1/sessions/:session_id
func (h *Handler) ClearSession(c echo.Context) error {
	sessionID := c.Param("session_id")

	ok, err := h.service.ClearSession(c.Request().Context(), sessionID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"session_id": sessionID,
		"success":    ok,
	})
}

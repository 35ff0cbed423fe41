package handlers

import (
	"errors"
	"net/http"

	"campcrew-funnel/internal/funnel"
	"campcrew-funnel/internal/session"
	"campcrew-funnel/internal/storage/redis"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SessionHandler struct {
	sessions Sessions
	logger   *zap.Logger
}

func NewSessionHandler(sessions Sessions, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{sessions: sessions, logger: logger}
}

func (h *SessionHandler) Create(c *gin.Context) {
	view, err := h.sessions.Create(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to create session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (h *SessionHandler) Get(c *gin.Context) {
	view, err := h.sessions.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *SessionHandler) Delete(c *gin.Context) {
	if err := h.sessions.Abandon(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err, nil)
		return
	}
	c.Status(http.StatusNoContent)
}

// Dispatch decodes one action and applies it. Rejected actions still return
// the session so the host can render field errors and submit failures.
func (h *SessionHandler) Dispatch(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	action, err := funnel.DecodeAction(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, err := h.sessions.Dispatch(c.Request.Context(), c.Param("id"), action)
	if err != nil {
		h.fail(c, err, &view)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *SessionHandler) Summary(c *gin.Context) {
	sum, err := h.sessions.Summary(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, sum)
}

func (h *SessionHandler) fail(c *gin.Context, err error, view *session.View) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("Session request failed",
			zap.String("session_id", c.Param("id")),
			zap.Error(err))
	}

	body := gin.H{"error": err.Error()}
	if view != nil && view.ID != "" {
		body["session"] = view
	}
	c.JSON(status, body)
}

func statusFor(err error) int {
	var display interface{ DisplayMessage() string }
	switch {
	case errors.Is(err, redis.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, funnel.ErrValidationFailed):
		return http.StatusUnprocessableEntity
	case errors.Is(err, funnel.ErrSubmitPending),
		errors.Is(err, funnel.ErrSessionComplete),
		errors.Is(err, funnel.ErrActionNotAllowed),
		errors.Is(err, funnel.ErrNoPlanSelected),
		errors.Is(err, funnel.ErrEmptyCrew),
		errors.Is(err, funnel.ErrAgreementsIncomplete):
		return http.StatusConflict
	case errors.Is(err, funnel.ErrInvalidBudget),
		errors.Is(err, funnel.ErrUnknownPlan),
		errors.Is(err, funnel.ErrInvalidCrew),
		errors.Is(err, funnel.ErrUnknownField),
		errors.Is(err, funnel.ErrUnknownAgreement),
		errors.Is(err, funnel.ErrNotCriticalClause),
		errors.Is(err, funnel.ErrInvalidSiteType):
		return http.StatusBadRequest
	case errors.As(err, &display):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobpilot/internal/auth"
	"jobpilot/internal/dtos"
	"jobpilot/internal/services"
)

type OutreachHandler struct {
	Outreach *services.OutreachService
}

func NewOutreachHandler(o *services.OutreachService) *OutreachHandler {
	return &OutreachHandler{Outreach: o}
}

// TriggerColdEmails is the POST /trigger-cold-emails endpoint. The batch
// runs in the background; the response only says it started.
func (h *OutreachHandler) TriggerColdEmails(c *gin.Context) {
	user := auth.CurrentUser(c)
	if err := h.Outreach.StartColdOutreach(user.ID); err != nil {
		respondBatchError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "started", "message": "Cold email batch started"})
}

// TriggerFollowups is the POST /trigger-followups endpoint
func (h *OutreachHandler) TriggerFollowups(c *gin.Context) {
	user := auth.CurrentUser(c)
	if err := h.Outreach.StartFollowups(user.ID); err != nil {
		respondBatchError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "started", "message": "Follow-up batch started"})
}

// SendSelectedEmails is the POST /send-selected-emails endpoint. Unlike the
// triggers it runs synchronously and returns the batch summary.
func (h *OutreachHandler) SendSelectedEmails(c *gin.Context) {
	var req dtos.SendSelectedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	user := auth.CurrentUser(c)
	res, err := h.Outreach.SendSelected(c.Request.Context(), user.ID, req.IDs)
	if err != nil {
		respondBatchError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// SendSelectedFollowups is the POST /send-selected-followups endpoint
func (h *OutreachHandler) SendSelectedFollowups(c *gin.Context) {
	var req dtos.SendSelectedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	user := auth.CurrentUser(c)
	res, err := h.Outreach.SendSelectedFollowups(c.Request.Context(), user.ID, req.IDs)
	if err != nil {
		respondBatchError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func respondBatchError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrBatchInProgress):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrResumeMissing), errors.Is(err, services.ErrResumeUnreadable):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

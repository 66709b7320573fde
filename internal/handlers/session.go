package handlers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/homechores/chores-api/internal/constants"
	apperrors "github.com/homechores/chores-api/internal/errors"
	"github.com/homechores/chores-api/internal/models"
)

// SessionHandler remembers which household member is using the app.
type SessionHandler struct {
	roster []string
}

func NewSessionHandler(roster []string) *SessionHandler {
	return &SessionHandler{roster: roster}
}

// SetMember stores the active member in the session
func (h *SessionHandler) SetMember(c *gin.Context) {
	var req struct {
		Member string `json:"member" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, "member is required")
		return
	}

	if !models.ValidAssignee(h.roster, req.Member) {
		apperrors.BadRequest(c, "member is not on the household roster")
		return
	}

	session := sessions.Default(c)
	session.Set(constants.SessionKeyMember, req.Member)
	if err := session.Save(); err != nil {
		apperrors.InternalError(c, "Failed to save session")
		return
	}

	c.JSON(http.StatusOK, gin.H{"member": req.Member})
}

// GetMember returns the active member, if any
func (h *SessionHandler) GetMember(c *gin.Context) {
	session := sessions.Default(c)
	member, ok := session.Get(constants.SessionKeyMember).(string)
	if !ok || member == "" {
		apperrors.NotFound(c, "No active member")
		return
	}
	c.JSON(http.StatusOK, gin.H{"member": member})
}

// ClearMember forgets the active member
func (h *SessionHandler) ClearMember(c *gin.Context) {
	session := sessions.Default(c)
	session.Delete(constants.SessionKeyMember)
	if err := session.Save(); err != nil {
		apperrors.InternalError(c, "Failed to save session")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Active member cleared"})
}

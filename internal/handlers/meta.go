package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/homechores/chores-api/internal/models"
)

// MetaHandler serves the fixed vocabularies the task form needs.
type MetaHandler struct {
	roster []string
}

func NewMetaHandler(roster []string) *MetaHandler {
	return &MetaHandler{roster: roster}
}

// GetMeta returns realms, types, priorities, the household roster and the
// realm-specific subrealm sets
func (h *MetaHandler) GetMeta(c *gin.Context) {
	assignees := make([]string, 0, len(h.roster)+2)
	assignees = append(assignees, h.roster...)
	assignees = append(assignees, models.AssigneeAll, models.AssigneeOther)

	c.JSON(http.StatusOK, gin.H{
		"realms":     models.Realms,
		"types":      models.TaskTypes,
		"priorities": []int{1, 2, 3, 4, 5},
		"assignees":  assignees,
		"subrealms":  models.SubrealmsByRealm,
	})
}

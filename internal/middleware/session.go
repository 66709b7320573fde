package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/homechores/chores-api/internal/constants"
)

// ActiveMember copies the household member stored in the session into the
// request context. There is no authentication here: the session just remembers
// who is using the app so completions default to the right person.
func ActiveMember() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if member, ok := session.Get(constants.SessionKeyMember).(string); ok && member != "" {
			c.Set(constants.ContextKeyMember, member)
		}
		c.Next()
	}
}

// GetMember retrieves the active household member from context.
func GetMember(c *gin.Context) (string, bool) {
	value, exists := c.Get(constants.ContextKeyMember)
	if !exists {
		return "", false
	}
	member, ok := value.(string)
	if !ok || member == "" {
		return "", false
	}
	return member, true
}

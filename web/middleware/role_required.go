package middleware

import (
	"net/http"

	"github.com/mhartmann/librarian/storage/model"
	"github.com/mhartmann/librarian/web/session"

	"github.com/gin-gonic/gin"
)

// RoleRequired gates a route group to sessions carrying one of the given
// roles. Anonymous and wrong-role callers are sent to the login page with
// a denial notice, never a hard failure.
func RoleRequired(roles ...model.Role) gin.HandlerFunc {
	allowed := make(map[model.Role]bool)
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		user := session.GetLoginUser(c)
		if user == nil || !allowed[user.Role] {
			_ = session.AddFlash(c, "danger", "Access denied.")
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

package middleware

import (
	"github.com/Ethansurfas/launchpad/internal/services"
	"github.com/Ethansurfas/launchpad/internal/utils"
	"github.com/gin-gonic/gin"
)

// EnsureUser mirrors the authenticated identity into the users table before
// any handler runs. Anonymous requests pass untouched.
func EnsureUser(users services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := UserID(c)
		if id == "" {
			c.Next()
			return
		}
		_, err := users.Ensure(c.Request.Context(), services.Identity{
			ID:    id,
			Email: c.GetString(CtxEmail),
			Name:  c.GetString(CtxName),
			Role:  Role(c),
		})
		if err != nil {
			_ = c.Error(err)
			if utils.IsCode(err, utils.CodeUnauthorized) {
				unauthorized(c)
				return
			}
			abort(c, utils.HTTPStatus(err), utils.CodeInternal, "Internal Server Error")
			return
		}
		c.Next()
	}
}

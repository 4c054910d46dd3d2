package middleware

import (
	"net/http"

	"cargo-dispatch/pkg/utils"

	"github.com/gin-gonic/gin"
)

const (
	RoleManager = "manager"
	RoleDriver  = "driver"
)

func RoleMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			utils.ErrorResponse(c, http.StatusForbidden, "Role not found in context")
			c.Abort()
			return
		}

		userRole := role.(string)

		for _, allowedRole := range allowedRoles {
			if userRole == allowedRole {
				c.Next()
				return
			}
		}

		utils.ErrorResponse(c, http.StatusForbidden, "Insufficient permissions")
		c.Abort()
	}
}

// ManagerOnly restricts a route group to dispatch managers.
func ManagerOnly() gin.HandlerFunc {
	return RoleMiddleware(RoleManager)
}

// DriverOnly restricts a route group to drivers.
func DriverOnly() gin.HandlerFunc {
	return RoleMiddleware(RoleDriver)
}

package calendar

import (
	"go-hrms/internal/middleware"
	"go-hrms/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service, jwtSecret string) {
	cal := r.Group("/calendar")
	cal.Use(middleware.AuthMiddleware(jwtSecret))
	{
		cal.GET("/working-days", middleware.RBACAuthorize(rbacService, "calendar", "read"), handler.WorkingDays)
	}
}

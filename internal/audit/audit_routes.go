package audit

import (
	"go-hrms/internal/middleware"
	"go-hrms/internal/rbac"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes exposes the audit log read-only. There is no write route.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service, jwtSecret string) {
	logs := r.Group("/audit-logs")
	logs.Use(middleware.AuthMiddleware(jwtSecret))
	{
		logs.GET("", middleware.RBACAuthorize(rbacService, "audit", "read"), handler.List)
		logs.GET("/:id", middleware.RBACAuthorize(rbacService, "audit", "read"), handler.GetByID)
	}
}

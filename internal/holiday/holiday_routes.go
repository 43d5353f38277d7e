package holiday

import (
	"go-hrms/internal/middleware"
	"go-hrms/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service, jwtSecret string, rdb *redis.Client) {
	holidays := r.Group("/holidays")
	holidays.Use(middleware.AuthMiddleware(jwtSecret))
	{
		holidays.GET("", middleware.RBACAuthorize(rbacService, "holiday", "read"), handler.List)
		holidays.POST("", middleware.RBACAuthorize(rbacService, "holiday", "create"), middleware.Idempotency(rdb), handler.Create)
		holidays.POST("/bulk", middleware.RBACAuthorize(rbacService, "holiday", "create"), middleware.Idempotency(rdb), handler.BulkCreate)
		holidays.POST("/extract", middleware.RBACAuthorize(rbacService, "holiday", "create"), handler.Extract)
		holidays.GET("/:id", middleware.RBACAuthorize(rbacService, "holiday", "read"), handler.GetByID)
		holidays.PUT("/:id", middleware.RBACAuthorize(rbacService, "holiday", "update"), handler.Update)
		holidays.DELETE("/:id", middleware.RBACAuthorize(rbacService, "holiday", "delete"), handler.Delete)
	}
}

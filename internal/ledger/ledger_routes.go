package ledger

import (
	"go-hrms/internal/middleware"
	"go-hrms/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service, jwtSecret string) {
	balances := r.Group("/leave-balances")
	balances.Use(middleware.AuthMiddleware(jwtSecret))
	{
		balances.GET("", middleware.RBACAuthorize(rbacService, "leave_balance", "read"), handler.ListBalances)
	}
}

package middleware

import (
	"errors"
	"fmt"
	"strings"

	"go-hrms/internal/shared/apperror"
	"go-hrms/internal/shared/contextutil"
	"go-hrms/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// Gin context keys set by AuthMiddleware.
const (
	ContextUserID     = "user_id"
	ContextEmployeeID = "employee_id"
	ContextRole       = "role"
)

func abortWith(c *gin.Context, err *apperror.AppError) {
	response.Error(c, err.HTTPStatus, err.Code, err.Message, nil)
	c.Abort()
}

// AuthMiddleware validates the bearer token (or access_token cookie) and
// attaches the caller identity to both the gin context and the request context.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found {
			tokenString = ""
		}
		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}
		if tokenString == "" {
			abortWith(c, ErrTokenMissing)
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			if errors.Is(err, jwt.ErrTokenExpired) {
				abortWith(c, ErrTokenExpired)
				return
			}
			abortWith(c, ErrInvalidToken)
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortWith(c, ErrInvalidToken)
			return
		}

		if typ, _ := claims["typ"].(string); typ == "refresh" {
			abortWith(c, ErrInvalidToken)
			return
		}

		userID, _ := claims["user_id"].(string)
		employeeID, _ := claims["employee_id"].(string)
		role, _ := claims["role"].(string)
		if userID == "" || employeeID == "" || role == "" {
			abortWith(c, ErrInvalidToken)
			return
		}

		c.Set(ContextUserID, userID)
		c.Set("user_id_validated", userID)
		c.Set(ContextEmployeeID, employeeID)
		c.Set(ContextRole, role)

		ctx := c.Request.Context()
		meta := contextutil.GetRequestMeta(ctx)
		meta.RequestID = contextutil.GetRequestID(ctx)
		meta.ActorID = employeeID
		meta.UserID = userID
		meta.Role = role
		meta.UserAgent = c.Request.UserAgent()
		meta.Path = c.Request.URL.Path
		meta.RemoteAddr = c.ClientIP()
		ctx = contextutil.WithRequestMeta(ctx, meta)

		reqLogger := contextutil.GetLogger(ctx, nil).With(
			zap.String("actor_id", employeeID),
			zap.String("role", role),
		)
		ctx = contextutil.WithLogger(ctx, reqLogger)

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func RoleMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextRole)
		for _, allowed := range allowedRoles {
			if role == allowed {
				c.Next()
				return
			}
		}
		abortWith(c, ErrForbidden)
	}
}

package middleware_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go-hrms/internal/domain"
	"go-hrms/internal/middleware"
	"go-hrms/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte(testSecret))
	assert.NoError(t, err)
	return s
}

func validClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"user_id":     "user-1",
		"employee_id": "emp-1",
		"role":        "manager",
		"exp":         time.Now().Add(time.Hour).Unix(),
	}
}

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.ContextLogger(zap.NewNop()))
	r.GET("/ping", handlers...)
	r.POST("/ping", handlers...)
	return r
}

func TestAuthMiddleware(t *testing.T) {
	t.Run("valid token attaches request meta", func(t *testing.T) {
		var meta contextutil.RequestMeta
		r := newRouter(middleware.AuthMiddleware(testSecret), func(c *gin.Context) {
			meta = contextutil.GetRequestMeta(c.Request.Context())
			c.Status(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, validClaims()))
		req.Header.Set("User-Agent", "PostmanRuntime/7.36")
		req.Header.Set("X-Request-ID", "rid-42")
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "emp-1", meta.ActorID)
		assert.Equal(t, "manager", meta.Role)
		assert.Equal(t, "/ping", meta.Path)
		assert.Equal(t, "PostmanRuntime/7.36", meta.UserAgent)
		assert.Equal(t, "rid-42", meta.RequestID)
	})

	t.Run("negative missing token", func(t *testing.T) {
		r := newRouter(middleware.AuthMiddleware(testSecret), func(c *gin.Context) { c.Status(http.StatusOK) })
		w := httptest.NewRecorder()

		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("negative expired token", func(t *testing.T) {
		claims := validClaims()
		claims["exp"] = time.Now().Add(-time.Hour).Unix()
		r := newRouter(middleware.AuthMiddleware(testSecret), func(c *gin.Context) { c.Status(http.StatusOK) })

		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, claims))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "TOKEN_EXPIRED")
	})

	t.Run("negative missing role claim", func(t *testing.T) {
		claims := validClaims()
		delete(claims, "role")
		r := newRouter(middleware.AuthMiddleware(testSecret), func(c *gin.Context) { c.Status(http.StatusOK) })

		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, claims))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("negative refresh token used as access token", func(t *testing.T) {
		claims := validClaims()
		claims["typ"] = "refresh"
		r := newRouter(middleware.AuthMiddleware(testSecret), func(c *gin.Context) { c.Status(http.StatusOK) })

		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, claims))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

type fakeRBAC struct {
	allowed bool
	err     error
	got     domain.EnforceRequest
}

func (f *fakeRBAC) Enforce(req domain.EnforceRequest) (bool, error) {
	f.got = req
	return f.allowed, f.err
}

func TestRBACAuthorize(t *testing.T) {
	withRole := func(role string) gin.HandlerFunc {
		return func(c *gin.Context) {
			if role != "" {
				c.Set(middleware.ContextRole, role)
			}
			c.Next()
		}
	}
	ok := func(c *gin.Context) { c.Status(http.StatusOK) }

	t.Run("allowed", func(t *testing.T) {
		svc := &fakeRBAC{allowed: true}
		r := newRouter(withRole("admin"), middleware.RBACAuthorize(svc, "audit", "read"), ok)
		w := httptest.NewRecorder()

		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, domain.EnforceRequest{Role: "admin", Resource: "audit", Action: "read"}, svc.got)
	})

	t.Run("negative denied", func(t *testing.T) {
		r := newRouter(withRole("employee"), middleware.RBACAuthorize(&fakeRBAC{}, "audit", "read"), ok)
		w := httptest.NewRecorder()

		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("negative no role", func(t *testing.T) {
		r := newRouter(withRole(""), middleware.RBACAuthorize(&fakeRBAC{allowed: true}, "audit", "read"), ok)
		w := httptest.NewRecorder()

		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("negative enforcer error", func(t *testing.T) {
		r := newRouter(withRole("admin"), middleware.RBACAuthorize(&fakeRBAC{err: errors.New("boom")}, "audit", "read"), ok)
		w := httptest.NewRecorder()

		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestIdempotency(t *testing.T) {
	setUser := func(c *gin.Context) {
		c.Set(middleware.ContextUserID, "user-1")
		c.Next()
	}
	created := func(c *gin.Context) { c.JSON(http.StatusCreated, gin.H{"id": "leave-1"}) }
	cacheKey := middleware.IdempotencyCacheKey("/ping", "user-1", "k1")

	t.Run("replays cached response", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		payload, _ := json.Marshal(map[string]any{"status": 201, "body": map[string]string{"id": "leave-1"}})
		mock.ExpectGet(cacheKey).SetVal(string(payload))

		r := newRouter(setUser, middleware.Idempotency(rdb), func(c *gin.Context) {
			t.Fatal("handler must not run on replay")
		})
		req := httptest.NewRequest(http.MethodPost, "/ping", nil)
		req.Header.Set(middleware.IdempotencyHeader, "k1")
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "true", w.Header().Get("Idempotent-Replayed"))
		assert.JSONEq(t, `{"id":"leave-1"}`, w.Body.String())
	})

	t.Run("first request stores response", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(cacheKey+":lock", "locked", 30*time.Second).SetVal(true)
		mock.ExpectSet(cacheKey, `{"status":201,"body":{"id":"leave-1"}}`, 24*time.Hour).SetVal("OK")
		mock.ExpectDel(cacheKey + ":lock").SetVal(1)

		r := newRouter(setUser, middleware.Idempotency(rdb), created)
		req := httptest.NewRequest(http.MethodPost, "/ping", nil)
		req.Header.Set(middleware.IdempotencyHeader, "k1")
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("negative concurrent duplicate", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(cacheKey+":lock", "locked", 30*time.Second).SetVal(false)

		r := newRouter(setUser, middleware.Idempotency(rdb), created)
		req := httptest.NewRequest(http.MethodPost, "/ping", nil)
		req.Header.Set(middleware.IdempotencyHeader, "k1")
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("no header passes through", func(t *testing.T) {
		rdb, _ := redismock.NewClientMock()
		r := newRouter(setUser, middleware.Idempotency(rdb), created)
		w := httptest.NewRecorder()

		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/ping", nil))

		assert.Equal(t, http.StatusCreated, w.Code)
	})
}

func TestRateLimitByIP(t *testing.T) {
	r := newRouter(middleware.RateLimitByIP(rate.Limit(1), 1), func(c *gin.Context) { c.Status(http.StatusOK) })

	w1 := httptest.NewRecorder()
	r.ServeHTTP(w1, httptest.NewRequest(http.MethodGet, "/ping", nil))
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, w1.Code)
	assert.Equal(t, http.StatusTooManyRequests, w2.Code)
}

func TestContextLogger_RequestID(t *testing.T) {
	var seen string
	r := newRouter(func(c *gin.Context) {
		seen = contextutil.GetRequestMeta(c.Request.Context()).RequestID
		c.Status(http.StatusOK)
	})
	serve := func(rid string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		if rid != "" {
			req.Header.Set("X-Request-ID", rid)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("client id kept", func(t *testing.T) {
		w := serve("rid-42")
		assert.Equal(t, "rid-42", seen)
		assert.Equal(t, "rid-42", w.Header().Get("X-Request-ID"))
	})

	cases := map[string]string{
		"missing":       "",
		"too long":      strings.Repeat("a", 65),
		"not printable": "rid\x01",
		"non ascii":     "rid-é",
	}
	for name, rid := range cases {
		t.Run("replaced when "+name, func(t *testing.T) {
			w := serve(rid)
			_, err := uuid.Parse(seen)
			assert.NoError(t, err)
			assert.Equal(t, seen, w.Header().Get("X-Request-ID"))
		})
	}
}

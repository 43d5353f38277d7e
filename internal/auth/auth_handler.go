package auth

import (
	"net/http"
	"strings"

	autherrors "go-hrms/internal/auth/errors"
	"go-hrms/internal/shared/apperror"
	"go-hrms/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	accessCookie  = "access_token"
	refreshCookie = "refresh_token"
)

type Handler struct {
	service       Service
	secureCookies bool
	tokens        TokenConfig
	logger        *zap.Logger
}

// NewHandler builds the auth handler. secureCookies should be true in
// production so cookies are only sent over TLS.
func NewHandler(s Service, tokens TokenConfig, secureCookies bool, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("auth.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.handler")
	}
	return &Handler{service: s, tokens: tokens, secureCookies: secureCookies, logger: l}
}

// isWebClient reports whether tokens should also be delivered as cookies.
// An explicit X-Client-Type wins over the user agent.
func isWebClient(c *gin.Context) bool {
	switch strings.ToLower(strings.TrimSpace(c.GetHeader("X-Client-Type"))) {
	case "web":
		return true
	case "mobile", "api":
		return false
	}
	return strings.Contains(c.GetHeader("User-Agent"), "Mozilla")
}

func (h *Handler) setCookie(c *gin.Context, name, value string, maxAge int) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	if httpErr.Status >= http.StatusInternalServerError {
		h.logger.Error("auth request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	access, refresh, userResp, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if isWebClient(c) {
		h.setCookie(c, accessCookie, access, int(h.tokens.AccessTTL.Seconds()))
		h.setCookie(c, refreshCookie, refresh, int(h.tokens.RefreshTTL.Seconds()))
	}

	response.Success(c, http.StatusOK, TokenResponse{
		User:         userResp,
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil)
}

func (h *Handler) RefreshToken(c *gin.Context) {
	web := isWebClient(c)

	var refreshToken string
	if web {
		cookie, err := c.Cookie(refreshCookie)
		if err != nil || cookie == "" {
			h.writeServiceError(c, autherrors.ErrMissingRefreshToken)
			return
		}
		refreshToken = cookie
	} else {
		var req RefreshRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BindError(c, err)
			return
		}
		refreshToken = req.RefreshToken
	}

	access, refresh, userResp, err := h.service.RefreshToken(c.Request.Context(), refreshToken)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if web {
		h.setCookie(c, accessCookie, access, int(h.tokens.AccessTTL.Seconds()))
		h.setCookie(c, refreshCookie, refresh, int(h.tokens.RefreshTTL.Seconds()))
	}

	response.Success(c, http.StatusOK, TokenResponse{
		User:         userResp,
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil)
}

func (h *Handler) Logout(c *gin.Context) {
	h.setCookie(c, accessCookie, "", -1)
	h.setCookie(c, refreshCookie, "", -1)
	response.Success(c, http.StatusOK, gin.H{"logged_out": true}, nil)
}

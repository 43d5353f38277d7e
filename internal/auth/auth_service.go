package auth

import (
	"context"
	"errors"
	"time"

	autherrors "go-hrms/internal/auth/errors"
	"go-hrms/internal/user"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, email, password string) (accessToken, refreshToken string, resp AuthResponse, err error)
	RefreshToken(ctx context.Context, refreshToken string) (newAccessToken, newRefreshToken string, resp AuthResponse, err error)
}

type TokenConfig struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

type service struct {
	users  user.Repository
	tokens TokenConfig
	now    func() time.Time
	logger *zap.Logger
}

func NewService(users user.Repository, tokens TokenConfig, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	if tokens.AccessTTL <= 0 {
		tokens.AccessTTL = 15 * time.Minute
	}
	if tokens.RefreshTTL <= 0 {
		tokens.RefreshTTL = 7 * 24 * time.Hour
	}
	return &service{users: users, tokens: tokens, now: time.Now, logger: l}
}

func (s *service) Login(ctx context.Context, email, password string) (string, string, AuthResponse, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("login lookup failed", zap.Error(err))
			return "", "", AuthResponse{}, err
		}
		s.logger.Warn("login rejected: unknown email")
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		s.logger.Warn("login rejected: wrong password", zap.String("user_id", u.ID.String()))
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}
	if !u.IsActive {
		s.logger.Warn("login rejected: inactive user", zap.String("user_id", u.ID.String()))
		return "", "", AuthResponse{}, autherrors.ErrAccountInactive
	}

	access, refresh, err := s.issuePair(u)
	if err != nil {
		return "", "", AuthResponse{}, err
	}

	s.logger.Info("login success", zap.String("user_id", u.ID.String()), zap.String("role", u.Role))
	return access, refresh, mapToAuthResponse(*u), nil
}

// RefreshToken issues a new pair from a valid refresh token. Role and status
// are re-read from the users table so demotions take effect on refresh.
func (s *service) RefreshToken(ctx context.Context, refreshToken string) (string, string, AuthResponse, error) {
	claims, err := s.parse(refreshToken)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}
	if typ, _ := claims["typ"].(string); typ != tokenTypeRefresh {
		return "", "", AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	userIDStr, _ := claims["user_id"].(string)
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", AuthResponse{}, autherrors.ErrInvalidRefreshToken
		}
		s.logger.Error("refresh lookup failed", zap.Error(err))
		return "", "", AuthResponse{}, err
	}
	if !u.IsActive {
		return "", "", AuthResponse{}, autherrors.ErrAccountInactive
	}

	access, refresh, err := s.issuePair(u)
	if err != nil {
		return "", "", AuthResponse{}, err
	}
	return access, refresh, mapToAuthResponse(*u), nil
}

func (s *service) issuePair(u *user.User) (string, string, error) {
	access, err := s.generateToken(u, tokenTypeAccess, s.tokens.AccessTTL)
	if err != nil {
		s.logger.Error("sign access token failed", zap.Error(err))
		return "", "", autherrors.ErrTokenGenerationFailed
	}
	refresh, err := s.generateToken(u, tokenTypeRefresh, s.tokens.RefreshTTL)
	if err != nil {
		s.logger.Error("sign refresh token failed", zap.Error(err))
		return "", "", autherrors.ErrTokenGenerationFailed
	}
	return access, refresh, nil
}

// generateToken signs the claims AuthMiddleware reads: user_id, employee_id and role.
func (s *service) generateToken(u *user.User, typ string, expiry time.Duration) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"user_id":     u.ID.String(),
		"employee_id": u.EmployeeID.String(),
		"role":        u.Role,
		"typ":         typ,
		"iat":         now.Unix(),
		"exp":         now.Add(expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.tokens.Secret))
}

func (s *service) parse(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidRefreshToken
		}
		return []byte(s.tokens.Secret), nil
	})
	if err != nil || !token.Valid {
		return nil, autherrors.ErrInvalidRefreshToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, autherrors.ErrInvalidRefreshToken
	}
	return claims, nil
}

func mapToAuthResponse(u user.User) AuthResponse {
	return AuthResponse{
		ID:         u.ID.String(),
		EmployeeID: u.EmployeeID.String(),
		Email:      u.Email,
		Role:       u.Role,
	}
}

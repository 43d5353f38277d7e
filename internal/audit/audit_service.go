package audit

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	auditerrors "go-hrms/internal/audit/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service is the read-only query surface over the audit log.
//
//go:generate mockgen -source=audit_service.go -destination=mock/audit_service_mock.go -package=mock
type Service interface {
	List(ctx context.Context, q ListAuditLogsQuery) ([]AuditLogResponse, int64, error)
	GetByID(ctx context.Context, id string) (AuditLogResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("audit.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("audit.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) List(ctx context.Context, q ListAuditLogsQuery) ([]AuditLogResponse, int64, error) {
	f := ListFilter{
		ActorID:  q.ActorID,
		Table:    q.Table,
		Action:   strings.ToUpper(strings.TrimSpace(q.Action)),
		RecordID: q.RecordID,
		Page:     q.Page,
		PageSize: q.PageSize,
	}

	if f.ActorID != "" {
		if _, err := uuid.Parse(f.ActorID); err != nil {
			return nil, 0, auditerrors.ErrInvalidActorID
		}
	}
	switch f.Action {
	case "", ActionCreate, ActionUpdate, ActionDelete, ActionHardDelete:
	default:
		return nil, 0, auditerrors.ErrInvalidAction
	}

	if q.From != "" {
		from, err := time.Parse("2006-01-02", q.From)
		if err != nil {
			return nil, 0, auditerrors.ErrInvalidDateRange
		}
		f.From = &from
	}
	if q.To != "" {
		to, err := time.Parse("2006-01-02", q.To)
		if err != nil {
			return nil, 0, auditerrors.ErrInvalidDateRange
		}
		// inclusive end date
		to = to.AddDate(0, 0, 1)
		f.To = &to
	}
	if f.From != nil && f.To != nil && !f.From.Before(*f.To) {
		return nil, 0, auditerrors.ErrInvalidDateRange
	}

	logs, total, err := s.repo.List(ctx, f)
	if err != nil {
		s.logger.Error("list audit logs failed", zap.Error(err))
		return nil, 0, err
	}

	resp := make([]AuditLogResponse, len(logs))
	for i, l := range logs {
		resp[i] = mapToResponse(l)
	}
	return resp, total, nil
}

func (s *service) GetByID(ctx context.Context, id string) (AuditLogResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return AuditLogResponse{}, auditerrors.ErrAuditNotFound
	}
	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AuditLogResponse{}, auditerrors.ErrAuditNotFound
		}
		s.logger.Error("get audit log failed", zap.String("audit_id", id), zap.Error(err))
		return AuditLogResponse{}, err
	}
	return mapToResponse(*entry), nil
}

// RequestSource names the client that produced an entry, from its path and user agent.
func RequestSource(path, userAgent string) string {
	if strings.HasPrefix(path, "/admin/") {
		return "Admin Panel"
	}
	switch {
	case strings.Contains(userAgent, "Postman"):
		return "Postman Client"
	case strings.Contains(userAgent, "Mozilla"),
		strings.Contains(userAgent, "Chrome"),
		strings.Contains(userAgent, "Safari"),
		strings.Contains(userAgent, "Edge"):
		return "Browser"
	case strings.Contains(userAgent, "Python"), strings.Contains(userAgent, "requests"):
		return "Python Script"
	default:
		return "Unknown Source"
	}
}

func mapToResponse(l AuditLog) AuditLogResponse {
	resp := AuditLogResponse{
		ID:            l.ID.String(),
		Action:        l.Action,
		TableName:     l.Table,
		RecordID:      l.RecordID,
		Timestamp:     l.Timestamp.UTC().Format(time.RFC3339),
		Changes:       json.RawMessage(l.Changes),
		UserAgent:     l.UserAgent,
		Path:          l.Path,
		RequestSource: RequestSource(l.Path, l.UserAgent),
	}
	if len(resp.Changes) == 0 {
		resp.Changes = json.RawMessage("{}")
	}
	if l.ActorID != nil {
		v := l.ActorID.String()
		resp.ActorID = &v
	}
	return resp
}

package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go-hrms/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// Recorder writes audit entries for tracked tables. Actor, user agent and
// path are taken from the RequestMeta carried by ctx.
//
//go:generate mockgen -source=audit_recorder.go -destination=mock/audit_recorder_mock.go -package=mock
type Recorder interface {
	WithTx(tx *sql.Tx) Recorder
	RecordCreate(ctx context.Context, entity Auditable) error
	// RecordUpdate logs the diff between before and after. A soft delete is
	// recorded as DELETE. Nothing is written when no field changed.
	RecordUpdate(ctx context.Context, before, after Auditable) error
	RecordHardDelete(ctx context.Context, entity Auditable) error
}

type recorder struct {
	repo    Repository
	tracked map[string]bool
	now     func() time.Time
	logger  *zap.Logger
}

// NewRecorder tracks the given tables. An empty list tracks every table.
func NewRecorder(repo Repository, trackedTables []string, logger ...*zap.Logger) Recorder {
	l := zap.L().Named("audit.recorder")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("audit.recorder")
	}
	tracked := make(map[string]bool, len(trackedTables))
	for _, t := range trackedTables {
		tracked[t] = true
	}
	return &recorder{
		repo:    repo,
		tracked: tracked,
		now:     func() time.Time { return time.Now().UTC() },
		logger:  l,
	}
}

func (r *recorder) WithTx(tx *sql.Tx) Recorder {
	return &recorder{
		repo:    r.repo.WithTx(tx),
		tracked: r.tracked,
		now:     r.now,
		logger:  r.logger,
	}
}

func (r *recorder) isTracked(table string) bool {
	return len(r.tracked) == 0 || r.tracked[table]
}

func (r *recorder) RecordCreate(ctx context.Context, entity Auditable) error {
	if !r.isTracked(entity.AuditTable()) {
		return nil
	}
	return r.write(ctx, ActionCreate, entity, snapshotChanges(entity.AuditSnapshot()))
}

func (r *recorder) RecordUpdate(ctx context.Context, before, after Auditable) error {
	if !r.isTracked(after.AuditTable()) {
		return nil
	}
	diff := Diff(before.AuditSnapshot(), after.AuditSnapshot())
	if len(diff) == 0 {
		return nil
	}
	return r.write(ctx, ActionForDiff(diff), after, diffChanges(diff))
}

func (r *recorder) RecordHardDelete(ctx context.Context, entity Auditable) error {
	if !r.isTracked(entity.AuditTable()) {
		return nil
	}
	return r.write(ctx, ActionHardDelete, entity, snapshotChanges(entity.AuditSnapshot()))
}

func (r *recorder) write(ctx context.Context, action string, entity Auditable, changes map[string]any) error {
	payload, err := json.Marshal(Sanitize(changes))
	if err != nil {
		return fmt.Errorf("marshal audit changes: %w", err)
	}

	meta := contextutil.GetRequestMeta(ctx)
	entry := &AuditLog{
		ID:        uuid.New(),
		Action:    action,
		Table:     entity.AuditTable(),
		RecordID:  entity.AuditKey(),
		Timestamp: r.now(),
		Changes:   datatypes.JSON(payload),
		UserAgent: truncate(meta.UserAgent, 255),
		Path:      truncate(meta.Path, 255),
		RequestID: truncate(meta.RequestID, 64),
	}
	if actor, err := uuid.Parse(meta.UserID); err == nil {
		entry.ActorID = &actor
	}

	if err := r.repo.Create(ctx, entry); err != nil {
		r.logger.Error("write audit entry failed",
			zap.String("table", entry.Table),
			zap.String("record_id", entry.RecordID),
			zap.String("action", action),
			zap.Error(err),
		)
		return err
	}

	r.logger.Debug("audit entry written",
		zap.String("table", entry.Table),
		zap.String("record_id", entry.RecordID),
		zap.String("action", action),
	)
	return nil
}

// truncate caps s at n bytes without splitting a character. Invalid
// sequences are dropped since Postgres rejects them.
func truncate(s string, n int) string {
	s = strings.ToValidUTF8(s, "")
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

package audit

import "encoding/json"

type ListAuditLogsQuery struct {
	ActorID  string `form:"actor_id" binding:"omitempty,uuid"`
	Table    string `form:"table_name"`
	Action   string `form:"action"`
	RecordID string `form:"record_id"`
	From     string `form:"from"`
	To       string `form:"to"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

type AuditLogResponse struct {
	ID            string          `json:"id"`
	ActorID       *string         `json:"actor_id"`
	Action        string          `json:"action"`
	TableName     string          `json:"table_name"`
	RecordID      string          `json:"record_id"`
	Timestamp     string          `json:"timestamp"`
	Changes       json.RawMessage `json:"changes"`
	UserAgent     string          `json:"user_agent"`
	Path          string          `json:"path"`
	RequestSource string          `json:"request_source"`
}

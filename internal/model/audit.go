package model

import "time"

// AuditEntry records how one decrypt request ended.
// It never holds the password, the document bytes or the uploaded filename.
type AuditEntry struct {
	ID         string    `json:"id"`
	RequestID  string    `json:"request_id"`
	Outcome    string    `json:"outcome"`
	Status     int       `json:"status"`
	InputBytes int64     `json:"input_bytes"`
	PageCount  int       `json:"page_count"`
	DurationMS int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}

package postgres

import (
	"context"
	"database/sql"

	"pdfdecrypt/internal/model"
	"pdfdecrypt/internal/repository"
)

// AuditPostgres is a PostgreSQL implementation of repository.AuditRepository.
type AuditPostgres struct {
	db *sql.DB
}

// NewAuditPostgres creates a new AuditPostgres repository.
func NewAuditPostgres(db *sql.DB) *AuditPostgres {
	return &AuditPostgres{db: db}
}

var _ repository.AuditRepository = (*AuditPostgres)(nil)

const auditColumns = `id, request_id, outcome, status, input_bytes, page_count, duration_ms, created_at`

// Create inserts one audit row and returns the stored record.
func (r *AuditPostgres) Create(ctx context.Context, e *model.AuditEntry) (*model.AuditEntry, error) {
	const q = `
		INSERT INTO decrypt_audit (` + auditColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + auditColumns
	row := r.db.QueryRowContext(ctx, q,
		e.ID,
		e.RequestID,
		e.Outcome,
		e.Status,
		e.InputBytes,
		e.PageCount,
		e.DurationMS,
		e.CreatedAt,
	)
	var out model.AuditEntry
	if err := scanEntry(row, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// List returns entries newest first with a total count for the same filter.
func (r *AuditPostgres) List(ctx context.Context, aq repository.AuditQuery) (*repository.PageResult[model.AuditEntry], error) {
	const qCount = `SELECT COUNT(*) FROM decrypt_audit WHERE ($1 = '' OR outcome = $1)`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount, aq.Outcome).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT ` + auditColumns + `
		FROM decrypt_audit
		WHERE ($1 = '' OR outcome = $1)
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, qList, aq.Outcome, aq.Limit, aq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.AuditEntry, 0)
	for rows.Next() {
		var e model.AuditEntry
		if err := scanEntry(rows, &e); err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.AuditEntry]{
		Items: items,
		Total: total,
	}, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner, e *model.AuditEntry) error {
	return s.Scan(
		&e.ID,
		&e.RequestID,
		&e.Outcome,
		&e.Status,
		&e.InputBytes,
		&e.PageCount,
		&e.DurationMS,
		&e.CreatedAt,
	)
}

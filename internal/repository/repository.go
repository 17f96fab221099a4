// Package repository contains data access abstractions.
// Implementations live in subpackages (e.g. postgres).
package repository

import (
	"context"

	"pdfdecrypt/internal/model"
)

// AuditRepository persists decrypt audit entries. Persistence only.
type AuditRepository interface {
	// Create inserts an entry and returns it as stored.
	Create(ctx context.Context, e *model.AuditEntry) (*model.AuditEntry, error)

	// List returns the newest entries first, optionally filtered by outcome.
	List(ctx context.Context, q AuditQuery) (*PageResult[model.AuditEntry], error)
}

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// AuditQuery narrows a List call. An empty Outcome matches every entry.
type AuditQuery struct {
	PageQuery
	Outcome string
}

// PageResult is a generic pagination result wrapper.
type PageResult[T any] struct {
	Items []T
	Total int
}

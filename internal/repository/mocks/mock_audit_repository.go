package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"pdfdecrypt/internal/model"
	"pdfdecrypt/internal/repository"
)

type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) Create(ctx context.Context, e *model.AuditEntry) (*model.AuditEntry, error) {
	args := m.Called(ctx, e)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AuditEntry), args.Error(1)
}

func (m *MockAuditRepository) List(ctx context.Context, q repository.AuditQuery) (*repository.PageResult[model.AuditEntry], error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.AuditEntry]), args.Error(1)
}

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"pdfdecrypt/internal/decrypt"
	"pdfdecrypt/internal/service"
)

type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) ObserveOutcome(ctx context.Context, o decrypt.Observation) {
	m.Called(ctx, o)
}

func (m *MockAuditService) List(ctx context.Context, limit, offset int, outcome string) (*service.AuditListResult, error) {
	args := m.Called(ctx, limit, offset, outcome)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AuditListResult), args.Error(1)
}

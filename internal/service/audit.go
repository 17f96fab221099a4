package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pdfdecrypt/internal/decrypt"
	"pdfdecrypt/internal/model"
	"pdfdecrypt/internal/repository"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
	recordTimeout    = 2 * time.Second
)

var ErrUnknownOutcome = errors.New("unknown outcome filter")

// AuditListResult is the service-level DTO for paginated audit entries.
type AuditListResult struct {
	Items []model.AuditEntry `json:"data"`
	Total int                `json:"total"`
}

// AuditService records decrypt outcomes and lists them back.
type AuditService interface {
	decrypt.Observer

	// List returns entries newest first. outcome may be empty.
	List(ctx context.Context, limit, offset int, outcome string) (*AuditListResult, error)
}

type auditService struct {
	repo repository.AuditRepository
	log  *zap.Logger
	now  func() time.Time
}

// NewAuditService constructs a new AuditService.
func NewAuditService(repo repository.AuditRepository, log *zap.Logger) AuditService {
	if log == nil {
		log = zap.NewNop()
	}
	return &auditService{repo: repo, log: log, now: time.Now}
}

// ObserveOutcome writes one audit row. The write is bounded by its own
// timeout and detached from request cancellation; a failure is logged only.
func (s *auditService) ObserveOutcome(ctx context.Context, o decrypt.Observation) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()

	entry := &model.AuditEntry{
		ID:         uuid.NewString(),
		RequestID:  o.RequestID,
		Outcome:    o.Kind.String(),
		Status:     o.Status,
		InputBytes: int64(o.InputBytes),
		PageCount:  o.Pages,
		DurationMS: o.Duration.Milliseconds(),
		CreatedAt:  s.now().UTC(),
	}
	if _, err := s.repo.Create(ctx, entry); err != nil {
		s.log.Error("failed to record decrypt audit entry",
			zap.Error(err),
			zap.String("request_id", o.RequestID),
			zap.String("outcome", entry.Outcome),
		)
	}
}

func (s *auditService) List(ctx context.Context, limit, offset int, outcome string) (*AuditListResult, error) {
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	if offset < 0 {
		offset = 0
	}
	if outcome != "" && !decrypt.ValidKindLabel(outcome) {
		return nil, ErrUnknownOutcome
	}

	res, err := s.repo.List(ctx, repository.AuditQuery{
		PageQuery: repository.PageQuery{Limit: limit, Offset: offset},
		Outcome:   outcome,
	})
	if err != nil {
		return nil, err
	}
	return &AuditListResult{Items: res.Items, Total: res.Total}, nil
}

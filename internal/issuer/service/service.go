package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"kyc-gateway/internal/audit"
	"kyc-gateway/internal/issuer/models"
	"kyc-gateway/internal/issuer/store"
	"kyc-gateway/internal/platform/metrics"
	id "kyc-gateway/pkg/domain"
	dErrors "kyc-gateway/pkg/domain-errors"
	"kyc-gateway/pkg/platform/sentinel"
)

// AuditSink receives token-rotation events. Nil disables emission.
type AuditSink interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service resolves the two configured issuer identities and owns auth token
// rotation. The issuance SaaS enforces one valid token at a time, so token
// writes for a given issuer are serialized through a per-issuer mutex;
// without it two concurrent requests could interleave read-modify-write and
// strand the process on a revoked token.
type Service struct {
	store  store.Store
	logger *slog.Logger
	met    *metrics.Metrics
	audit  AuditSink

	phoneDID    string
	documentDID string

	mu    sync.Mutex
	locks map[id.IssuerID]*sync.Mutex
}

func New(store store.Store, logger *slog.Logger, met *metrics.Metrics, sink AuditSink, phoneDID, documentDID string) *Service {
	return &Service{
		store:       store,
		logger:      logger,
		met:         met,
		audit:       sink,
		phoneDID:    phoneDID,
		documentDID: documentDID,
		locks:       make(map[id.IssuerID]*sync.Mutex),
	}
}

// Pair resolves both issuer identities. Every credential-request call needs
// both up front, so a missing row is an unavailability, not a caller error.
func (s *Service) Pair(ctx context.Context) (phone *models.Issuer, document *models.Issuer, err error) {
	phone, err = s.byDID(ctx, s.phoneDID, models.RolePhone)
	if err != nil {
		return nil, nil, err
	}
	document, err = s.byDID(ctx, s.documentDID, models.RoleDocument)
	if err != nil {
		return nil, nil, err
	}
	return phone, document, nil
}

// Role reports which configured identity the issuer DID belongs to.
func (s *Service) Role(issuerDID string) (models.Role, bool) {
	switch issuerDID {
	case s.phoneDID:
		return models.RolePhone, true
	case s.documentDID:
		return models.RoleDocument, true
	default:
		return "", false
	}
}

// PersistRotatedToken applies a token rotation returned by any gateway call.
// A missing or unchanged token is a no-op. On success the in-memory issuer is
// updated too, so subsequent gateway calls in the same request use the fresh
// token. A store failure here means local state has diverged from the live
// token upstream; it is logged at error severity and returned, never
// swallowed.
func (s *Service) PersistRotatedToken(ctx context.Context, issuer *models.Issuer, rotated string) error {
	if rotated == "" || rotated == issuer.AuthToken {
		return nil
	}

	lock := s.lockFor(issuer.ID)
	lock.Lock()
	defer lock.Unlock()

	if err := s.store.SetAuthToken(ctx, issuer.ID, issuer.AuthToken, rotated); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return s.adoptStoredToken(ctx, issuer)
		}
		s.logger.ErrorContext(ctx, "failed to persist rotated issuer auth token",
			"error", err,
			"issuer_did", issuer.DID,
		)
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeInternal, "issuer disappeared during token rotation")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to persist rotated auth token")
	}
	issuer.AuthToken = rotated

	role, _ := s.Role(issuer.DID)
	s.met.ObserveTokenRotation(string(role))
	if s.audit != nil {
		if err := s.audit.Emit(ctx, audit.Event{
			Action:     audit.ActionTokenRotated,
			IssuerRole: string(role),
		}); err != nil {
			s.logger.WarnContext(ctx, "failed to emit audit event", "error", err)
		}
	}
	s.logger.DebugContext(ctx, "persisted rotated issuer auth token", "issuer_did", issuer.DID)
	return nil
}

// adoptStoredToken handles a lost conditional write: another process rotated
// the token after this request loaded the issuer, so the stored value is the
// fresher one and this writer's rotation is discarded.
func (s *Service) adoptStoredToken(ctx context.Context, issuer *models.Issuer) error {
	current, err := s.store.FindByID(ctx, issuer.ID)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to reload issuer after rotation conflict")
	}
	issuer.AuthToken = current.AuthToken
	s.logger.WarnContext(ctx, "concurrent token rotation detected, adopting stored token",
		"issuer_did", issuer.DID,
	)
	return nil
}

func (s *Service) byDID(ctx context.Context, did string, role models.Role) (*models.Issuer, error) {
	if did == "" {
		return nil, dErrors.Newf(dErrors.CodeUnavailable, "no %s issuer DID configured", role)
	}
	issuer, err := s.store.FindByDID(ctx, did)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeUnavailable, "%s issuer %s not registered", role, did)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load issuer")
	}
	return issuer, nil
}

func (s *Service) lockFor(issuerID id.IssuerID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[issuerID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[issuerID] = lock
	}
	return lock
}

package debt

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/debttrack/backend/internal/domain/debt"
	"github.com/debttrack/backend/internal/domain/identity"
	"github.com/debttrack/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Config holds the tunable policy values of the debt service
type Config struct {
	MinAmount    decimal.Decimal
	MaxAmount    decimal.Decimal
	DefaultPage  int
	DefaultLimit int
	MaxLimit     int
	ListTTL      time.Duration
}

// DefaultConfig returns the default service configuration
func DefaultConfig() Config {
	return Config{
		MinAmount:    debt.MinAmount,
		MaxAmount:    debt.MaxAmount,
		DefaultPage:  debt.DefaultPage,
		DefaultLimit: debt.DefaultLimit,
		MaxLimit:     debt.MaxLimit,
		ListTTL:      10 * time.Minute,
	}
}

// Service orchestrates the debt lifecycle: validation, authorization,
// persistence and cache synchronization for every use case.
//
// Typed domain errors (VALIDATION_ERROR, NOT_FOUND, FORBIDDEN) propagate to
// the caller untouched. Cache failures are the one category that never does:
// every cache call is logged and discarded, so a cache outage degrades to
// direct store reads.
type Service struct {
	debts  debt.Repository
	users  identity.UserRepository
	cache  shared.Cache
	config Config
	logger *zap.Logger
}

// NewService creates a new debt Service
func NewService(debts debt.Repository, users identity.UserRepository, cache shared.Cache, config Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		debts:  debts,
		users:  users,
		cache:  cache,
		config: config,
		logger: logger,
	}
}

// Create validates and persists a new debt owed to creditorID, then
// invalidates both parties' cached listings.
func (s *Service) Create(ctx context.Context, creditorID uuid.UUID, req CreateDebtRequest) (*DebtResponse, error) {
	if err := debt.ValidateAmount(req.Amount, s.config.MinAmount, s.config.MaxAmount); err != nil {
		return nil, err
	}

	if _, err := s.users.FindByID(ctx, req.DebtorID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewNotFoundError("Debtor does not exist")
		}
		return nil, err
	}

	if creditorID == req.DebtorID {
		return nil, shared.NewValidationError("Cannot create a debt to yourself")
	}

	d := debt.NewDebt(creditorID, req.DebtorID, req.Amount, req.Description, req.DueDate)
	if err := s.debts.Create(ctx, d); err != nil {
		return nil, err
	}

	s.invalidateFor(ctx, d.CreditorID, d.DebtorID)

	resp := ToDebtResponse(d)
	return &resp, nil
}

// GetByID returns a single debt visible to userID. Single-item reads are
// served straight from the store; only listings and stats are cached.
func (s *Service) GetByID(ctx context.Context, debtID, userID uuid.UUID) (*DebtResponse, error) {
	d, err := s.findDebt(ctx, debtID)
	if err != nil {
		return nil, err
	}

	if !d.IsParty(userID) {
		return nil, shared.NewForbiddenError("You do not have permission to view this debt")
	}

	resp := ToDebtResponse(d)
	return &resp, nil
}

// Update applies a partial update to a pending debt. Only the creditor may
// update, and only while the debt is pending.
func (s *Service) Update(ctx context.Context, debtID, userID uuid.UUID, req UpdateDebtRequest) (*DebtResponse, error) {
	d, err := s.findDebt(ctx, debtID)
	if err != nil {
		return nil, err
	}

	if d.CreditorID != userID {
		return nil, shared.NewForbiddenError("Only the creditor can edit this debt")
	}

	if !d.CanBeModified() {
		return nil, shared.NewValidationError("A paid debt cannot be modified")
	}

	if req.Amount != nil {
		if err := debt.ValidateAmount(*req.Amount, s.config.MinAmount, s.config.MaxAmount); err != nil {
			return nil, err
		}
	}

	updated, err := s.debts.Update(ctx, debtID, debt.UpdateFields{
		Amount:      req.Amount,
		Description: req.Description,
		DueDate:     req.DueDate,
	})
	if err != nil {
		return nil, err
	}

	s.invalidateFor(ctx, updated.CreditorID, updated.DebtorID)

	resp := ToDebtResponse(updated)
	return &resp, nil
}

// Delete removes a debt. Only the creditor may delete; unlike Update there is
// no pending-status requirement, so a creditor can retract a settled record.
// The debt is read first because both party ids are needed for invalidation.
func (s *Service) Delete(ctx context.Context, debtID, userID uuid.UUID) error {
	d, err := s.findDebt(ctx, debtID)
	if err != nil {
		return err
	}

	if d.CreditorID != userID {
		return shared.NewForbiddenError("Only the creditor can delete this debt")
	}

	if err := s.debts.Delete(ctx, debtID); err != nil {
		return err
	}

	s.invalidateFor(ctx, d.CreditorID, d.DebtorID)
	return nil
}

// MarkAsPaid settles a pending debt. Only the creditor may settle, exactly
// once; the store assigns PaidAt atomically with the status transition.
func (s *Service) MarkAsPaid(ctx context.Context, debtID, userID uuid.UUID) (*DebtResponse, error) {
	d, err := s.findDebt(ctx, debtID)
	if err != nil {
		return nil, err
	}

	if d.CreditorID != userID {
		return nil, shared.NewForbiddenError("Only the creditor can mark this debt as paid")
	}

	if d.IsPaid() {
		return nil, shared.NewValidationError("The debt is already marked as paid")
	}

	updated, err := s.debts.MarkAsPaid(ctx, debtID)
	if err != nil {
		return nil, err
	}

	s.invalidateFor(ctx, updated.CreditorID, updated.DebtorID)

	resp := ToDebtResponse(updated)
	return &resp, nil
}

// List returns a page of the user's debts through a read-through cache.
// A cache read error counts as a miss; a cache write error still returns the
// freshly computed page.
func (s *Service) List(ctx context.Context, userID uuid.UUID, req ListDebtsRequest) (*PaginatedDebtsResponse, error) {
	req = s.normalizeList(req)
	key := listCacheKey(userID, req)

	if payload, ok := s.cacheGet(ctx, key); ok {
		var cached PaginatedDebtsResponse
		if err := json.Unmarshal(payload, &cached); err == nil {
			return &cached, nil
		}
		s.logger.Warn("Discarding undecodable cache entry", zap.String("key", key))
	}

	page, err := s.debts.FindByUser(ctx, userID, debt.Filters{
		Status:     req.Status,
		CreditorID: req.CreditorID,
		DebtorID:   req.DebtorID,
		Page:       req.Page,
		Limit:      req.Limit,
	})
	if err != nil {
		return nil, err
	}

	resp := ToPaginatedResponse(page)
	s.cacheSet(ctx, key, resp)
	return resp, nil
}

// Stats returns aggregate counts and amounts for the user's debts.
// Served straight from the store.
func (s *Service) Stats(ctx context.Context, userID uuid.UUID) (*StatsResponse, error) {
	totals, err := s.debts.GetTotalsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &StatsResponse{
		TotalPending:  totals.TotalPending,
		TotalPaid:     totals.TotalPaid,
		AmountPending: totals.AmountPending,
		AmountPaid:    totals.AmountPaid,
	}, nil
}

func (s *Service) findDebt(ctx context.Context, debtID uuid.UUID) (*debt.Debt, error) {
	d, err := s.debts.FindByID(ctx, debtID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewNotFoundError("Debt not found")
		}
		return nil, err
	}
	return d, nil
}

func (s *Service) normalizeList(req ListDebtsRequest) ListDebtsRequest {
	if req.Page <= 0 {
		req.Page = s.config.DefaultPage
	}
	if req.Limit <= 0 {
		req.Limit = s.config.DefaultLimit
	}
	if req.Limit > s.config.MaxLimit {
		req.Limit = s.config.MaxLimit
	}
	return req
}

// invalidateFor drops every cached listing for both parties of a debt.
// Invalidation is unconditionally attempted on every mutating path; failures
// are logged and swallowed so the primary operation never fails on the cache.
func (s *Service) invalidateFor(ctx context.Context, creditorID, debtorID uuid.UUID) {
	for _, userID := range []uuid.UUID{creditorID, debtorID} {
		pattern := userCachePattern(userID)
		if err := s.cache.DeletePattern(ctx, pattern); err != nil {
			s.logger.Error("Failed to invalidate debt cache",
				zap.String("pattern", pattern),
				zap.Error(err))
		}
	}
}

func (s *Service) cacheGet(ctx context.Context, key string) ([]byte, bool) {
	payload, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Error("Debt cache read failed, treating as miss",
			zap.String("key", key),
			zap.Error(err))
		return nil, false
	}
	return payload, ok
}

func (s *Service) cacheSet(ctx context.Context, key string, resp *PaginatedDebtsResponse) {
	payload, err := json.Marshal(resp)
	if err != nil {
		s.logger.Error("Failed to encode debt page for cache", zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, key, payload, s.config.ListTTL); err != nil {
		s.logger.Error("Debt cache write failed",
			zap.String("key", key),
			zap.Error(err))
	}
}

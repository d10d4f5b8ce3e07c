package requests

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Team-DogFoot/hm-admin-sub000/internal/domain/enums"
	"github.com/Team-DogFoot/hm-admin-sub000/internal/domain/model"
	"github.com/Team-DogFoot/hm-admin-sub000/internal/domain/rules"
	redrepo "github.com/Team-DogFoot/hm-admin-sub000/internal/repo/redis"
	"github.com/Team-DogFoot/hm-admin-sub000/internal/upstream"
)

var (
	ErrValidation        = errors.New("validation error")
	ErrIllegalTransition = errors.New("transition not allowed from current status")
	ErrNotDeletable      = errors.New("request is past the deletable stage")
)

type RequestAPI interface {
	ListRequests(ctx context.Context, filter upstream.RequestFilter) (upstream.RequestPage, error)
	GetRequest(ctx context.Context, requestID int64) (model.PurchaseRequest, error)
	UpdateRequestStatus(ctx context.Context, requestID int64, status enums.RequestStatus, updatedBy string) (model.PurchaseRequest, error)
	UpdateRequestItems(ctx context.Context, requestID int64, items []model.RequestItem) (model.PurchaseRequest, error)
	DeleteRequest(ctx context.Context, requestID int64) error
}

type AuditLog interface {
	Record(ctx context.Context, action, operator string, targetID int64, detail map[string]any) error
}

type Service struct {
	api    RequestAPI
	cache  *redrepo.QueryCache
	audit  AuditLog
	logger *zap.Logger
	cfg    ServiceConfig
}

type ServiceConfig struct {
	ListTTL   time.Duration
	DetailTTL time.Duration
}

type Dependencies struct {
	API    RequestAPI
	Cache  *redrepo.QueryCache
	Audit  AuditLog
	Logger *zap.Logger
}

func NewService(deps Dependencies, cfg ServiceConfig) *Service {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &Service{
		api:    deps.API,
		cache:  deps.Cache,
		audit:  deps.Audit,
		logger: deps.Logger,
		cfg:    cfg,
	}
}

func (s *Service) List(ctx context.Context, filter upstream.RequestFilter) (upstream.RequestPage, error) {
	return s.api.ListRequests(ctx, filter)
}

func (s *Service) Detail(ctx context.Context, requestID int64) (model.PurchaseRequest, error) {
	if requestID <= 0 {
		return model.PurchaseRequest{}, ErrValidation
	}

	key := redrepo.KeyRequestDetail(requestID)
	if s.cache != nil {
		var cached model.PurchaseRequest
		if err := s.cache.Get(ctx, key, &cached); err == nil {
			return cached, nil
		}
	}

	request, err := s.api.GetRequest(ctx, requestID)
	if err != nil {
		return model.PurchaseRequest{}, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, key, request, s.cfg.DetailTTL); err != nil {
			s.logger.Warn("cache request detail", zap.Error(err), zap.Int64("request_id", requestID))
		}
	}
	return request, nil
}

// AllowedTransitions exposes the lifecycle options for a request's current
// status, so the panel only renders legal choices.
func (s *Service) AllowedTransitions(status enums.RequestStatus) []enums.RequestStatus {
	return rules.AllowedTransitions(status)
}

// Transition moves a request to the target status after checking the local
// lifecycle table. The upstream re-checks and stays authoritative; its
// rejection comes back unchanged instead of being retried with a corrected
// status.
func (s *Service) Transition(ctx context.Context, requestID int64, target enums.RequestStatus, operator string) (model.PurchaseRequest, error) {
	if requestID <= 0 || operator == "" {
		return model.PurchaseRequest{}, ErrValidation
	}
	if !target.Valid() {
		return model.PurchaseRequest{}, ErrValidation
	}

	current, err := s.Detail(ctx, requestID)
	if err != nil {
		return model.PurchaseRequest{}, err
	}
	if !rules.CanTransition(current.Status, target) {
		return model.PurchaseRequest{}, fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, current.Status, target)
	}

	return s.updateStatus(ctx, requestID, target, operator, false)
}

// ForceTransition bypasses the lifecycle table on purpose. It exists for
// admin correction of broken records; the upstream still validates.
func (s *Service) ForceTransition(ctx context.Context, requestID int64, target enums.RequestStatus, operator string) (model.PurchaseRequest, error) {
	if requestID <= 0 || operator == "" {
		return model.PurchaseRequest{}, ErrValidation
	}
	if !target.Valid() {
		return model.PurchaseRequest{}, ErrValidation
	}
	return s.updateStatus(ctx, requestID, target, operator, true)
}

func (s *Service) updateStatus(ctx context.Context, requestID int64, target enums.RequestStatus, operator string, forced bool) (model.PurchaseRequest, error) {
	updated, err := s.api.UpdateRequestStatus(ctx, requestID, target, operator)
	if err != nil {
		return model.PurchaseRequest{}, err
	}

	s.recordAudit(ctx, "request.status", operator, requestID, map[string]any{
		"status": string(target),
		"forced": forced,
	})
	s.invalidate(ctx, redrepo.KeyRequestsList, redrepo.KeyRequestDetail(requestID))
	return updated, nil
}

func (s *Service) UpdateItems(ctx context.Context, requestID int64, items []model.RequestItem, operator string) (model.PurchaseRequest, error) {
	if requestID <= 0 || len(items) == 0 || operator == "" {
		return model.PurchaseRequest{}, ErrValidation
	}

	updated, err := s.api.UpdateRequestItems(ctx, requestID, items)
	if err != nil {
		return model.PurchaseRequest{}, err
	}

	s.recordAudit(ctx, "request.items", operator, requestID, map[string]any{
		"itemCount": len(items),
	})
	s.invalidate(ctx, redrepo.KeyRequestsList, redrepo.KeyRequestDetail(requestID))
	return updated, nil
}

// Delete removes an early-lifecycle request outright. Requests past
// negotiation can never be deleted, only transitioned.
func (s *Service) Delete(ctx context.Context, requestID int64, operator string) error {
	if requestID <= 0 || operator == "" {
		return ErrValidation
	}

	current, err := s.Detail(ctx, requestID)
	if err != nil {
		return err
	}
	if !rules.DeletableStatus(current.Status) {
		return fmt.Errorf("%w: status %s", ErrNotDeletable, current.Status)
	}

	if err := s.api.DeleteRequest(ctx, requestID); err != nil {
		return err
	}

	s.recordAudit(ctx, "request.delete", operator, requestID, map[string]any{
		"status": string(current.Status),
	})
	s.invalidate(ctx, redrepo.KeyRequestsList, redrepo.KeyRequestDetail(requestID))
	return nil
}

func (s *Service) invalidate(ctx context.Context, keys ...string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, keys...); err != nil {
		s.logger.Warn("invalidate cache", zap.Error(err), zap.Strings("keys", keys))
	}
}

func (s *Service) recordAudit(ctx context.Context, action, operator string, targetID int64, detail map[string]any) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Record(ctx, action, operator, targetID, detail); err != nil {
		s.logger.Warn("record audit entry", zap.Error(err), zap.String("action", action))
	}
}

package settlements

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/Team-DogFoot/hm-admin-sub000/internal/domain/enums"
	"github.com/Team-DogFoot/hm-admin-sub000/internal/domain/model"
	redrepo "github.com/Team-DogFoot/hm-admin-sub000/internal/repo/redis"
	"github.com/Team-DogFoot/hm-admin-sub000/internal/upstream"
)

var (
	ErrValidation         = errors.New("validation error")
	ErrAlreadyTransferred = errors.New("item already transferred to stock")
)

type SettlementAPI interface {
	ListSettlements(ctx context.Context, status enums.SettlementStatus) ([]model.Settlement, error)
	GetSettlement(ctx context.Context, settlementID int64) (model.Settlement, error)
	ListEligibleRequests(ctx context.Context) ([]model.PurchaseRequest, error)
	CreateSettlement(ctx context.Context, create upstream.CreateSettlementRequest) (model.Settlement, error)
	UpdateSettlementStatus(ctx context.Context, settlementID int64, status enums.SettlementStatus, updatedBy string) (model.Settlement, error)
	CompleteSettlement(ctx context.Context, settlementID int64, completedBy string) (model.Settlement, error)
	DeleteSettlement(ctx context.Context, settlementID int64) error
	TransferSettlementItem(ctx context.Context, settlementID, itemID int64, transferredBy string) (model.SettlementItem, error)
}

type AuditLog interface {
	Record(ctx context.Context, action, operator string, targetID int64, detail map[string]any) error
}

type Dependencies struct {
	API    SettlementAPI
	Cache  *redrepo.QueryCache
	Audit  AuditLog
	Logger *zap.Logger
}

type ServiceConfig struct {
	ListTTL   time.Duration
	DetailTTL time.Duration
}

type Service struct {
	api    SettlementAPI
	cache  *redrepo.QueryCache
	audit  AuditLog
	logger *zap.Logger
	cfg    ServiceConfig
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

func (s *Service) List(ctx context.Context, status enums.SettlementStatus) ([]model.Settlement, error) {
	if status != "" && !status.Valid() {
		return nil, ErrValidation
	}
	return s.api.ListSettlements(ctx, status)
}

func (s *Service) Detail(ctx context.Context, settlementID int64) (model.Settlement, error) {
	if settlementID <= 0 {
		return model.Settlement{}, ErrValidation
	}

	key := redrepo.KeySettlementDetail(settlementID)
	if s.cache != nil {
		var cached model.Settlement
		if err := s.cache.Get(ctx, key, &cached); err == nil {
			return cached, nil
		}
	}

	settlement, err := s.api.GetSettlement(ctx, settlementID)
	if err != nil {
		return model.Settlement{}, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, key, settlement, s.cfg.DetailTTL); err != nil {
			s.logger.Warn("cache settlement detail", zap.Error(err), zap.Int64("settlement_id", settlementID))
		}
	}
	return settlement, nil
}

// Eligible lists requests that finished review and await settlement.
func (s *Service) Eligible(ctx context.Context) ([]model.PurchaseRequest, error) {
	return s.api.ListEligibleRequests(ctx)
}

func (s *Service) Create(ctx context.Context, requestIDs []int64, operator string) (model.Settlement, error) {
	if len(requestIDs) == 0 || operator == "" {
		return model.Settlement{}, ErrValidation
	}

	settlement, err := s.api.CreateSettlement(ctx, upstream.CreateSettlementRequest{
		RequestIDs: requestIDs,
		CreatedBy:  operator,
	})
	if err != nil {
		return model.Settlement{}, err
	}

	s.recordAudit(ctx, "settlement.create", operator, settlement.ID, map[string]any{
		"requestIds": requestIDs,
	})
	s.invalidate(ctx, redrepo.KeySettlementsList, redrepo.KeyRequestsList)
	return settlement, nil
}

func (s *Service) UpdateStatus(ctx context.Context, settlementID int64, status enums.SettlementStatus, operator string) (model.Settlement, error) {
	if settlementID <= 0 || operator == "" || !status.Valid() {
		return model.Settlement{}, ErrValidation
	}

	settlement, err := s.api.UpdateSettlementStatus(ctx, settlementID, status, operator)
	if err != nil {
		return model.Settlement{}, err
	}

	s.recordAudit(ctx, "settlement.status", operator, settlementID, map[string]any{
		"status": string(status),
	})
	s.invalidate(ctx, redrepo.KeySettlementsList, redrepo.KeySettlementDetail(settlementID))
	return settlement, nil
}

func (s *Service) Complete(ctx context.Context, settlementID int64, operator string) (model.Settlement, error) {
	if settlementID <= 0 || operator == "" {
		return model.Settlement{}, ErrValidation
	}

	settlement, err := s.api.CompleteSettlement(ctx, settlementID, operator)
	if err != nil {
		return model.Settlement{}, err
	}

	s.recordAudit(ctx, "settlement.complete", operator, settlementID, nil)
	s.invalidate(ctx,
		redrepo.KeySettlementsList,
		redrepo.KeySettlementDetail(settlementID),
		redrepo.KeyRequestsList,
	)
	return settlement, nil
}

func (s *Service) Delete(ctx context.Context, settlementID int64, operator string) error {
	if settlementID <= 0 || operator == "" {
		return ErrValidation
	}

	if err := s.api.DeleteSettlement(ctx, settlementID); err != nil {
		return err
	}

	s.recordAudit(ctx, "settlement.delete", operator, settlementID, nil)
	s.invalidate(ctx, redrepo.KeySettlementsList, redrepo.KeySettlementDetail(settlementID))
	return nil
}

// TransferItem moves one settled item into inventory stock. Transfer is
// one-way and idempotent per item: an item that already carries a
// transferredToLogiProductId is refused locally without an upstream call.
func (s *Service) TransferItem(ctx context.Context, settlementID, itemID int64, operator string) (model.SettlementItem, error) {
	if settlementID <= 0 || itemID <= 0 || operator == "" {
		return model.SettlementItem{}, ErrValidation
	}

	settlement, err := s.Detail(ctx, settlementID)
	if err != nil {
		return model.SettlementItem{}, err
	}
	for _, item := range settlement.Items {
		if item.ItemID == itemID && item.Transferred() {
			return item, ErrAlreadyTransferred
		}
	}

	item, err := s.api.TransferSettlementItem(ctx, settlementID, itemID, operator)
	if err != nil {
		return model.SettlementItem{}, err
	}

	s.recordAudit(ctx, "settlement.transfer_item", operator, settlementID, map[string]any{
		"itemId":        itemID,
		"logiProductId": item.TransferredToLogiProductID,
	})
	s.invalidate(ctx, redrepo.KeySettlementDetail(settlementID))
	return item, nil
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

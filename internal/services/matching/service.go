package matching

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Team-DogFoot/hm-admin-sub000/internal/domain/enums"
	"github.com/Team-DogFoot/hm-admin-sub000/internal/domain/model"
	"github.com/Team-DogFoot/hm-admin-sub000/internal/pkg/validate"
	redrepo "github.com/Team-DogFoot/hm-admin-sub000/internal/repo/redis"
	"github.com/Team-DogFoot/hm-admin-sub000/internal/upstream"
)

var (
	ErrMissingScanFields   = errors.New("tracking number and shipping company are required")
	ErrSelectionIncomplete = errors.New("both a receipt and a request must be selected")
	ErrMatchInFlight       = errors.New("a match call is already in flight")
	ErrMissingOperator     = errors.New("operator identity is required")
)

// ReceiptAPI is the slice of the upstream client the workflow consumes.
type ReceiptAPI interface {
	ScanReceipt(ctx context.Context, scan upstream.ScanRequest) (model.ScanResult, error)
	ListUnmatchedReceipts(ctx context.Context) ([]model.UnmatchedReceipt, error)
	ListMatchedReceipts(ctx context.Context) ([]model.MatchedReceipt, error)
	SearchRequestCandidates(ctx context.Context, query string, limit int) ([]model.RequestCandidate, error)
	MatchReceipt(ctx context.Context, match upstream.MatchRequest) (model.MatchedReceipt, error)
	UnmatchReceipt(ctx context.Context, unmatch upstream.UnmatchRequest) (model.UnmatchedReceipt, error)
	DeleteUnmatchedReceipt(ctx context.Context, unmatchedReceiptID int64) error
	GetRequest(ctx context.Context, requestID int64) (model.PurchaseRequest, error)
}

type Invalidator interface {
	Invalidate(ctx context.Context, keys ...string) error
}

type AuditLog interface {
	Record(ctx context.Context, action, operator string, targetID int64, detail map[string]any) error
}

type Config struct {
	SearchDebounce time.Duration
	SearchLimit    int
	ListTTL        time.Duration
}

type Dependencies struct {
	API      ReceiptAPI
	Cache    *redrepo.QueryCache
	Audit    AuditLog
	Notifier Notifier
	Logger   *zap.Logger
}

// Service owns one matching Workflow per operator. Selection state is
// operator-scoped the way it was component-scoped in the admin panel.
type Service struct {
	mu        sync.Mutex
	workflows map[string]*Workflow

	api      ReceiptAPI
	cache    *redrepo.QueryCache
	audit    AuditLog
	notifier Notifier
	logger   *zap.Logger
	cfg      Config
}

func NewService(deps Dependencies, cfg Config) *Service {
	if cfg.SearchDebounce <= 0 {
		cfg.SearchDebounce = 400 * time.Millisecond
	}
	if cfg.SearchLimit <= 0 {
		cfg.SearchLimit = 20
	}
	if deps.Notifier == nil {
		deps.Notifier = NewZapNotifier(deps.Logger)
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	return &Service{
		workflows: map[string]*Workflow{},
		api:       deps.API,
		cache:     deps.Cache,
		audit:     deps.Audit,
		notifier:  deps.Notifier,
		logger:    deps.Logger,
		cfg:       cfg,
	}
}

func (s *Service) Workflow(operator string) *Workflow {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.workflows[operator]
	if !ok {
		w = newWorkflow(operator, s)
		s.workflows[operator] = w
	}
	return w
}

// ReleaseWorkflow drops the operator's workflow state. Called on logout so
// the per-operator map does not grow with every operator that ever signed in.
func (s *Service) ReleaseWorkflow(operator string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.workflows, operator)
}

// UnmatchedPool reads the unmatched receipts through the query cache.
func (s *Service) UnmatchedPool(ctx context.Context) ([]model.UnmatchedReceipt, error) {
	var receipts []model.UnmatchedReceipt
	if s.cache != nil {
		if err := s.cache.Get(ctx, redrepo.KeyReceiptsUnmatched, &receipts); err == nil {
			return receipts, nil
		}
	}

	receipts, err := s.api.ListUnmatchedReceipts(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, redrepo.KeyReceiptsUnmatched, receipts, s.cfg.ListTTL); err != nil {
			s.logger.Warn("cache unmatched pool", zap.Error(err))
		}
	}
	return receipts, nil
}

func (s *Service) MatchedList(ctx context.Context) ([]model.MatchedReceipt, error) {
	var receipts []model.MatchedReceipt
	if s.cache != nil {
		if err := s.cache.Get(ctx, redrepo.KeyReceiptsMatched, &receipts); err == nil {
			return receipts, nil
		}
	}

	receipts, err := s.api.ListMatchedReceipts(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, redrepo.KeyReceiptsMatched, receipts, s.cfg.ListTTL); err != nil {
			s.logger.Warn("cache matched list", zap.Error(err))
		}
	}
	return receipts, nil
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

// Workflow carries the selection state for one operator's matching session:
// the receipt chosen from the unmatched pool, the candidate request chosen
// from a search, and which tab the panel shows.
type Workflow struct {
	mu sync.Mutex

	operator string
	svc      *Service

	selectedUnmatchedID *int64
	selectedTracking    string
	selectedRequestID   *int64
	activeTab           enums.WorkflowTab
	matchInFlight       bool

	search *debouncedSearch
}

type Snapshot struct {
	Operator            string
	SelectedUnmatchedID *int64
	SelectedRequestID   *int64
	ActiveTab           enums.WorkflowTab
	MatchInFlight       bool
	Candidates          []model.RequestCandidate
}

func newWorkflow(operator string, svc *Service) *Workflow {
	w := &Workflow{
		operator:  operator,
		svc:       svc,
		activeTab: enums.WorkflowTabScan,
	}
	w.search = newDebouncedSearch(svc.api, svc.cfg.SearchDebounce, svc.cfg.SearchLimit)
	return w
}

func (w *Workflow) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	return Snapshot{
		Operator:            w.operator,
		SelectedUnmatchedID: copyID(w.selectedUnmatchedID),
		SelectedRequestID:   copyID(w.selectedRequestID),
		ActiveTab:           w.activeTab,
		MatchInFlight:       w.matchInFlight,
		Candidates:          w.search.Candidates(),
	}
}

type ScanInput struct {
	TrackingNumber  string
	ShippingCompany string
	Memo            string
}

// Scan registers a scanned package. Missing required fields fail before any
// network call. A no-match outcome switches the active tab to the unmatched
// pool so the operator can finish matching by hand.
func (w *Workflow) Scan(ctx context.Context, input ScanInput) (model.ScanResult, error) {
	if !validate.Required(input.TrackingNumber) || !validate.Required(input.ShippingCompany) {
		w.svc.notifier.Notify(Notification{Kind: NotifyError, Message: "tracking number and shipping company are required"})
		return model.ScanResult{}, ErrMissingScanFields
	}

	result, err := w.svc.api.ScanReceipt(ctx, upstream.ScanRequest{
		TrackingNumber:  input.TrackingNumber,
		ShippingCompany: input.ShippingCompany,
		ReceivedBy:      w.operator,
		Memo:            input.Memo,
	})
	if err != nil {
		w.notifyFailure("scan failed", err)
		return model.ScanResult{}, err
	}

	// The server fills unmatchedReceiptId only on the no-match outcome; an
	// auto-match identifies the target request instead.
	auditTarget := result.UnmatchedReceiptID
	if result.Matched {
		auditTarget = result.RequestID
	}
	w.svc.recordAudit(ctx, "receipt.scan", w.operator, auditTarget, map[string]any{
		"trackingNumber":  input.TrackingNumber,
		"shippingCompany": input.ShippingCompany,
		"matched":         result.Matched,
	})

	if result.Matched {
		w.svc.invalidate(ctx, redrepo.KeyReceiptsMatched, redrepo.KeyRequestDetail(result.RequestID))
		w.svc.notifier.Notify(Notification{
			Kind:    NotifySuccess,
			Message: fmt.Sprintf("receipt auto-matched to request %d", result.RequestID),
		})
		return result, nil
	}

	w.mu.Lock()
	w.activeTab = enums.WorkflowTabUnmatched
	w.mu.Unlock()

	w.svc.invalidate(ctx, redrepo.KeyReceiptsUnmatched)
	w.svc.notifier.Notify(Notification{
		Kind:    NotifySuccess,
		Message: fmt.Sprintf("no matching request; receipt %d added to unmatched pool", result.UnmatchedReceiptID),
	})
	return result, nil
}

// SelectUnmatched toggles the chosen unmatched receipt. Selecting the same
// id again clears it; a different id replaces it. No network traffic.
func (w *Workflow) SelectUnmatched(id int64, trackingNumber string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.selectedUnmatchedID != nil && *w.selectedUnmatchedID == id {
		w.selectedUnmatchedID = nil
		w.selectedTracking = ""
		return
	}
	w.selectedUnmatchedID = &id
	w.selectedTracking = trackingNumber
}

// SelectRequest toggles the chosen candidate request, same semantics as
// SelectUnmatched.
func (w *Workflow) SelectRequest(id int64) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.selectedRequestID != nil && *w.selectedRequestID == id {
		w.selectedRequestID = nil
		return
	}
	w.selectedRequestID = &id
}

func (w *Workflow) SetActiveTab(tab enums.WorkflowTab) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.activeTab = tab
}

// Search schedules a debounced candidate search. Rapid successive calls
// collapse into the final query.
func (w *Workflow) Search(query string) {
	w.search.Schedule(query)
}

func (w *Workflow) Candidates() []model.RequestCandidate {
	return w.search.Candidates()
}

// RequestPreview loads the candidate request's detail so the operator can
// compare registered tracking numbers before confirming.
func (w *Workflow) RequestPreview(ctx context.Context) (model.PurchaseRequest, error) {
	w.mu.Lock()
	selected := copyID(w.selectedRequestID)
	w.mu.Unlock()

	if selected == nil {
		return model.PurchaseRequest{}, ErrSelectionIncomplete
	}
	return w.svc.api.GetRequest(ctx, *selected)
}

// ConfirmMatch binds the selected receipt to the selected request. Both
// selections must be present and no other match call may be running;
// otherwise it refuses without touching the network. On success only the
// receipt selection clears. On failure everything stays so the operator can
// retry as-is.
func (w *Workflow) ConfirmMatch(ctx context.Context) (model.MatchedReceipt, error) {
	w.mu.Lock()
	if w.selectedUnmatchedID == nil || w.selectedRequestID == nil {
		w.mu.Unlock()
		w.svc.notifier.Notify(Notification{Kind: NotifyError, Message: "select a receipt and a request before matching"})
		return model.MatchedReceipt{}, ErrSelectionIncomplete
	}
	if w.matchInFlight {
		w.mu.Unlock()
		return model.MatchedReceipt{}, ErrMatchInFlight
	}
	w.matchInFlight = true
	unmatchedID := *w.selectedUnmatchedID
	requestID := *w.selectedRequestID
	tracking := w.selectedTracking
	w.mu.Unlock()

	matched, err := w.svc.api.MatchReceipt(ctx, upstream.MatchRequest{
		UnmatchedReceiptID: unmatchedID,
		RequestID:          requestID,
		MatchedBy:          w.operator,
		TrackingNumber:     tracking,
	})

	w.mu.Lock()
	w.matchInFlight = false
	if err != nil {
		w.mu.Unlock()
		w.notifyFailure("match failed", err)
		return model.MatchedReceipt{}, err
	}
	w.selectedUnmatchedID = nil
	w.selectedTracking = ""
	w.mu.Unlock()

	w.svc.recordAudit(ctx, "receipt.match", w.operator, unmatchedID, map[string]any{
		"requestId": requestID,
	})
	w.svc.invalidate(ctx,
		redrepo.KeyReceiptsUnmatched,
		redrepo.KeyReceiptsMatched,
		redrepo.KeyRequestDetail(requestID),
	)
	w.svc.notifier.Notify(Notification{
		Kind:    NotifySuccess,
		Message: fmt.Sprintf("receipt %d matched to request %d", unmatchedID, requestID),
	})
	return matched, nil
}

// Unmatch reverses an existing match, returning the receipt to the
// unmatched pool. requestID may be zero when the affected request is not
// open in the panel.
func (w *Workflow) Unmatch(ctx context.Context, matchedReceiptID int64, reason string, requestID int64) (model.UnmatchedReceipt, error) {
	if !validate.Required(w.operator) {
		return model.UnmatchedReceipt{}, ErrMissingOperator
	}

	receipt, err := w.svc.api.UnmatchReceipt(ctx, upstream.UnmatchRequest{
		MatchedReceiptID: matchedReceiptID,
		UnmatchedBy:      w.operator,
		Reason:           reason,
	})
	if err != nil {
		w.notifyFailure("unmatch failed", err)
		return model.UnmatchedReceipt{}, err
	}

	w.svc.recordAudit(ctx, "receipt.unmatch", w.operator, matchedReceiptID, map[string]any{
		"reason":    reason,
		"requestId": requestID,
	})
	keys := []string{redrepo.KeyReceiptsMatched, redrepo.KeyReceiptsUnmatched}
	if requestID > 0 {
		keys = append(keys, redrepo.KeyRequestDetail(requestID))
	}
	w.svc.invalidate(ctx, keys...)
	w.svc.notifier.Notify(Notification{
		Kind:    NotifySuccess,
		Message: fmt.Sprintf("receipt %d returned to unmatched pool", matchedReceiptID),
	})
	return receipt, nil
}

// DeleteUnmatched removes a receipt scanned in error. Only unmatched
// receipts can be deleted; the upstream rejects anything else.
func (w *Workflow) DeleteUnmatched(ctx context.Context, unmatchedReceiptID int64) error {
	if err := w.svc.api.DeleteUnmatchedReceipt(ctx, unmatchedReceiptID); err != nil {
		w.notifyFailure("delete receipt failed", err)
		return err
	}

	w.mu.Lock()
	if w.selectedUnmatchedID != nil && *w.selectedUnmatchedID == unmatchedReceiptID {
		w.selectedUnmatchedID = nil
		w.selectedTracking = ""
	}
	w.mu.Unlock()

	w.svc.recordAudit(ctx, "receipt.delete", w.operator, unmatchedReceiptID, nil)
	w.svc.invalidate(ctx, redrepo.KeyReceiptsUnmatched)
	return nil
}

func (w *Workflow) notifyFailure(prefix string, err error) {
	message := prefix
	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) {
		message = apiErr.Message
	}
	w.svc.notifier.Notify(Notification{Kind: NotifyError, Message: message})
}

func copyID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

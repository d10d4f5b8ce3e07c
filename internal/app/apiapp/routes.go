package apiapp

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Team-DogFoot/hm-admin-sub000/internal/config"
	catsvc "github.com/Team-DogFoot/hm-admin-sub000/internal/services/catalog"
	matchsvc "github.com/Team-DogFoot/hm-admin-sub000/internal/services/matching"
	authsvc "github.com/Team-DogFoot/hm-admin-sub000/internal/services/operatorauth"
	reqsvc "github.com/Team-DogFoot/hm-admin-sub000/internal/services/requests"
	setsvc "github.com/Team-DogFoot/hm-admin-sub000/internal/services/settlements"
	"github.com/Team-DogFoot/hm-admin-sub000/internal/transport/http/handlers"
)

type Dependencies struct {
	AuthService       *authsvc.Service
	RequestService    *reqsvc.Service
	MatchingService   *matchsvc.Service
	SettlementService *setsvc.Service
	CatalogService    *catsvc.Service
	Logger            *zap.Logger
	Config            config.Config
}

func RegisterRoutes(r chi.Router, deps Dependencies) {
	healthHandler := handlers.NewHealthHandler()
	var workflowReleaser handlers.WorkflowReleaser
	if deps.MatchingService != nil {
		workflowReleaser = deps.MatchingService
	}
	authHandler := handlers.NewAuthHandler(deps.AuthService, workflowReleaser)
	requestsHandler := handlers.NewRequestsHandler(deps.RequestService)
	receiptsHandler := handlers.NewReceiptsHandler(deps.MatchingService)
	settlementsHandler := handlers.NewSettlementsHandler(deps.SettlementService)
	catalogHandler := handlers.NewCatalogHandler(deps.CatalogService)

	authMW := AuthMiddleware(deps.AuthService, deps.Logger)
	forceRoleMW := RequireRole("ADMIN")

	r.Get("/healthz", healthHandler.Get)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", authHandler.Login)
		r.Post("/refresh", authHandler.Refresh)
		r.With(authMW).Post("/logout", authHandler.Logout)
	})

	r.Route("/requests", func(r chi.Router) {
		r.Use(authMW)
		r.Get("/", requestsHandler.List)
		r.Get("/{id}", requestsHandler.Detail)
		r.Get("/{id}/transitions", requestsHandler.AllowedTransitions)
		r.Patch("/{id}/status", requestsHandler.Transition)
		r.With(forceRoleMW).Patch("/{id}/status/force", requestsHandler.ForceTransition)
		r.Patch("/{id}/items", requestsHandler.UpdateItems)
		r.Delete("/{id}", requestsHandler.Delete)
	})

	r.Route("/receipts", func(r chi.Router) {
		r.Use(authMW)
		r.Get("/workflow", receiptsHandler.Snapshot)
		r.Post("/scan", receiptsHandler.Scan)
		r.Get("/unmatched", receiptsHandler.UnmatchedPool)
		r.Get("/matched", receiptsHandler.MatchedList)
		r.Post("/workflow/select-receipt", receiptsHandler.SelectReceipt)
		r.Post("/workflow/select-request", receiptsHandler.SelectRequest)
		r.Post("/workflow/tab", receiptsHandler.SetTab)
		r.Post("/workflow/search", receiptsHandler.Search)
		r.Get("/workflow/candidates", receiptsHandler.Candidates)
		r.Get("/workflow/request-preview", receiptsHandler.RequestPreview)
		r.Post("/workflow/match", receiptsHandler.ConfirmMatch)
		r.Post("/workflow/unmatch", receiptsHandler.Unmatch)
		r.Delete("/unmatched/{id}", receiptsHandler.DeleteUnmatched)
	})

	r.Route("/settlements", func(r chi.Router) {
		r.Use(authMW)
		r.Get("/", settlementsHandler.List)
		r.Get("/eligible", settlementsHandler.Eligible)
		r.Get("/{id}", settlementsHandler.Detail)
		r.Post("/", settlementsHandler.Create)
		r.Patch("/{id}/status", settlementsHandler.UpdateStatus)
		r.Post("/{id}/complete", settlementsHandler.Complete)
		r.Delete("/{id}", settlementsHandler.Delete)
		r.Post("/{id}/items/{itemID}/transfer", settlementsHandler.TransferItem)
	})

	r.Route("/catalog", func(r chi.Router) {
		r.Use(authMW)
		r.Get("/albums", catalogHandler.Albums)
		r.Get("/events", catalogHandler.Events)
		r.Get("/events/{id}", catalogHandler.Event)
	})
}

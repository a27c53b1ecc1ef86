package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ndewijer/Investment-Club-Backend/internal/api/handlers"
	custommiddleware "github.com/ndewijer/Investment-Club-Backend/internal/api/middleware"
	"github.com/ndewijer/Investment-Club-Backend/internal/config"
	"github.com/ndewijer/Investment-Club-Backend/internal/service"
)

// Services bundles everything the router dispatches to.
type Services struct {
	System       *service.SystemService
	Contribution *service.ContributionService
	Holding      *service.HoldingService
	Member       *service.MemberService
	Dashboard    *service.DashboardService
	PriceSync    *service.PriceSyncService
	Report       *service.ReportService
}

// NewRouter creates and configures the HTTP router.
//
// /api/system is public. /api/member/me only needs a valid session so that new
// callers can register. Everything else needs an approved member, and ledger
// writes, approvals, manual syncs and exports need an admin.
func NewRouter(svc Services, verifier custommiddleware.TokenVerifier, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(custommiddleware.NewCORS(cfg.CORS))

	requireApproved := custommiddleware.RequireApproved(svc.Member)

	systemHandler := handlers.NewSystemHandler(svc.System)
	contributionHandler := handlers.NewContributionHandler(svc.Contribution)
	holdingHandler := handlers.NewHoldingHandler(svc.Holding, svc.Dashboard)
	memberHandler := handlers.NewMemberHandler(svc.Member)
	dashboardHandler := handlers.NewDashboardHandler(svc.Dashboard)
	priceHandler := handlers.NewPriceHandler(svc.PriceSync)
	reportHandler := handlers.NewReportHandler(svc.Report)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Group(func(r chi.Router) {
			r.Use(custommiddleware.RequireSession(verifier))

			r.Route("/member", func(r chi.Router) {
				r.Get("/me", memberHandler.Me)
				r.Post("/me", memberHandler.Register)
				r.Put("/me", memberHandler.UpdateProfile)

				r.Group(func(r chi.Router) {
					r.Use(requireApproved)
					r.Use(custommiddleware.RequireAdmin)
					r.Get("/", memberHandler.AllMembers)
					r.Route("/{uuid}", func(r chi.Router) {
						r.Use(custommiddleware.ValidateUUIDMiddleware)
						r.Put("/approval", memberHandler.SetApproval)
						r.Put("/role", memberHandler.SetRole)
					})
				})
			})

			r.Group(func(r chi.Router) {
				r.Use(requireApproved)

				r.Route("/contribution", func(r chi.Router) {
					r.Get("/", contributionHandler.AllContributions)
					r.With(custommiddleware.ValidateUUIDMiddleware).Get("/member/{uuid}", contributionHandler.ContributionsPerMember)
					r.With(custommiddleware.RequireAdmin).Post("/", contributionHandler.CreateContribution)
					r.Route("/{uuid}", func(r chi.Router) {
						r.Use(custommiddleware.ValidateUUIDMiddleware)
						r.Get("/", contributionHandler.GetContribution)
						r.With(custommiddleware.RequireAdmin).Delete("/", contributionHandler.DeleteContribution)
					})
				})

				r.Route("/holding", func(r chi.Router) {
					r.Get("/", holdingHandler.AllHoldingTransactions)
					r.With(custommiddleware.ValidateSymbolMiddleware).Get("/symbol/{symbol}", holdingHandler.HoldingTransactionsPerSymbol)
					r.Get("/position", holdingHandler.Positions)
					r.With(custommiddleware.ValidateSymbolMiddleware).Get("/position/{symbol}", holdingHandler.Position)
					r.With(custommiddleware.RequireAdmin).Post("/", holdingHandler.CreateHoldingTransaction)
					r.Route("/{uuid}", func(r chi.Router) {
						r.Use(custommiddleware.ValidateUUIDMiddleware)
						r.Get("/", holdingHandler.GetHoldingTransaction)
						r.With(custommiddleware.RequireAdmin).Put("/", holdingHandler.ReplaceHoldingTransaction)
						r.With(custommiddleware.RequireAdmin).Delete("/", holdingHandler.DeleteHoldingTransaction)
					})
				})

				r.Route("/dashboard", func(r chi.Router) {
					r.Get("/", dashboardHandler.Dashboard)
					r.Get("/status", dashboardHandler.Status)
					r.Get("/shares", dashboardHandler.Shares)
				})

				r.Route("/price", func(r chi.Router) {
					r.Get("/", priceHandler.Prices)
					r.Get("/status", priceHandler.Status)
					r.With(custommiddleware.RequireAdmin).Post("/sync", priceHandler.Sync)
				})

				r.Route("/report", func(r chi.Router) {
					r.Use(custommiddleware.RequireAdmin)
					r.Get("/workbook", reportHandler.Workbook)
				})
			})
		})
	})

	return r
}

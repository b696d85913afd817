package routes

import (
	"vyaparkendra/controllers/admin"
	"vyaparkendra/controllers/auth"
	"vyaparkendra/controllers/dashboard"
	"vyaparkendra/controllers/govt"
	"vyaparkendra/controllers/mitra"
	"vyaparkendra/controllers/msme"
	"vyaparkendra/controllers/nbfc"
	"vyaparkendra/controllers/onboarding"
	"vyaparkendra/controllers/system"
	"vyaparkendra/middlewares"
	"vyaparkendra/models"
	"vyaparkendra/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Deps bundles everything the route table needs; main builds it once.
type Deps struct {
	DB          *gorm.DB
	Ledger      *services.LedgerStore
	Wallets     *services.WalletService
	Fulfillment *services.FulfillmentService
	Dashboards  *services.DashboardService
	Loans       *services.LoanService
	Audit       *services.AuditTrail
}

func Setup(app *fiber.App, d Deps) {
	app.Get("/api/status", system.StatusHandler())
	app.Get("/internal/metrics", middlewares.InternalOnly(), system.InternalMetricsHandler(d.DB, d.Ledger))

	api := app.Group("/api")
	api.Post("/auth/register", auth.RegisterHandler(d.DB, d.Audit))
	api.Post("/auth/login", auth.LoginHandler(d.DB, d.Audit))
	api.Get("/services", admin.ListServicesHandler(d.DB))

	mitraRoutes := api.Group("/mitra", middlewares.RequireRoles(models.RoleMitra))
	mitraRoutes.Post("/requests", mitra.CreateRequestHandler(d.Fulfillment, d.Audit))
	mitraRoutes.Get("/requests", mitra.ListRequestsHandler(d.Fulfillment))
	mitraRoutes.Post("/requests/:id/complete", mitra.CompleteRequestHandler(d.Fulfillment, d.Audit))
	mitraRoutes.Get("/wallet", mitra.GetWalletHandler(d.Wallets))
	mitraRoutes.Post("/wallet/recharge", mitra.RechargeHandler(d.Wallets, d.Audit))
	mitraRoutes.Post("/loans", mitra.ApplyLoanHandler(d.Loans, d.Audit))
	mitraRoutes.Get("/loans", mitra.ListLoansHandler(d.Loans))

	api.Get("/msme", middlewares.RequireRoles(models.RoleAdmin, models.RoleInvestor), msme.OverviewHandler(d.DB))
	msmeRoutes := api.Group("/msme", middlewares.RequireRoles(models.RoleMSME))
	msmeRoutes.Get("/services", msme.ListServicesHandler(d.DB))
	msmeRoutes.Get("/credit-score", msme.CreditScoreHandler())

	onboardingRoutes := api.Group("/onboarding", middlewares.RequireRoles(models.RoleMitra))
	onboardingRoutes.Get("/status", onboarding.StatusHandler(d.DB))
	onboardingRoutes.Post("/complete-training", onboarding.CompleteTrainingHandler(d.DB))
	onboardingRoutes.Post("/upload", onboarding.UploadHandler(d.DB))
	onboardingRoutes.Post("/final-submit", onboarding.FinalSubmitHandler(d.DB, d.Audit))

	adminRoutes := api.Group("/admin", middlewares.RequireRoles(models.RoleAdmin))
	adminRoutes.Post("/services", admin.AddServiceHandler(d.DB, d.Audit))
	adminRoutes.Put("/mitra/:id/approve", admin.ApproveMitraHandler(d.DB, d.Audit))
	adminRoutes.Post("/nbfc", admin.AddNBFCHandler(d.DB, d.Audit))
	adminRoutes.Get("/audit-logs", admin.ListAuditLogsHandler(d.Audit))

	nbfcRoutes := api.Group("/nbfc", middlewares.RequireRoles(models.RoleNBFC))
	nbfcRoutes.Get("/loans", nbfc.ListSubmittedLoansHandler(d.Loans))
	nbfcRoutes.Put("/loans/:id/status", nbfc.UpdateLoanStatusHandler(d.Loans, d.Audit))

	govtRoutes := api.Group("/govt", middlewares.RequireRoles(models.RoleGovt))
	govtRoutes.Get("/compliance-logs", govt.ComplianceLogsHandler(d.Audit))

	dash := &dashboard.Handlers{
		Dashboards:  d.Dashboards,
		Wallets:     d.Wallets,
		Fulfillment: d.Fulfillment,
		Audit:       d.Audit,
	}
	dashRoutes := api.Group("/dashboard")
	dashRoutes.Get("/admin", middlewares.RequireRoles(models.RoleAdmin), dash.Admin)
	dashRoutes.Get("/franchise", middlewares.RequireRoles(models.RoleFranchise), dash.Franchise)
	dashRoutes.Get("/investor", middlewares.RequireRoles(models.RoleInvestor), dash.Investor)
	dashRoutes.Get("/mitra", middlewares.RequireRoles(models.RoleMitra), dash.Mitra)
	dashRoutes.Get("/ca", middlewares.RequireRoles(models.RoleCA), dash.CA)
	dashRoutes.Get("/compliance", middlewares.RequireRoles(models.RoleCompliance), dash.Compliance)
	dashRoutes.Get("/govt", middlewares.RequireRoles(models.RoleGovt), dash.Govt)
}

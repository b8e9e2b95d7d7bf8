// file: internals/route/index.go
package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	checkoutSvc "coursedesk_backend/internals/features/checkout/service"
	recSvc "coursedesk_backend/internals/features/finance/reconciliation/service"
	"coursedesk_backend/internals/features/integrations/email"
	"coursedesk_backend/internals/features/integrations/stripegw"
	"coursedesk_backend/internals/features/integrations/webflow"
	"coursedesk_backend/internals/helpers/logger"
	"coursedesk_backend/internals/middlewares/auth"
	routeDetails "coursedesk_backend/internals/route/details"
)

var startTime time.Time

// Deps carries the optional integrations. Nil fields switch the matching
// endpoints to 503.
type Deps struct {
	DB     *gorm.DB
	Stripe *stripegw.Gateway
	Mailer *email.Mailer
	CMS    *webflow.Client

	JWTSecret          string
	WebhookSecret      string
	AdminNotifyEmail   string
	InvoiceNumberFloor int64
}

// interface values must stay nil when the concrete pointer is nil
func (d Deps) payouts() recSvc.PayoutSource {
	if d.Stripe == nil {
		return nil
	}
	return d.Stripe
}

func (d Deps) processor() checkoutSvc.PaymentProcessor {
	if d.Stripe == nil {
		return nil
	}
	return d.Stripe
}

func (d Deps) cms() webflow.CMS {
	if d.CMS == nil || !d.CMS.Configured() {
		return nil
	}
	return d.CMS
}

func SetupRoutes(app *fiber.App, d Deps) {
	startTime = time.Now()
	log := logger.New()

	BaseRoutes(app, d.DB)

	// ===================== PUBLIC =====================
	log.Info().Msg("Setting up PUBLIC group...")
	public := app.Group("/api/public")

	// ===================== ADMIN =====================
	log.Info().Msg("Setting up ADMIN group (Auth + RoleCheck)...")
	admin := app.Group("/api/a",
		auth.AuthJWT(auth.AuthJWTOpts{
			Secret:              d.JWTSecret,
			AllowCookieFallback: true,
		}),
		auth.RequireAdmin(),
	)

	// ===================== MOUNT ROUTES =====================
	checkout := checkoutSvc.NewService(d.DB, d.processor(), d.Mailer, d.AdminNotifyEmail, d.InvoiceNumberFloor)

	log.Info().Msg("Mounting Catalog routes...")
	routeDetails.CatalogPublicRoutes(public, d.DB)
	routeDetails.CatalogAdminRoutes(admin, d.DB, d.cms())

	log.Info().Msg("Mounting Checkout routes...")
	routeDetails.CheckoutPublicRoutes(public, checkout, d.WebhookSecret)

	log.Info().Msg("Mounting Finance routes...")
	routeDetails.FinanceAdminRoutes(admin, d.DB, d.payouts())

	log.Info().Msg("Mounting People & Audit routes...")
	routeDetails.PeopleAdminRoutes(admin, d.DB)
	routeDetails.AuditAdminRoutes(admin, d.DB)
}

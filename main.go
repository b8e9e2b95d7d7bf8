package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"

	"coursedesk_backend/internals/configs"
	database "coursedesk_backend/internals/databases"
	"coursedesk_backend/internals/features/integrations/email"
	"coursedesk_backend/internals/features/integrations/stripegw"
	"coursedesk_backend/internals/features/integrations/webflow"
	helper "coursedesk_backend/internals/helpers"
	"coursedesk_backend/internals/helpers/logger"
	"coursedesk_backend/internals/jobs"
	middlewares "coursedesk_backend/internals/middlewares"
	routes "coursedesk_backend/internals/route"
)

func main() {
	configs.LoadEnv()
	log := logger.New()

	app := fiber.New(fiber.Config{
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		ErrorHandler:            helper.ErrorHandler,
		DisableStartupMessage:   true,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
		BodyLimit:               1 << 20,
	})

	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())
	middlewares.SetupMiddlewares(app)

	// 🔌 DB connect + pool + warm-up
	database.ConnectDB()
	database.TunePool()
	database.WarmUpQueries()

	// integrations are optional; missing keys disable their endpoints
	var stripe *stripegw.Gateway
	if configs.StripeSecretKey != "" {
		gw, err := stripegw.New(configs.StripeSecretKey)
		if err != nil {
			log.Error().Err(err).Msg("stripe disabled")
		} else {
			stripe = gw
		}
	}

	var mailer *email.Mailer
	if configs.ResendAPIKey != "" {
		mailer = email.NewMailer(email.NewResendSender(configs.ResendAPIKey), configs.EmailFrom)
	}

	cms := webflow.NewClient(configs.WebflowAPIToken, configs.WebflowCollectionID)

	// ✅ Routes
	routes.SetupRoutes(app, routes.Deps{
		DB:                 database.DB,
		Stripe:             stripe,
		Mailer:             mailer,
		CMS:                cms,
		JWTSecret:          configs.SupabaseJWTSecret,
		WebhookSecret:      configs.StripeWebhookSecret,
		AdminNotifyEmail:   configs.AdminNotifyEmail,
		InvoiceNumberFloor: configs.InvoiceNumberFloor,
	})

	// ⏱ scheduler after DB is ready
	jobDeps := jobs.Deps{DB: database.DB, Mailer: mailer}
	if stripe != nil {
		jobDeps.Payouts = stripe
	}
	cron, err := jobs.Start(jobs.Config{
		PayoutSyncSpec: configs.PayoutSyncCron,
		ReminderSpec:   configs.ReminderCron,
	}, jobDeps)
	if err != nil {
		log.Fatal().Err(err).Msg("scheduler start failed")
	}

	// 🔒 Keep-Alive & server timeouts
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	go func() {
		log.Info().Str("port", port).Msg("✅ Listening")
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// graceful shutdown: http first, then jobs, then the DB pool
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Warn().Err(err).Msg("http shutdown")
	}
	jobs.Stop(ctx, cron)
	database.Close()
	log.Info().Msg("bye")
}

package configs

import (
	"context"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"

	"coursedesk_backend/internals/helpers/logger"
)

var (
	SupabaseJWTSecret   string
	StripeSecretKey     string
	StripeWebhookSecret string
	WebflowAPIToken     string
	WebflowCollectionID string
	ResendAPIKey        string
	EmailFrom           string
	AdminNotifyEmail    string
	InvoiceNumberFloor  int64
	PayoutSyncCron      string
	ReminderCron        string
	CorsOrigins         string
)

const defaultInvoiceNumberFloor = 1000

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	log := logger.New()

	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Warn().Msg("⚠️ .env file not found, using system environment")
		} else {
			log.Info().Msg("✅ .env file loaded")
		}
	} else {
		log.Info().Msg("🚀 Running in Railway, using system environment")
	}

	logger.SetLevel(GetEnv("LOG_LEVEL", "info"))

	SupabaseJWTSecret = GetEnv("SUPABASE_JWT_SECRET")
	StripeSecretKey = strings.TrimSpace(GetEnv("STRIPE_SECRET_KEY"))
	StripeWebhookSecret = strings.TrimSpace(GetEnv("STRIPE_WEBHOOK_SECRET"))
	WebflowAPIToken = GetEnv("WEBFLOW_API_TOKEN")
	WebflowCollectionID = GetEnv("WEBFLOW_CLASSES_COLLECTION_ID")
	ResendAPIKey = GetEnv("RESEND_API_KEY")
	EmailFrom = GetEnv("EMAIL_FROM", "Enrollment <enroll@example.com>")
	AdminNotifyEmail = GetEnv("ADMIN_NOTIFY_EMAIL")
	InvoiceNumberFloor = int64(GetEnvInt("INVOICE_NUMBER_FLOOR", defaultInvoiceNumberFloor))
	PayoutSyncCron = GetEnv("PAYOUT_SYNC_CRON", "0 3 * * *")
	ReminderCron = GetEnv("REMINDER_CRON", "0 14 * * *")
	CorsOrigins = GetEnv("CORS_ORIGINS", "http://localhost:3000, http://localhost:3001")

	required := map[string]string{
		"SUPABASE_JWT_SECRET":   SupabaseJWTSecret,
		"STRIPE_SECRET_KEY":     StripeSecretKey,
		"STRIPE_WEBHOOK_SECRET": StripeWebhookSecret,
	}
	for key, val := range required {
		if val == "" {
			log.Error().Str("key", key).Msg("❌ required setting is missing")
		}
	}

	optional := map[string]string{
		"WEBFLOW_API_TOKEN": WebflowAPIToken,
		"RESEND_API_KEY":    ResendAPIKey,
	}
	for key, val := range optional {
		if val == "" {
			log.Warn().Str("key", key).Msg("integration disabled, setting is empty")
		}
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if (!exists || value == "") && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func GetEnvBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func GetEnvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

// =======================
// GORM LOGGER (zerolog)
// =======================
type GormLogger struct {
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
}

func NewGormLogger() gormLogger.Interface {
	level := gormLogger.Warn
	if GetEnvBool("DB_LOG_QUERIES", false) {
		level = gormLogger.Info
	}
	return &GormLogger{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      level,
	}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	cp := *l
	cp.LogLevel = level
	return &cp
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Info {
		log := logger.FromContext(ctx)
		log.Info().Msgf(msg, data...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Warn {
		log := logger.FromContext(ctx)
		log.Warn().Msgf(msg, data...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Error {
		log := logger.FromContext(ctx)
		log.Error().Msgf(msg, data...)
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= gormLogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()
	log := logger.FromContext(ctx)
	var ev *zerolog.Event

	switch {
	case err != nil && l.LogLevel >= gormLogger.Error:
		ev = log.Error().Err(err)
	case elapsed > l.SlowThreshold && l.LogLevel >= gormLogger.Warn:
		ev = log.Warn().Bool("slow", true)
	case l.LogLevel >= gormLogger.Info:
		ev = log.Info()
	default:
		return
	}

	ev.Str("caller", utils.FileWithLineNum()).
		Dur("elapsed", elapsed).
		Int64("rows", rows).
		Str("sql", sql).
		Msg("query")
}

// file: internals/features/integrations/email/mailer.go
package email

import (
	"context"
	"errors"
	"net"
	"regexp"
	"strings"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v4"

	"coursedesk_backend/internals/helpers/logger"
)

// transientStatus matches a 429 or 5xx status as a standalone code at the start
// of the message or after "status"/"code"/"http", not digits inside user data.
var transientStatus = regexp.MustCompile(`(?i)(?:^|\b(?:status|code|http)(?:\s*code)?\s*[:=]?\s*|\[)(429|5\d\d)\b`)

var transientPhrases = []string{
	"rate limit",
	"too many requests",
	"timed out",
	"connection reset",
	"internal server error",
	"service unavailable",
	"bad gateway",
	"timeout",
}

const (
	DefaultMaxAttempts     = 3
	DefaultInitialInterval = 500 * time.Millisecond
)

// SendResult reports the outcome instead of failing the caller.
type SendResult struct {
	Success   bool
	MessageID string
	Attempts  int
	Err       error
}

// Mailer adds the default sender and the retry policy around a Sender.
// Only transient failures are retried; the delay doubles per attempt.
type Mailer struct {
	Sender          Sender
	From            string
	MaxAttempts     int
	InitialInterval time.Duration
}

func NewMailer(sender Sender, from string) *Mailer {
	return &Mailer{
		Sender:          sender,
		From:            from,
		MaxAttempts:     DefaultMaxAttempts,
		InitialInterval: DefaultInitialInterval,
	}
}

func (m *Mailer) policy(ctx context.Context) backoff.BackOffContext {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = m.InitialInterval
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxElapsedTime = 0
	b.Reset()

	retries := m.MaxAttempts - 1
	if retries < 0 {
		retries = 0
	}
	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(retries)), ctx)
}

func (m *Mailer) Send(ctx context.Context, msg Message) SendResult {
	log := logger.FromContext(ctx)

	if m == nil || m.Sender == nil {
		return SendResult{Err: errors.New("email: mailer not configured")}
	}
	if msg.From == "" {
		msg.From = m.From
	}
	if err := msg.Validate(); err != nil {
		return SendResult{Err: err}
	}

	var (
		res SendResult
		id  string
	)
	op := func() error {
		res.Attempts++
		var err error
		id, err = m.Sender.Send(ctx, msg)
		if err == nil {
			return nil
		}
		if !IsTransient(err) {
			return backoff.Permanent(err)
		}
		log.Warn().Err(err).Int("attempt", res.Attempts).Strs("to", msg.To).Msg("email send failed, will retry")
		return err
	}

	if err := backoff.Retry(op, m.policy(ctx)); err != nil {
		log.Error().Err(err).Int("attempts", res.Attempts).Strs("to", msg.To).Str("subject", msg.Subject).Msg("email send failed")
		res.Err = err
		return res
	}
	res.Success = true
	res.MessageID = id
	return res
}

// IsTransient classifies provider errors: network failures, timeouts, rate
// limits and 5xx are worth retrying; everything else is not.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	msg := strings.ToLower(strings.TrimSpace(err.Error()))
	if transientStatus.MatchString(msg) {
		return true
	}
	for _, s := range transientPhrases {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}

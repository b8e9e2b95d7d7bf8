package email

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedSender struct {
	errs  []error
	calls int
}

func (s *scriptedSender) Send(context.Context, Message) (string, error) {
	s.calls++
	if s.calls <= len(s.errs) && s.errs[s.calls-1] != nil {
		return "", s.errs[s.calls-1]
	}
	return "msg_123", nil
}

func testMailer(s Sender) *Mailer {
	m := NewMailer(s, "School <hi@example.com>")
	m.InitialInterval = time.Millisecond
	return m
}

func validMessage() Message {
	return Message{To: []string{"student@example.com"}, Subject: "Hi", HTML: "<p>hi</p>"}
}

func TestMailer_RetriesTransientThenSucceeds(t *testing.T) {
	s := &scriptedSender{errs: []error{errors.New("429 Too Many Requests"), errors.New("503 service unavailable")}}

	res := testMailer(s).Send(context.Background(), validMessage())
	require.True(t, res.Success, "err: %v", res.Err)
	assert.Equal(t, "msg_123", res.MessageID)
	assert.Equal(t, 3, res.Attempts)
}

func TestMailer_GivesUpAfterMaxAttempts(t *testing.T) {
	s := &scriptedSender{errs: []error{
		errors.New("timeout"), errors.New("timeout"), errors.New("timeout"), errors.New("timeout"),
	}}

	res := testMailer(s).Send(context.Background(), validMessage())
	assert.False(t, res.Success)
	assert.Equal(t, DefaultMaxAttempts, res.Attempts)
	assert.Equal(t, DefaultMaxAttempts, s.calls)
	assert.Error(t, res.Err)
}

func TestMailer_PermanentErrorNotRetried(t *testing.T) {
	s := &scriptedSender{errs: []error{errors.New("422 validation_error: invalid `to` field")}}

	res := testMailer(s).Send(context.Background(), validMessage())
	assert.False(t, res.Success)
	assert.Equal(t, 1, res.Attempts)
	assert.Contains(t, res.Err.Error(), "validation_error")
}

func TestMailer_InvalidMessageNeverSent(t *testing.T) {
	s := &scriptedSender{}
	res := testMailer(s).Send(context.Background(), Message{To: []string{"not-an-email"}, Subject: "x", HTML: "y"})
	assert.ErrorIs(t, res.Err, ErrInvalidMessage)
	assert.Zero(t, s.calls)
	assert.Zero(t, res.Attempts)
}

func TestMailer_UsesDefaultFrom(t *testing.T) {
	var got Message
	s := senderFunc(func(_ context.Context, m Message) (string, error) { got = m; return "id", nil })

	res := testMailer(s).Send(context.Background(), validMessage())
	require.True(t, res.Success)
	assert.Equal(t, "School <hi@example.com>", got.From)
}

type senderFunc func(context.Context, Message) (string, error)

func (f senderFunc) Send(ctx context.Context, m Message) (string, error) { return f(ctx, m) }

func TestIsTransient(t *testing.T) {
	assert.True(t, IsTransient(context.DeadlineExceeded))
	assert.True(t, IsTransient(errors.New("rate limit exceeded")))
	assert.True(t, IsTransient(errors.New("502 Bad Gateway")))
	assert.False(t, IsTransient(context.Canceled))
	assert.False(t, IsTransient(errors.New("401 unauthorized")))
	assert.False(t, IsTransient(nil))

	assert.True(t, IsTransient(errors.New("status 503")))
	assert.True(t, IsTransient(errors.New("http status code: 429")))
	assert.True(t, IsTransient(errors.New("500 internal server error")))
	assert.False(t, IsTransient(errors.New("422 validation_error: amount 500 is not allowed")))
	assert.False(t, IsTransient(errors.New("invalid `to` field: user4290@example.com")))
	assert.False(t, IsTransient(errors.New("status 400: subject must be under 500 characters")))
}

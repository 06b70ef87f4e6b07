// Package alerts delivers operational alerts for critical failures, mainly
// broken webhook processing, to an ops mailbox. A time-windowed dedup store
// keeps a failing dependency from turning into an alert storm.
package alerts

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"github.com/forgeprints/storefront/pkg/sendgrid"
)

// ThrottleStore answers whether an alert key may fire inside the window.
// The in-memory implementation is only correct for a single process; the
// redis implementation covers multi-instance deployments.
type ThrottleStore interface {
	Allow(ctx context.Context, key string, window time.Duration) (bool, error)
}

// Alerter is the surface services depend on, kept small so tests can stub it.
type Alerter interface {
	Critical(ctx context.Context, source, message string)
}

type Notifier struct {
	store    ThrottleStore
	emailer  sendgrid.Client
	opsEmail string
	window   time.Duration
}

func NewNotifier(store ThrottleStore, emailer sendgrid.Client, opsEmail string, window time.Duration) *Notifier {
	return &Notifier{store: store, emailer: emailer, opsEmail: opsEmail, window: window}
}

// Critical sends an ops alert unless an identical (source, message) pair
// fired within the throttle window. Alerting is best effort: store or send
// failures are logged, never propagated.
func (n *Notifier) Critical(ctx context.Context, source, message string) {

	key := alertKey(source, message)

	allowed, err := n.store.Allow(ctx, key, n.window)
	if err != nil {
		slog.Error("alert throttle check failed, sending anyway",
			slog.String("source", source), slog.String("error", err.Error()))
		allowed = true
	}

	if !allowed {
		slog.Debug("alert suppressed by throttle", slog.String("source", source))
		return
	}

	email := &sendgrid.Email{
		To:        n.opsEmail,
		Subject:   fmt.Sprintf("[ALERT] %s", source),
		PlainText: message,
	}

	if err := n.emailer.Send(ctx, email); err != nil {
		slog.Error("failed to deliver ops alert",
			slog.String("source", source), slog.String("error", err.Error()))
	}
}

func alertKey(source, message string) string {
	sum := sha1.Sum([]byte(source + "|" + message))

	return hex.EncodeToString(sum[:])
}

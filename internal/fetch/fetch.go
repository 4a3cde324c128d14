// Package fetch decides when to hit the network and reconciles results into
// the state store. One coordinator per collection; each composes the same
// pipeline: staleness check, loading transition, gateway call, success or
// failure dispatch, user-facing notification on error.
//
// Read failures are absorbed into store state (stale-but-present data keeps
// rendering, with a retry affordance); mutation failures are returned to the
// caller as well, so e.g. a modal can stay open.
package fetch

import (
	"time"

	"craveboard-cli/internal/api"
	"craveboard-cli/internal/model"
	"craveboard-cli/internal/session"
)

// Per-collection staleness windows. Legal documents have none: they refetch
// on every mount and after every save.
const (
	FoodsCacheDuration    = 5 * time.Minute
	FeedbackCacheDuration = 2 * time.Minute
)

const sessionExpiredMessage = "Your session has expired. Please log in again."

// Notifier surfaces transient user-facing notifications (TUI minibuffer,
// CLI stderr).
type Notifier interface {
	Notify(msg string)
	NotifyError(msg string)
}

// NopNotifier discards notifications (tests).
type NopNotifier struct{}

func (NopNotifier) Notify(string)      {}
func (NopNotifier) NotifyError(string) {}

// Sessions is the slice of the session store the coordinators need.
type Sessions interface {
	Token() string
	Current() (session.Session, bool)
	Set(user model.User, token string) error
	UpdateUser(user model.User) error
	Clear() error
}

// stale reports whether lastFetch has aged out of the cache window.
// The zero time always forces a fetch.
func stale(lastFetch, now time.Time, window time.Duration) bool {
	if lastFetch.IsZero() {
		return true
	}
	return now.Sub(lastFetch) > window
}

// notifyFailure routes an error to the right notification: session expiry
// gets the dedicated wording (teardown already happened in the gateway),
// everything else surfaces the normalized message.
func notifyFailure(n Notifier, err error) {
	if n == nil {
		return
	}
	if e, ok := api.AsError(err); ok && e.CredentialInvalid() {
		n.NotifyError(sessionExpiredMessage)
		return
	}
	n.NotifyError(err.Error())
}

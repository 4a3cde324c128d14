package fetch

import (
	"context"

	"craveboard-cli/internal/api"
	"craveboard-cli/internal/model"
	"craveboard-cli/internal/state"
)

// FeedbackGateway is the feedback slice of the remote API.
type FeedbackGateway interface {
	ListFeedback(ctx context.Context, page, limit int, sort model.SortSpec) (api.FeedbackPage, error)
	DeleteFeedback(ctx context.Context, id string) error
}

// Feedback coordinates feedback reads and deletion.
type Feedback struct {
	Store    *state.Store
	Session  Sessions
	Gateway  FeedbackGateway
	Notifier Notifier
}

// EnsureFresh fetches the current feedback page unless cached data is inside
// the (2 minute) staleness window. Same contract as Foods.EnsureFresh.
func (f *Feedback) EnsureFresh(ctx context.Context, force bool) {
	if f.Session.Token() == "" {
		return
	}
	snap := f.Store.Snapshot().Feedback
	if !force && !stale(snap.LastFetch, f.Store.Now(), FeedbackCacheDuration) {
		return
	}

	f.Store.Dispatch(state.FeedbackLoading{})
	page, err := f.Gateway.ListFeedback(ctx, snap.Pagination.CurrentPage, snap.Pagination.Limit, snap.Sort)
	if err != nil {
		f.Store.Dispatch(state.FeedbackLoadFailed{Message: err.Error()})
		notifyFailure(f.Notifier, err)
		return
	}
	f.Store.Dispatch(state.FeedbackLoaded{
		Data:  page.Data,
		Total: page.Total,
		Page:  page.Page,
		Limit: page.Limit,
	})
}

// Delete removes one feedback entry and filters it out locally.
func (f *Feedback) Delete(ctx context.Context, id string) error {
	if err := f.Gateway.DeleteFeedback(ctx, id); err != nil {
		notifyFailure(f.Notifier, err)
		return err
	}
	f.Store.Dispatch(state.FeedbackRemoved{ID: id})
	if f.Notifier != nil {
		f.Notifier.Notify("Feedback deleted")
	}
	return nil
}

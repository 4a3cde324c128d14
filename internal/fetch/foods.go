package fetch

import (
	"context"

	"craveboard-cli/internal/api"
	"craveboard-cli/internal/model"
	"craveboard-cli/internal/state"
)

// FoodsGateway is the catalog slice of the remote API.
type FoodsGateway interface {
	ListFoods(ctx context.Context, page, limit int, category string) (api.FoodsPage, error)
	CreateFood(ctx context.Context, name, category, imagePath string) (model.Food, error)
	UpdateFood(ctx context.Context, id, name, category, imagePath string) (model.Food, error)
	DeleteFood(ctx context.Context, id string) error
}

// Foods coordinates catalog reads and mutations.
type Foods struct {
	Store    *state.Store
	Session  Sessions
	Gateway  FoodsGateway
	Notifier Notifier
}

// EnsureFresh fetches the current catalog page unless cached data is still
// inside the staleness window. force bypasses the window (manual retry).
// Unauthenticated calls are a no-op: the page guard redirects instead.
// Failures are absorbed into store state; callers read Snapshot().Foods.Error.
func (f *Foods) EnsureFresh(ctx context.Context, force bool) {
	if f.Session.Token() == "" {
		return
	}
	snap := f.Store.Snapshot().Foods
	if !force && !stale(snap.LastFetch, f.Store.Now(), FoodsCacheDuration) {
		return
	}

	f.Store.Dispatch(state.FoodsLoading{})
	page, err := f.Gateway.ListFoods(ctx, snap.Pagination.CurrentPage, snap.Pagination.Limit, snap.Category)
	if err != nil {
		f.Store.Dispatch(state.FoodsLoadFailed{Message: err.Error()})
		notifyFailure(f.Notifier, err)
		return
	}
	f.Store.Dispatch(state.FoodsLoaded{
		Data:       page.Data,
		Pagination: page.Pagination,
		Category:   snap.Category,
	})
}

// Create uploads a new food and applies it optimistically — no refetch.
func (f *Foods) Create(ctx context.Context, name, category, imagePath string) error {
	food, err := f.Gateway.CreateFood(ctx, name, category, imagePath)
	if err != nil {
		notifyFailure(f.Notifier, err)
		return err
	}
	f.Store.Dispatch(state.FoodAdded{Food: food})
	if f.Notifier != nil {
		f.Notifier.Notify("Food created")
	}
	return nil
}

// Update edits a food and replaces it in place.
func (f *Foods) Update(ctx context.Context, id, name, category, imagePath string) error {
	food, err := f.Gateway.UpdateFood(ctx, id, name, category, imagePath)
	if err != nil {
		notifyFailure(f.Notifier, err)
		return err
	}
	f.Store.Dispatch(state.FoodUpdated{Food: food})
	if f.Notifier != nil {
		f.Notifier.Notify("Food updated")
	}
	return nil
}

// Delete removes a food and filters it out locally.
func (f *Foods) Delete(ctx context.Context, id string) error {
	if err := f.Gateway.DeleteFood(ctx, id); err != nil {
		notifyFailure(f.Notifier, err)
		return err
	}
	f.Store.Dispatch(state.FoodRemoved{ID: id})
	if f.Notifier != nil {
		f.Notifier.Notify("Food deleted")
	}
	return nil
}

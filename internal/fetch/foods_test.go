package fetch

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"craveboard-cli/internal/api"
	"craveboard-cli/internal/model"
	"craveboard-cli/internal/state"
)

type listFoodsCall struct {
	page, limit int
	category    string
}

type fakeFoodsGateway struct {
	mu    sync.Mutex
	calls []listFoodsCall

	page    api.FoodsPage
	listErr error

	created   model.Food
	createErr error
	updateErr error
	deleteErr error

	// gate, when set, blocks ListFoods until released (race tests).
	gate chan struct{}
}

func (g *fakeFoodsGateway) ListFoods(_ context.Context, page, limit int, category string) (api.FoodsPage, error) {
	g.mu.Lock()
	g.calls = append(g.calls, listFoodsCall{page: page, limit: limit, category: category})
	gate := g.gate
	g.mu.Unlock()
	if gate != nil {
		<-gate
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.listErr != nil {
		return api.FoodsPage{}, g.listErr
	}
	return g.page, nil
}

func (g *fakeFoodsGateway) CreateFood(_ context.Context, name, category, imagePath string) (model.Food, error) {
	if g.createErr != nil {
		return model.Food{}, g.createErr
	}
	f := g.created
	f.Name, f.Category = name, category
	return f, nil
}

func (g *fakeFoodsGateway) UpdateFood(_ context.Context, id, name, category, imagePath string) (model.Food, error) {
	if g.updateErr != nil {
		return model.Food{}, g.updateErr
	}
	return model.Food{ID: id, Name: name, Category: category}, nil
}

func (g *fakeFoodsGateway) DeleteFood(_ context.Context, id string) error {
	return g.deleteErr
}

func (g *fakeFoodsGateway) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.calls)
}

func newFoodsFixture(gw *fakeFoodsGateway) (*Foods, *state.Store, *recordingNotifier, *clock) {
	c := newClock()
	store := state.NewStoreAt(c.now)
	n := &recordingNotifier{}
	f := &Foods{
		Store:    store,
		Session:  &fakeSessions{token: "tok", user: model.User{Email: "a@b.c"}},
		Gateway:  gw,
		Notifier: n,
	}
	return f, store, n, c
}

func TestFoodsEnsureFreshNoTokenIsNoop(t *testing.T) {
	gw := &fakeFoodsGateway{}
	f, store, _, _ := newFoodsFixture(gw)
	f.Session = &fakeSessions{}

	f.EnsureFresh(testCtx, false)
	if gw.callCount() != 0 {
		t.Fatal("unauthenticated EnsureFresh must not hit the gateway")
	}
	if store.Snapshot().Foods.Loading {
		t.Fatal("no loading transition expected")
	}
}

func TestFoodsEnsureFreshFetchesAndCaches(t *testing.T) {
	gw := &fakeFoodsGateway{page: api.FoodsPage{
		Data:       []model.Food{{ID: "food-1", Name: "Choc"}},
		Pagination: model.Pagination{Total: 1, Page: 1, Limit: 24, TotalPages: 1},
	}}
	f, store, _, c := newFoodsFixture(gw)

	f.EnsureFresh(testCtx, false)
	if gw.callCount() != 1 {
		t.Fatalf("expected one fetch, got %d", gw.callCount())
	}
	snap := store.Snapshot().Foods
	if len(snap.Data) != 1 || snap.Data[0].ID != "food-1" {
		t.Fatalf("page not applied: %+v", snap.Data)
	}
	if snap.LastFetch.IsZero() {
		t.Fatal("staleness marker not stamped")
	}

	// Inside the window the cache answers.
	c.advance(FoodsCacheDuration - time.Minute)
	f.EnsureFresh(testCtx, false)
	if gw.callCount() != 1 {
		t.Fatalf("expected cached read, got %d fetches", gw.callCount())
	}

	// force bypasses the window.
	f.EnsureFresh(testCtx, true)
	if gw.callCount() != 2 {
		t.Fatalf("expected forced refetch, got %d fetches", gw.callCount())
	}

	// Past the window a normal read refetches.
	c.advance(FoodsCacheDuration + time.Second)
	f.EnsureFresh(testCtx, false)
	if gw.callCount() != 3 {
		t.Fatalf("expected refetch after expiry, got %d fetches", gw.callCount())
	}
}

func TestFoodsEnsureFreshSendsCurrentQuery(t *testing.T) {
	gw := &fakeFoodsGateway{page: api.FoodsPage{Pagination: model.Pagination{Page: 2, Limit: 12, TotalPages: 3, Total: 30}}}
	f, store, _, _ := newFoodsFixture(gw)

	store.Dispatch(state.SetFoodsCategory{Category: model.CategoryMood})
	store.Dispatch(state.SetFoodsLimit{Limit: 12})
	store.Dispatch(state.SetFoodsPage{Page: 2})

	f.EnsureFresh(testCtx, false)
	got := gw.calls[0]
	if got.page != 2 || got.limit != 12 || got.category != model.CategoryMood {
		t.Fatalf("gateway saw %+v", got)
	}
}

func TestFoodsEnsureFreshAbsorbsFailure(t *testing.T) {
	gw := &fakeFoodsGateway{listErr: errors.New("connection refused")}
	f, store, n, _ := newFoodsFixture(gw)

	f.EnsureFresh(testCtx, false)
	snap := store.Snapshot().Foods
	if snap.Error != "connection refused" {
		t.Fatalf("expected error absorbed into store, got %q", snap.Error)
	}
	if snap.Loading {
		t.Fatal("loading must clear on failure")
	}
	if len(n.errors) != 1 {
		t.Fatalf("expected one error notice, got %v", n.errors)
	}

	// A failed fetch leaves the marker zero; the next read retries.
	f.EnsureFresh(testCtx, false)
	if gw.callCount() != 2 {
		t.Fatalf("expected retry after failure, got %d fetches", gw.callCount())
	}
}

func TestFoodsEnsureFreshCredentialInvalid(t *testing.T) {
	gw := &fakeFoodsGateway{listErr: credentialInvalidErr()}
	f, _, n, _ := newFoodsFixture(gw)

	f.EnsureFresh(testCtx, false)
	if len(n.errors) != 1 || n.errors[0] != sessionExpiredMessage {
		t.Fatalf("expected session-expired notice, got %v", n.errors)
	}
}

func TestFoodsCreateAppliesOptimistically(t *testing.T) {
	gw := &fakeFoodsGateway{
		page: api.FoodsPage{
			Data:       []model.Food{{ID: "food-1"}},
			Pagination: model.Pagination{Total: 1, Page: 1, Limit: 24, TotalPages: 1},
		},
		created: model.Food{ID: "food-2"},
	}
	f, store, n, _ := newFoodsFixture(gw)
	f.EnsureFresh(testCtx, false)

	if err := f.Create(testCtx, "Waffle", model.CategoryCravings, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	snap := store.Snapshot().Foods
	if len(snap.Data) != 2 || snap.Pagination.Total != 2 {
		t.Fatalf("optimistic add not applied: rows=%d total=%d", len(snap.Data), snap.Pagination.Total)
	}
	// No refetch after a mutation.
	if gw.callCount() != 1 {
		t.Fatalf("mutations must not trigger a fetch, got %d", gw.callCount())
	}
	if len(n.infos) != 1 || n.infos[0] != "Food created" {
		t.Fatalf("expected success notice, got %v", n.infos)
	}
}

func TestFoodsCreateFailureLeavesStoreAlone(t *testing.T) {
	gw := &fakeFoodsGateway{createErr: &api.Error{Kind: api.KindValidation, Status: 400, Message: "name is required"}}
	f, store, n, _ := newFoodsFixture(gw)

	err := f.Create(testCtx, "", model.CategoryCravings, "")
	if err == nil {
		t.Fatal("expected error returned to caller")
	}
	if total := store.Snapshot().Foods.Pagination.Total; total != 0 {
		t.Fatalf("failed create must not dispatch, total=%d", total)
	}
	if len(n.errors) != 1 || n.errors[0] != "name is required" {
		t.Fatalf("expected normalized message, got %v", n.errors)
	}
}

func TestFoodsUpdateReplacesRow(t *testing.T) {
	gw := &fakeFoodsGateway{page: api.FoodsPage{
		Data:       []model.Food{{ID: "food-1", Name: "Old"}},
		Pagination: model.Pagination{Total: 1, Page: 1, Limit: 24, TotalPages: 1},
	}}
	f, store, _, _ := newFoodsFixture(gw)
	f.EnsureFresh(testCtx, false)

	if err := f.Update(testCtx, "food-1", "New", model.CategoryMood, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	snap := store.Snapshot().Foods
	if snap.Data[0].Name != "New" || snap.Data[0].Category != model.CategoryMood {
		t.Fatalf("row not replaced: %+v", snap.Data[0])
	}
}

func TestFoodsDeleteFiltersRow(t *testing.T) {
	gw := &fakeFoodsGateway{page: api.FoodsPage{
		Data:       []model.Food{{ID: "food-1"}, {ID: "food-2"}},
		Pagination: model.Pagination{Total: 2, Page: 1, Limit: 24, TotalPages: 1},
	}}
	f, store, _, _ := newFoodsFixture(gw)
	f.EnsureFresh(testCtx, false)

	if err := f.Delete(testCtx, "food-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	snap := store.Snapshot().Foods
	if len(snap.Data) != 1 || snap.Data[0].ID != "food-2" || snap.Pagination.Total != 1 {
		t.Fatalf("delete not applied: %+v", snap)
	}
}

// Two overlapping refreshes race; the one that completes last owns the final
// state. There is no request fencing, matching the dashboard's behavior.
func TestFoodsOverlappingRefreshLastDispatchWins(t *testing.T) {
	gw := &fakeFoodsGateway{page: api.FoodsPage{
		Data:       []model.Food{{ID: "food-slow"}},
		Pagination: model.Pagination{Total: 1, Page: 1, Limit: 24, TotalPages: 1},
	}}
	gate := make(chan struct{})
	gw.gate = gate
	f, store, _, _ := newFoodsFixture(gw)

	slowDone := make(chan struct{})
	go func() {
		defer close(slowDone)
		f.EnsureFresh(testCtx, true) // blocks in the gateway until the gate opens
	}()

	// Wait for the slow request to be in flight.
	for gw.callCount() == 0 {
		time.Sleep(time.Millisecond)
	}

	// A second, faster refresh completes first.
	gw.mu.Lock()
	gw.gate = nil
	gw.page = api.FoodsPage{
		Data:       []model.Food{{ID: "food-fast"}},
		Pagination: model.Pagination{Total: 1, Page: 1, Limit: 24, TotalPages: 1},
	}
	gw.mu.Unlock()
	f.EnsureFresh(testCtx, true)

	// Now the slow request lands and overwrites.
	gw.mu.Lock()
	gw.page = api.FoodsPage{
		Data:       []model.Food{{ID: "food-slow"}},
		Pagination: model.Pagination{Total: 1, Page: 1, Limit: 24, TotalPages: 1},
	}
	gw.mu.Unlock()
	close(gate)
	<-slowDone

	snap := store.Snapshot().Foods
	if len(snap.Data) != 1 || snap.Data[0].ID != "food-slow" {
		t.Fatalf("expected the later dispatch to win, got %+v", snap.Data)
	}
}

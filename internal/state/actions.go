package state

import (
	"craveboard-cli/internal/model"
)

// Action is the discriminated union of store updates. The concrete types
// below are the only way to change a State.
type Action interface{ isAction() }

// Foods actions.

// FoodsLoading marks the catalog as fetching and clears its error.
type FoodsLoading struct{}

// FoodsLoaded replaces the catalog page with server data. Category records
// which filter the data belongs to.
type FoodsLoaded struct {
	Data       []model.Food
	Pagination model.Pagination
	Category   string
}

// FoodsLoadFailed records a fetch error. Existing data is left in place so
// stale-but-present rows keep rendering.
type FoodsLoadFailed struct{ Message string }

// FoodAdded appends an optimistically created food and bumps Total.
type FoodAdded struct{ Food model.Food }

// FoodUpdated replaces the matching food in place.
type FoodUpdated struct{ Food model.Food }

// FoodRemoved filters the food out and decrements Total.
type FoodRemoved struct{ ID string }

// SetFoodsCategory switches the filter, returns to page 1, and invalidates
// the staleness marker.
type SetFoodsCategory struct{ Category string }

// SetFoodsPage jumps to a page and invalidates the staleness marker.
type SetFoodsPage struct{ Page int }

// SetFoodsLimit changes the page size, returns to page 1, and invalidates
// the staleness marker.
type SetFoodsLimit struct{ Limit int }

// Feedback actions.

type FeedbackLoading struct{}

// FeedbackLoaded replaces the feedback page. The endpoint reports flat
// totals, so TotalPages is derived in the reducer.
type FeedbackLoaded struct {
	Data  []model.Feedback
	Total int
	Page  int
	Limit int
}

type FeedbackLoadFailed struct{ Message string }

// FeedbackRemoved filters the entry out and decrements Total.
type FeedbackRemoved struct{ ID string }

// SetFeedbackPage jumps to a page. Unlike the foods variant it does not
// touch the staleness marker: the fetch layer keys on the page value itself.
type SetFeedbackPage struct{ Page int }

// SetFeedbackSort changes the ordering, returns to page 1, and invalidates
// the staleness marker.
type SetFeedbackSort struct{ Sort model.SortSpec }

// SetFeedbackLimit changes the page size, returns to page 1, and invalidates
// the staleness marker.
type SetFeedbackLimit struct{ Limit int }

// UI actions. None of these touch staleness.

type SetUploadModal struct{ Open bool }
type SetEditModal struct{ Open bool }
type SetImagePreviewModal struct{ Open bool }
type SetSelectedFood struct{ Food *model.Food }
type SetPreviewImage struct{ Preview *PreviewImage }
type SetSidebar struct{ Open bool }

func (FoodsLoading) isAction()      {}
func (FoodsLoaded) isAction()       {}
func (FoodsLoadFailed) isAction()   {}
func (FoodAdded) isAction()         {}
func (FoodUpdated) isAction()       {}
func (FoodRemoved) isAction()       {}
func (SetFoodsCategory) isAction()  {}
func (SetFoodsPage) isAction()      {}
func (SetFoodsLimit) isAction()     {}
func (FeedbackLoading) isAction()   {}
func (FeedbackLoaded) isAction()    {}
func (FeedbackLoadFailed) isAction(){}
func (FeedbackRemoved) isAction()   {}
func (SetFeedbackPage) isAction()   {}
func (SetFeedbackSort) isAction()   {}
func (SetFeedbackLimit) isAction()  {}
func (SetUploadModal) isAction()    {}
func (SetEditModal) isAction()      {}
func (SetImagePreviewModal) isAction() {}
func (SetSelectedFood) isAction()   {}
func (SetPreviewImage) isAction()   {}
func (SetSidebar) isAction()        {}

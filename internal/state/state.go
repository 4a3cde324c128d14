// Package state is the single source of truth for the dashboard's list data
// and transient UI flags. All changes flow through Reduce as named, typed
// actions; nothing mutates a State in place. The TUI and CLI both read
// snapshots and dispatch actions through Store.
package state

import (
	"time"

	"craveboard-cli/internal/model"
)

// Default page sizes: foods render as a grid (24 per page), feedback as a
// table (8 per page).
const (
	DefaultFoodsLimit    = 24
	DefaultFeedbackLimit = 8
)

// PageState is client-side pagination for one collection.
//
// Invariant: after a server-confirmed load, TotalPages == ceil(Total/Limit).
// Optimistic add/remove adjust Total by ±1 without recomputing TotalPages;
// the next fetch reconciles. That staleness window is accepted.
type PageState struct {
	CurrentPage int
	TotalPages  int
	Total       int
	Limit       int
}

// FoodsState is the catalog sub-collection.
type FoodsState struct {
	Data       []model.Food
	Loading    bool
	Error      string
	Pagination PageState

	// LastFetch is the staleness marker; the zero value forces the next
	// fetch. Changing category/page/limit resets it.
	LastFetch time.Time

	Category string
}

// FeedbackState is the feedback sub-collection.
type FeedbackState struct {
	Data       []model.Feedback
	Loading    bool
	Error      string
	Pagination PageState
	LastFetch  time.Time
	Sort       model.SortSpec
}

// PreviewImage is the target of the image preview modal.
type PreviewImage struct {
	URL  string
	Name string
}

// UIState is pure transient view state with no server counterpart.
type UIState struct {
	UploadModalOpen  bool
	EditModalOpen    bool
	ImagePreviewOpen bool
	SelectedFood     *model.Food
	PreviewImage     *PreviewImage
	SidebarOpen      bool
}

// State is the whole store: two independently paginated collections plus UI
// flags. Sub-states never interact except the open-edit-with-selection pair,
// which is two sequential dispatches.
type State struct {
	Foods    FoodsState
	Feedback FeedbackState
	UI       UIState
}

// Initial returns the pre-fetch state: empty collections on page 1 with the
// default category and sort.
func Initial() State {
	return State{
		Foods: FoodsState{
			Pagination: PageState{CurrentPage: 1, TotalPages: 1, Limit: DefaultFoodsLimit},
			Category:   model.CategoryCravings,
		},
		Feedback: FeedbackState{
			Pagination: PageState{CurrentPage: 1, TotalPages: 1, Limit: DefaultFeedbackLimit},
			Sort:       model.SortSpec{SortBy: model.SortByCreatedAt, Order: model.OrderDesc},
		},
		UI: UIState{SidebarOpen: true},
	}
}

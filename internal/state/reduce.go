package state

import (
	"time"

	"craveboard-cli/internal/model"
)

// Reduce applies one action and returns the next state. Pure: the inputs are
// never mutated, and `now` is the only clock it sees (load actions stamp the
// staleness marker with it).
func Reduce(s State, a Action, now time.Time) State {
	switch a := a.(type) {
	case FoodsLoading:
		s.Foods.Loading = true
		s.Foods.Error = ""

	case FoodsLoaded:
		s.Foods.Data = a.Data
		s.Foods.Pagination = PageState{
			CurrentPage: a.Pagination.Page,
			TotalPages:  a.Pagination.TotalPages,
			Total:       a.Pagination.Total,
			Limit:       a.Pagination.Limit,
		}
		s.Foods.Category = a.Category
		s.Foods.Loading = false
		s.Foods.Error = ""
		s.Foods.LastFetch = now

	case FoodsLoadFailed:
		s.Foods.Loading = false
		s.Foods.Error = a.Message

	case FoodAdded:
		s.Foods.Data = append(append([]model.Food{}, s.Foods.Data...), a.Food)
		s.Foods.Pagination.Total++

	case FoodUpdated:
		next := make([]model.Food, len(s.Foods.Data))
		for i, f := range s.Foods.Data {
			if f.ID == a.Food.ID {
				next[i] = a.Food
			} else {
				next[i] = f
			}
		}
		s.Foods.Data = next

	case FoodRemoved:
		next := make([]model.Food, 0, len(s.Foods.Data))
		for _, f := range s.Foods.Data {
			if f.ID != a.ID {
				next = append(next, f)
			}
		}
		s.Foods.Data = next
		// Total drops even when the id was not on this page (e.g. deleted
		// from a stale page). The next fetch reconciles.
		s.Foods.Pagination.Total--

	case SetFoodsCategory:
		s.Foods.Category = a.Category
		s.Foods.Pagination.CurrentPage = 1
		s.Foods.LastFetch = time.Time{}

	case SetFoodsPage:
		s.Foods.Pagination.CurrentPage = a.Page
		s.Foods.LastFetch = time.Time{}

	case SetFoodsLimit:
		s.Foods.Pagination.Limit = a.Limit
		s.Foods.Pagination.CurrentPage = 1
		s.Foods.LastFetch = time.Time{}

	case FeedbackLoading:
		s.Feedback.Loading = true
		s.Feedback.Error = ""

	case FeedbackLoaded:
		s.Feedback.Data = a.Data
		s.Feedback.Pagination = PageState{
			CurrentPage: a.Page,
			TotalPages:  ceilDiv(a.Total, a.Limit),
			Total:       a.Total,
			Limit:       a.Limit,
		}
		s.Feedback.Loading = false
		s.Feedback.Error = ""
		s.Feedback.LastFetch = now

	case FeedbackLoadFailed:
		s.Feedback.Loading = false
		s.Feedback.Error = a.Message

	case FeedbackRemoved:
		next := make([]model.Feedback, 0, len(s.Feedback.Data))
		for _, f := range s.Feedback.Data {
			if f.ID != a.ID {
				next = append(next, f)
			}
		}
		s.Feedback.Data = next
		s.Feedback.Pagination.Total--

	case SetFeedbackPage:
		s.Feedback.Pagination.CurrentPage = a.Page

	case SetFeedbackSort:
		s.Feedback.Sort = a.Sort
		s.Feedback.Pagination.CurrentPage = 1
		s.Feedback.LastFetch = time.Time{}

	case SetFeedbackLimit:
		s.Feedback.Pagination.Limit = a.Limit
		s.Feedback.Pagination.CurrentPage = 1
		s.Feedback.LastFetch = time.Time{}

	case SetUploadModal:
		s.UI.UploadModalOpen = a.Open

	case SetEditModal:
		s.UI.EditModalOpen = a.Open

	case SetImagePreviewModal:
		s.UI.ImagePreviewOpen = a.Open

	case SetSelectedFood:
		s.UI.SelectedFood = a.Food

	case SetPreviewImage:
		s.UI.PreviewImage = a.Preview

	case SetSidebar:
		s.UI.SidebarOpen = a.Open
	}
	return s
}

func ceilDiv(total, limit int) int {
	if limit <= 0 {
		return 1
	}
	n := (total + limit - 1) / limit
	if n < 1 {
		n = 1
	}
	return n
}

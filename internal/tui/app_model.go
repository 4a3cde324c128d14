package tui

import (
	"craveboard-cli/internal/model"
	"craveboard-cli/internal/state"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
)

type view int

const (
	viewLogin view = iota
	viewFoods
	viewFeedback
	viewLegal
	viewProfile
)

func (v view) String() string {
	switch v {
	case viewLogin:
		return "login"
	case viewFoods:
		return "foods"
	case viewFeedback:
		return "feedback"
	case viewLegal:
		return "legal"
	case viewProfile:
		return "profile"
	}
	return "unknown"
}

type modalKind int

const (
	modalNone modalKind = iota
	modalFoodCreate
	modalFoodEdit
	modalFoodDelete
	modalFeedbackDelete
	modalImagePreview
	modalProfileEdit
)

// loginFocus / foodFormFocus / profileFormFocus index the focusable fields of
// the respective forms; tab cycles through them.
type loginFocus int

const (
	loginFocusEmail loginFocus = iota
	loginFocusPassword
)

type foodFormFocus int

const (
	foodFocusName foodFormFocus = iota
	foodFocusCategory
	foodFocusImage
	foodFocusSubmit
)

type profileFormFocus int

const (
	profileFocusName profileFormFocus = iota
	profileFocusImage
	profileFocusSubmit
)

// legalDoc selects which of the two documents the legal view shows/edits.
type legalDoc int

const (
	legalPrivacy legalDoc = iota
	legalTerms
)

type appModel struct {
	deps    Deps
	notices *notices

	width  int
	height int

	// The very first WindowSizeMsg is initial sizing rather than a
	// user-driven resize; without this we briefly render a zero-size frame.
	seenWindowSize bool

	view  view
	modal modalKind

	// busy is true while a coordinator command is in flight. Input that would
	// start another mutation is ignored until it lands.
	busy bool
	spin spinner.Model

	foodsList    list.Model
	feedbackList list.Model

	// Login form.
	emailInput    textinput.Model
	passwordInput textinput.Model
	loginFocus    loginFocus
	loginErr      string

	// Food create/edit form. The edited food rides on the store's
	// SelectedFood; the form fields live here.
	foodNameInput  textinput.Model
	foodImageInput textinput.Model
	foodCategory   string
	foodFocus      foodFormFocus
	foodFormErr    string

	// Profile form.
	profileNameInput  textinput.Model
	profileImageInput textinput.Model
	profileFocus      profileFormFocus

	confirmFocus confirmModalFocus

	// Legal editor. editing switches the content pane from glamour preview
	// to the textarea.
	legalDoc     legalDoc
	legalEditing bool
	legalArea    textarea.Model

	minibufferText  string
	minibufferIsErr bool
}

const (
	sidebarW    = 18
	topPadLines = 1
)

func newAppModel(deps Deps, n *notices) appModel {
	m := appModel{
		deps:    deps,
		notices: n,
		view:    viewLogin,
	}

	if deps.Session.Token() != "" {
		m.view = viewFeedback
	}

	m.spin = spinner.New(spinner.WithSpinner(spinner.MiniDot), spinner.WithStyle(styleMuted()))

	m.foodsList = newList("Foods", "Catalog", []list.Item{})
	m.foodsList.SetDelegate(newCompactItemDelegate())

	m.feedbackList = newList("Feedback", "Submissions", []list.Item{})
	m.feedbackList.SetDelegate(newCompactItemDelegate())

	m.emailInput = textinput.New()
	m.emailInput.Placeholder = "admin@example.com"
	m.emailInput.CharLimit = 120
	m.emailInput.Width = 40
	m.emailInput.Focus()

	m.passwordInput = textinput.New()
	m.passwordInput.Placeholder = "Password"
	m.passwordInput.EchoMode = textinput.EchoPassword
	m.passwordInput.CharLimit = 120
	m.passwordInput.Width = 40

	m.foodNameInput = textinput.New()
	m.foodNameInput.Placeholder = "Name"
	m.foodNameInput.CharLimit = 120
	m.foodNameInput.Width = 40

	m.foodImageInput = textinput.New()
	m.foodImageInput.Placeholder = "Image path (optional)"
	m.foodImageInput.CharLimit = 400
	m.foodImageInput.Width = 40

	m.profileNameInput = textinput.New()
	m.profileNameInput.Placeholder = "Name"
	m.profileNameInput.CharLimit = 120
	m.profileNameInput.Width = 40

	m.profileImageInput = textinput.New()
	m.profileImageInput.Placeholder = "Avatar path (optional)"
	m.profileImageInput.CharLimit = 400
	m.profileImageInput.Width = 40

	m.legalArea = textarea.New()
	m.legalArea.Placeholder = "Write markdown…"
	m.legalArea.CharLimit = 0
	m.legalArea.SetWidth(72)
	m.legalArea.SetHeight(16)
	m.legalArea.ShowLineNumbers = false

	m.foodCategory = model.CategoryCravings

	return m
}

// snapshot is a convenience for the current store state.
func (m appModel) snapshot() state.State {
	return m.deps.Store.Snapshot()
}

// selectedFood returns the food under the list cursor, if any.
func (m appModel) selectedFood() (model.Food, bool) {
	it, ok := m.foodsList.SelectedItem().(foodRowItem)
	if !ok {
		return model.Food{}, false
	}
	return it.food, true
}

func (m appModel) selectedFeedback() (model.Feedback, bool) {
	it, ok := m.feedbackList.SelectedItem().(feedbackRowItem)
	if !ok {
		return model.Feedback{}, false
	}
	return it.fb, true
}

// syncLists rebuilds the list rows from the store snapshot. Cursor position
// is preserved by the bubbles list as long as the index stays in range.
func (m *appModel) syncLists() {
	snap := m.snapshot()
	m.foodsList.SetItems(foodListItems(snap.Foods.Data))
	m.feedbackList.SetItems(feedbackListItems(snap.Feedback.Data))
}

// drainNotices moves queued coordinator notices into the minibuffer. The
// last one wins; errors outrank info so a failure is never hidden by a
// follow-up toast.
func (m *appModel) drainNotices() {
	batch := m.notices.drain()
	if len(batch) == 0 {
		return
	}
	m.clearMinibuffer()
	for _, n := range batch {
		if m.minibufferIsErr && !n.isErr {
			continue
		}
		m.minibufferText = n.text
		m.minibufferIsErr = n.isErr
	}
}

func (m *appModel) clearMinibuffer() {
	m.minibufferText = ""
	m.minibufferIsErr = false
}

package tui

import (
	"context"
	"strings"

	"craveboard-cli/internal/model"
	"craveboard-cli/internal/state"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Coordinator results. Every command ends in exactly one of these so the
// model can drop its busy flag, drain notices, and re-sync from the store.
type (
	foodsRefreshedMsg    struct{}
	feedbackRefreshedMsg struct{}
	legalRefreshedMsg    struct{}
	loginDoneMsg         struct{ err error }
	foodMutatedMsg       struct{ err error }
	feedbackMutatedMsg   struct{ err error }
	legalSavedMsg        struct{ err error }
	profileSavedMsg      struct{ err error }
)

func (m appModel) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, m.spin.Tick}
	if m.view == viewFeedback {
		cmds = append(cmds, m.refreshFeedbackCmd(false))
	}
	return tea.Batch(cmds...)
}

func (m appModel) refreshFoodsCmd(force bool) tea.Cmd {
	foods := m.deps.Foods
	return func() tea.Msg {
		foods.EnsureFresh(context.Background(), force)
		return foodsRefreshedMsg{}
	}
}

func (m appModel) refreshFeedbackCmd(force bool) tea.Cmd {
	fb := m.deps.Feedback
	return func() tea.Msg {
		fb.EnsureFresh(context.Background(), force)
		return feedbackRefreshedMsg{}
	}
}

func (m appModel) refreshLegalCmd() tea.Cmd {
	legal := m.deps.Legal
	return func() tea.Msg {
		legal.Refresh(context.Background())
		return legalRefreshedMsg{}
	}
}

func (m appModel) loginCmd(email, password string) tea.Cmd {
	auth := m.deps.Auth
	return func() tea.Msg {
		return loginDoneMsg{err: auth.Login(context.Background(), email, password)}
	}
}

func (m appModel) createFoodCmd(name, category, imagePath string) tea.Cmd {
	foods := m.deps.Foods
	return func() tea.Msg {
		return foodMutatedMsg{err: foods.Create(context.Background(), name, category, imagePath)}
	}
}

func (m appModel) updateFoodCmd(id, name, category, imagePath string) tea.Cmd {
	foods := m.deps.Foods
	return func() tea.Msg {
		return foodMutatedMsg{err: foods.Update(context.Background(), id, name, category, imagePath)}
	}
}

func (m appModel) deleteFoodCmd(id string) tea.Cmd {
	foods := m.deps.Foods
	return func() tea.Msg {
		return foodMutatedMsg{err: foods.Delete(context.Background(), id)}
	}
}

func (m appModel) deleteFeedbackCmd(id string) tea.Cmd {
	fb := m.deps.Feedback
	return func() tea.Msg {
		return feedbackMutatedMsg{err: fb.Delete(context.Background(), id)}
	}
}

func (m appModel) saveLegalCmd(docs model.LegalDocuments) tea.Cmd {
	legal := m.deps.Legal
	return func() tea.Msg {
		return legalSavedMsg{err: legal.Save(context.Background(), docs)}
	}
}

func (m appModel) saveProfileCmd(name, imagePath string) tea.Cmd {
	auth := m.deps.Auth
	return func() tea.Msg {
		return profileSavedMsg{err: auth.UpdateProfile(context.Background(), name, imagePath)}
	}
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.seenWindowSize = true
		m.applySizes()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case foodsRefreshedMsg, feedbackRefreshedMsg, legalRefreshedMsg:
		m.busy = false
		m.drainNotices()
		m.syncLists()
		m.forcedLogoutCheck()
		return m, nil

	case loginDoneMsg:
		m.busy = false
		m.drainNotices()
		if msg.err != nil {
			m.loginErr = msg.err.Error()
			return m, nil
		}
		m.loginErr = ""
		m.passwordInput.SetValue("")
		// Landing screen after sign-in is the feedback inbox, freshly
		// fetched at page 1 with the default sort.
		m.view = viewFeedback
		return m, m.refreshFeedbackCmd(false)

	case foodMutatedMsg:
		m.busy = false
		m.drainNotices()
		m.syncLists()
		if msg.err == nil {
			m.closeFoodModals()
		}
		m.forcedLogoutCheck()
		return m, nil

	case feedbackMutatedMsg:
		m.busy = false
		m.drainNotices()
		m.syncLists()
		if msg.err == nil {
			m.modal = modalNone
		}
		m.forcedLogoutCheck()
		return m, nil

	case legalSavedMsg:
		m.busy = false
		m.drainNotices()
		if msg.err == nil {
			m.legalEditing = false
		}
		m.forcedLogoutCheck()
		return m, nil

	case profileSavedMsg:
		m.busy = false
		m.drainNotices()
		if msg.err == nil {
			m.modal = modalNone
		}
		m.forcedLogoutCheck()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		m.clearMinibuffer()
		if m.modal != modalNone {
			return m.updateModal(msg)
		}
		switch m.view {
		case viewLogin:
			return m.updateLogin(msg)
		case viewFoods:
			return m.updateFoods(msg)
		case viewFeedback:
			return m.updateFeedback(msg)
		case viewLegal:
			return m.updateLegal(msg)
		case viewProfile:
			return m.updateProfile(msg)
		}
	}
	return m, nil
}

func (m *appModel) applySizes() {
	contentW := m.width - sidebarW - 3
	if contentW < 20 {
		contentW = 20
	}
	listH := m.height - 7 // breadcrumb + header + pagination + minibuffer
	if listH < 3 {
		listH = 3
	}
	m.foodsList.SetSize(contentW, listH)
	m.feedbackList.SetSize(contentW, listH)

	areaW := contentW - 2
	if areaW > 80 {
		areaW = 80
	}
	if areaW < 20 {
		areaW = 20
	}
	m.legalArea.SetWidth(areaW)
	areaH := m.height - 9
	if areaH < 4 {
		areaH = 4
	}
	m.legalArea.SetHeight(areaH)
}

// forcedLogoutCheck sends the user back to the login screen when the stored
// credential disappeared mid-flight (the gateway hook clears it on a
// bad-token response). The session-expired notice is already queued by then.
func (m *appModel) forcedLogoutCheck() {
	if m.view == viewLogin {
		return
	}
	if m.deps.Session.Token() != "" {
		return
	}
	debugLog.Debug("credential gone, back to login")
	m.view = viewLogin
	m.modal = modalNone
	m.legalEditing = false
	m.loginErr = ""
	m.passwordInput.SetValue("")
	m.loginFocus = loginFocusEmail
	m.emailInput.Focus()
	m.passwordInput.Blur()
}

// switchView changes the active screen and kicks the fetch that keeps its
// data fresh. Stale-but-cached pages render immediately; the refresh is a
// no-op inside the staleness window.
func (m *appModel) switchView(v view) tea.Cmd {
	debugLog.Debug("switch view", "view", v)
	m.view = v
	m.syncLists()
	switch v {
	case viewFoods:
		return m.refreshFoodsCmd(false)
	case viewFeedback:
		return m.refreshFeedbackCmd(false)
	case viewLegal:
		m.legalEditing = false
		return m.refreshLegalCmd()
	}
	return nil
}

// globalNav handles view switching shared by all list-ish screens. Returns
// false when the key is not a navigation key.
func (m *appModel) globalNav(key string) (tea.Cmd, bool) {
	switch key {
	case "1":
		return m.switchView(viewFoods), true
	case "2":
		return m.switchView(viewFeedback), true
	case "3":
		return m.switchView(viewLegal), true
	case "4":
		return m.switchView(viewProfile), true
	case "b":
		m.deps.Store.Dispatch(state.SetSidebar{Open: !m.snapshot().UI.SidebarOpen})
		return nil, true
	}
	return nil, false
}

func (m appModel) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab", "up", "down":
		if m.loginFocus == loginFocusEmail {
			m.loginFocus = loginFocusPassword
			m.emailInput.Blur()
			m.passwordInput.Focus()
		} else {
			m.loginFocus = loginFocusEmail
			m.passwordInput.Blur()
			m.emailInput.Focus()
		}
		return m, nil
	case "enter":
		if m.busy {
			return m, nil
		}
		email := strings.TrimSpace(m.emailInput.Value())
		password := m.passwordInput.Value()
		if email == "" || password == "" {
			m.loginErr = "Email and password are required"
			return m, nil
		}
		if !model.ValidEmail(email) {
			m.loginErr = "Email is invalid"
			return m, nil
		}
		m.busy = true
		m.loginErr = ""
		return m, m.loginCmd(email, password)
	case "esc":
		return m, tea.Quit
	}

	var cmd tea.Cmd
	if m.loginFocus == loginFocusEmail {
		m.emailInput, cmd = m.emailInput.Update(msg)
	} else {
		m.passwordInput, cmd = m.passwordInput.Update(msg)
	}
	return m, cmd
}

func (m appModel) updateFoods(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if cmd, ok := m.globalNav(msg.String()); ok {
		return m, cmd
	}

	snap := m.snapshot()
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "r":
		m.busy = true
		return m, m.refreshFoodsCmd(true)
	case "c":
		next := model.CategoryMood
		if snap.Foods.Category == model.CategoryMood {
			next = model.CategoryCravings
		}
		m.deps.Store.Dispatch(state.SetFoodsCategory{Category: next})
		m.busy = true
		return m, m.refreshFoodsCmd(false)
	case "left", "h":
		if snap.Foods.Pagination.CurrentPage > 1 {
			m.deps.Store.Dispatch(state.SetFoodsPage{Page: snap.Foods.Pagination.CurrentPage - 1})
			m.busy = true
			return m, m.refreshFoodsCmd(false)
		}
		return m, nil
	case "right", "l":
		if snap.Foods.Pagination.CurrentPage < snap.Foods.Pagination.TotalPages {
			m.deps.Store.Dispatch(state.SetFoodsPage{Page: snap.Foods.Pagination.CurrentPage + 1})
			m.busy = true
			return m, m.refreshFoodsCmd(false)
		}
		return m, nil
	case "L":
		next := 12
		switch snap.Foods.Pagination.Limit {
		case 12:
			next = 24
		case 24:
			next = 48
		}
		m.deps.Store.Dispatch(state.SetFoodsLimit{Limit: next})
		m.busy = true
		return m, m.refreshFoodsCmd(false)
	case "a":
		m.deps.Store.Dispatch(state.SetUploadModal{Open: true})
		m.openFoodForm(modalFoodCreate, model.Food{})
		return m, nil
	case "e", "enter":
		food, ok := m.selectedFood()
		if !ok {
			return m, nil
		}
		f := food
		m.deps.Store.Dispatch(state.SetSelectedFood{Food: &f})
		m.deps.Store.Dispatch(state.SetEditModal{Open: true})
		m.openFoodForm(modalFoodEdit, food)
		return m, nil
	case "d":
		if _, ok := m.selectedFood(); !ok {
			return m, nil
		}
		m.modal = modalFoodDelete
		m.confirmFocus = confirmFocusCancel
		return m, nil
	case "v":
		food, ok := m.selectedFood()
		if !ok || food.Image == nil || *food.Image == "" {
			return m, nil
		}
		m.deps.Store.Dispatch(state.SetPreviewImage{Preview: &state.PreviewImage{URL: *food.Image, Name: food.Name}})
		m.deps.Store.Dispatch(state.SetImagePreviewModal{Open: true})
		m.modal = modalImagePreview
		return m, nil
	}

	var cmd tea.Cmd
	m.foodsList, cmd = m.foodsList.Update(msg)
	return m, cmd
}

func (m appModel) updateFeedback(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if cmd, ok := m.globalNav(msg.String()); ok {
		return m, cmd
	}

	snap := m.snapshot()
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "r":
		m.busy = true
		return m, m.refreshFeedbackCmd(true)
	case "s":
		sort := snap.Feedback.Sort
		switch sort.SortBy {
		case model.SortByCreatedAt:
			sort.SortBy = model.SortByName
		case model.SortByName:
			sort.SortBy = model.SortByEmail
		default:
			sort.SortBy = model.SortByCreatedAt
		}
		m.deps.Store.Dispatch(state.SetFeedbackSort{Sort: sort})
		m.busy = true
		return m, m.refreshFeedbackCmd(false)
	case "o":
		sort := snap.Feedback.Sort
		if sort.Order == model.OrderAsc {
			sort.Order = model.OrderDesc
		} else {
			sort.Order = model.OrderAsc
		}
		m.deps.Store.Dispatch(state.SetFeedbackSort{Sort: sort})
		m.busy = true
		return m, m.refreshFeedbackCmd(false)
	case "left", "h":
		if snap.Feedback.Pagination.CurrentPage > 1 {
			m.deps.Store.Dispatch(state.SetFeedbackPage{Page: snap.Feedback.Pagination.CurrentPage - 1})
			m.busy = true
			// Page changes do not touch the staleness marker, so force.
			return m, m.refreshFeedbackCmd(true)
		}
		return m, nil
	case "right", "l":
		if snap.Feedback.Pagination.CurrentPage < snap.Feedback.Pagination.TotalPages {
			m.deps.Store.Dispatch(state.SetFeedbackPage{Page: snap.Feedback.Pagination.CurrentPage + 1})
			m.busy = true
			return m, m.refreshFeedbackCmd(true)
		}
		return m, nil
	case "d":
		if _, ok := m.selectedFeedback(); !ok {
			return m, nil
		}
		m.modal = modalFeedbackDelete
		m.confirmFocus = confirmFocusCancel
		return m, nil
	}

	var cmd tea.Cmd
	m.feedbackList, cmd = m.feedbackList.Update(msg)
	return m, cmd
}

func (m appModel) updateLegal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.legalEditing {
		switch msg.String() {
		case "esc":
			m.legalEditing = false
			m.legalArea.Blur()
			return m, nil
		case "ctrl+s":
			if m.busy {
				return m, nil
			}
			text := m.legalArea.Value()
			var docs model.LegalDocuments
			if m.legalDoc == legalPrivacy {
				docs.PrivacyPolicy = &text
			} else {
				docs.TermsConditions = &text
			}
			m.busy = true
			return m, m.saveLegalCmd(docs)
		}
		var cmd tea.Cmd
		m.legalArea, cmd = m.legalArea.Update(msg)
		return m, cmd
	}

	if cmd, ok := m.globalNav(msg.String()); ok {
		return m, cmd
	}
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "tab":
		if m.legalDoc == legalPrivacy {
			m.legalDoc = legalTerms
		} else {
			m.legalDoc = legalPrivacy
		}
		return m, nil
	case "r":
		m.busy = true
		return m, m.refreshLegalCmd()
	case "e", "enter":
		snap := m.deps.Legal.Snapshot()
		text := snap.PrivacyPolicy
		if m.legalDoc == legalTerms {
			text = snap.TermsConditions
		}
		m.legalArea.SetValue(text)
		m.legalArea.Focus()
		m.legalEditing = true
		return m, nil
	}
	return m, nil
}

func (m appModel) updateProfile(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if cmd, ok := m.globalNav(msg.String()); ok {
		return m, cmd
	}
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "e":
		sess, ok := m.deps.Session.Current()
		if !ok {
			return m, nil
		}
		m.modal = modalProfileEdit
		m.profileFocus = profileFocusName
		m.profileNameInput.SetValue(sess.User.Name)
		m.profileImageInput.SetValue("")
		m.profileNameInput.Focus()
		m.profileImageInput.Blur()
		return m, nil
	case "x":
		if err := m.deps.Auth.Logout(); err != nil {
			m.minibufferText = err.Error()
			m.minibufferIsErr = true
			return m, nil
		}
		m.view = viewLogin
		m.loginFocus = loginFocusEmail
		m.emailInput.Focus()
		m.passwordInput.Blur()
		m.passwordInput.SetValue("")
		m.minibufferText = "Signed out"
		return m, nil
	}
	return m, nil
}

func (m *appModel) openFoodForm(kind modalKind, food model.Food) {
	m.modal = kind
	m.foodFocus = foodFocusName
	m.foodFormErr = ""
	m.foodNameInput.SetValue(food.Name)
	m.foodImageInput.SetValue("")
	if food.Category != "" {
		m.foodCategory = food.Category
	} else {
		m.foodCategory = m.snapshot().Foods.Category
	}
	m.foodNameInput.Focus()
	m.foodImageInput.Blur()
}

// closeFoodModals tears down whichever food modal is open and resets the
// matching store flags so CLI and TUI observers agree.
func (m *appModel) closeFoodModals() {
	switch m.modal {
	case modalFoodCreate:
		m.deps.Store.Dispatch(state.SetUploadModal{Open: false})
	case modalFoodEdit:
		m.deps.Store.Dispatch(state.SetEditModal{Open: false})
		m.deps.Store.Dispatch(state.SetSelectedFood{Food: nil})
	case modalImagePreview:
		m.deps.Store.Dispatch(state.SetImagePreviewModal{Open: false})
		m.deps.Store.Dispatch(state.SetPreviewImage{Preview: nil})
	}
	m.modal = modalNone
}

func (m appModel) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.modal {
	case modalFoodCreate, modalFoodEdit:
		return m.updateFoodForm(msg)
	case modalFoodDelete:
		return m.updateConfirm(msg, func(m *appModel) tea.Cmd {
			food, ok := m.selectedFood()
			if !ok {
				return nil
			}
			m.busy = true
			return m.deleteFoodCmd(food.ID)
		})
	case modalFeedbackDelete:
		return m.updateConfirm(msg, func(m *appModel) tea.Cmd {
			fb, ok := m.selectedFeedback()
			if !ok {
				return nil
			}
			m.busy = true
			return m.deleteFeedbackCmd(fb.ID)
		})
	case modalImagePreview:
		switch msg.String() {
		case "esc", "enter", "q", "v":
			m.closeFoodModals()
		}
		return m, nil
	case modalProfileEdit:
		return m.updateProfileForm(msg)
	}
	return m, nil
}

func (m appModel) updateConfirm(msg tea.KeyMsg, confirm func(*appModel) tea.Cmd) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "n":
		m.modal = modalNone
		return m, nil
	case "tab", "left", "right":
		if m.confirmFocus == confirmFocusConfirm {
			m.confirmFocus = confirmFocusCancel
		} else {
			m.confirmFocus = confirmFocusConfirm
		}
		return m, nil
	case "y":
		if m.busy {
			return m, nil
		}
		return m, confirm(&m)
	case "enter":
		if m.confirmFocus == confirmFocusCancel {
			m.modal = modalNone
			return m, nil
		}
		if m.busy {
			return m, nil
		}
		return m, confirm(&m)
	}
	return m, nil
}

func (m appModel) updateFoodForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeFoodModals()
		return m, nil
	case "tab", "shift+tab", "down", "up":
		dir := 1
		if msg.String() == "shift+tab" || msg.String() == "up" {
			dir = -1
		}
		m.foodFocus = foodFormFocus((int(m.foodFocus) + dir + 4) % 4)
		m.foodNameInput.Blur()
		m.foodImageInput.Blur()
		switch m.foodFocus {
		case foodFocusName:
			m.foodNameInput.Focus()
		case foodFocusImage:
			m.foodImageInput.Focus()
		}
		return m, nil
	case "enter":
		if m.foodFocus != foodFocusSubmit {
			return m, nil
		}
		return m.submitFoodForm()
	}

	if m.foodFocus == foodFocusCategory {
		switch msg.String() {
		case "left", "right", " ":
			if m.foodCategory == model.CategoryCravings {
				m.foodCategory = model.CategoryMood
			} else {
				m.foodCategory = model.CategoryCravings
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	switch m.foodFocus {
	case foodFocusName:
		m.foodNameInput, cmd = m.foodNameInput.Update(msg)
	case foodFocusImage:
		m.foodImageInput, cmd = m.foodImageInput.Update(msg)
	}
	return m, cmd
}

func (m appModel) submitFoodForm() (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	name := strings.TrimSpace(m.foodNameInput.Value())
	if name == "" {
		m.foodFormErr = "Name is required"
		return m, nil
	}
	imagePath := strings.TrimSpace(m.foodImageInput.Value())
	m.foodFormErr = ""
	m.busy = true
	if m.modal == modalFoodEdit {
		snap := m.snapshot()
		if snap.UI.SelectedFood == nil {
			m.busy = false
			m.closeFoodModals()
			return m, nil
		}
		return m, m.updateFoodCmd(snap.UI.SelectedFood.ID, name, m.foodCategory, imagePath)
	}
	return m, m.createFoodCmd(name, m.foodCategory, imagePath)
}

func (m appModel) updateProfileForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.modal = modalNone
		return m, nil
	case "tab", "shift+tab", "down", "up":
		dir := 1
		if msg.String() == "shift+tab" || msg.String() == "up" {
			dir = -1
		}
		m.profileFocus = profileFormFocus((int(m.profileFocus) + dir + 3) % 3)
		m.profileNameInput.Blur()
		m.profileImageInput.Blur()
		switch m.profileFocus {
		case profileFocusName:
			m.profileNameInput.Focus()
		case profileFocusImage:
			m.profileImageInput.Focus()
		}
		return m, nil
	case "enter":
		if m.profileFocus != profileFocusSubmit {
			return m, nil
		}
		if m.busy {
			return m, nil
		}
		name := strings.TrimSpace(m.profileNameInput.Value())
		if name == "" {
			return m, nil
		}
		m.busy = true
		return m, m.saveProfileCmd(name, strings.TrimSpace(m.profileImageInput.Value()))
	}

	var cmd tea.Cmd
	switch m.profileFocus {
	case profileFocusName:
		m.profileNameInput, cmd = m.profileNameInput.Update(msg)
	case profileFocusImage:
		m.profileImageInput, cmd = m.profileImageInput.Update(msg)
	}
	return m, cmd
}

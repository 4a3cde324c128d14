package tui

import (
	"fmt"
	"strings"

	"craveboard-cli/internal/state"

	"github.com/charmbracelet/lipgloss"
)

func (m appModel) View() string {
	if !m.seenWindowSize {
		return ""
	}

	if m.view == viewLogin {
		return m.viewLoginScreen()
	}

	if m.modal != modalNone {
		return placeCentered(m.width, m.height, m.renderModal())
	}

	content := m.renderContent()
	contentH := m.height - 2 // breadcrumb + minibuffer

	var body string
	if m.snapshot().UI.SidebarOpen {
		contentW := m.width - sidebarW - 3
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			normalizePane(m.renderSidebar(), sidebarW, contentH),
			normalizePane(" ", 1, contentH),
			normalizePane(content, contentW, contentH),
		)
	} else {
		body = normalizePane(content, m.width-2, contentH)
	}

	return strings.Join([]string{
		m.renderBreadcrumb(),
		body,
		m.renderMinibuffer(),
	}, "\n")
}

func (m appModel) renderBreadcrumb() string {
	name := ""
	if sess, ok := m.deps.Session.Current(); ok {
		name = sess.User.Email
	}
	left := lipgloss.NewStyle().Bold(true).Render("craveboard")
	right := faintIfDark(lipgloss.NewStyle().Foreground(colorChromeMutedFg)).Render(name)
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return " " + left + strings.Repeat(" ", gap) + right
}

func (m appModel) renderSidebar() string {
	entries := []struct {
		v     view
		key   string
		label string
	}{
		{viewFoods, "1", "Foods"},
		{viewFeedback, "2", "Feedback"},
		{viewLegal, "3", "Legal"},
		{viewProfile, "4", "Profile"},
	}

	sel := lipgloss.NewStyle().
		Foreground(colorSelectedFg).
		Background(colorSelectedBg).
		Bold(true)

	var b strings.Builder
	b.WriteString("\n")
	for _, e := range entries {
		line := fmt.Sprintf(" %s  %s", e.key, e.label)
		if e.v == m.view {
			line = sel.Render(line)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (m appModel) renderMinibuffer() string {
	if m.minibufferText == "" {
		if m.busy {
			return " " + m.spin.View() + " " + styleMuted().Render("Working…")
		}
		return " " + styleMuted().Render(m.footerHelp())
	}
	if m.minibufferIsErr {
		return " " + styleError().Render(m.minibufferText)
	}
	return " " + m.minibufferText
}

func (m appModel) footerHelp() string {
	switch m.view {
	case viewFoods:
		return "a: add   e: edit   d: delete   v: image   c: category   L: page size   ←/→: page   r: refresh   q: quit"
	case viewFeedback:
		return "d: delete   s: sort field   o: order   ←/→: page   r: refresh   q: quit"
	case viewLegal:
		return "tab: document   e: edit   r: refresh   q: quit"
	case viewProfile:
		return "e: edit profile   x: sign out   q: quit"
	}
	return ""
}

func (m appModel) renderContent() string {
	switch m.view {
	case viewFoods:
		return m.viewFoodsScreen()
	case viewFeedback:
		return m.viewFeedbackScreen()
	case viewLegal:
		return m.viewLegalScreen()
	case viewProfile:
		return m.viewProfileScreen()
	}
	return ""
}

func (m appModel) viewLoginScreen() string {
	bodyW := modalBodyWidth(m.width)

	lines := []string{
		"Email",
		renderInputLine(bodyW, m.emailInput.View()),
		"",
		"Password",
		renderInputLine(bodyW, m.passwordInput.View()),
		"",
	}
	if m.loginErr != "" {
		lines = append(lines, styleError().Width(bodyW).Render(m.loginErr), "")
	}
	if m.busy {
		lines = append(lines, styleMuted().Render("Signing in…"))
	} else {
		lines = append(lines, styleMuted().Render("tab: focus   enter: sign in   esc: quit"))
	}
	if m.minibufferText != "" && m.minibufferIsErr {
		lines = append(lines, "", styleError().Width(bodyW).Render(m.minibufferText))
	}

	box := renderModalBox(m.width, "Sign in to Craveboard", strings.Join(lines, "\n"))
	return placeCentered(m.width, m.height, box)
}

func paginationLine(p state.PageState) string {
	return fmt.Sprintf("page %d/%d   %d total", p.CurrentPage, p.TotalPages, p.Total)
}

func (m appModel) viewFoodsScreen() string {
	snap := m.snapshot().Foods

	header := lipgloss.NewStyle().Bold(true).Render("Foods") +
		"  " + styleMuted().Render(snap.Category)
	if snap.Loading {
		header += "  " + styleMuted().Render("loading…")
	}

	var body string
	switch {
	case snap.Error != "":
		body = styleError().Render(snap.Error) + "\n" + styleMuted().Render("r: retry")
	case len(snap.Data) == 0 && !snap.Loading:
		body = styleMuted().Render("No foods in this category yet. Press a to add one.")
	default:
		body = m.foodsList.View()
	}

	return strings.Join([]string{
		"",
		header,
		"",
		body,
		"",
		styleMuted().Render(paginationLine(snap.Pagination)),
	}, "\n")
}

func (m appModel) viewFeedbackScreen() string {
	snap := m.snapshot().Feedback

	header := lipgloss.NewStyle().Bold(true).Render("Feedback") +
		"  " + styleMuted().Render(snap.Sort.SortBy+" "+snap.Sort.Order)
	if snap.Loading {
		header += "  " + styleMuted().Render("loading…")
	}

	var body string
	switch {
	case snap.Error != "":
		body = styleError().Render(snap.Error) + "\n" + styleMuted().Render("r: retry")
	case len(snap.Data) == 0 && !snap.Loading:
		body = styleMuted().Render("No feedback yet.")
	default:
		body = m.feedbackList.View()
	}

	return strings.Join([]string{
		"",
		header,
		"",
		body,
		"",
		styleMuted().Render(paginationLine(snap.Pagination)),
	}, "\n")
}

func (m appModel) viewLegalScreen() string {
	snap := m.deps.Legal.Snapshot()

	title := "Privacy policy"
	text := snap.PrivacyPolicy
	if m.legalDoc == legalTerms {
		title = "Terms & conditions"
		text = snap.TermsConditions
	}

	header := lipgloss.NewStyle().Bold(true).Render(title)
	switch {
	case snap.Loading:
		header += "  " + styleMuted().Render("loading…")
	case snap.Saving:
		header += "  " + styleMuted().Render("saving…")
	}

	if m.legalEditing {
		return strings.Join([]string{
			"",
			header + "  " + styleMuted().Render("(editing)"),
			"",
			m.legalArea.View(),
			"",
			styleMuted().Render("ctrl+s: save   esc: cancel"),
		}, "\n")
	}

	var body string
	switch {
	case snap.Error != "":
		body = styleError().Render(snap.Error) + "\n" + styleMuted().Render("r: retry")
	case strings.TrimSpace(text) == "":
		body = styleMuted().Render("Empty. Press e to write it.")
	default:
		w := m.width - sidebarW - 5
		if w > 80 {
			w = 80
		}
		body = trimVisuallyEmptyTail(renderMarkdown(text, w))
	}

	return strings.Join([]string{
		"",
		header,
		"",
		body,
	}, "\n")
}

func (m appModel) viewProfileScreen() string {
	sess, ok := m.deps.Session.Current()
	if !ok {
		return "\n" + styleMuted().Render("Not signed in.")
	}

	u := sess.User
	image := "—"
	if u.Image != nil && *u.Image != "" {
		image = *u.Image
	}

	label := faintIfDark(lipgloss.NewStyle().Foreground(colorChromeMutedFg))
	row := func(k, v string) string {
		return fmt.Sprintf("%s %s", label.Render(fmt.Sprintf("%-8s", k)), v)
	}

	return strings.Join([]string{
		"",
		lipgloss.NewStyle().Bold(true).Render("Profile"),
		"",
		row("Name", u.Name),
		row("Email", u.Email),
		row("Role", u.Role),
		row("Avatar", image),
	}, "\n")
}

func (m appModel) renderModal() string {
	switch m.modal {
	case modalFoodCreate:
		return m.renderFoodForm("Add food")
	case modalFoodEdit:
		return m.renderFoodForm("Edit food")
	case modalFoodDelete:
		food, _ := m.selectedFood()
		return renderConfirmModal(m.width, "Delete food",
			fmt.Sprintf("Delete %q? This cannot be undone.", food.Name),
			"Delete", "Cancel", m.confirmFocus)
	case modalFeedbackDelete:
		fb, _ := m.selectedFeedback()
		return renderConfirmModal(m.width, "Delete feedback",
			fmt.Sprintf("Delete the submission from %q?", fb.Name),
			"Delete", "Cancel", m.confirmFocus)
	case modalImagePreview:
		return m.renderImagePreview()
	case modalProfileEdit:
		return m.renderProfileForm()
	}
	return ""
}

func formField(bodyW int, label, inputView string, focused bool) []string {
	l := label
	if focused {
		l = lipgloss.NewStyle().Bold(true).Render(label)
	}
	return []string{l, renderInputLine(bodyW, inputView)}
}

func (m appModel) renderFoodForm(title string) string {
	bodyW := modalBodyWidth(m.width)

	category := m.foodCategory
	if m.foodFocus == foodFocusCategory {
		category = "← " + category + " →"
	}
	catLabel := "Category"
	if m.foodFocus == foodFocusCategory {
		catLabel = lipgloss.NewStyle().Bold(true).Render(catLabel)
	}

	submit := "[ Save ]"
	if m.foodFocus == foodFocusSubmit {
		submit = lipgloss.NewStyle().
			Foreground(colorSelectedFg).
			Background(colorSelectedBg).
			Bold(true).
			Render(submit)
	}

	lines := formField(bodyW, "Name", m.foodNameInput.View(), m.foodFocus == foodFocusName)
	lines = append(lines, "", catLabel, " "+category, "")
	lines = append(lines, formField(bodyW, "Image", m.foodImageInput.View(), m.foodFocus == foodFocusImage)...)
	lines = append(lines, "", submit, "")
	if m.foodFormErr != "" {
		lines = append(lines, styleError().Width(bodyW).Render(m.foodFormErr), "")
	}
	if m.busy {
		lines = append(lines, styleMuted().Render("Saving…"))
	} else {
		lines = append(lines, styleMuted().Render("tab: focus   enter: save   esc: cancel"))
	}

	return renderModalBox(m.width, title, strings.Join(lines, "\n"))
}

func (m appModel) renderImagePreview() string {
	snap := m.snapshot()
	p := snap.UI.PreviewImage
	if p == nil {
		return renderModalBox(m.width, "Image", styleMuted().Render("No image selected."))
	}
	bodyW := modalBodyWidth(m.width)
	content := strings.Join([]string{
		lipgloss.NewStyle().Bold(true).Render(p.Name),
		"",
		lipgloss.NewStyle().Width(bodyW).Foreground(colorAccent).Render(p.URL),
		"",
		styleMuted().Render("esc: close"),
	}, "\n")
	return renderModalBox(m.width, "Image", content)
}

func (m appModel) renderProfileForm() string {
	bodyW := modalBodyWidth(m.width)

	submit := "[ Save ]"
	if m.profileFocus == profileFocusSubmit {
		submit = lipgloss.NewStyle().
			Foreground(colorSelectedFg).
			Background(colorSelectedBg).
			Bold(true).
			Render(submit)
	}

	lines := formField(bodyW, "Name", m.profileNameInput.View(), m.profileFocus == profileFocusName)
	lines = append(lines, "")
	lines = append(lines, formField(bodyW, "Avatar", m.profileImageInput.View(), m.profileFocus == profileFocusImage)...)
	lines = append(lines, "", submit, "")
	if m.busy {
		lines = append(lines, styleMuted().Render("Saving…"))
	} else {
		lines = append(lines, styleMuted().Render("tab: focus   enter: save   esc: cancel"))
	}

	return renderModalBox(m.width, "Edit profile", strings.Join(lines, "\n"))
}

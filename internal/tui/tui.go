package tui

import (
	"craveboard-cli/internal/fetch"
	"craveboard-cli/internal/session"
	"craveboard-cli/internal/state"

	tea "github.com/charmbracelet/bubbletea"
)

// Deps bundles everything the dashboard needs. The coordinators are shared
// with the CLI wiring; Run re-points their notifiers at the in-app notice
// queue so toasts land in the minibuffer instead of stderr.
type Deps struct {
	Session  *session.Store
	Store    *state.Store
	Auth     *fetch.Auth
	Foods    *fetch.Foods
	Feedback *fetch.Feedback
	Legal    *fetch.Legal
}

func Run(deps Deps) error {
	applyColorProfilePreference()
	applyThemePreference()
	closeLog := initDebugLog()
	defer closeLog()

	n := newNotices()
	deps.Auth.Notifier = n
	deps.Foods.Notifier = n
	deps.Feedback.Notifier = n
	deps.Legal.Notifier = n

	m := newAppModel(deps, n)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

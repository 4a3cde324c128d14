package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type confirmModalFocus int

const (
	confirmFocusConfirm confirmModalFocus = iota
	confirmFocusCancel
)

const maxModalW = 72

func modalWidth(termW int) int {
	w := termW - 8
	if w > maxModalW {
		w = maxModalW
	}
	if w < 24 {
		w = 24
	}
	return w
}

// modalBodyWidth is the usable content width inside the modal padding.
func modalBodyWidth(termW int) int {
	return modalWidth(termW) - 4
}

// renderModalBox draws a header bar plus body on the modal surface. No
// borders: some terminals show background artifacts when nesting bordered
// components inside a modal with a background color.
func renderModalBox(termW int, title, content string) string {
	w := modalWidth(termW)
	bodyW := w - 4

	header := lipgloss.NewStyle().
		Width(w).
		Padding(0, 2).
		Bold(true).
		Foreground(colorSurfaceFg).
		Background(colorControlBg).
		Render(title)

	body := lipgloss.NewStyle().
		Width(w).
		Padding(1, 2).
		Foreground(colorSurfaceFg).
		Background(colorSurfaceBg).
		Render(lipgloss.NewStyle().Width(bodyW).Render(content))

	return lipgloss.JoinVertical(lipgloss.Left, header, body)
}

func renderConfirmModal(width int, title, body, confirmLabel, cancelLabel string, focus confirmModalFocus) string {
	btnBase := lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(colorSurfaceFg).
		Background(colorControlBg)
	btnActive := btnBase.
		Foreground(colorSelectedFg).
		Background(colorSelectedBg).
		Bold(true)

	confirm := btnBase.Render(confirmLabel)
	cancel := btnBase.Render(cancelLabel)
	if focus == confirmFocusConfirm {
		confirm = btnActive.Render(confirmLabel)
	}
	if focus == confirmFocusCancel {
		cancel = btnActive.Render(cancelLabel)
	}

	sep := lipgloss.NewStyle().Background(colorSurfaceBg).Render(" ")
	controls := lipgloss.JoinHorizontal(lipgloss.Top, confirm, sep, cancel)

	bodyW := modalBodyWidth(width)
	help := styleMuted().Width(bodyW).Render("tab: focus   enter: select   esc: cancel")

	content := strings.Join([]string{
		body,
		"",
		controls,
		"",
		help,
	}, "\n")
	return renderModalBox(width, title, content)
}

// placeCentered positions a modal in the middle of the terminal.
func placeCentered(termW, termH int, s string) string {
	return lipgloss.Place(termW, termH, lipgloss.Center, lipgloss.Center, s)
}

package tui

import (
	"fmt"
	"io"
	"strings"

	"craveboard-cli/internal/model"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

type compactItemDelegate struct {
	normal   lipgloss.Style
	selected lipgloss.Style
}

func newCompactItemDelegate() compactItemDelegate {
	return compactItemDelegate{
		normal: lipgloss.NewStyle(),
		selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("236")).
			Bold(true),
	}
}

func (d compactItemDelegate) Height() int  { return 1 }
func (d compactItemDelegate) Spacing() int { return 0 }
func (d compactItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d compactItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	contentW := m.Width()
	if contentW < 4 {
		fmt.Fprint(w, "")
		return
	}

	style := d.normal
	if index == m.Index() {
		style = d.selected
	}

	txt := ""
	if t, ok := item.(interface{ Title() string }); ok {
		txt = t.Title()
	} else {
		txt = fmt.Sprint(item)
	}

	line := txt
	lineW := xansi.StringWidth(line)
	if lineW < contentW {
		line += strings.Repeat(" ", contentW-lineW)
	} else if lineW > contentW {
		line = xansi.Cut(line, 0, contentW)
	}

	fmt.Fprint(w, style.Render(line))
}

func newList(title, help string, items []list.Item) list.Model {
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	// We render our own global footer + breadcrumb, so keep list chrome minimal.
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(false)
	l.SetStatusBarItemName("item", "items")
	// Bubble list defaults to quitting on ESC; here ESC is "back/cancel".
	l.KeyMap.Quit.SetKeys("q")
	// Emacs-style navigation aliases (common muscle memory).
	cursorUpKeys := append([]string{}, l.KeyMap.CursorUp.Keys()...)
	cursorUpKeys = append(cursorUpKeys, "ctrl+p")
	l.KeyMap.CursorUp.SetKeys(cursorUpKeys...)

	cursorDownKeys := append([]string{}, l.KeyMap.CursorDown.Keys()...)
	cursorDownKeys = append(cursorDownKeys, "ctrl+n")
	l.KeyMap.CursorDown.SetKeys(cursorDownKeys...)
	return l
}

// foodRowItem renders one catalog entry as a single list row.
type foodRowItem struct {
	food model.Food
}

func (i foodRowItem) FilterValue() string { return i.food.Name }

func (i foodRowItem) Title() string {
	img := " "
	if i.food.Image != nil && *i.food.Image != "" {
		img = "◉"
	}
	return fmt.Sprintf("%s  %-28s %s", img, truncate(i.food.Name, 28), styleMuted().Render(i.food.Category))
}

// feedbackRowItem renders one submission as a single list row.
type feedbackRowItem struct {
	fb model.Feedback
}

func (i feedbackRowItem) FilterValue() string { return i.fb.Name + " " + i.fb.Email }

func (i feedbackRowItem) Title() string {
	desc := strings.ReplaceAll(i.fb.Description, "\n", " ")
	return fmt.Sprintf("%-18s %-26s %s",
		truncate(i.fb.Name, 18),
		truncate(i.fb.Email, 26),
		styleMuted().Render(truncate(desc, 40)))
}

func truncate(s string, w int) string {
	if xansi.StringWidth(s) <= w {
		return s
	}
	if w <= 1 {
		return "…"
	}
	return xansi.Cut(s, 0, w-1) + "…"
}

func foodListItems(foods []model.Food) []list.Item {
	items := make([]list.Item, 0, len(foods))
	for _, f := range foods {
		items = append(items, foodRowItem{food: f})
	}
	return items
}

func feedbackListItems(fbs []model.Feedback) []list.Item {
	items := make([]list.Item, 0, len(fbs))
	for _, fb := range fbs {
		items = append(items, feedbackRowItem{fb: fb})
	}
	return items
}

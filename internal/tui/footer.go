package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// FooterModel renders the bottom bar: key hints on the left, run status on
// the right.
type FooterModel struct {
	keymap KeyMap
	width  int
	paused bool
	done   bool
	failed bool
}

// NewFooterModel creates a new footer.
func NewFooterModel() FooterModel {
	return FooterModel{keymap: DefaultKeyMap()}
}

// SetWidth updates the available width.
func (f *FooterModel) SetWidth(w int) {
	f.width = w
}

// SetPaused toggles the paused status indicator.
func (f *FooterModel) SetPaused(p bool) {
	f.paused = p
}

// SetDone toggles the done status indicator.
func (f *FooterModel) SetDone(d bool) {
	f.done = d
}

// SetError toggles the error status indicator. Error wins over done.
func (f *FooterModel) SetError(e bool) {
	f.failed = e
}

// View renders the footer.
func (f FooterModel) View() string {
	status := statusRunningStyle.Render("RUNNING")
	switch {
	case f.failed:
		status = statusErrorStyle.Render("ERROR")
	case f.done:
		status = statusDoneStyle.Render("DONE")
	case f.paused:
		status = statusPausedStyle.Render("PAUSED")
	}

	bindings := []key.Binding{f.keymap.Quit, f.keymap.Pause, f.keymap.Reset, f.keymap.Up, f.keymap.Down}
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, footerKeyStyle.Render(h.Key)+footerDescStyle.Render(" "+h.Desc))
	}
	left := " " + strings.Join(parts, "  ")

	gap := f.width - lipgloss.Width(left) - lipgloss.Width(status) - 1
	if gap < 1 {
		gap = 1
	}
	return left + spaces(gap) + status + " "
}

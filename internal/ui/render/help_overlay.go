package render

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	textutil "github.com/kk-code-lab/twindir/internal/textutil"
)

type helpOverlayEntry struct {
	keys string
	desc string
}

type helpOverlaySection struct {
	title   string
	entries []helpOverlayEntry
}

var helpSections = []helpOverlaySection{
	{
		title: "Pane",
		entries: []helpOverlayEntry{
			{keys: "↑/↓", desc: "Move cursor"},
			{keys: "Shift+↑/↓", desc: "Select range from anchor"},
			{keys: "Ctrl+Shift+↑/↓", desc: "Add range to selection"},
			{keys: "PgUp/PgDn", desc: "Move one page (wraps)"},
			{keys: "↵", desc: "Open directory"},
			{keys: "Backspace", desc: "Parent directory"},
		},
	},
	{
		title: "Panes",
		entries: []helpOverlayEntry{
			{keys: "← / →", desc: "Focus left / right pane"},
			{keys: "Tab", desc: "Switch pane"},
			{keys: "F6", desc: "Move selection to the other pane"},
			{keys: "Click", desc: "Focus pane and select row"},
		},
	},
	{
		title: "Exit",
		entries: []helpOverlayEntry{
			{keys: "q", desc: "Quit"},
			{keys: "Ctrl+C", desc: "Quit immediately"},
			{keys: "Ctrl+Z", desc: "Suspend"},
			{keys: "?", desc: "Close this help"},
		},
	},
}

func buildHelpOverlayLines() []string {
	lines := make([]string, 0, 24)
	for i, section := range helpSections {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, section.title)
		for _, entry := range section.entries {
			lines = append(lines, formatHelpOverlayEntry(entry))
		}
	}
	return lines
}

func formatHelpOverlayEntry(entry helpOverlayEntry) string {
	key := textutil.SanitizeTerminalText(entry.keys)
	desc := textutil.SanitizeTerminalText(entry.desc)
	return fmt.Sprintf("  %-16s %s", key, desc)
}

// RenderHelp draws the key binding overlay over the whole screen.
func (r *Renderer) RenderHelp() {
	w, h := r.screen.Size()
	baseStyle := tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.Foreground)
	for y := 0; y < h; y++ {
		r.fill(0, w, y, baseStyle)
	}

	title := " Help "
	headerStyle := baseStyle.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg).Bold(true)
	titleStart := 0
	titleWidth := r.measureTextWidth(title)
	if w > titleWidth {
		titleStart = (w - titleWidth) / 2
	}
	r.drawTextLine(titleStart, 0, w-titleStart, title, headerStyle)

	row := 2
	maxRow := h - 1
	for _, line := range buildHelpOverlayLines() {
		if row >= maxRow {
			break
		}
		text := strings.TrimRight(line, " ")
		text = r.truncateTextToWidth(text, w-4)
		r.drawTextLine(2, row, w-4, text, baseStyle)
		row++
	}

	if h > 0 {
		footer := r.truncateTextToWidth("? toggle · Esc/q close", w)
		r.drawTextLine(0, h-1, w, footer, headerStyle)
	}
	r.screen.Show()
}

package render

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/twindir/internal/pane"
	textutil "github.com/kk-code-lab/twindir/internal/textutil"
)

// Renderer draws both panes from snapshots. It never mutates pane state; the
// only state it keeps is the per-pane scroll offset and the last layout used
// for hit testing.
type Renderer struct {
	screen           tcell.Screen
	theme            ColorTheme
	scale            float64
	runeWidthCache   [128]int // ASCII cache (0-127)
	runeWidthCacheMu sync.RWMutex
	runeWidthWide    sync.Map // For non-ASCII runes

	scroll [2]int
	layout layoutMetrics
}

// NewRenderer creates a renderer; scale converts logical column widths to
// cells and defaults to 1.
func NewRenderer(screen tcell.Screen, scale float64) *Renderer {
	if scale <= 0 {
		scale = 1
	}
	return &Renderer{
		screen: screen,
		theme:  GetColorTheme(),
		scale:  scale,
	}
}

// Render draws both panes and the footer, then shows the screen.
func (r *Renderer) Render(left, right pane.Snapshot, status string) {
	r.screen.Clear()

	w, h := r.screen.Size()
	r.layout = computeLayout(w, h)

	for i, snap := range [2]pane.Snapshot{left, right} {
		r.drawPane(i, snap)
	}
	if r.layout.separatorX >= 0 {
		sepStyle := tcell.StyleDefault.Foreground(r.theme.SeparatorFg)
		for y := 0; y < h-footerRows; y++ {
			r.screen.SetContent(r.layout.separatorX, y, '│', nil, sepStyle)
		}
	}

	focused := left
	if right.Focused {
		focused = right
	}
	r.drawFooter(focused, status, w, h)

	r.screen.Show()
}

// PaneAt maps a screen cell to a pane (0 left, 1 right) and the item index on
// that row. item is -1 when the cell is inside a pane but not on an item.
func (r *Renderer) PaneAt(x, y int) (side, item int, ok bool) {
	for i, rect := range r.layout.panes {
		if x < rect.x || x >= rect.x+rect.width {
			continue
		}
		if y < 0 || y >= r.layout.listTop+r.layout.listRows {
			return 0, -1, false
		}
		if y < r.layout.listTop {
			return i, -1, true
		}
		return i, r.scroll[i] + (y - r.layout.listTop), true
	}
	return 0, -1, false
}

func (r *Renderer) drawPane(side int, snap pane.Snapshot) {
	rect := r.layout.panes[side]
	if rect.width <= 0 {
		return
	}

	r.drawBreadcrumbs(rect, snap)

	spans := layoutColumns(snap.Columns, rect.width, r.scale)
	r.drawColumnTitles(rect, spans)

	r.scroll[side] = scrollFor(r.scroll[side], snap.CursorIndex, len(snap.Items), r.layout.listRows)
	offset := r.scroll[side]

	base := tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.Foreground)
	for row := 0; row < r.layout.listRows; row++ {
		y := r.layout.listTop + row
		idx := offset + row
		if idx >= len(snap.Items) {
			r.fill(rect.x, rect.x+rect.width, y, base)
			continue
		}
		r.drawItemRow(rect, spans, y, snap, idx)
	}
}

func (r *Renderer) drawBreadcrumbs(rect paneRect, snap pane.Snapshot) {
	style := tcell.StyleDefault.Foreground(r.theme.HeaderFg)
	if snap.Focused {
		style = tcell.StyleDefault.
			Background(r.theme.ActiveHeaderBg).
			Foreground(r.theme.ActiveHeaderFg).
			Bold(true)
	}

	text := " " + textutil.SanitizeTerminalText(formatBreadcrumbs(snap.Breadcrumbs))
	text = r.truncateLeft(text, rect.width)
	endX := r.drawTextLine(rect.x, 0, rect.width, text, style)
	r.fill(endX, rect.x+rect.width, 0, style)
}

func (r *Renderer) drawColumnTitles(rect paneRect, spans []columnSpan) {
	style := tcell.StyleDefault.Foreground(r.theme.ColumnFg).Underline(true)
	r.fill(rect.x, rect.x+rect.width, 1, style)
	for _, span := range spans {
		if span.name == "Icon" {
			continue
		}
		title := r.truncateTextToWidth(span.name, span.width)
		r.drawTextLine(rect.x+span.x, 1, span.width, title, style)
	}
}

func (r *Renderer) drawItemRow(rect paneRect, spans []columnSpan, y int, snap pane.Snapshot, idx int) {
	item := snap.Items[idx]
	isCursor := idx == snap.CursorIndex
	isMarked := snap.IsSelected(idx)

	style := tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.FileFg)
	if item.IsDir() {
		style = style.Foreground(r.theme.DirectoryFg)
	}
	switch {
	case isCursor && snap.Focused:
		style = tcell.StyleDefault.Background(r.theme.CursorBg).Foreground(r.theme.CursorFg)
	case isMarked:
		style = tcell.StyleDefault.Background(r.theme.MarkedBg).Foreground(r.theme.MarkedFg)
	case isCursor:
		style = style.Background(r.theme.InactiveCursorBg)
	}
	if isCursor && isMarked && snap.Focused {
		style = style.Bold(true)
	}

	r.fill(rect.x, rect.x+rect.width, y, style)
	for _, span := range spans {
		var text string
		switch span.name {
		case "Icon":
			text = " " + iconFor(item)
		case "Name":
			text = textutil.DisplayName(item.DisplayName())
		case "Size":
			text = formatSize(item)
		case "Modified":
			text = formatModified(item.Modified)
		}
		text = r.truncateTextToWidth(text, span.width)
		r.drawTextLine(rect.x+span.x, y, span.width, text, style)
	}
}

func (r *Renderer) drawFooter(focused pane.Snapshot, status string, w, h int) {
	if h <= 0 || w <= 0 {
		return
	}
	y := h - 1
	normal := tcell.StyleDefault.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg)
	statusStyle := normal.Bold(true)

	message := status
	if focused.Err != nil {
		message = "error: " + focused.Err.Error()
		statusStyle = normal.Foreground(r.theme.ErrorFg).Bold(true)
	}
	message = textutil.SanitizeTerminalText(message)

	r.fill(0, w, y, normal)

	messageWidth := 0
	if message != "" {
		message = r.truncateTextToWidth(message+" ", w)
		messageWidth = r.measureTextWidth(message)
		r.drawTextLine(w-messageWidth, y, messageWidth, message, statusStyle)
	}

	help := r.truncateTextToWidth(buildFooterHelpText(), w-messageWidth-1)
	r.drawTextLine(0, y, w-messageWidth-1, help, normal)
}

// scrollFor returns the offset that keeps cursor visible, moving as little as
// possible from the previous offset.
func scrollFor(offset, cursor, count, rows int) int {
	if rows <= 0 || count <= rows {
		return 0
	}
	if cursor >= 0 {
		if cursor < offset {
			offset = cursor
		}
		if cursor >= offset+rows {
			offset = cursor - rows + 1
		}
	}
	return min(max(offset, 0), count-rows)
}

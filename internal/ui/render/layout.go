package render

import (
	"math"

	"github.com/kk-code-lab/twindir/internal/pane"
)

const (
	pointsPerCell = 6.0
	headerRows    = 2 // breadcrumbs, column titles
	footerRows    = 1
	minNameCells  = 8
	columnGap     = 1
)

type paneRect struct {
	x     int
	width int
}

type layoutMetrics struct {
	panes      [2]paneRect
	separatorX int
	listTop    int
	listRows   int
}

type columnSpan struct {
	name  string
	x     int // relative to the pane
	width int
}

// PageStep returns how many list rows fit on a terminal of the given height,
// never less than one.
func PageStep(height int) int {
	rows := height - headerRows - footerRows
	if rows < 1 {
		return 1
	}
	return rows
}

func computeLayout(w, h int) layoutMetrics {
	if w < 0 {
		w = 0
	}
	metrics := layoutMetrics{separatorX: -1, listTop: headerRows}

	leftWidth := w / 2
	rightStart := leftWidth
	if w >= 3 {
		metrics.separatorX = leftWidth
		rightStart = leftWidth + 1
	}
	metrics.panes[0] = paneRect{x: 0, width: leftWidth}
	metrics.panes[1] = paneRect{x: rightStart, width: max(w-rightStart, 0)}

	metrics.listRows = max(h-headerRows-footerRows, 0)
	return metrics
}

func columnCells(points, scale float64) int {
	cells := int(math.Round(points * scale / pointsPerCell))
	if cells < 1 {
		return 1
	}
	return cells
}

// layoutColumns converts logical column widths to cells. Name takes whatever
// is left; trailing columns are dropped while Name would be too narrow.
func layoutColumns(cols []pane.Column, paneWidth int, scale float64) []columnSpan {
	if scale <= 0 {
		scale = 1
	}
	if paneWidth <= 0 || len(cols) == 0 {
		return nil
	}

	keep := len(cols)
	for {
		fixed := 0
		hasName := false
		for _, c := range cols[:keep] {
			if c.Name == "Name" {
				hasName = true
				continue
			}
			fixed += columnCells(c.Width, scale)
		}
		fixed += (keep - 1) * columnGap
		nameWidth := paneWidth - fixed

		droppable := keep > 1 && cols[keep-1].Name != "Name"
		if hasName && nameWidth < minNameCells && droppable {
			keep--
			continue
		}

		spans := make([]columnSpan, 0, keep)
		x := 0
		for _, c := range cols[:keep] {
			width := columnCells(c.Width, scale)
			if c.Name == "Name" {
				width = max(nameWidth, 0)
			}
			if x+width > paneWidth {
				width = max(paneWidth-x, 0)
			}
			spans = append(spans, columnSpan{name: c.Name, x: x, width: width})
			x += width + columnGap
		}
		return spans
	}
}

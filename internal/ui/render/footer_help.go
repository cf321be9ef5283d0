package render

import "strings"

// buildFooterHelpText returns the key hint string with leading/trailing padding.
func buildFooterHelpText() string {
	parts := footerHelpSegments()
	if len(parts) == 0 {
		return ""
	}
	return " " + strings.Join(parts, "  ") + " "
}

func footerHelpSegments() []string {
	return []string{
		"↑↓/Pg: move",
		"⇧: range",
		"⌃⇧: add range",
		"↵: open",
		"⌫: up",
		"←→/Tab: pane",
		"F6: move to other pane",
		"q: quit",
	}
}

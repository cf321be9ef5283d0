package textutil

import "strings"

// Invisible bidi and zero-width runes are shown as labels so a file name
// cannot visually disguise itself.
var invisibleLabels = map[rune]string{
	0x00AD: "⟪SHY⟫",
	0x061C: "⟪ALM⟫",
	0x180E: "⟪MVS⟫",
	0x200B: "⟪ZWSP⟫",
	0x200C: "⟪ZWNJ⟫",
	0x200D: "⟪ZWJ⟫",
	0x200E: "⟪LRM⟫",
	0x200F: "⟪RLM⟫",
	0x2028: "⟪LSEP⟫",
	0x2029: "⟪PSEP⟫",
	0x202A: "⟪LRE⟫",
	0x202B: "⟪RLE⟫",
	0x202C: "⟪PDF⟫",
	0x202D: "⟪LRO⟫",
	0x202E: "⟪RLO⟫",
	0x2060: "⟪WJ⟫",
	0x2066: "⟪LRI⟫",
	0x2067: "⟪RLI⟫",
	0x2068: "⟪FSI⟫",
	0x2069: "⟪PDI⟫",
	0xFEFF: "⟪BOM⟫",
}

// SanitizeTerminalText replaces control characters so user-controlled text
// cannot inject escape sequences when rendered. Tabs are kept.
func SanitizeTerminalText(text string) string {
	return clean(text, false)
}

// DisplayName prepares a file name for a single terminal row. It sanitizes
// like SanitizeTerminalText and also turns tabs into spaces.
func DisplayName(name string) string {
	return clean(name, true)
}

func clean(text string, flattenTabs bool) string {
	if !needsCleaning(text, flattenTabs) {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if label, ok := invisibleLabels[r]; ok {
			b.WriteString(label)
			continue
		}
		switch {
		case r == '\t' && !flattenTabs:
			b.WriteRune(r)
		case r == '\t', r == '\n', r == '\r':
			b.WriteByte(' ')
		case isControl(r):
			b.WriteByte('?')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func needsCleaning(text string, flattenTabs bool) bool {
	for _, r := range text {
		if r == '\t' {
			if flattenTabs {
				return true
			}
			continue
		}
		if isControl(r) {
			return true
		}
		if _, ok := invisibleLabels[r]; ok {
			return true
		}
	}
	return false
}

func isControl(r rune) bool {
	return (r >= 0 && r < 0x20) || r == 0x7f
}

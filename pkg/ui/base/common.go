package base

import "github.com/charmbracelet/lipgloss"

// TruncateString shortens s to at most maxWidth cells, ending in "..." when cut.
func TruncateString(s string, maxWidth int) string {
	if lipgloss.Width(s) <= maxWidth {
		return s
	}
	runes := []rune(s)
	if maxWidth < 3 {
		return string(runes[:min(maxWidth, len(runes))])
	}
	for len(runes) > 0 && lipgloss.Width(string(runes))+3 > maxWidth {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}

// ColumnWidth is the widest of header and cells, clamped to [minWidth, maxWidth].
func ColumnWidth(header string, cells []string, minWidth, maxWidth int) int {
	width := lipgloss.Width(header)
	for _, c := range cells {
		width = max(width, lipgloss.Width(c))
	}
	return min(max(width, minWidth), maxWidth)
}

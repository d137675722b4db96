package base

import "github.com/charmbracelet/lipgloss"

// ColorPalette defines a consistent color scheme
type ColorPalette struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Error     lipgloss.Color
	Muted     lipgloss.Color
}

// DarkPalette is the default dark theme palette
var DarkPalette = ColorPalette{
	Primary:   lipgloss.Color("#7C3AED"), // Purple
	Secondary: lipgloss.Color("#06B6D4"), // Cyan
	Accent:    lipgloss.Color("#10B981"), // Emerald
	Error:     lipgloss.Color("#EF4444"), // Red
	Muted:     lipgloss.Color("#94A3B8"), // Slate
}

// LightPalette is used on light terminal backgrounds
var LightPalette = ColorPalette{
	Primary:   lipgloss.Color("#5A56E0"),
	Secondary: lipgloss.Color("#0E7490"),
	Accent:    lipgloss.Color("#02BA84"),
	Error:     lipgloss.Color("#FF5F56"),
	Muted:     lipgloss.Color("#6B7280"),
}

func adaptive(pick func(ColorPalette) lipgloss.Color) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{
		Light: string(pick(LightPalette)),
		Dark:  string(pick(DarkPalette)),
	}
}

// Adaptive colors pick the palette matching the terminal background.
var (
	AdaptivePrimary   = adaptive(func(p ColorPalette) lipgloss.Color { return p.Primary })
	AdaptiveSecondary = adaptive(func(p ColorPalette) lipgloss.Color { return p.Secondary })
	AdaptiveAccent    = adaptive(func(p ColorPalette) lipgloss.Color { return p.Accent })
	AdaptiveError     = adaptive(func(p ColorPalette) lipgloss.Color { return p.Error })
	AdaptiveMuted     = adaptive(func(p ColorPalette) lipgloss.Color { return p.Muted })
)

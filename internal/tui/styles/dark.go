package styles

import "github.com/charmbracelet/lipgloss/v2"

// NewDarkTheme is the default theme: deep indigo backgrounds with violet
// and cyan accents.
func NewDarkTheme() *Theme {
	var (
		midnight = lipgloss.Color("#1e1b4b")
		indigo   = lipgloss.Color("#312e81")
		violet   = lipgloss.Color("#4c1d95")
		slate    = lipgloss.Color("#3730a3")
		lavender = lipgloss.Color("#a5b4fc")
		mist     = lipgloss.Color("#c7d2fe")
		haze     = lipgloss.Color("#818cf8")
		dusk     = lipgloss.Color("#6366f1")
		snow     = lipgloss.Color("#f8fafc")
	)

	var (
		purple  = lipgloss.Color("#a855f7")
		pink    = lipgloss.Color("#ec4899")
		cyan    = lipgloss.Color("#22d3ee")
		sky     = lipgloss.Color("#38bdf8")
		blue    = lipgloss.Color("#3b82f6")
		emerald = lipgloss.Color("#10b981")
		amber   = lipgloss.Color("#f59e0b")
		orange  = lipgloss.Color("#f97316")
		rose    = lipgloss.Color("#f43f5e")
		gray    = lipgloss.Color("#6b7280")
	)

	t := &Theme{
		Name:   "dark",
		IsDark: true,

		Primary:   violet,
		Secondary: purple,
		Tertiary:  cyan,
		Accent:    pink,

		BgBase:        midnight,
		BgBaseLighter: indigo,
		BgSubtle:      slate,
		BgOverlay:     indigo,

		FgBase:      mist,
		FgMuted:     lavender,
		FgHalfMuted: haze,
		FgSubtle:    dusk,
		FgSelected:  snow,

		Border:      slate,
		BorderFocus: purple,

		Success: emerald,
		Error:   rose,
		Warning: amber,
		Info:    sky,

		White:     snow,
		BlueLight: sky,
		Blue:      blue,
		Yellow:    amber,
		Orange:    orange,
		Green:     emerald,
		Red:       rose,
		Gray:      gray,
	}
	return t.withIcons()
}

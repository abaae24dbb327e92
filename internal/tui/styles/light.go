package styles

// NewLightTheme is a light theme with soft blue backgrounds.
func NewLightTheme() *Theme {
	t := &Theme{
		Name:   "light",
		IsDark: false,

		Primary:   ParseHex("#4f46e5"), // Indigo 600
		Secondary: ParseHex("#2563eb"), // Blue 600
		Tertiary:  ParseHex("#0891b2"), // Cyan 600
		Accent:    ParseHex("#7c3aed"), // Violet 600

		BgBase:        ParseHex("#f9fafb"), // Gray 50
		BgBaseLighter: ParseHex("#eff6ff"), // Blue 50
		BgSubtle:      ParseHex("#e0e7ff"), // Indigo 100
		BgOverlay:     ParseHex("#c7d2fe"), // Indigo 200

		FgBase:      ParseHex("#1f2937"), // Gray 800
		FgMuted:     ParseHex("#4b5563"), // Gray 600
		FgHalfMuted: ParseHex("#374151"), // Gray 700
		FgSubtle:    ParseHex("#9ca3af"), // Gray 400
		FgSelected:  ParseHex("#ffffff"),

		Border:      ParseHex("#d1d5db"), // Gray 300
		BorderFocus: ParseHex("#6366f1"), // Indigo 500

		Success: ParseHex("#16a34a"), // Green 600
		Error:   ParseHex("#dc2626"), // Red 600
		Warning: ParseHex("#d97706"), // Amber 600
		Info:    ParseHex("#2563eb"), // Blue 600

		White:     ParseHex("#ffffff"),
		BlueLight: ParseHex("#60a5fa"), // Blue 400
		Blue:      ParseHex("#2563eb"), // Blue 600
		Yellow:    ParseHex("#ca8a04"), // Yellow 600
		Orange:    ParseHex("#ea580c"), // Orange 600
		Green:     ParseHex("#16a34a"), // Green 600
		Red:       ParseHex("#dc2626"), // Red 600
		Gray:      ParseHex("#6b7280"), // Gray 500
	}
	return t.withIcons()
}

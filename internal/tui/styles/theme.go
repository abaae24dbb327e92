package styles

import (
	"fmt"
	"image/color"

	"github.com/charmbracelet/bubbles/v2/help"
	"github.com/charmbracelet/bubbles/v2/textinput"
	"github.com/charmbracelet/lipgloss/v2"
)

type Theme struct {
	Name   string
	IsDark bool

	Primary   color.Color
	Secondary color.Color
	Tertiary  color.Color
	Accent    color.Color

	BgBase        color.Color
	BgBaseLighter color.Color
	BgSubtle      color.Color
	BgOverlay     color.Color

	FgBase      color.Color
	FgMuted     color.Color
	FgHalfMuted color.Color
	FgSubtle    color.Color
	FgSelected  color.Color

	Border      color.Color
	BorderFocus color.Color

	Success color.Color
	Error   color.Color
	Warning color.Color
	Info    color.Color

	White     color.Color
	BlueLight color.Color
	Blue      color.Color
	Yellow    color.Color
	Orange    color.Color
	Green     color.Color
	Red       color.Color
	Gray      color.Color

	// File kind badges.
	FolderIcon   lipgloss.Style
	PDFIcon      lipgloss.Style
	DocumentIcon lipgloss.Style
	ImageIcon    lipgloss.Style
	FileIcon     lipgloss.Style

	TextSelection lipgloss.Style

	styles *Styles
}

type Styles struct {
	Base         lipgloss.Style
	SelectedBase lipgloss.Style

	Title        lipgloss.Style
	Subtitle     lipgloss.Style
	Text         lipgloss.Style
	TextSelected lipgloss.Style
	Muted        lipgloss.Style
	Subtle       lipgloss.Style

	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	// Form field labels.
	Label        lipgloss.Style
	LabelFocused lipgloss.Style

	// Boxes around pages and cards.
	Panel        lipgloss.Style
	Card         lipgloss.Style
	CardSelected lipgloss.Style

	Button        lipgloss.Style
	ButtonFocused lipgloss.Style

	TextInput textinput.Styles
	Help      help.Styles
}

// S returns the derived styles of the theme, building them on first use.
func (t *Theme) S() *Styles {
	if t.styles == nil {
		t.styles = t.buildStyles()
	}
	return t.styles
}

func (t *Theme) buildStyles() *Styles {
	base := lipgloss.NewStyle().Foreground(t.FgBase)

	ti := textinput.DefaultStyles(t.IsDark)
	ti.Focused.Prompt = base.Foreground(t.Tertiary)
	ti.Focused.Text = base
	ti.Focused.Placeholder = base.Foreground(t.FgSubtle)
	ti.Blurred.Prompt = base.Foreground(t.FgMuted)
	ti.Blurred.Text = base.Foreground(t.FgMuted)
	ti.Blurred.Placeholder = base.Foreground(t.FgSubtle)

	return &Styles{
		Base:         base,
		SelectedBase: base.Background(t.Primary),

		Title:        base.Foreground(t.Accent).Bold(true),
		Subtitle:     base.Foreground(t.Secondary).Bold(true),
		Text:         base,
		TextSelected: base.Background(t.Primary).Foreground(t.FgSelected),
		Muted:        base.Foreground(t.FgMuted),
		Subtle:       base.Foreground(t.FgSubtle),

		Success: base.Foreground(t.Success),
		Error:   base.Foreground(t.Error),
		Warning: base.Foreground(t.Warning),
		Info:    base.Foreground(t.Info),

		Label:        base.Foreground(t.FgHalfMuted),
		LabelFocused: base.Foreground(t.Accent).Bold(true),

		Panel: base.
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.BorderFocus).
			Padding(1, 2),
		Card: base.
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),
		CardSelected: base.
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Accent).
			Padding(0, 1),

		Button:        base.Background(t.BgSubtle).Padding(0, 2),
		ButtonFocused: base.Foreground(t.White).Background(t.Secondary).Padding(0, 2),

		TextInput: ti,
		Help: help.Styles{
			ShortKey:       base.Foreground(t.FgMuted),
			ShortDesc:      base.Foreground(t.FgSubtle),
			ShortSeparator: base.Foreground(t.Border),
			Ellipsis:       base.Foreground(t.Border),
			FullKey:        base.Foreground(t.FgMuted),
			FullDesc:       base.Foreground(t.FgSubtle),
			FullSeparator:  base.Foreground(t.Border),
		},
	}
}

// KindIcon returns the badge style for a file kind name.
func (t *Theme) KindIcon(kind string) lipgloss.Style {
	switch kind {
	case "folder":
		return t.FolderIcon
	case "pdf":
		return t.PDFIcon
	case "document":
		return t.DocumentIcon
	case "image":
		return t.ImageIcon
	default:
		return t.FileIcon
	}
}

func (t *Theme) withIcons() *Theme {
	badge := lipgloss.NewStyle().Foreground(t.White).Bold(true).Padding(0, 1)
	t.FolderIcon = badge.Background(t.Orange).SetString("▰")
	t.PDFIcon = badge.Background(t.Red).SetString("▤")
	t.DocumentIcon = badge.Background(t.Blue).SetString("▤")
	t.ImageIcon = badge.Background(t.Green).SetString("▣")
	t.FileIcon = badge.Background(t.Gray).SetString("▢")
	t.TextSelection = lipgloss.NewStyle().Foreground(t.FgSelected).Background(t.Primary)
	return t
}

// ParseHex parses a "#rrggbb" color. Malformed input yields black.
func ParseHex(hex string) color.Color {
	var r, g, b uint8
	if len(hex) == 7 {
		_, _ = fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b)
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

package core

import (
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/driveterm/drive/internal/tui/styles"
)

// Title renders title followed by a gradient rule filling width.
func Title(title string, width int) string {
	t := styles.CurrentTheme()
	char := "╱"
	length := lipgloss.Width(title) + 1
	remainingWidth := width - length
	titleStyle := t.S().Base.Foreground(t.Primary).Bold(true)
	if !t.IsDark {
		titleStyle = titleStyle.Foreground(t.Accent)
	}
	if remainingWidth > 0 {
		lines := strings.Repeat(char, remainingWidth)
		lines = styles.ApplyForegroundGrad(lines, t.Primary, t.Secondary)
		title = titleStyle.Render(title) + " " + lines
	} else {
		title = titleStyle.Render(ansi.Truncate(title, max(0, width), "…"))
	}
	return title
}

// Section renders a muted heading followed by a thin rule.
func Section(text string, width int) string {
	t := styles.CurrentTheme()
	char := "─"
	length := lipgloss.Width(text) + 1
	remainingWidth := width - length
	text = t.S().Subtle.Render(text)
	if remainingWidth > 0 {
		text = text + " " + t.S().Base.Foreground(t.Border).Render(strings.Repeat(char, remainingWidth))
	}
	return text
}

type ButtonOpts struct {
	Text     string
	Selected bool
}

// Button renders a single button.
func Button(opts ButtonOpts) string {
	t := styles.CurrentTheme()
	style := t.S().Button
	if opts.Selected {
		style = t.S().ButtonFocused
	}
	return style.Render(opts.Text)
}

// Buttons renders buttons in a row separated by spacing cells.
func Buttons(buttons []ButtonOpts, spacing int) string {
	parts := make([]string, 0, len(buttons)*2)
	for i, b := range buttons {
		if i > 0 {
			parts = append(parts, strings.Repeat(" ", spacing))
		}
		parts = append(parts, Button(b))
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}

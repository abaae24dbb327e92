package styles

import (
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

// ForegroundGrad returns the graphemes of input, each styled with one step
// of a gradient from color1 to color2.
func ForegroundGrad(input string, bold bool, color1, color2 color.Color) []string {
	if input == "" {
		return []string{""}
	}
	var clusters []string
	gr := uniseg.NewGraphemes(input)
	for gr.Next() {
		clusters = append(clusters, string(gr.Runes()))
	}
	if len(clusters) == 1 {
		style := lipgloss.NewStyle().Foreground(color1)
		if bold {
			style = style.Bold(true)
		}
		return []string{style.Render(input)}
	}

	ramp := blendColors(len(clusters), color1, color2)
	for i, c := range ramp {
		style := lipgloss.NewStyle().Foreground(c)
		if bold {
			style = style.Bold(true)
		}
		clusters[i] = style.Render(clusters[i])
	}
	return clusters
}

// ApplyForegroundGrad renders input with a horizontal gradient.
func ApplyForegroundGrad(input string, color1, color2 color.Color) string {
	return strings.Join(ForegroundGrad(input, false, color1, color2), "")
}

// ApplyBoldForegroundGrad renders input bold with a horizontal gradient.
func ApplyBoldForegroundGrad(input string, color1, color2 color.Color) string {
	return strings.Join(ForegroundGrad(input, true, color1, color2), "")
}

// blendColors returns size colors blended in CIE L*a*b* space.
func blendColors(size int, stops ...color.Color) []color.Color {
	if len(stops) < 2 || size < 1 {
		return nil
	}
	c1, _ := colorful.MakeColor(stops[0])
	c2, _ := colorful.MakeColor(stops[1])
	out := make([]color.Color, size)
	for i := range size {
		var t float64
		if size > 1 {
			t = float64(i) / float64(size-1)
		}
		out[i] = c1.BlendLab(c2, t).Clamped()
	}
	return out
}

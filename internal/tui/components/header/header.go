package header

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/driveterm/drive/internal/proto"
	"github.com/driveterm/drive/internal/tui/styles"
	"github.com/driveterm/drive/internal/tui/util"
)

// Header is the top bar of the dashboard: the logo, a gradient rule, and
// the signed in user.
type Header interface {
	util.Model
	SetUser(user proto.User) tea.Cmd
	SetWidth(width int) tea.Cmd
}

type header struct {
	width int
	user  proto.User
}

func New() Header {
	return &header{}
}

func (h *header) Init() tea.Cmd {
	return nil
}

func (h *header) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return h, nil
}

func (h *header) View() string {
	const (
		gap          = " "
		diag         = "╱"
		minDiags     = 3
		leftPadding  = 1
		rightPadding = 1
	)

	t := styles.CurrentTheme()

	var b strings.Builder

	b.WriteString(t.S().Base.Foreground(t.Tertiary).Render("☁"))
	b.WriteString(gap)
	b.WriteString(styles.ApplyBoldForegroundGrad("CLOUD DRIVE", t.Secondary, t.Accent))
	b.WriteString(gap)

	availDetailWidth := h.width - leftPadding - rightPadding - lipgloss.Width(b.String()) - minDiags - 1
	details := h.details(availDetailWidth)

	remainingWidth := h.width -
		lipgloss.Width(b.String()) -
		lipgloss.Width(details) -
		leftPadding -
		rightPadding

	if remainingWidth > 0 {
		b.WriteString(t.S().Base.Foreground(t.Primary).Render(
			strings.Repeat(diag, max(minDiags, remainingWidth-1)),
		))
		b.WriteString(gap)
	}

	b.WriteString(details)

	return t.S().Base.Padding(0, rightPadding, 0, leftPadding).Render(b.String())
}

// details renders the avatar, name and email, dropping the email and
// then truncating the name when space runs out.
func (h *header) details(availWidth int) string {
	if h.user.IsZero() || availWidth <= 0 {
		return ""
	}
	t := styles.CurrentTheme()
	s := t.S()

	initials := h.user.Initials()
	if initials == "" {
		initials = "?"
	}
	avatar := lipgloss.NewStyle().
		Foreground(t.White).
		Background(t.Secondary).
		Bold(true).
		Padding(0, 1).
		Render(initials)

	name := h.user.FullName()
	dot := s.Subtle.Render(" • ")
	email := s.Muted.Render(h.user.Email)

	full := avatar + " " + s.Text.Render(name) + dot + email
	if lipgloss.Width(full) <= availWidth {
		return full
	}
	nameWidth := max(0, availWidth-lipgloss.Width(avatar)-1)
	return avatar + " " + s.Text.Render(ansi.Truncate(name, nameWidth, "…"))
}

// SetUser implements Header.
func (h *header) SetUser(user proto.User) tea.Cmd {
	h.user = user
	return nil
}

// SetWidth implements Header.
func (h *header) SetWidth(width int) tea.Cmd {
	h.width = width
	return nil
}

// Package auth holds the pages shown before login: sign in, registration,
// email verification and the two password reset steps.
package auth

import (
	"context"

	"github.com/charmbracelet/bubbles/v2/key"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/driveterm/drive/internal/proto"
	"github.com/driveterm/drive/internal/tui/components/core"
	"github.com/driveterm/drive/internal/tui/styles"
)

// Service performs the auth requests. [*app.App] implements it.
type Service interface {
	Login(ctx context.Context, email, password string) (proto.User, error)
	Register(ctx context.Context, req proto.RegisterRequest) (string, error)
	VerifyEmail(ctx context.Context, token, email string) (string, error)
	ForgotPassword(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, req proto.ResetPasswordRequest) (string, error)
}

type KeyMap struct {
	Submit   key.Binding
	Back     key.Binding
	Register key.Binding
	Forgot   key.Binding
	Verify   key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back to login"),
		),
		Register: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("ctrl+n", "create account"),
		),
		Forgot: key.NewBinding(
			key.WithKeys("ctrl+f"),
			key.WithHelp("ctrl+f", "forgot password"),
		),
		Verify: key.NewBinding(
			key.WithKeys("ctrl+v"),
			key.WithHelp("ctrl+v", "verify email"),
		),
	}
}

const cardWidth = 60

// result is the outcome of a request started by a page.
type result struct {
	msg string
	err error
}

type card struct {
	width, height int
}

func (c *card) setSize(width, height int) {
	c.width, c.height = width, height
}

func (c card) innerWidth() int {
	w := cardWidth
	if c.width > 0 {
		w = min(cardWidth, c.width-4)
	}
	// border and padding of the panel
	return max(10, w-6)
}

// render centers a bordered panel with the title, subtitle and body.
func (c card) render(title, subtitle string, body ...string) string {
	t := styles.CurrentTheme()
	w := c.innerWidth()
	parts := []string{
		core.Title(title, w),
		t.S().Muted.Width(w).Render(subtitle),
		"",
	}
	parts = append(parts, body...)
	panel := t.S().Panel.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
	if c.width <= 0 || c.height <= 0 {
		return panel
	}
	return lipgloss.Place(c.width, c.height, lipgloss.Center, lipgloss.Center, panel)
}

func submitButton(label, busyLabel string, busy, disabled bool) string {
	t := styles.CurrentTheme()
	if busy {
		return core.Button(core.ButtonOpts{Text: busyLabel})
	}
	if disabled {
		return t.S().Button.Foreground(t.FgSubtle).Render(label)
	}
	return core.Button(core.ButtonOpts{Text: label, Selected: true})
}

func link(b key.Binding) string {
	t := styles.CurrentTheme()
	h := b.Help()
	return t.S().Subtle.Render(h.Key+" ") + t.S().Muted.Render(h.Desc)
}

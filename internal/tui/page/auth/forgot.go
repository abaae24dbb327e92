package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/v2/key"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/driveterm/drive/internal/app"
	"github.com/driveterm/drive/internal/proto"
	"github.com/driveterm/drive/internal/tui/components/form"
	"github.com/driveterm/drive/internal/tui/page"
	"github.com/driveterm/drive/internal/tui/styles"
	"github.com/driveterm/drive/internal/tui/util"
)

type forgotResultMsg struct {
	email string
	result
}

type forgotPage struct {
	card
	svc        Service
	form       *form.Form
	keyMap     KeyMap
	submitting bool
	// sentTo is set once the link was sent.
	sentTo string
}

func NewForgot(svc Service, email string) page.Page {
	return &forgotPage{
		svc: svc,
		form: form.New(
			form.Field{Label: "Email", Placeholder: "you@example.com", Value: email},
		),
		keyMap: DefaultKeyMap(),
	}
}

func (p *forgotPage) Init() tea.Cmd {
	return nil
}

func (p *forgotPage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return p, p.SetSize(msg.Width, msg.Height)
	case forgotResultMsg:
		p.submitting = false
		if msg.err != nil {
			return p, util.ReportError(msg.err)
		}
		p.sentTo = msg.email
		return p, util.ReportSuccess(msg.msg)
	case tea.KeyPressMsg:
		switch {
		case key.Matches(msg, p.keyMap.Back):
			return p, p.back()
		case key.Matches(msg, p.keyMap.Submit):
			if p.sentTo != "" {
				return p, p.back()
			}
			return p, p.submit()
		}
		if p.sentTo != "" {
			return p, nil
		}
	}
	return p, p.form.Update(msg)
}

func (p *forgotPage) back() tea.Cmd {
	return util.CmdHandler(page.PageChangeMsg{ID: page.Login, Email: p.form.Value(0)})
}

func (p *forgotPage) submit() tea.Cmd {
	if p.submitting {
		return nil
	}
	email := strings.TrimSpace(p.form.Value(0))
	if err := (proto.ForgotPasswordRequest{Email: email}).Validate(); err != nil {
		return util.ReportError(err)
	}
	p.submitting = true
	return func() tea.Msg {
		msg, err := p.svc.ForgotPassword(context.Background(), email)
		return forgotResultMsg{email: email, result: result{msg: msg, err: err}}
	}
}

func (p *forgotPage) View() string {
	t := styles.CurrentTheme()
	if p.sentTo != "" {
		body := lipgloss.JoinVertical(lipgloss.Left,
			t.S().Success.Render("✓ Check your email"),
			"",
			t.S().Text.Width(p.innerWidth()).Render(
				fmt.Sprintf("We've sent a password reset link to %s. The link expires in %s.", p.sentTo, app.ResetLinkExpiresIn),
			),
			"",
			submitButton("Back to Login", "", false, false),
		)
		return p.render("Reset Link Sent", "Follow the link to choose a new password", body)
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		p.form.View(),
		submitButton("Send Reset Link", "Sending...", p.submitting, false),
		"",
		link(p.keyMap.Back),
	)
	return p.render("Forgot Password", "Enter your email and we'll send you a reset link", body)
}

func (p *forgotPage) SetSize(width, height int) tea.Cmd {
	p.setSize(width, height)
	p.form.SetWidth(p.innerWidth())
	return nil
}

func (p *forgotPage) Bindings() []key.Binding {
	return []key.Binding{p.keyMap.Submit, p.keyMap.Back}
}

package auth

import (
	"context"

	"github.com/charmbracelet/bubbles/v2/key"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/driveterm/drive/internal/proto"
	"github.com/driveterm/drive/internal/tui/components/form"
	"github.com/driveterm/drive/internal/tui/page"
	"github.com/driveterm/drive/internal/tui/util"
)

const (
	resetEmail = iota
	resetToken
	resetPassword
	resetConfirm
)

type resetResultMsg struct {
	email string
	result
}

type resetPage struct {
	card
	svc        Service
	form       *form.Form
	keyMap     KeyMap
	submitting bool
}

// NewReset returns the page that sets a new password with the token from
// the reset link.
func NewReset(svc Service, email, token string) page.Page {
	p := &resetPage{
		svc: svc,
		form: form.New(
			form.Field{Label: "Email", Placeholder: "you@example.com", Value: email},
			form.Field{Label: "Reset token", Placeholder: "paste the token from the email", Value: token},
			form.Field{Label: "New password", Placeholder: "at least 6 characters", Password: true},
			form.Field{Label: "Confirm password", Placeholder: "repeat the password", Password: true},
		),
		keyMap: DefaultKeyMap(),
	}
	if email != "" && token != "" {
		p.form.Focus(resetPassword)
	}
	return p
}

func (p *resetPage) Init() tea.Cmd {
	return nil
}

func (p *resetPage) request() proto.ResetPasswordRequest {
	return proto.ResetPasswordRequest{
		Email:           p.form.Value(resetEmail),
		Token:           p.form.Value(resetToken),
		Password:        p.form.Value(resetPassword),
		ConfirmPassword: p.form.Value(resetConfirm),
	}
}

func (p *resetPage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return p, p.SetSize(msg.Width, msg.Height)
	case resetResultMsg:
		p.submitting = false
		if msg.err != nil {
			return p, util.ReportError(msg.err)
		}
		return p, tea.Batch(
			util.ReportSuccess(msg.msg),
			util.CmdHandler(page.PageChangeMsg{ID: page.Login, Email: msg.email}),
		)
	case tea.KeyPressMsg:
		switch {
		case key.Matches(msg, p.keyMap.Submit):
			return p, p.submit()
		case key.Matches(msg, p.keyMap.Back):
			return p, util.CmdHandler(page.PageChangeMsg{ID: page.Login, Email: p.form.Value(resetEmail)})
		}
	}
	return p, p.form.Update(msg)
}

func (p *resetPage) submit() tea.Cmd {
	if p.submitting {
		return nil
	}
	req := p.request()
	if err := req.Validate(); err != nil {
		return util.ReportError(err)
	}
	p.submitting = true
	return func() tea.Msg {
		msg, err := p.svc.ResetPassword(context.Background(), req)
		return resetResultMsg{email: req.Email, result: result{msg: msg, err: err}}
	}
}

func (p *resetPage) View() string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		p.form.View(),
		submitButton("Reset Password", "Resetting...", p.submitting, false),
		"",
		link(p.keyMap.Back),
	)
	return p.render("Reset Password", "Choose a new password for your account", body)
}

func (p *resetPage) SetSize(width, height int) tea.Cmd {
	p.setSize(width, height)
	p.form.SetWidth(p.innerWidth())
	return nil
}

func (p *resetPage) Bindings() []key.Binding {
	return []key.Binding{p.keyMap.Submit, p.form.KeyMap().Next, p.keyMap.Back}
}

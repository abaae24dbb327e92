package auth

import (
	"context"

	"github.com/charmbracelet/bubbles/v2/key"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/driveterm/drive/internal/app"
	"github.com/driveterm/drive/internal/proto"
	"github.com/driveterm/drive/internal/tui/components/form"
	"github.com/driveterm/drive/internal/tui/page"
	"github.com/driveterm/drive/internal/tui/util"
)

type loginResultMsg struct {
	user proto.User
	err  error
}

type loginPage struct {
	card
	svc        Service
	form       *form.Form
	keyMap     KeyMap
	submitting bool
}

// NewLogin returns the sign in page, with the email prefilled when given.
func NewLogin(svc Service, email string) page.Page {
	p := &loginPage{
		svc: svc,
		form: form.New(
			form.Field{Label: "Email", Placeholder: "you@example.com", Value: email},
			form.Field{Label: "Password", Placeholder: "••••••", Password: true},
		),
		keyMap: DefaultKeyMap(),
	}
	if email != "" {
		p.form.Focus(1)
	}
	return p
}

func (p *loginPage) Init() tea.Cmd {
	return nil
}

func (p *loginPage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return p, p.SetSize(msg.Width, msg.Height)
	case loginResultMsg:
		p.submitting = false
		if msg.err != nil {
			p.form.SetValue(1, "")
			p.form.Focus(1)
			return p, util.ReportError(msg.err)
		}
		return p, tea.Batch(
			util.ReportSuccess(app.MsgWelcomeBack),
			util.CmdHandler(page.LoggedInMsg{User: msg.user}),
		)
	case tea.KeyPressMsg:
		switch {
		case key.Matches(msg, p.keyMap.Submit):
			return p, p.submit()
		case key.Matches(msg, p.keyMap.Register):
			return p, util.CmdHandler(page.PageChangeMsg{ID: page.Register, Email: p.form.Value(0)})
		case key.Matches(msg, p.keyMap.Forgot):
			return p, util.CmdHandler(page.PageChangeMsg{ID: page.ForgotPassword, Email: p.form.Value(0)})
		case key.Matches(msg, p.keyMap.Verify):
			return p, util.CmdHandler(page.PageChangeMsg{ID: page.VerifyEmail, Email: p.form.Value(0)})
		}
	}
	return p, p.form.Update(msg)
}

func (p *loginPage) submit() tea.Cmd {
	if p.submitting {
		return nil
	}
	email, password := p.form.Value(0), p.form.Value(1)
	if err := (proto.LoginRequest{Username: email, Password: password}).Validate(); err != nil {
		return util.ReportError(err)
	}
	p.submitting = true
	return func() tea.Msg {
		user, err := p.svc.Login(context.Background(), email, password)
		return loginResultMsg{user: user, err: err}
	}
}

func (p *loginPage) View() string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		p.form.View(),
		submitButton("Sign In", "Signing in...", p.submitting, false),
		"",
		link(p.keyMap.Forgot),
		link(p.keyMap.Register),
	)
	return p.render("Welcome Back", "Sign in to access your files", body)
}

func (p *loginPage) SetSize(width, height int) tea.Cmd {
	p.setSize(width, height)
	p.form.SetWidth(p.innerWidth())
	return nil
}

func (p *loginPage) Bindings() []key.Binding {
	return []key.Binding{p.keyMap.Submit, p.form.KeyMap().Next, p.keyMap.Forgot, p.keyMap.Register}
}

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
	registerEmail = iota
	registerFirstName
	registerLastName
	registerPassword
	registerConfirm
)

type registerResultMsg struct {
	email string
	result
}

type registerPage struct {
	card
	svc        Service
	form       *form.Form
	keyMap     KeyMap
	submitting bool
}

func NewRegister(svc Service, email string) page.Page {
	return &registerPage{
		svc: svc,
		form: form.New(
			form.Field{Label: "Email", Placeholder: "you@example.com", Value: email},
			form.Field{Label: "First name", Placeholder: "Ada"},
			form.Field{Label: "Last name", Placeholder: "Lovelace"},
			form.Field{Label: "Password", Placeholder: "at least 6 characters", Password: true},
			form.Field{Label: "Confirm password", Placeholder: "repeat the password", Password: true},
		),
		keyMap: DefaultKeyMap(),
	}
}

func (p *registerPage) Init() tea.Cmd {
	return nil
}

func (p *registerPage) request() proto.RegisterRequest {
	return proto.RegisterRequest{
		Username:        p.form.Value(registerEmail),
		FirstName:       p.form.Value(registerFirstName),
		LastName:        p.form.Value(registerLastName),
		Password:        p.form.Value(registerPassword),
		ConfirmPassword: p.form.Value(registerConfirm),
	}
}

func (p *registerPage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return p, p.SetSize(msg.Width, msg.Height)
	case registerResultMsg:
		p.submitting = false
		if msg.err != nil {
			return p, util.ReportError(msg.err)
		}
		return p, tea.Batch(
			util.ReportSuccess(msg.msg),
			util.CmdHandler(page.PageChangeMsg{ID: page.VerifyEmail, Email: msg.email}),
		)
	case tea.KeyPressMsg:
		switch {
		case key.Matches(msg, p.keyMap.Submit):
			return p, p.submit()
		case key.Matches(msg, p.keyMap.Back):
			return p, util.CmdHandler(page.PageChangeMsg{ID: page.Login, Email: p.form.Value(registerEmail)})
		}
	}
	return p, p.form.Update(msg)
}

func (p *registerPage) submit() tea.Cmd {
	if p.submitting {
		return nil
	}
	req := p.request()
	if err := req.Validate(); err != nil {
		return util.ReportError(err)
	}
	p.submitting = true
	return func() tea.Msg {
		msg, err := p.svc.Register(context.Background(), req)
		return registerResultMsg{email: req.Username, result: result{msg: msg, err: err}}
	}
}

func (p *registerPage) View() string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		p.form.View(),
		submitButton("Create Account", "Creating account...", p.submitting, false),
		"",
		link(p.keyMap.Back),
	)
	return p.render("Create Account", "Sign up to start storing your files", body)
}

func (p *registerPage) SetSize(width, height int) tea.Cmd {
	p.setSize(width, height)
	p.form.SetWidth(p.innerWidth())
	return nil
}

func (p *registerPage) Bindings() []key.Binding {
	return []key.Binding{p.keyMap.Submit, p.form.KeyMap().Next, p.keyMap.Back}
}

package auth

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/key"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/driveterm/drive/internal/tui/components/form"
	"github.com/driveterm/drive/internal/tui/page"
	"github.com/driveterm/drive/internal/tui/styles"
	"github.com/driveterm/drive/internal/tui/util"
)

const (
	verifyEmail = iota
	verifyToken
)

// redirectDelay is how long the verified state stays on screen before the
// login page opens.
const redirectDelay = 2 * time.Second

type verifyResultMsg struct {
	email string
	result
}

type verifyPage struct {
	card
	svc        Service
	form       *form.Form
	keyMap     KeyMap
	submitting bool
	verified   bool
	auto       bool
	delay      time.Duration
}

// NewVerify returns the email verification page. When both the token and
// the email are known, verification starts as soon as the page opens.
func NewVerify(svc Service, email, token string) page.Page {
	p := &verifyPage{
		svc: svc,
		form: form.New(
			form.Field{Label: "Email", Placeholder: "you@example.com", Value: email},
			form.Field{Label: "Verification token", Placeholder: "paste the token from the email", Value: token},
		),
		keyMap: DefaultKeyMap(),
		auto:   strings.TrimSpace(email) != "" && strings.TrimSpace(token) != "",
		delay:  redirectDelay,
	}
	if email != "" {
		p.form.Focus(verifyToken)
	}
	return p
}

func (p *verifyPage) Init() tea.Cmd {
	if p.auto {
		return p.submit()
	}
	return nil
}

// ready reports whether manual verification is possible.
func (p *verifyPage) ready() bool {
	return strings.TrimSpace(p.form.Value(verifyToken)) != "" &&
		strings.TrimSpace(p.form.Value(verifyEmail)) != ""
}

func (p *verifyPage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return p, p.SetSize(msg.Width, msg.Height)
	case verifyResultMsg:
		p.submitting = false
		if msg.err != nil {
			return p, util.ReportError(msg.err)
		}
		p.verified = true
		next := page.PageChangeMsg{ID: page.Login, Email: msg.email}
		return p, tea.Batch(
			util.ReportSuccess(msg.msg),
			tea.Tick(p.delay, func(time.Time) tea.Msg { return next }),
		)
	case tea.KeyPressMsg:
		switch {
		case key.Matches(msg, p.keyMap.Submit):
			if p.verified {
				return p, util.CmdHandler(page.PageChangeMsg{ID: page.Login, Email: p.form.Value(verifyEmail)})
			}
			return p, p.submit()
		case key.Matches(msg, p.keyMap.Back):
			return p, util.CmdHandler(page.PageChangeMsg{ID: page.Login, Email: p.form.Value(verifyEmail)})
		}
		if p.verified {
			return p, nil
		}
	}
	return p, p.form.Update(msg)
}

func (p *verifyPage) submit() tea.Cmd {
	if p.submitting || !p.ready() {
		return nil
	}
	p.submitting = true
	email, token := p.form.Value(verifyEmail), p.form.Value(verifyToken)
	return func() tea.Msg {
		msg, err := p.svc.VerifyEmail(context.Background(), token, email)
		return verifyResultMsg{email: strings.TrimSpace(email), result: result{msg: msg, err: err}}
	}
}

func (p *verifyPage) View() string {
	t := styles.CurrentTheme()
	if p.verified {
		body := lipgloss.JoinVertical(lipgloss.Left,
			t.S().Success.Render("✓ Your email has been verified."),
			t.S().Muted.Render("Taking you to the login page..."),
			"",
			link(p.keyMap.Back),
		)
		return p.render("Email Verified", "You can now sign in", body)
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		p.form.View(),
		submitButton("Verify Email", "Verifying...", p.submitting, !p.ready()),
		"",
		link(p.keyMap.Back),
	)
	return p.render("Verify Your Email", "We sent a verification link to your inbox", body)
}

func (p *verifyPage) SetSize(width, height int) tea.Cmd {
	p.setSize(width, height)
	p.form.SetWidth(p.innerWidth())
	return nil
}

func (p *verifyPage) Bindings() []key.Binding {
	return []key.Binding{p.keyMap.Submit, p.form.KeyMap().Next, p.keyMap.Back}
}

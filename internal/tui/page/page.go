package page

import (
	"github.com/charmbracelet/bubbles/v2/key"
	"github.com/driveterm/drive/internal/proto"
	"github.com/driveterm/drive/internal/tui/util"
)

type PageID string

const (
	Login          PageID = "login"
	Register       PageID = "register"
	ForgotPassword PageID = "forgot_password"
	ResetPassword  PageID = "reset_password"
	VerifyEmail    PageID = "verify_email"
	Dashboard      PageID = "dashboard"
)

// PageChangeMsg is used to change the current page. Email and Token carry
// what the target page should be prefilled with.
type PageChangeMsg struct {
	ID    PageID
	Email string
	Token string
}

// LoggedInMsg is sent once the session has a user.
type LoggedInMsg struct {
	User proto.User
}

// LogoutMsg asks the app to end the session and return to the login page.
type LogoutMsg struct{}

// Page is a full screen view.
type Page interface {
	util.Model
	util.Sizeable
	// Bindings lists the keys shown in the help bar.
	Bindings() []key.Binding
}

package app

import (
	"context"
	"log/slog"
	"strings"

	"github.com/driveterm/drive/internal/client"
	"github.com/driveterm/drive/internal/log"
	"github.com/driveterm/drive/internal/proto"
)

// Success messages of the auth flows.
const (
	MsgWelcomeBack     = "Welcome back!"
	MsgAccountCreated  = "Account created! Please check your email to verify."
	MsgEmailVerified   = "Email verified successfully"
	MsgResetLinkSent   = "Password reset link sent to your email"
	MsgPasswordReset   = "Password reset successful. You can now login."
	MsgLoggedOut       = "Logged out"
	ResetLinkExpiresIn = "30 minutes"
)

// AuthError is a failed auth request. Message is the server's error text,
// or a generic fallback when the server gave none.
type AuthError struct {
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	return e.Message + ": " + e.Err.Error()
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

func (e *AuthError) UserMessage() string {
	return e.Message
}

func authError(err error, fallback string) error {
	return &AuthError{Message: client.ErrorMessage(err, fallback), Err: err}
}

// Login signs in and starts a session.
func (app *App) Login(ctx context.Context, email, password string) (proto.User, error) {
	req := proto.LoginRequest{Username: strings.TrimSpace(email), Password: password}
	if err := req.Validate(); err != nil {
		return proto.User{}, err
	}
	rsp, err := app.Client.Login(ctx, req)
	if err != nil {
		slog.Error("Login failed", "email", req.Username, "error", err)
		return proto.User{}, authError(err, "Login failed")
	}
	if err := app.Session.Login(rsp.User, rsp.Token); err != nil {
		// The login itself worked; only persisting it did not.
		slog.Warn("Failed to save session", "error", err)
	}
	slog.Info("Logged in", "email", rsp.User.Email, "token", log.MaskToken(rsp.Token))
	return rsp.User, nil
}

// Logout ends the session in memory and on disk.
func (app *App) Logout() error {
	app.Client.SetToken("")
	app.Drive.Reset()
	return app.Session.Logout()
}

// Register creates an account. Nothing is sent when the form is invalid.
func (app *App) Register(ctx context.Context, req proto.RegisterRequest) (string, error) {
	req.Username = strings.TrimSpace(req.Username)
	if err := req.Validate(); err != nil {
		return "", err
	}
	if _, err := app.Client.Register(ctx, req); err != nil {
		slog.Error("Registration failed", "email", req.Username, "error", err)
		return "", authError(err, "Registration failed")
	}
	return MsgAccountCreated, nil
}

func (app *App) VerifyEmail(ctx context.Context, token, email string) (string, error) {
	req := proto.VerifyEmailRequest{Token: strings.TrimSpace(token), Email: strings.TrimSpace(email)}
	if err := req.Validate(); err != nil {
		return "", err
	}
	if _, err := app.Client.VerifyEmail(ctx, req); err != nil {
		slog.Error("Verification failed", "email", req.Email, "error", err)
		return "", authError(err, "Verification failed")
	}
	return MsgEmailVerified, nil
}

func (app *App) ForgotPassword(ctx context.Context, email string) (string, error) {
	req := proto.ForgotPasswordRequest{Email: strings.TrimSpace(email)}
	if err := req.Validate(); err != nil {
		return "", err
	}
	if _, err := app.Client.ForgotPassword(ctx, req); err != nil {
		slog.Error("Forgot password failed", "email", req.Email, "error", err)
		return "", authError(err, "Failed to send reset link")
	}
	return MsgResetLinkSent, nil
}

func (app *App) ResetPassword(ctx context.Context, req proto.ResetPasswordRequest) (string, error) {
	req.Email = strings.TrimSpace(req.Email)
	req.Token = strings.TrimSpace(req.Token)
	if err := req.Validate(); err != nil {
		return "", err
	}
	if _, err := app.Client.ResetPassword(ctx, req); err != nil {
		slog.Error("Password reset failed", "email", req.Email, "error", err)
		return "", authError(err, "Failed to reset password")
	}
	return MsgPasswordReset, nil
}

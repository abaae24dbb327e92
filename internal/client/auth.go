package client

import (
	"context"
	"fmt"

	"github.com/driveterm/drive/internal/proto"
)

// Register creates an account. The backend then sends a verification email.
func (c *Client) Register(ctx context.Context, req proto.RegisterRequest) (*proto.MessageResponse, error) {
	rsp, err := c.post(ctx, "/auth/register", jsonBody(req), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to register: %w", err)
	}
	var out proto.MessageResponse
	if err := decodeResponse(rsp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyEmail confirms an email address with the token from the
// verification email.
func (c *Client) VerifyEmail(ctx context.Context, req proto.VerifyEmailRequest) (*proto.MessageResponse, error) {
	rsp, err := c.post(ctx, "/auth/verify-email", jsonBody(req), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to verify email: %w", err)
	}
	var out proto.MessageResponse
	if err := decodeResponse(rsp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login authenticates and, on success, makes the client use the returned
// token for subsequent requests.
func (c *Client) Login(ctx context.Context, req proto.LoginRequest) (*proto.LoginResponse, error) {
	rsp, err := c.post(ctx, "/auth/login", jsonBody(req), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to login: %w", err)
	}
	var out proto.LoginResponse
	if err := decodeResponse(rsp, &out); err != nil {
		return nil, err
	}
	if out.Token == "" {
		return nil, fmt.Errorf("failed to login: server returned no token")
	}
	c.SetToken(out.Token)
	return &out, nil
}

// ForgotPassword asks the backend to email a password reset link.
func (c *Client) ForgotPassword(ctx context.Context, req proto.ForgotPasswordRequest) (*proto.MessageResponse, error) {
	rsp, err := c.post(ctx, "/auth/forgot-password", jsonBody(req), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to request password reset: %w", err)
	}
	var out proto.MessageResponse
	if err := decodeResponse(rsp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ResetPassword sets a new password using the token from the reset email.
func (c *Client) ResetPassword(ctx context.Context, req proto.ResetPasswordRequest) (*proto.MessageResponse, error) {
	rsp, err := c.post(ctx, "/auth/reset-password", jsonBody(req), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to reset password: %w", err)
	}
	var out proto.MessageResponse
	if err := decodeResponse(rsp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

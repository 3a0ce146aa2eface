package api

import (
	"context"
	"net/http"

	"MindTrace/internal/models"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// Login exchanges credentials for a bearer token and installs it on the
// client.
func (c *Client) Login(ctx context.Context, email, password string) (*models.Token, error) {
	var tok models.Token
	err := c.doJSON(ctx, "auth.login", http.MethodPost, "/auth/login", LoginRequest{Email: email, Password: password}, &tok)
	if err != nil {
		return nil, err
	}
	c.SetToken(tok.AccessToken)
	return &tok, nil
}

func (c *Client) Signup(ctx context.Context, email, password, fullName string) (*models.Token, error) {
	var tok models.Token
	err := c.doJSON(ctx, "auth.signup", http.MethodPost, "/auth/signup", SignupRequest{Email: email, Password: password, FullName: fullName}, &tok)
	if err != nil {
		return nil, err
	}
	c.SetToken(tok.AccessToken)
	return &tok, nil
}

func (c *Client) Logout(ctx context.Context) error {
	err := c.doJSON(ctx, "auth.logout", http.MethodPost, "/auth/logout", nil, nil)
	c.SetToken("")
	return err
}

// ForgotPassword always succeeds on the server side regardless of whether
// the address exists.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return c.doJSON(ctx, "auth.forgot_password", http.MethodPost, "/auth/forgot-password", body, nil)
}

func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) error {
	return c.doJSON(ctx, "auth.reset_password", http.MethodPost, "/auth/reset-password", ResetPasswordRequest{Token: token, NewPassword: newPassword}, nil)
}

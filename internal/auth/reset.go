package auth

import (
	"context"

	"MindTrace/internal/validate"
	"MindTrace/pkg/errors"
	"MindTrace/pkg/notification"

	playground "github.com/go-playground/validator/v10"
)

// Backend is the slice of the API client the reset flow needs.
type Backend interface {
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

// PasswordReset backs the forgot/reset password screens. All validation
// runs before any request goes out.
type PasswordReset struct {
	backend Backend
	notices *notification.Center
	v       *playground.Validate
}

func NewPasswordReset(backend Backend, notices *notification.Center) *PasswordReset {
	return &PasswordReset{backend: backend, notices: notices, v: playground.New()}
}

// Request asks the server to mail a reset link. The server answers the
// same whether or not the address exists.
func (r *PasswordReset) Request(ctx context.Context, email string) error {
	if err := r.v.Var(email, "required,email"); err != nil {
		verr := errors.WithCode(errors.CodeValidation, "Enter a valid email address")
		r.fail(verr)
		return verr
	}
	if err := r.backend.ForgotPassword(ctx, email); err != nil {
		r.fail(err)
		return err
	}
	if r.notices != nil {
		r.notices.Success("If an account exists with this email, a reset link has been sent")
	}
	return nil
}

// Submit validates the new password locally, then redeems the token.
func (r *PasswordReset) Submit(ctx context.Context, token, newPassword, confirm string) error {
	if token == "" {
		verr := errors.WithCode(errors.CodeValidation, "Reset token is missing")
		r.fail(verr)
		return verr
	}
	if err := validate.ResetPassword(newPassword, confirm); err != nil {
		r.fail(err)
		return err
	}
	if err := r.backend.ResetPassword(ctx, token, newPassword); err != nil {
		r.fail(err)
		return err
	}
	if r.notices != nil {
		r.notices.Success("Password has been reset")
	}
	return nil
}

func (r *PasswordReset) fail(err error) {
	if r.notices != nil {
		r.notices.Error(errors.UserMessage(err))
	}
}

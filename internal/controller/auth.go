package controller

import (
	"context"

	"github.com/lazymystic/instafake-go/internal/api"
	"github.com/lazymystic/instafake-go/internal/models"
)

// Signup creates an unverified account. The session user is deliberately not
// set here: the account stays unusable until the OTP flow confirms it.
func (c *Controller) Signup(ctx context.Context, req api.SignupRequest) Route {
	if !c.checkStruct(req) {
		return RouteStay
	}

	envelope := c.Exec.Do(ctx, c.setter("signup"), func(ctx context.Context) (*models.Envelope, error) {
		return c.Users.Signup(ctx, req)
	})
	if envelope == nil {
		return RouteStay
	}

	c.Notifier.Success("Account created successfully! Please check your email for verification code.")
	return RouteVerify
}

// Login authenticates and replaces the session user with the server's copy.
func (c *Controller) Login(ctx context.Context, req api.LoginRequest) bool {
	if !c.checkStruct(req) {
		return false
	}

	envelope := c.Exec.Do(ctx, c.setter("login"), func(ctx context.Context) (*models.Envelope, error) {
		return c.Users.Login(ctx, req)
	})
	if envelope == nil {
		return false
	}

	c.Session.SetAuthUser(envelope.Data.User)
	c.Notifier.Success("Logged in successfully! Welcome back.")
	return true
}

// Logout clears the server session and the local one.
func (c *Controller) Logout(ctx context.Context) bool {
	envelope := c.Exec.Do(ctx, c.setter("logout"), func(ctx context.Context) (*models.Envelope, error) {
		return c.Users.Logout(ctx)
	})
	if envelope == nil {
		return false
	}

	c.Session.SetAuthUser(nil)
	c.Notifier.Success("Logged out successfully")
	return true
}

// RestoreSession pulls the current user for the session cookie, if any.
func (c *Controller) RestoreSession(ctx context.Context) bool {
	envelope := c.Exec.Do(ctx, c.setter("session"), func(ctx context.Context) (*models.Envelope, error) {
		return c.Users.Me(ctx)
	})
	if envelope == nil || envelope.Data.User == nil {
		return false
	}

	c.Session.SetAuthUser(envelope.Data.User)
	return true
}

// ForgetPassword requests a password-reset OTP for the email.
func (c *Controller) ForgetPassword(ctx context.Context, email string) bool {
	if err := c.Validate.Var(email, "required,email"); err != nil {
		c.Notifier.Error("Please enter a valid email address")
		return false
	}

	envelope := c.Exec.Do(ctx, c.setter("forgetPassword"), func(ctx context.Context) (*models.Envelope, error) {
		return c.Users.ForgetPassword(ctx, email)
	})
	if envelope == nil {
		return false
	}

	c.Notifier.Success("Password reset OTP sent to your email!")
	return true
}

// ResetPassword sets a new password using the emailed OTP.
func (c *Controller) ResetPassword(ctx context.Context, req api.ResetPasswordRequest) Route {
	if !c.checkStruct(req) {
		return RouteStay
	}

	envelope := c.Exec.Do(ctx, c.setter("resetPassword"), func(ctx context.Context) (*models.Envelope, error) {
		return c.Users.ResetPassword(ctx, req)
	})
	if envelope == nil {
		return RouteStay
	}

	c.Notifier.Success("Password reset successfully! You can now login with your new password.")
	return RouteLogin
}

// ChangePassword rotates the password for the logged-in user.
func (c *Controller) ChangePassword(ctx context.Context, req api.ChangePasswordRequest) bool {
	if !c.checkStruct(req) {
		return false
	}

	envelope := c.Exec.Do(ctx, c.setter("changePassword"), func(ctx context.Context) (*models.Envelope, error) {
		return c.Users.ChangePassword(ctx, req)
	})
	if envelope == nil {
		return false
	}

	c.Notifier.Success("Password changed successfully!")
	return true
}

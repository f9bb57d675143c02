package controller

import (
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/lazymystic/instafake-go/internal/api"
	"github.com/lazymystic/instafake-go/internal/config"
	"github.com/lazymystic/instafake-go/internal/notify"
	"github.com/lazymystic/instafake-go/internal/request"
	"github.com/lazymystic/instafake-go/internal/store"
)

// Route tells the front end where a flow wants to go next.
type Route int

const (
	RouteStay Route = iota
	RouteHome
	RouteLogin
	RouteVerify
)

type Controller struct {
	Users    api.UserAPI
	Posts    api.PostAPI
	Session  *store.Session
	Feed     *store.Feed
	Exec     *request.Executor
	Notifier notify.Notifier
	Cfg      *config.Config
	Validate *validator.Validate
	Log      *slog.Logger

	flags flags
}

func New(users api.UserAPI, posts api.PostAPI, session *store.Session, feed *store.Feed, exec *request.Executor, notifier notify.Notifier, cfg *config.Config, log *slog.Logger) *Controller {
	return &Controller{
		Users:    users,
		Posts:    posts,
		Session:  session,
		Feed:     feed,
		Exec:     exec,
		Notifier: notifier,
		Cfg:      cfg,
		Validate: validator.New(),
		Log:      log,
	}
}

// flags holds per-screen loading indicators, the client-side analogue of the
// component-local isLoading state.
type flags struct {
	mu sync.RWMutex
	m  map[string]bool
}

func (f *flags) set(name string, value bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.m == nil {
		f.m = make(map[string]bool)
	}
	f.m[name] = value
}

func (f *flags) get(name string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.m[name]
}

// Loading reports the loading flag for a named screen action.
func (c *Controller) Loading(name string) bool {
	return c.flags.get(name)
}

func (c *Controller) setter(name string) func(bool) {
	return func(value bool) {
		c.flags.set(name, value)
	}
}

// checkStruct validates a request client-side, surfacing one notification
// for the first violation. It blocks the network call entirely.
func (c *Controller) checkStruct(req any) bool {
	err := c.Validate.Struct(req)
	if err == nil {
		return true
	}

	var violations validator.ValidationErrors
	if errors.As(err, &violations) && len(violations) > 0 {
		c.Notifier.Error(validationMessage(violations[0]))
	} else {
		c.Notifier.Error("Please check the form and try again")
	}
	return false
}

func validationMessage(violation validator.FieldError) string {
	field := violation.Field()
	switch violation.Tag() {
	case "required":
		return fieldLabel(field) + " is required"
	case "email":
		return "Please enter a valid email address"
	case "min":
		if strings.Contains(strings.ToLower(field), "password") {
			return "Password must be at least " + violation.Param() + " characters long"
		}
		return fieldLabel(field) + " is too short"
	case "max":
		return fieldLabel(field) + " is too long"
	case "eqfield":
		return "Passwords do not match"
	case "len", "numeric":
		if field == "OTP" {
			return "OTP must be 6 digits"
		}
	}
	return "Please check the " + strings.ToLower(field) + " field"
}

func fieldLabel(field string) string {
	switch field {
	case "UserName":
		return "Username"
	case "OTP":
		return "OTP"
	case "PasswordConfirm", "NewPasswordConfirm":
		return "Password confirmation"
	case "CurrentPassword":
		return "Current password"
	case "NewPassword":
		return "New password"
	}
	return field
}

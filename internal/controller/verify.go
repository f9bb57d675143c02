package controller

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/lazymystic/instafake-go/internal/models"
)

type VerifyState int

const (
	// StateCollecting: fewer digits entered than slots.
	StateCollecting VerifyState = iota
	// StateReady: all slots filled, submit enabled.
	StateReady
	// StateSubmitting: verify call in flight.
	StateSubmitting
	// StateExpired: countdown hit zero, submission blocked until a resend.
	StateExpired
	// StateVerified: terminal, the front end redirects home.
	StateVerified
)

// VerifyFlow drives the email OTP screen: the digit slots with focus
// bookkeeping, the expiry countdown, the resend lockout, and the verify and
// resend calls. One flow instance belongs to one mount of the screen; Stop
// must run on teardown so no ticker outlives it.
type VerifyFlow struct {
	c *Controller

	mu         sync.Mutex
	slots      []string
	focus      int
	timeLeft   int // seconds until the code expires
	window     int
	lockout    int
	submitting bool
	resending  bool
	verified   bool

	stopOnce sync.Once
	done     chan struct{}
}

func (c *Controller) NewVerifyFlow() *VerifyFlow {
	return &VerifyFlow{
		c:        c,
		slots:    make([]string, c.Cfg.OTP.Digits),
		timeLeft: int(c.Cfg.OTP.Window.Seconds()),
		window:   int(c.Cfg.OTP.Window.Seconds()),
		lockout:  int(c.Cfg.OTP.ResendLockout.Seconds()),
		done:     make(chan struct{}),
	}
}

// Guard is checked once on mount: no session means login, an already
// verified user has no business here.
func (f *VerifyFlow) Guard() Route {
	user := f.c.Session.User()
	if user == nil {
		return RouteLogin
	}
	if user.IsVerified {
		return RouteHome
	}
	return RouteStay
}

// Start runs the one-second countdown until the context is cancelled or
// Stop is called.
func (f *VerifyFlow) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-f.done:
				return
			case <-ticker.C:
				f.Tick()
			}
		}
	}()
}

// Stop releases the countdown. Safe to call more than once.
func (f *VerifyFlow) Stop() {
	f.stopOnce.Do(func() {
		close(f.done)
	})
}

// Tick advances the countdown by one second, stopping at zero.
func (f *VerifyFlow) Tick() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.timeLeft > 0 {
		f.timeLeft--
	}
}

// Input places a single character into slot i and advances focus when a
// character was entered. Multi-character values are rejected outright.
func (f *VerifyFlow) Input(i int, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if i < 0 || i >= len(f.slots) || len([]rune(value)) > 1 {
		return
	}
	f.slots[i] = value
	if value != "" && i < len(f.slots)-1 {
		f.focus = i + 1
	}
}

// Backspace clears slot i, or retreats focus when the slot is already empty.
func (f *VerifyFlow) Backspace(i int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if i < 0 || i >= len(f.slots) {
		return
	}
	if f.slots[i] == "" && i > 0 {
		f.focus = i - 1
		return
	}
	f.slots[i] = ""
}

// Paste fills slots left-to-right from the pasted string, truncated to the
// slot count. Non-digit characters are dropped in place: the slot keeps its
// previous value and later digits do not shift over.
func (f *VerifyFlow) Paste(text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	runes := []rune(text)
	if len(runes) > len(f.slots) {
		runes = runes[:len(f.slots)]
	}
	for i, r := range runes {
		if unicode.IsDigit(r) {
			f.slots[i] = string(r)
		}
	}
}

// Slots returns a copy of the current slot contents.
func (f *VerifyFlow) Slots() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.slots...)
}

// Focus returns the index of the slot that currently has focus.
func (f *VerifyFlow) Focus() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.focus
}

// Code concatenates the slot contents.
func (f *VerifyFlow) Code() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return strings.Join(f.slots, "")
}

// TimeLeft reports the seconds remaining before the code expires.
func (f *VerifyFlow) TimeLeft() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.timeLeft
}

// FormatTimeLeft renders the countdown as m:ss.
func (f *VerifyFlow) FormatTimeLeft() string {
	seconds := f.TimeLeft()
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// State derives the current machine state.
func (f *VerifyFlow) State() VerifyState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state()
}

func (f *VerifyFlow) state() VerifyState {
	switch {
	case f.verified:
		return StateVerified
	case f.submitting:
		return StateSubmitting
	case f.timeLeft == 0:
		return StateExpired
	case f.filled():
		return StateReady
	default:
		return StateCollecting
	}
}

func (f *VerifyFlow) filled() bool {
	for _, slot := range f.slots {
		if slot == "" {
			return false
		}
	}
	return true
}

// CanSubmit reports whether the verify button is enabled.
func (f *VerifyFlow) CanSubmit() bool {
	return f.State() == StateReady
}

// CanResend reports whether the resend control is enabled: the first minute
// of the window is locked out, and a resend already in flight blocks too.
func (f *VerifyFlow) CanResend() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return !f.resending && !f.verified && f.timeLeft <= f.window-f.lockout
}

// Submit sends the concatenated code. On success the session user is
// replaced with the verified user the server returned and the flow becomes
// terminal; on failure the entered code stays put for correction.
func (f *VerifyFlow) Submit(ctx context.Context) Route {
	f.mu.Lock()
	state := f.state()
	if state != StateReady {
		digits := len(f.slots)
		f.mu.Unlock()
		switch state {
		case StateExpired:
			f.c.Notifier.Error("OTP has expired. Please request a new one.")
		case StateCollecting:
			f.c.Notifier.Error(fmt.Sprintf("Please enter a complete %d-digit OTP", digits))
		}
		return RouteStay
	}
	code := strings.Join(f.slots, "")
	f.mu.Unlock()

	envelope := f.c.Exec.Do(ctx, f.setSubmitting, func(ctx context.Context) (*models.Envelope, error) {
		return f.c.Users.VerifyOTP(ctx, code)
	})
	if envelope == nil {
		return RouteStay
	}

	if envelope.Data.User != nil {
		f.c.Session.SetAuthUser(envelope.Data.User)
	}
	f.mu.Lock()
	f.verified = true
	f.mu.Unlock()

	f.c.Notifier.Success("Account verified successfully!")
	return RouteHome
}

// Resend asks for a fresh code. On success the window restarts, the slots
// clear, and focus returns to the first slot. Verification state is
// untouched.
func (f *VerifyFlow) Resend(ctx context.Context) bool {
	if !f.CanResend() {
		return false
	}

	envelope := f.c.Exec.Do(ctx, f.setResending, func(ctx context.Context) (*models.Envelope, error) {
		return f.c.Users.ResendOTP(ctx)
	})
	if envelope == nil {
		return false
	}

	f.mu.Lock()
	f.timeLeft = f.window
	for i := range f.slots {
		f.slots[i] = ""
	}
	f.focus = 0
	f.mu.Unlock()

	f.c.Notifier.Success("OTP sent successfully!")
	return true
}

func (f *VerifyFlow) setSubmitting(value bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitting = value
}

func (f *VerifyFlow) setResending(value bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resending = value
}

package notify

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// Notifier is the toast surface: one success or error line per user action.
type Notifier interface {
	Success(message string)
	Error(message string)
}

type logNotifier struct {
	log *slog.Logger
}

func NewLogNotifier(log *slog.Logger) Notifier {
	return &logNotifier{log: log}
}

func (n *logNotifier) Success(message string) {
	n.log.Info("notification", "kind", "success", "message", message)
}

func (n *logNotifier) Error(message string) {
	n.log.Warn("notification", "kind", "error", "message", message)
}

type consoleNotifier struct {
	mu  sync.Mutex
	out io.Writer
}

// NewConsoleNotifier prints notifications to the terminal, the CLI's stand-in
// for toast popups.
func NewConsoleNotifier(out io.Writer) Notifier {
	return &consoleNotifier{out: out}
}

func (n *consoleNotifier) Success(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintf(n.out, "[ok] %s\n", message)
}

func (n *consoleNotifier) Error(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintf(n.out, "[error] %s\n", message)
}

// Recorder collects notifications for assertions in tests and for rendering
// in the terminal front end.
type Recorder struct {
	mu        sync.Mutex
	successes []string
	errors    []string
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Success(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.successes = append(r.successes, message)
}

func (r *Recorder) Error(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, message)
}

func (r *Recorder) Successes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.successes...)
}

func (r *Recorder) Errors() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.errors...)
}

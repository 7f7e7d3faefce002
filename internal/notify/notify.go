// Package notify surfaces user-facing outcomes (login, logout, trip
// changes) outside the TUI.
package notify

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
)

// Notifier receives one-line, user-facing messages.
type Notifier interface {
	Success(msg string)
	Info(msg string)
	Warning(msg string)
	Error(msg string)
}

// Discard drops every message.
var Discard Notifier = discard{}

type discard struct{}

func (discard) Success(string) {}
func (discard) Info(string)    {}
func (discard) Warning(string) {}
func (discard) Error(string)   {}

// Options configures a Printer.
type Options struct {
	Out     io.Writer
	Err     io.Writer
	NoColor bool
	Quiet   bool
}

// Printer writes notifications to the terminal. Success and info go to
// Out, warnings and errors to Err. Quiet suppresses everything but errors.
type Printer struct {
	mu        sync.Mutex
	out       io.Writer
	err       io.Writer
	useColors bool
	quiet     bool
}

// NewPrinter returns a Printer; nil writers default to stdout and stderr.
func NewPrinter(opts Options) *Printer {
	p := &Printer{
		out:       opts.Out,
		err:       opts.Err,
		useColors: ResolveColors(opts.NoColor),
		quiet:     opts.Quiet,
	}
	if p.out == nil {
		p.out = os.Stdout
	}
	if p.err == nil {
		p.err = os.Stderr
	}
	return p
}

// ResolveColors reports whether colored output is wanted given the
// --no-color setting and the environment.
func ResolveColors(noColor bool) bool {
	if noColor {
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return os.Getenv("TERM") != "dumb"
}

func (p *Printer) Success(msg string) {
	if !p.quiet {
		p.write(p.out, color.FgGreen, "✓ ", "[OK] ", msg)
	}
}

func (p *Printer) Info(msg string) {
	if !p.quiet {
		p.write(p.out, color.FgCyan, "", "", msg)
	}
}

func (p *Printer) Warning(msg string) {
	if !p.quiet {
		p.write(p.err, color.FgYellow, "⚠ ", "[WARN] ", msg)
	}
}

func (p *Printer) Error(msg string) {
	p.write(p.err, color.FgRed, "✗ ", "[ERROR] ", msg)
}

func (p *Printer) write(w io.Writer, attr color.Attribute, colorPrefix, plainPrefix, msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.useColors {
		c := color.New(attr)
		c.EnableColor()
		_, _ = c.Fprintln(w, colorPrefix+msg)
		return
	}
	_, _ = fmt.Fprintln(w, plainPrefix+msg)
}

// Package ui prints styled run status to a terminal. Output degrades to
// plain text when the terminal reports no color support or NO_COLOR is set.
package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

// Printer writes status lines for a restore run. A quiet printer suppresses
// everything except errors.
type Printer struct {
	out   io.Writer
	quiet bool
	color bool
}

// NewPrinter creates a Printer writing to out. Color support is derived from
// the environment via termenv.
func NewPrinter(out io.Writer, quiet bool) *Printer {
	if out == nil {
		out = io.Discard
	}
	return &Printer{
		out:   out,
		quiet: quiet,
		color: termenv.EnvColorProfile() != termenv.Ascii,
	}
}

func (p *Printer) Header(format string, a ...any)  { p.print(headerStyle, false, format, a...) }
func (p *Printer) Info(format string, a ...any)    { p.print(infoStyle, false, format, a...) }
func (p *Printer) Success(format string, a ...any) { p.print(successStyle, false, format, a...) }
func (p *Printer) Warning(format string, a ...any) { p.print(warningStyle, false, format, a...) }
func (p *Printer) Error(format string, a ...any)   { p.print(errorStyle, true, format, a...) }

func (p *Printer) print(style lipgloss.Style, always bool, format string, a ...any) {
	if p.quiet && !always {
		return
	}
	line := fmt.Sprintf(format, a...)
	if p.color {
		line = style.Render(line)
	}
	fmt.Fprintln(p.out, line)
}

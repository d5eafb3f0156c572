package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	ColorPrimary = lipgloss.Color("#8B5CF6") // Violet
	ColorSuccess = lipgloss.Color("#10B981") // Emerald
	ColorWarning = lipgloss.Color("#F59E0B") // Amber
	ColorError   = lipgloss.Color("#EF4444") // Red
	ColorMuted   = lipgloss.Color("#6B7280") // Gray
)

// Printer writes styled messages. Styles come from a renderer bound to the
// output, so colors are dropped when it is not a terminal.
type Printer struct {
	out io.Writer

	section lipgloss.Style
	key     lipgloss.Style
	success lipgloss.Style
	warning lipgloss.Style
	err     lipgloss.Style
	muted   lipgloss.Style
}

// NewPrinter creates a printer for out
func NewPrinter(out io.Writer) *Printer {
	r := lipgloss.NewRenderer(out)
	return &Printer{
		out:     out,
		section: r.NewStyle().Foreground(ColorPrimary).Bold(true),
		key:     r.NewStyle().Foreground(ColorMuted),
		success: r.NewStyle().Foreground(ColorSuccess).Bold(true),
		warning: r.NewStyle().Foreground(ColorWarning).Bold(true),
		err:     r.NewStyle().Foreground(ColorError).Bold(true),
		muted:   r.NewStyle().Foreground(ColorMuted),
	}
}

// Writer returns the underlying output
func (p *Printer) Writer() io.Writer { return p.out }

// Section prints a heading
func (p *Printer) Section(title string) {
	fmt.Fprintln(p.out, p.section.Render(title))
}

// Value prints an aligned key/value line
func (p *Printer) Value(key string, value interface{}) {
	pad := 12 - len(key) - 1
	if pad < 0 {
		pad = 0
	}
	fmt.Fprintf(p.out, "  %s%*s %v\n", p.key.Render(key+":"), pad, "", value)
}

// Success prints a confirmation
func (p *Printer) Success(format string, args ...interface{}) {
	fmt.Fprintf(p.out, "%s %s\n", p.success.Render("ok"), fmt.Sprintf(format, args...))
}

// Warning prints a warning
func (p *Printer) Warning(format string, args ...interface{}) {
	fmt.Fprintf(p.out, "%s %s\n", p.warning.Render("warning:"), fmt.Sprintf(format, args...))
}

// Error prints an error line
func (p *Printer) Error(format string, args ...interface{}) {
	fmt.Fprintf(p.out, "%s %s\n", p.err.Render("error:"), fmt.Sprintf(format, args...))
}

// Muted prints secondary text
func (p *Printer) Muted(text string) {
	fmt.Fprint(p.out, p.muted.Render(text))
}

package statusman

import (
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
)

// Styler decorates report cells with ANSI escape sequences. The zero value
// is a disabled styler that returns all text unchanged, which keeps report
// files and pipes free of escape garbage.
type Styler struct {
	enabled bool
}

// NewStyler decides whether the report gets colorized. Mode "always" and
// "never" force the decision, "auto" turns colors on only when w is an
// interactive terminal.
func NewStyler(mode string, w io.Writer) Styler {
	switch mode {
	case ColorModeAlways:
		return Styler{enabled: true}
	case ColorModeNever:
		return Styler{}
	}

	f, ok := w.(*os.File)
	if !ok {
		return Styler{}
	}

	return Styler{enabled: isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())}
}

// apply wraps str into the color's escape sequence. Cells are padded to
// their column width before decoration so the escape bytes never count
// against the width.
func (s Styler) apply(c text.Color, str string) string {
	if !s.enabled || str == "" {
		return str
	}

	return c.EscapeSeq() + str + text.EscapeReset
}

func (s Styler) Bold(str string) string {
	return s.apply(text.Bold, str)
}

func (s Styler) Red(str string) string {
	return s.apply(text.FgRed, str)
}

func (s Styler) Green(str string) string {
	return s.apply(text.FgGreen, str)
}

func (s Styler) Yellow(str string) string {
	return s.apply(text.FgYellow, str)
}

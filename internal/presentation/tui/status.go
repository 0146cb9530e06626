package tui

import (
	"io"
	"os"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Styler colors status names for terminal output.
type Styler struct {
	profile termenv.Profile
}

// NewStyler picks a color profile for w. Non-terminals get plain text.
func NewStyler(w io.Writer) *Styler {
	if !IsTerminal(w) {
		return &Styler{profile: termenv.Ascii}
	}
	return &Styler{profile: termenv.ColorProfile()}
}

// Status renders s in its color: green, red, yellow or magenta.
func (st *Styler) Status(s domain.Status) string {
	color := "#a3a3a3"
	switch s {
	case domain.Success:
		color = "#22c55e"
	case domain.Failure:
		color = "#ef4444"
	case domain.Running:
		color = "#eab308"
	case domain.Error:
		color = "#d946ef"
	}
	return st.profile.String(s.String()).Foreground(st.profile.Color(color)).Bold().String()
}

// Faint renders secondary text.
func (st *Styler) Faint(text string) string {
	return st.profile.String(text).Faint().String()
}

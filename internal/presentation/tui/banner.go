package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the Arbor ASCII art banner.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{"     _         _                ", "#4ade80"},
		{"    / \\   _ __| |__   ___  _ __ ", "#22c55e"},
		{"   / _ \\ | '__| '_ \\ / _ \\| '__|", "#16a34a"},
		{"  / ___ \\| |  | |_) | (_) | |   ", "#15803d"},
		{" /_/   \\_\\_|  |_.__/ \\___/|_|   ", "#166534"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}

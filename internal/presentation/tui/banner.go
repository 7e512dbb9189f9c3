package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the zconv ASCII banner and version to w.
// Colors are dropped when w is not a color terminal.
func PrintBanner(w io.Writer, version string) {
	p := termenv.NewOutput(w).ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{`  ____ ___ ___  _ __ __   __`, "#818cf8"},
		{` |_  // __/ _ \| '_ \\ \ / /`, "#a78bfa"},
		{`  / /| (_| (_) | | | |\ V / `, "#e879f9"},
		{` /___|\___\___/|_| |_| \_/  `, "#fb7185"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, p.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w, p.String("  v"+version).Faint())
	fmt.Fprintln(w)
}

package terminal

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Style selects how regions are drawn.
type Style string

const (
	StyleAuto     Style = "auto"
	StylePlain    Style = "plain"
	StyleANSI     Style = "ansi"
	StyleMarkdown Style = "markdown"
)

// ParseStyle validates a style name. Empty means auto.
func ParseStyle(s string) (Style, error) {
	switch st := Style(strings.ToLower(strings.TrimSpace(s))); st {
	case "":
		return StyleAuto, nil
	case StyleAuto, StylePlain, StyleANSI, StyleMarkdown:
		return st, nil
	}
	return "", fmt.Errorf("unknown style %q (want auto, plain, ansi or markdown)", s)
}

// Resolve turns auto into a concrete style: ANSI on a terminal, plain otherwise.
func Resolve(s Style, w io.Writer) Style {
	if s != StyleAuto && s != "" {
		return s
	}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return StyleANSI
	}
	return StylePlain
}

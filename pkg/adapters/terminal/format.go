package terminal

import (
	"strconv"
	"strings"

	"github.com/muesli/termenv"

	"github.com/aretw0/zconv/pkg/view"
)

const dangerColor = "#dc3545"

// plain writes text only; a break starts a new line.
func plain(nodes []view.Node) string {
	var b strings.Builder
	for i, n := range nodes {
		if n.Kind == view.KindBlock && i > 0 {
			b.WriteByte('\n')
		}
		writePlain(&b, n)
	}
	return b.String()
}

func writePlain(b *strings.Builder, n view.Node) {
	switch n.Kind {
	case view.KindBreak:
		b.WriteByte('\n')
	case view.KindBlock:
		for _, c := range n.Children {
			writePlain(b, c)
		}
	default:
		b.WriteString(sanitize(n.Text))
	}
}

// sanitize spells out C0, DEL and C1 control characters (`\x1b`, `\a`, `\u009b`)
// so text from the server can never drive the terminal.
func sanitize(s string) string {
	if strings.IndexFunc(s, isControl) < 0 {
		return s
	}
	var b strings.Builder
	for _, r := range s {
		if isControl(r) {
			q := strconv.QuoteRune(r)
			b.WriteString(q[1 : len(q)-1])
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isControl(r rune) bool {
	return r < 0x20 || (r >= 0x7f && r <= 0x9f)
}

func ansi(p termenv.Profile, nodes []view.Node) string {
	var b strings.Builder
	for i, n := range nodes {
		if n.Kind == view.KindBlock && i > 0 {
			b.WriteByte('\n')
		}
		writeANSI(&b, p, n)
	}
	return b.String()
}

func writeANSI(b *strings.Builder, p termenv.Profile, n view.Node) {
	switch n.Kind {
	case view.KindStrong:
		b.WriteString(p.String(sanitize(n.Text)).Bold().String())
	case view.KindDanger:
		b.WriteString(p.String(sanitize(n.Text)).Foreground(p.Color(dangerColor)).String())
	case view.KindMuted:
		b.WriteString(p.String(sanitize(n.Text)).Faint().String())
	case view.KindBreak:
		b.WriteByte('\n')
	case view.KindBlock:
		for _, c := range n.Children {
			writeANSI(b, p, c)
		}
	default:
		b.WriteString(sanitize(n.Text))
	}
}

// markdown builds a document for glamour. Each block is a paragraph.
func markdown(nodes []view.Node) string {
	var b strings.Builder
	for i, n := range nodes {
		if n.Kind == view.KindBlock && i > 0 {
			b.WriteString("\n\n")
		}
		writeMarkdown(&b, n)
	}
	return b.String()
}

func writeMarkdown(b *strings.Builder, n view.Node) {
	switch n.Kind {
	case view.KindStrong:
		b.WriteString("**" + escapeMarkdown(n.Text) + "**")
	case view.KindDanger:
		b.WriteString("**" + escapeMarkdown(n.Text) + "**")
	case view.KindMuted:
		b.WriteString("_" + escapeMarkdown(n.Text) + "_")
	case view.KindBreak:
		b.WriteString("  \n")
	case view.KindBlock:
		for _, c := range n.Children {
			writeMarkdown(b, c)
		}
	default:
		b.WriteString(escapeMarkdown(n.Text))
	}
}

// escapeMarkdown backslash-escapes ASCII punctuation so input is shown literally.
func escapeMarkdown(s string) string {
	var b strings.Builder
	for _, r := range sanitize(s) {
		if r < 128 && strings.ContainsRune("\\`*_{}[]()<>#+-.!|~&", r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

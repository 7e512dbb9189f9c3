// Package view describes what a display region shows as a small fragment tree.
//
// Components never build markup. They hand regions a tree of typed nodes and
// each region adapter decides how to draw it, escaping text on the way out.
package view

import (
	"strings"

	"github.com/aretw0/zconv/pkg/domain"
)

// Kind identifies a fragment node.
type Kind int

const (
	// KindText is literal text.
	KindText Kind = iota
	// KindStrong is emphasized text (<strong> in HTML).
	KindStrong
	// KindBreak is a line break with no content.
	KindBreak
	// KindDanger is error-styled text.
	KindDanger
	// KindMuted is placeholder-styled text.
	KindMuted
	// KindBlock groups Children into one block.
	KindBlock
)

// Node is a single fragment. Text holds the literal content of leaf nodes;
// Children is only used by KindBlock.
type Node struct {
	Kind     Kind
	Text     string
	Children []Node
}

// Text is literal text.
func Text(s string) Node { return Node{Kind: KindText, Text: s} }

// Strong is emphasized text.
func Strong(s string) Node { return Node{Kind: KindStrong, Text: s} }

// Break ends the current line.
func Break() Node { return Node{Kind: KindBreak} }

// Danger is error-styled text.
func Danger(s string) Node { return Node{Kind: KindDanger, Text: s} }

// Muted is placeholder-styled text.
func Muted(s string) Node { return Node{Kind: KindMuted, Text: s} }

// Block groups children into one rendered block (a <div> in HTML).
func Block(children ...Node) Node { return Node{Kind: KindBlock, Children: children} }

// Class returns the style class a node carries, if any.
func (n Node) Class() string {
	switch n.Kind {
	case KindDanger:
		return domain.ClassDanger
	case KindMuted:
		return domain.ClassMuted
	}
	return ""
}

// PlainText flattens fragments to their text content.
// Breaks contribute nothing and top-level blocks are separated by newlines.
func PlainText(nodes []Node) string {
	var b strings.Builder
	for i, n := range nodes {
		if n.Kind == KindBlock && i > 0 {
			b.WriteByte('\n')
		}
		writeText(&b, n)
	}
	return b.String()
}

func writeText(b *strings.Builder, n Node) {
	switch n.Kind {
	case KindBreak:
	case KindBlock:
		for _, c := range n.Children {
			writeText(b, c)
		}
	default:
		b.WriteString(n.Text)
	}
}

// Blocks returns the top-level block nodes.
func Blocks(nodes []Node) []Node {
	var out []Node
	for _, n := range nodes {
		if n.Kind == KindBlock {
			out = append(out, n)
		}
	}
	return out
}

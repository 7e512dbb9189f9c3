package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/zconv/pkg/console"
	"github.com/aretw0/zconv/pkg/domain"
)

// Overlay highlights elements on the graph.
type Overlay struct {
	// Active is the element that raised the last event.
	Active string
}

// GenerateMermaid produces a Mermaid flowchart of how events flow from
// elements to the regions they update.
// It applies semantic styling:
// - Window: ((Circle))
// - Form: [/Parallelogram/]
// - Region: [(Cylinder)]
// - Default: [Rectangle]
func GenerateMermaid(bindings []console.Binding, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	declared := make(map[string]bool)
	declare := func(id string, region bool) string {
		safeID := sanitizeMermaidID(id)
		if declared[safeID] {
			return safeID
		}
		declared[safeID] = true

		opener, closer := "[", "]"
		switch {
		case region:
			opener, closer = "[(", ")]"
		case id == domain.WindowID:
			opener, closer = "((", "))"
		case id == domain.FormID:
			opener, closer = "[/", "/]"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, id, closer))
		return safeID
	}

	for _, b := range bindings {
		from := declare(b.Target, false)
		for _, region := range b.Writes {
			to := declare(region, true)
			arrow := fmt.Sprintf("-- \"%s\" -->", strings.ReplaceAll(b.Type, "\"", "'"))
			if b.Type == console.EventLoad {
				arrow = fmt.Sprintf("-. \"%s\" .->", b.Type)
			}
			sb.WriteString(fmt.Sprintf("    %s %s %s\n", from, arrow, to))
		}
	}

	if overlay != nil && overlay.Active != "" {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast regardless of theme
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		sb.WriteString(fmt.Sprintf("    class %s current;\n", sanitizeMermaidID(overlay.Active)))
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	return s
}

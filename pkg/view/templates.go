package view

import "github.com/aretw0/zconv/pkg/domain"

// Placeholder is shown in the history region when there is nothing to list.
const Placeholder = "No history found."

// Unexpected is the message shown for a conversion response of unknown shape.
const Unexpected = "unexpected response"

// Output renders a converted sequence: "Output: [1, 2, 3]".
func Output(vs domain.Values) []Node {
	return []Node{Strong("Output:"), Text(" " + vs.String())}
}

// Error renders an error-styled message: "Error: <msg>".
func Error(msg string) []Node {
	return []Node{Danger("Error: " + msg)}
}

// Empty renders the muted history placeholder.
func Empty() []Node {
	return []Node{Muted(Placeholder)}
}

// Entry renders one history block: "Input: <input> Output: [..]".
func Entry(e domain.HistoryEntry) Node {
	return Block(
		Strong("Input:"),
		Text(" "+e.Input+" "),
		Break(),
		Strong("Output:"),
		Text(" "+e.Output.String()),
	)
}

// History renders a whole history list, or the placeholder when it is empty.
func History(list domain.HistoryList) []Node {
	if len(list) == 0 {
		return Empty()
	}
	nodes := make([]Node, len(list))
	for i, e := range list {
		nodes[i] = Entry(e)
	}
	return nodes
}

// Result renders a decoded conversion response.
func Result(res domain.ConversionResult) []Node {
	switch res.Kind {
	case domain.KindOutput:
		return Output(res.Values)
	case domain.KindDetail:
		return Error(res.Detail)
	default:
		return Error(Unexpected)
	}
}

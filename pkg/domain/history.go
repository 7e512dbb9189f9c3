package domain

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// HistoryEntry is one prior conversion as reported by the history route.
type HistoryEntry struct {
	Input  string
	Output Values
}

// HistoryList is ordered exactly as the server returned it.
type HistoryList []HistoryEntry

// DecodeHistory decodes a history response body.
// A missing, falsy or empty history field yields an empty list, as does a
// number, boolean or object without a length.
// An entry whose output is not a sequence makes the whole body malformed.
func DecodeHistory(body []byte) (HistoryList, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: body is not valid JSON", ErrMalformedResponse)
	}

	history := gjson.GetBytes(body, FieldHistory)
	if !truthy(history) {
		return nil, nil
	}
	if !history.IsArray() {
		// Only values with a positive length get iterated, and they cannot be.
		// Anything else without a length reads as an empty history.
		if history.Type == gjson.String || history.Get("length").Num > 0 {
			return nil, fmt.Errorf("%w: history is not a sequence", ErrMalformedResponse)
		}
		return nil, nil
	}

	items := history.Array()
	list := make(HistoryList, 0, len(items))
	for i, item := range items {
		output := item.Get(FieldOutput)
		if !output.IsArray() {
			return nil, fmt.Errorf("%w: history entry %d has no output sequence", ErrMalformedResponse, i)
		}
		list = append(list, HistoryEntry{
			Input:  stringify(item.Get(FieldInput)),
			Output: valuesOf(output),
		})
	}
	return list, nil
}

// Record is a history entry as persisted by the conversion API.
// Sealed carries the ciphertext when the record is encrypted at rest,
// in which case Input and Output are empty.
type Record struct {
	Input  string `json:"input,omitempty" bson:"input,omitempty"`
	Output []int  `json:"output,omitempty" bson:"output,omitempty"`
	Sealed string `json:"sealed,omitempty" bson:"sealed,omitempty"`
}

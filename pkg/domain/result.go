package domain

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// ResultKind tags the variant held by a ConversionResult.
type ResultKind int

const (
	// KindUnrecognized means the response carried none of output, result or detail.
	KindUnrecognized ResultKind = iota
	// KindOutput means the conversion succeeded.
	KindOutput
	// KindDetail means the API reported an application-level error.
	KindDetail
)

func (k ResultKind) String() string {
	switch k {
	case KindOutput:
		return "output"
	case KindDetail:
		return "detail"
	default:
		return "unrecognized"
	}
}

// ConversionResult is the decoded body of the conversion route.
type ConversionResult struct {
	Kind ResultKind
	// Field is the wire field the variant was decoded from ("output", "result" or "detail").
	Field  string
	Values Values
	Detail string
}

// Output builds a successful result.
func Output(vs Values) ConversionResult {
	return ConversionResult{Kind: KindOutput, Field: FieldOutput, Values: vs}
}

// Detail builds an application-level error result.
func Detail(msg string) ConversionResult {
	return ConversionResult{Kind: KindDetail, Field: FieldDetail, Detail: msg}
}

// DecodeConversion decodes a conversion response body.
// Fields are checked in order output, result, detail; the first truthy one wins.
// A body that is not JSON, or an output/result field that is not a sequence,
// is reported as ErrMalformedResponse.
func DecodeConversion(body []byte) (ConversionResult, error) {
	if !gjson.ValidBytes(body) {
		return ConversionResult{}, fmt.Errorf("%w: body is not valid JSON", ErrMalformedResponse)
	}
	parsed := gjson.ParseBytes(body)

	for _, field := range []string{FieldOutput, FieldResult} {
		r := parsed.Get(field)
		if !truthy(r) {
			continue
		}
		if !r.IsArray() {
			return ConversionResult{}, fmt.Errorf("%w: %s is not a sequence", ErrMalformedResponse, field)
		}
		return ConversionResult{Kind: KindOutput, Field: field, Values: valuesOf(r)}, nil
	}

	if r := parsed.Get(FieldDetail); truthy(r) {
		return ConversionResult{Kind: KindDetail, Field: FieldDetail, Detail: stringify(r)}, nil
	}

	return ConversionResult{Kind: KindUnrecognized}, nil
}

package domain

import (
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Value is one element of a converted sequence.
// It keeps the raw JSON so it is displayed the way the API spelled it.
type Value struct {
	raw gjson.Result
}

// ValueOf wraps an already parsed JSON value.
func ValueOf(r gjson.Result) Value {
	return Value{raw: r}
}

// Int builds a numeric Value.
func Int(n int) Value {
	return Value{raw: gjson.Parse(strconv.Itoa(n))}
}

// String builds a string Value.
func String(s string) Value {
	return Value{raw: gjson.Result{Type: gjson.String, Str: s, Raw: strconv.Quote(s)}}
}

// Raw returns the JSON text of the value.
func (v Value) Raw() string {
	return v.raw.Raw
}

// String converts the value the way sequence joining does on the original page:
// numbers in shortest form, strings verbatim, null as empty, nested sequences
// joined with "," and objects as "[object Object]".
func (v Value) String() string {
	return stringify(v.raw)
}

func stringify(r gjson.Result) string {
	switch r.Type {
	case gjson.Null:
		return ""
	case gjson.False:
		return "false"
	case gjson.True:
		return "true"
	case gjson.Number:
		return formatNumber(r.Num)
	case gjson.String:
		return r.Str
	case gjson.JSON:
		if r.IsArray() {
			items := r.Array()
			parts := make([]string, len(items))
			for i, item := range items {
				parts[i] = stringify(item)
			}
			return strings.Join(parts, ",")
		}
		return "[object Object]"
	}
	return ""
}

func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}
	abs := math.Abs(f)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	s = strings.Replace(s, "e-0", "e-", 1)
	s = strings.Replace(s, "e+0", "e+", 1)
	return s
}

// truthy reports whether a JSON value would pass a plain truthiness check.
func truthy(r gjson.Result) bool {
	if !r.Exists() {
		return false
	}
	switch r.Type {
	case gjson.Null, gjson.False:
		return false
	case gjson.Number:
		return r.Num != 0 && !math.IsNaN(r.Num)
	case gjson.String:
		return r.Str != ""
	}
	return true
}

// Values is an ordered sequence of Value.
type Values []Value

// Ints is a convenience constructor for numeric sequences.
func Ints(ns ...int) Values {
	vs := make(Values, len(ns))
	for i, n := range ns {
		vs[i] = Int(n)
	}
	return vs
}

// Join concatenates the values with sep.
func (vs Values) Join(sep string) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = v.String()
	}
	return strings.Join(parts, sep)
}

// String renders the bracketed display form, e.g. "[1, 2, 3]".
func (vs Values) String() string {
	return "[" + vs.Join(", ") + "]"
}

func valuesOf(r gjson.Result) Values {
	items := r.Array()
	vs := make(Values, len(items))
	for i, item := range items {
		vs[i] = ValueOf(item)
	}
	return vs
}

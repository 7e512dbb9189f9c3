package terminal

import (
	"bytes"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/zconv/pkg/domain"
	"github.com/aretw0/zconv/pkg/view"
)

func TestParseStyle(t *testing.T) {
	tests := []struct {
		in      string
		want    Style
		wantErr bool
	}{
		{"", StyleAuto, false},
		{"auto", StyleAuto, false},
		{"Plain", StylePlain, false},
		{" ansi ", StyleANSI, false},
		{"markdown", StyleMarkdown, false},
		{"html", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStyle(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_NonTerminalIsPlain(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, StylePlain, Resolve(StyleAuto, &buf))
	assert.Equal(t, StyleMarkdown, Resolve(StyleMarkdown, &buf))
}

func TestDocument_PlainPrintsOnReplace(t *testing.T) {
	var buf bytes.Buffer
	doc, err := New(&buf, WithStyle(StylePlain))
	require.NoError(t, err)

	result, err := doc.Region(domain.ResultAreaID)
	require.NoError(t, err)
	history, err := doc.Region(domain.HistoryAreaID)
	require.NoError(t, err)

	result.Replace(view.Output(domain.Ints(28, 53, 1))...)
	history.Replace(view.History(domain.HistoryList{
		{Input: "abc", Output: domain.Ints(2)},
		{Input: "3,1,2", Output: domain.Values{}},
	})...)

	want := "Output: [28, 53, 1]\n" +
		"History:\n" +
		"Input: abc \nOutput: [2]\n" +
		"Input: 3,1,2 \nOutput: []\n"
	assert.Equal(t, want, buf.String())
	assert.Equal(t, "Output: [28, 53, 1]", doc.Result().Text())
}

func TestDocument_ClearPrintsNothing(t *testing.T) {
	var buf bytes.Buffer
	doc, err := New(&buf, WithStyle(StylePlain))
	require.NoError(t, err)

	result, err := doc.Region(domain.ResultAreaID)
	require.NoError(t, err)
	result.Replace(view.Error("boom")...)
	buf.Reset()

	result.Clear()
	assert.Empty(t, buf.String())
	assert.Empty(t, doc.Result().Nodes())
}

func TestDocument_ANSI(t *testing.T) {
	var buf bytes.Buffer
	doc, err := New(&buf, WithStyle(StyleANSI), WithProfile(termenv.TrueColor))
	require.NoError(t, err)

	result, err := doc.Region(domain.ResultAreaID)
	require.NoError(t, err)
	result.Replace(view.Error("boom")...)

	out := buf.String()
	assert.Contains(t, out, "Error: boom")
	assert.Contains(t, out, "\x1b[", "danger text is colored")
}

func TestDocument_ANSIWithAsciiProfileIsPlain(t *testing.T) {
	var buf bytes.Buffer
	doc, err := New(&buf, WithStyle(StyleANSI), WithProfile(termenv.Ascii))
	require.NoError(t, err)

	got, err := doc.Format(view.Output(domain.Ints(1, 2)))
	require.NoError(t, err)
	assert.Equal(t, "Output: [1, 2]", got)
}

func TestDocument_Markdown(t *testing.T) {
	var buf bytes.Buffer
	doc, err := New(&buf, WithStyle(StyleMarkdown))
	require.NoError(t, err)

	got, err := doc.Format(view.History(domain.HistoryList{{Input: "a*b_c", Output: domain.Ints(1, 2, 3)}}))
	require.NoError(t, err)
	assert.Contains(t, got, "a*b_c", "input is shown literally")
	assert.Contains(t, got, "1, 2, 3")
}

func TestEscapeMarkdown(t *testing.T) {
	assert.Equal(t, `\[1, 2\]`, escapeMarkdown("[1, 2]"))
	assert.Equal(t, `\<b\>`, escapeMarkdown("<b>"))
	assert.Equal(t, "dz a", escapeMarkdown("dz a"))
}

const hostileInput = "ab\x1b]0;pwned\a\x1b[2Jc"

func TestDocument_ControlCharactersAreSpelledOut(t *testing.T) {
	list := domain.HistoryList{{Input: hostileInput, Output: domain.Ints(2, 59)}}

	t.Run("plain", func(t *testing.T) {
		var buf bytes.Buffer
		doc, err := New(&buf, WithStyle(StylePlain))
		require.NoError(t, err)
		history, err := doc.Region(domain.HistoryAreaID)
		require.NoError(t, err)

		history.Replace(view.History(list)...)
		assert.Equal(t, "History:\nInput: ab\\x1b]0;pwned\\a\\x1b[2Jc \nOutput: [2, 59]\n", buf.String())
	})

	t.Run("ansi", func(t *testing.T) {
		var buf bytes.Buffer
		doc, err := New(&buf, WithStyle(StyleANSI), WithProfile(termenv.TrueColor))
		require.NoError(t, err)
		result, err := doc.Region(domain.ResultAreaID)
		require.NoError(t, err)

		result.Replace(view.Error(hostileInput + "\u009b31m")...)
		out := buf.String()
		assert.NotContains(t, out, "\x1b]0")
		assert.NotContains(t, out, "\x1b[2J")
		assert.NotContains(t, out, "\a")
		assert.NotContains(t, out, "\u009b")
		assert.Contains(t, out, `\u009b31m`)
	})

	t.Run("markdown", func(t *testing.T) {
		var buf bytes.Buffer
		doc, err := New(&buf, WithStyle(StyleMarkdown))
		require.NoError(t, err)

		got, err := doc.Format(view.History(list))
		require.NoError(t, err)
		assert.NotContains(t, got, "\x1b]0")
		assert.NotContains(t, got, "\a")
		assert.Contains(t, got, "pwned")
	})
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "dz_a", sanitize("dz_a"))
	assert.Equal(t, `a\tb\x7f\u0085é`, sanitize("a\tb\x7f\u0085é"))
}

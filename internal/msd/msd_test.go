package msd

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseString(t *testing.T) {
	t.Run("basic parameters", func(t *testing.T) {
		doc, err := ParseString("#TITLE:Springtime;\n#ARTIST:Kommisar;\n")
		require.NoError(t, err)
		want := []Param{
			{Key: "TITLE", Value: "Springtime"},
			{Key: "ARTIST", Value: "Kommisar"},
		}
		assert.Empty(t, cmp.Diff(want, doc.Params))
		assert.Empty(t, doc.Warnings)
	})

	t.Run("value keeps embedded colons", func(t *testing.T) {
		doc, err := ParseString("#DISPLAYBPM:120:240;")
		require.NoError(t, err)
		v, ok := doc.Get("DISPLAYBPM")
		require.True(t, ok)
		assert.Equal(t, "120:240", v)
	})

	t.Run("multi-line value", func(t *testing.T) {
		doc, err := ParseString("#NOTES:\n0000\n0000\n0000\n0000\n;")
		require.NoError(t, err)
		v, ok := doc.Get("NOTES")
		require.True(t, ok)
		assert.Equal(t, "\n0000\n0000\n0000\n0000\n", v)
	})

	t.Run("escapes", func(t *testing.T) {
		doc, err := ParseString(`#TITLE:Semi\;colon and \#hash;`)
		require.NoError(t, err)
		v, _ := doc.Get("TITLE")
		assert.Equal(t, "Semi;colon and #hash", v)
	})

	t.Run("comments are stripped", func(t *testing.T) {
		doc, err := ParseString("// header comment\n#TITLE:Song; // trailing\n#ARTIST:Kommisar;\n")
		require.NoError(t, err)
		v, _ := doc.Get("TITLE")
		assert.Equal(t, "Song", v)
		v, _ = doc.Get("ARTIST")
		assert.Equal(t, "Kommisar", v)
	})

	t.Run("missing semicolon recovery", func(t *testing.T) {
		doc, err := ParseString("#TITLE:Oops\n#ARTIST:Someone;\n")
		require.NoError(t, err)
		require.Len(t, doc.Params, 2)
		assert.Equal(t, "Oops\n", doc.Params[0].Value)
		assert.Equal(t, "Someone", doc.Params[1].Value)
		require.Len(t, doc.Warnings, 1)
		assert.Contains(t, doc.Warnings[0], "missing terminating semicolon")
	})

	t.Run("unterminated final parameter", func(t *testing.T) {
		doc, err := ParseString("#TITLE:Cut off")
		require.NoError(t, err)
		require.Len(t, doc.Params, 1)
		assert.Equal(t, "Cut off", doc.Params[0].Value)
		require.Len(t, doc.Warnings, 1)
		assert.Contains(t, doc.Warnings[0], "unterminated")
	})

	t.Run("BOM is stripped", func(t *testing.T) {
		doc, err := ParseString("\ufeff#TITLE:BOM;")
		require.NoError(t, err)
		_, ok := doc.Get("TITLE")
		assert.True(t, ok)
	})

	t.Run("empty document", func(t *testing.T) {
		doc, err := ParseString("")
		require.NoError(t, err)
		assert.Empty(t, doc.Params)
	})
}

func TestParseReader(t *testing.T) {
	doc, err := Parse(strings.NewReader("#VERSION:0.83;"))
	require.NoError(t, err)
	v, ok := doc.Get("version")
	require.True(t, ok, "lookup should be case-insensitive")
	assert.Equal(t, "0.83", v)
}

func TestDocumentString(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		in := "#TITLE:Springtime;\n#DISPLAYBPM:120:240;\n#NOTES:\n0000\nM000\n0000\n0000\n;\n"
		doc, err := ParseString(in)
		require.NoError(t, err)
		assert.Equal(t, in, doc.String())
	})

	t.Run("special characters survive a round trip", func(t *testing.T) {
		doc := &Document{Params: []Param{{Key: "TITLE", Value: `a;b#c\d//e`}}}
		out := doc.String()
		reparsed, err := ParseString(out)
		require.NoError(t, err)
		v, _ := reparsed.Get("TITLE")
		assert.Equal(t, `a;b#c\d//e`, v)
	})
}

func TestDocumentSet(t *testing.T) {
	doc := &Document{Params: []Param{{Key: "Fakes", Value: ""}}}

	doc.Set("FAKES", "2.000=0.021")
	require.Len(t, doc.Params, 1)
	assert.Equal(t, "Fakes", doc.Params[0].Key, "existing key casing is preserved")
	assert.Equal(t, "2.000=0.021", doc.Params[0].Value)

	doc.Set("SCROLLS", "0.000=1.000")
	require.Len(t, doc.Params, 2)
	assert.Equal(t, "SCROLLS", doc.Params[1].Key)
}

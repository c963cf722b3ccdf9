package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "bullets", input: "- a\n- b", want: "* a\n\n* b"},
		{name: "emphasis", input: "You must act", want: "You **must** act"},
		{name: "no emphasis inside words", input: "pass the mustard", want: "pass the mustard"},
		{name: "numbered items", input: "Steps: 1. Call the court 2. Wait", want: "Steps:\n1. Call the court\n2. Wait"},
		{name: "sentence break", input: "Hello there. World is big", want: "Hello there.\n\nWorld is big"},
		{name: "decimal untouched", input: "about 3.5 percent", want: "about 3.5 percent"},
		{name: "blank runs", input: "a\n\n\n\nb", want: "a\n\nb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.input))
		})
	}
}

func TestRenderer_HTML(t *testing.T) {
	r := NewRenderer()

	t.Run("emphasis becomes strong", func(t *testing.T) {
		out, err := r.HTML("This is IMPORTANT")
		require.NoError(t, err)
		assert.Equal(t, "<p>This is <strong>IMPORTANT</strong></p>", out)
	})

	t.Run("bullets become a list", func(t *testing.T) {
		out, err := r.HTML("- first\n- second")
		require.NoError(t, err)
		assert.Contains(t, out, "<ul>")
		assert.Contains(t, out, "first")
		assert.Contains(t, out, "second")
	})

	t.Run("script is dropped", func(t *testing.T) {
		out, err := r.HTML("<script>alert(1)</script>\n\nHello")
		require.NoError(t, err)
		assert.NotContains(t, out, "<script")
		assert.Contains(t, out, "Hello")
	})

	t.Run("links lose their tag and attributes", func(t *testing.T) {
		out, err := r.HTML("[click](http://example.com)")
		require.NoError(t, err)
		assert.NotContains(t, out, "<a")
		assert.NotContains(t, out, "href")
		assert.Contains(t, out, "click")
	})
}

func TestRenderer_Sanitize(t *testing.T) {
	r := NewRenderer()
	assert.Equal(t, "<p>ok</p>", r.Sanitize(`<p class="x" onclick="y()">ok</p>`))
}

func TestRenderer_PlainText(t *testing.T) {
	r := NewRenderer()
	got := r.PlainText("<p>You <strong>must</strong> act.</p><ul><li>Call &amp; write</li></ul>")
	assert.Equal(t, "You must act.\nCall & write", got)
}

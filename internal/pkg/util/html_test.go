package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeHTML(t *testing.T) {
	out := SanitizeHTML(`<p onclick="x()">hello <b>world</b></p><script>alert(1)</script>`)
	assert.Contains(t, out, "<b>world</b>")
	assert.NotContains(t, out, "script")
	assert.NotContains(t, out, "onclick")
}

func TestHTMLToText(t *testing.T) {
	assert.Equal(t, "hello world again", HTMLToText("<p>hello\n  <i>world</i></p><p>again</p>"))
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "short", Excerpt("<p>short</p>", 10))

	long := strings.Repeat("字", 130)
	out := Excerpt(long, 0)
	assert.True(t, strings.HasSuffix(out, "..."))
	assert.Equal(t, defaultExcerptLen+3, RuneLen(out))
}

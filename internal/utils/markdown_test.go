package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderMarkdown(t *testing.T) {
	out := string(RenderMarkdown("# Hello\n\nSome **bold** text."))
	assert.Contains(t, out, "<h1")
	assert.Contains(t, out, "<strong>bold</strong>")
}

func TestRenderMarkdownStripsScripts(t *testing.T) {
	out := string(RenderMarkdown("hi <script>alert(1)</script>"))
	assert.NotContains(t, out, "<script>")
	assert.NotContains(t, out, "alert(1)")
}

func TestRenderMarkdownAllowsImages(t *testing.T) {
	out := string(RenderMarkdown("![cover](https://example.com/a.png)"))
	assert.Contains(t, out, "<img")
}

package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_HeadingsAndLists(t *testing.T) {
	r := NewRenderer()

	html, err := r.Render("# Privacy Policy\n\n- one\n- two\n")
	require.NoError(t, err)

	assert.Contains(t, html, `<h1 id="privacy-policy">Privacy Policy</h1>`)
	assert.Contains(t, html, "<li>one</li>")
}

func TestRender_EscapesRawHTML(t *testing.T) {
	html, err := NewRenderer().Render("hello <script>alert(1)</script>")
	require.NoError(t, err)

	assert.NotContains(t, html, "<script>")
}

func TestRender_GFMTable(t *testing.T) {
	html, err := NewRenderer().Render("| a | b |\n|---|---|\n| 1 | 2 |\n")
	require.NoError(t, err)

	assert.Contains(t, html, "<table>")
}

package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderBasicMarkdown(t *testing.T) {
	bodyHTML, _ := Render("some **bold** and *italic* text")

	assert.Contains(t, bodyHTML, "<strong>bold</strong>")
	assert.Contains(t, bodyHTML, "<em>italic</em>")
}

func TestRenderStripsScript(t *testing.T) {
	bodyHTML, _ := Render("hello\n\n<script>alert('x')</script>\n\nworld")

	assert.NotContains(t, bodyHTML, "<script>")
	assert.NotContains(t, bodyHTML, "alert")
	assert.Contains(t, bodyHTML, "hello")
	assert.Contains(t, bodyHTML, "world")
}

func TestRenderStripsUnsafeLinkScheme(t *testing.T) {
	bodyHTML, _ := Render("[click](javascript:alert(1))")

	assert.NotContains(t, bodyHTML, "javascript:")
}

func TestRenderKeepsHeadingAnchors(t *testing.T) {
	bodyHTML, _ := Render("# First Heading\n\nbody")

	assert.Contains(t, bodyHTML, `id="first-heading"`)
	assert.Contains(t, bodyHTML, "First Heading</h1>")
}

func TestRenderGFMTable(t *testing.T) {
	source := strings.Join([]string{
		"| a | b |",
		"|---|---|",
		"| 1 | 2 |",
	}, "\n")

	bodyHTML, _ := Render(source)

	assert.Contains(t, bodyHTML, "<table>")
	assert.Contains(t, bodyHTML, "<td>1</td>")
}

func TestRenderTOCEmptyWithoutHeadings(t *testing.T) {
	_, tocHTML := Render("just a paragraph")

	assert.Equal(t, `<div class="toc"></div>`, tocHTML)
}

func TestRenderTOCNesting(t *testing.T) {
	source := strings.Join([]string{
		"# Intro",
		"## Setup",
		"## Usage",
		"# End",
	}, "\n\n")

	_, tocHTML := Render(source)

	expected := `<div class="toc"><ul>` +
		`<li><a href="#intro">Intro</a><ul>` +
		`<li><a href="#setup">Setup</a></li>` +
		`<li><a href="#usage">Usage</a></li></ul></li>` +
		`<li><a href="#end">End</a></li>` +
		`</ul></div>`
	assert.Equal(t, expected, tocHTML)
}

func TestRenderTOCOneEntryPerHeading(t *testing.T) {
	source := "# One\n\n## Two\n\n### Three\n\ntext"

	_, tocHTML := Render(source)

	require.Equal(t, 3, strings.Count(tocHTML, "<li>"))
	assert.Contains(t, tocHTML, `href="#one"`)
	assert.Contains(t, tocHTML, `href="#two"`)
	assert.Contains(t, tocHTML, `href="#three"`)
}

func TestRenderTOCDuplicateHeadingTitles(t *testing.T) {
	_, tocHTML := Render("# Notes\n\n# Notes")

	assert.Contains(t, tocHTML, `href="#notes"`)
	assert.Contains(t, tocHTML, `href="#notes-1"`)
}

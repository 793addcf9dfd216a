// Package markdown turns raw article bodies into sanitized HTML plus a
// heading outline. Rendering is a pure function of the body text.
package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

var (
	engine = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
		),
	)
	policy = bluemonday.UGCPolicy()
)

func init() {
	// Allow images
	policy.AllowImages()
	// Force links to open in new tab
	policy.AddTargetBlankToFullyQualifiedLinks(true)
	policy.RequireNoReferrerOnLinks(true)
}

// Heading is one entry of the extracted outline.
type Heading struct {
	Level int
	ID    string
	Title string
}

// Render converts markdown to sanitized HTML and a table-of-contents
// fragment built from the document headings.
func Render(source string) (bodyHTML string, tocHTML string) {
	src := []byte(source)
	doc := engine.Parser().Parse(text.NewReader(src))

	var buf bytes.Buffer
	if err := engine.Renderer().Render(&buf, src, doc); err != nil {
		return policy.Sanitize(source), renderTOC(nil) // Fallback
	}

	return string(policy.SanitizeBytes(buf.Bytes())), renderTOC(Headings(doc, src))
}

// Headings collects the document headings in order, with the IDs the
// renderer assigned to them.
func Headings(doc ast.Node, src []byte) []Heading {
	var headings []Heading
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}

		var id string
		if v, found := h.AttributeString("id"); found {
			if b, ok := v.([]byte); ok {
				id = string(b)
			}
		}
		headings = append(headings, Heading{
			Level: h.Level,
			ID:    id,
			Title: nodeText(h, src),
		})
		return ast.WalkSkipChildren, nil
	})
	return headings
}

func nodeText(n ast.Node, src []byte) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if t, ok := c.(*ast.Text); ok {
			sb.Write(t.Segment.Value(src))
		}
		return ast.WalkContinue, nil
	})
	return sb.String()
}

func renderTOC(headings []Heading) string {
	if len(headings) == 0 {
		return `<div class="toc"></div>`
	}

	var sb strings.Builder
	sb.WriteString(`<div class="toc"><ul>`)

	// stack holds the heading level of every open list
	var stack []int
	for _, h := range headings {
		if len(stack) == 0 {
			stack = append(stack, h.Level)
		} else {
			top := stack[len(stack)-1]
			switch {
			case h.Level > top:
				sb.WriteString("<ul>")
				stack = append(stack, h.Level)
			case h.Level < top:
				for len(stack) > 1 && stack[len(stack)-1] > h.Level {
					sb.WriteString("</li></ul>")
					stack = stack[:len(stack)-1]
				}
				sb.WriteString("</li>")
			default:
				sb.WriteString("</li>")
			}
		}
		fmt.Fprintf(&sb, `<li><a href="#%s">%s</a>`, h.ID, policy.Sanitize(h.Title))
	}

	sb.WriteString("</li>")
	for i := 1; i < len(stack); i++ {
		sb.WriteString("</ul></li>")
	}
	sb.WriteString("</ul></div>")

	return sb.String()
}

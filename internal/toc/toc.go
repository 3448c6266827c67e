// Package toc extracts a nested heading outline from a Markdown/MDX body.
package toc

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Node is one heading in the table of contents.
type Node struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Level    int     `json:"level"`
	Children []*Node `json:"children,omitempty"`
}

// Extract parses a Markdown body and returns the heading forest.
//
// Heading ids are URL-fragment-safe slugs derived from the heading text;
// duplicate titles receive numeric suffixes so ids stay unique within one
// document. A heading nests under the most recently seen heading of a lower
// level; deeper jumps attach directly to that ancestor without synthetic
// intermediate nodes. The source text is never modified.
func Extract(body []byte) []*Node {
	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(body))

	var forest []*Node
	var stack []*Node
	ids := newIDAllocator()

	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		heading, ok := n.(*gmast.Heading)
		if !ok {
			return gmast.WalkContinue, nil
		}

		title := headingText(heading, body)
		node := &Node{
			ID:    ids.allocate(title),
			Title: title,
			Level: heading.Level,
		}

		// Pop closed headings until the nearest open ancestor remains.
		for len(stack) > 0 && stack[len(stack)-1].Level >= node.Level {
			stack = stack[:len(stack)-1]
		}

		if len(stack) == 0 {
			forest = append(forest, node)
		} else {
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, node)
		}
		stack = append(stack, node)

		// Children of a heading node are inline text, already consumed.
		return gmast.WalkSkipChildren, nil
	})

	return forest
}

// headingText collects the plain text of a heading's inline children.
func headingText(heading *gmast.Heading, source []byte) string {
	var sb strings.Builder
	var walk func(n gmast.Node)
	walk = func(n gmast.Node) {
		switch node := n.(type) {
		case *gmast.Text:
			sb.Write(node.Segment.Value(source))
		case *gmast.String:
			sb.Write(node.Value)
		default:
			for c := n.FirstChild(); c != nil; c = c.NextSibling() {
				walk(c)
			}
		}
	}
	for c := heading.FirstChild(); c != nil; c = c.NextSibling() {
		walk(c)
	}
	return strings.TrimSpace(sb.String())
}

// Slugify converts heading text into a URL-fragment-safe id: lowercased,
// non-alphanumeric runs collapsed to single dashes, trimmed of leading and
// trailing dashes.
func Slugify(title string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
		} else {
			sb.WriteRune('-')
		}
	}
	slug := sb.String()
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}
	return strings.Trim(slug, "-")
}

type idAllocator struct {
	seen map[string]int
}

func newIDAllocator() *idAllocator {
	return &idAllocator{seen: make(map[string]int)}
}

func (a *idAllocator) allocate(title string) string {
	base := Slugify(title)
	if base == "" {
		base = "section"
	}
	n := a.seen[base]
	a.seen[base] = n + 1
	if n == 0 {
		return base
	}
	return fmt.Sprintf("%s-%d", base, n+1)
}

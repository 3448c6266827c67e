package content

import (
	"regexp"
	"strings"

	"github.com/yigityalim/imperial-tobacco-web/internal/toc"
)

// Derive fills the computed fields of a validated document from its raw path
// and body. It is deterministic and touches no other document; snapshot loads
// may run it for many documents in parallel.
func Derive(doc *Document, body []byte) {
	doc.Slug = SlugFromPath(doc.RawPath)
	doc.SlugAsParams = SlugAsParamsFromPath(doc.RawPath)
	doc.Breadcrumb = BreadcrumbFromPath(doc.RawPath)
	if doc.TOCEnabled {
		doc.TableOfContents = toc.Extract(body)
	}
}

// orderingPrefix matches the two-digit-dash prefixes that control sibling
// ordering. They are stripped from every public-facing path and label.
var orderingPrefix = regexp.MustCompile(`\d{2}-`)

// SlugFromPath joins the raw path segments into a public slug with a leading
// slash and every ordering prefix removed.
func SlugFromPath(rawPath []string) string {
	return stripOrderingPrefixes("/" + strings.Join(rawPath, "/"))
}

// SlugAsParamsFromPath is the slug without the kind-root segment (e.g.
// "brands/"), used for dynamic route matching.
func SlugAsParamsFromPath(rawPath []string) string {
	if len(rawPath) <= 1 {
		return ""
	}
	return stripOrderingPrefixes(strings.Join(rawPath[1:], "/"))
}

// BreadcrumbFromPath emits one crumb per raw path segment. Labels are
// humanized segment names; hrefs are cumulative prefix-stripped paths, so the
// last crumb's href equals the document slug.
func BreadcrumbFromPath(rawPath []string) []Crumb {
	crumbs := make([]Crumb, 0, len(rawPath))
	for i, segment := range rawPath {
		crumbs = append(crumbs, Crumb{
			Label: Humanize(segment),
			Href:  stripOrderingPrefixes("/" + strings.Join(rawPath[:i+1], "/")),
		})
	}
	return crumbs
}

// Humanize strips a leading ordering prefix from a path segment and replaces
// dashes with spaces.
func Humanize(segment string) string {
	if len(segment) >= 3 && isDigit(segment[0]) && isDigit(segment[1]) && segment[2] == '-' {
		segment = segment[3:]
	}
	return strings.ReplaceAll(segment, "-", " ")
}

func stripOrderingPrefixes(path string) string {
	return orderingPrefix.ReplaceAllString(path, "")
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// Package index holds the immutable content snapshot and answers the queries
// page handlers and the menu builder need: by kind, by slug, and the
// denormalized brand/category joins.
package index

import (
	"fmt"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/yigityalim/imperial-tobacco-web/internal/content"
)

// NotFoundError reports a slug or relational lookup miss. Page handlers
// recover it into a user-visible not-found response.
type NotFoundError struct {
	Kind content.Kind
	Slug string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no published %s document for slug %q", e.Kind, e.Slug)
}

// AmbiguousSlugError reports two documents resolving to the same public slug
// after ordering-prefix stripping. It fails the snapshot build; the collision
// is never silently resolved by load order.
type AmbiguousSlugError struct {
	Kind  content.Kind
	Slug  string
	Paths []string
}

func (e *AmbiguousSlugError) Error() string {
	return fmt.Sprintf("ambiguous %s slug %q: raw paths %s collide after prefix stripping",
		e.Kind, e.Slug, strings.Join(e.Paths, ", "))
}

type slugKey struct {
	kind content.Kind
	slug string
}

// Snapshot is the full set of validated, derived documents loaded at one
// point in time. It is immutable after Build and safe for lock-free sharing
// across concurrent readers.
type Snapshot struct {
	ID      string
	BuiltAt time.Time

	byKind map[content.Kind][]*content.Document
	bySlug map[slugKey]*content.Document
	all    []*content.Document
}

// Build constructs a snapshot from validated documents. Documents are ordered
// per kind by their raw (prefix-bearing) path, so authored `NN-` prefixes
// govern sibling order. Public slug collisions within a kind abort the build.
func Build(docs []*content.Document) (*Snapshot, error) {
	s := &Snapshot{
		ID:      uuid.NewString(),
		BuiltAt: time.Now().UTC(),
		byKind:  make(map[content.Kind][]*content.Document),
		bySlug:  make(map[slugKey]*content.Document),
	}

	sorted := append([]*content.Document(nil), docs...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return rawPathLess(sorted[i].RawPath, sorted[j].RawPath)
	})

	for _, doc := range sorted {
		key := slugKey{kind: doc.Kind, slug: doc.SlugAsParams}
		if prev, exists := s.bySlug[key]; exists {
			return nil, &AmbiguousSlugError{
				Kind: doc.Kind,
				Slug: doc.Slug,
				Paths: []string{
					strings.Join(prev.RawPath, "/"),
					strings.Join(doc.RawPath, "/"),
				},
			}
		}
		s.bySlug[key] = doc
		s.byKind[doc.Kind] = append(s.byKind[doc.Kind], doc)
		s.all = append(s.all, doc)
	}

	return s, nil
}

// ByKind returns all published documents of a kind in sibling order.
func (s *Snapshot) ByKind(kind content.Kind) []*content.Document {
	return filterPublished(s.byKind[kind])
}

// ByKindWithUnpublished returns all documents of a kind, drafts included.
// Reserved for preview/admin tooling; serving paths never use it.
func (s *Snapshot) ByKindWithUnpublished(kind content.Kind) []*content.Document {
	return append([]*content.Document(nil), s.byKind[kind]...)
}

// FindBySlug resolves a document by kind and slugAsParams. Unpublished
// documents yield NotFoundError even though they exist in the raw source.
func (s *Snapshot) FindBySlug(kind content.Kind, slugAsParams string) (*content.Document, error) {
	doc, ok := s.bySlug[slugKey{kind: kind, slug: slugAsParams}]
	if !ok || !doc.Published {
		return nil, &NotFoundError{Kind: kind, Slug: slugAsParams}
	}
	return doc, nil
}

// Filter returns published documents matching the predicate, in sibling order.
func (s *Snapshot) Filter(pred func(*content.Document) bool) []*content.Document {
	var out []*content.Document
	for _, doc := range s.all {
		if doc.Published && pred(doc) {
			out = append(out, doc)
		}
	}
	return out
}

// Len reports the total number of documents in the snapshot, drafts included.
func (s *Snapshot) Len() int { return len(s.all) }

// CategoriesForBrand returns the published categories naming the given brand.
// The join is the deliberate denormalized string match: a typo'd brand name
// yields an empty result, never an error.
func (s *Snapshot) CategoriesForBrand(brandName string) []*content.Document {
	return s.Filter(func(d *content.Document) bool {
		return d.Kind == content.KindCategory && NameMatches(d.BrandName(), brandName)
	})
}

// ProductsForCategory returns the published products naming the given brand
// and category.
func (s *Snapshot) ProductsForCategory(brandName, categoryName string) []*content.Document {
	return s.Filter(func(d *content.Document) bool {
		return d.Kind == content.KindProduct &&
			NameMatches(d.BrandName(), brandName) &&
			NameMatches(d.CategoryName(), categoryName)
	})
}

// NameMatches is the single relational join comparison: case-insensitive
// equality on denormalized name fields. No foreign keys exist; dangling
// references are legal and simply match nothing.
func NameMatches(a, b string) bool {
	return a != "" && strings.EqualFold(a, b)
}

func filterPublished(docs []*content.Document) []*content.Document {
	out := make([]*content.Document, 0, len(docs))
	for _, doc := range docs {
		if doc.Published {
			out = append(out, doc)
		}
	}
	return out
}

func rawPathLess(a, b []string) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}

// Holder publishes the active snapshot to request handlers. Rebuilds swap the
// whole snapshot atomically; readers never observe a partial update.
type Holder struct {
	current atomic.Pointer[Snapshot]
}

// NewHolder returns a holder seeded with the given snapshot.
func NewHolder(s *Snapshot) *Holder {
	h := &Holder{}
	h.current.Store(s)
	return h
}

// Current returns the active snapshot.
func (h *Holder) Current() *Snapshot { return h.current.Load() }

// Swap replaces the active snapshot.
func (h *Holder) Swap(s *Snapshot) { h.current.Store(s) }

// Package content defines the catalog document model: the four document kinds,
// their frontmatter schemas with required fields and defaults, and the derived
// fields (slug, breadcrumb, table of contents) computed from the raw
// hierarchical path.
package content

import (
	"time"

	"github.com/yigityalim/imperial-tobacco-web/internal/toc"
)

// Kind tags the closed set of document kinds.
type Kind string

const (
	KindBrand    Kind = "brand"
	KindCategory Kind = "category"
	KindProduct  Kind = "product"
	KindPost     Kind = "post"
)

// Kinds lists all document kinds in a stable order.
func Kinds() []Kind {
	return []Kind{KindBrand, KindCategory, KindProduct, KindPost}
}

// Author is one entry of a document's authors list.
type Author struct {
	Name   string `json:"name,omitempty"`
	Role   string `json:"role,omitempty"`
	Avatar string `json:"avatar,omitempty"`
}

// GalleryImage is one image in a document gallery.
type GalleryImage struct {
	Src       string `json:"src"`
	Alt       string `json:"alt"`
	Caption   string `json:"caption,omitempty"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

// Feature is a marketing feature attached to categories and products.
type Feature struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
}

// Spec is a single name/value product specification row.
type Spec struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Crumb is one breadcrumb entry; Href is the cumulative prefix-stripped path.
type Crumb struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

// BrandFields carries the Brand-specific frontmatter.
type BrandFields struct {
	BrandName    string         `json:"brandName"`
	Logo         string         `json:"logo"`
	FoundedYear  int            `json:"foundedYear,omitempty"`
	Headquarters string         `json:"headquarters,omitempty"`
	Website      string         `json:"website,omitempty"`
	Gallery      []GalleryImage `json:"gallery,omitempty"`
	Categories   []string       `json:"categories,omitempty"`
}

// CategoryFields carries the Category-specific frontmatter.
type CategoryFields struct {
	BrandName      string         `json:"brandName"`
	CategoryName   string         `json:"categoryName"`
	Cover          string         `json:"cover,omitempty"`
	Gallery        []GalleryImage `json:"gallery,omitempty"`
	Features       []Feature      `json:"features,omitempty"`
	TargetAudience string         `json:"targetAudience,omitempty"`
	PriceRange     string         `json:"priceRange,omitempty"`
}

// ProductFields carries the Product-specific frontmatter.
type ProductFields struct {
	BrandName      string         `json:"brandName"`
	CategoryName   string         `json:"categoryName"`
	ProductName    string         `json:"productName"`
	SKU            string         `json:"sku,omitempty"`
	Price          float64        `json:"price,omitempty"`
	Currency       string         `json:"currency"`
	Cover          string         `json:"cover,omitempty"`
	Gallery        []GalleryImage `json:"gallery,omitempty"`
	FilterColor    string         `json:"filterColor,omitempty"`
	NicotineLevel  string         `json:"nicotineLevel,omitempty"`
	TarLevel       string         `json:"tarLevel,omitempty"`
	PackSize       int            `json:"packSize"`
	Specifications []Spec         `json:"specifications,omitempty"`
	Features       []Feature      `json:"features,omitempty"`
	InStock        bool           `json:"inStock"`
	Featured       bool           `json:"featured"`
	NewProduct     bool           `json:"newProduct"`
	Tags           []string       `json:"tags,omitempty"`
	SortOrder      int            `json:"sortOrder"`
}

// PostFields carries the Post-specific frontmatter.
type PostFields struct {
	Categories []string `json:"categories,omitempty"`
	Cover      string   `json:"cover,omitempty"`
	Tags       []string `json:"tags,omitempty"`
}

// Document is one validated catalog document. Exactly one of the kind-specific
// field structs is non-nil, matching Kind.
//
// Documents are immutable once built; a content snapshot is discarded and
// rebuilt as a whole, never patched.
type Document struct {
	Kind Kind `json:"kind"`

	// RawPath is the filesystem-like path of the document relative to the
	// content root, one segment per element. Segments may carry a numeric
	// `NN-` ordering prefix that governs sibling order but never appears in
	// public identifiers.
	RawPath []string `json:"-"`

	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Date        time.Time `json:"date"`
	Authors     []Author  `json:"authors"`
	Published   bool      `json:"published"`
	TOCEnabled  bool      `json:"toc"`

	Brand    *BrandFields    `json:"brand,omitempty"`
	Category *CategoryFields `json:"category,omitempty"`
	Product  *ProductFields  `json:"product,omitempty"`
	Post     *PostFields     `json:"post,omitempty"`

	// Derived, never authored.
	Slug            string      `json:"slug"`
	SlugAsParams    string      `json:"slugAsParams"`
	Breadcrumb      []Crumb     `json:"breadcrumb"`
	TableOfContents []*toc.Node `json:"tableOfContents"`
}

// Name returns the document's primary display name: the kind-specific name
// field when present, the title otherwise.
func (d *Document) Name() string {
	switch d.Kind {
	case KindBrand:
		if d.Brand != nil {
			return d.Brand.BrandName
		}
	case KindCategory:
		if d.Category != nil {
			return d.Category.CategoryName
		}
	case KindProduct:
		if d.Product != nil {
			return d.Product.ProductName
		}
	}
	return d.Title
}

// BrandName returns the denormalized brand reference, empty for kinds that
// carry none.
func (d *Document) BrandName() string {
	switch d.Kind {
	case KindBrand:
		if d.Brand != nil {
			return d.Brand.BrandName
		}
	case KindCategory:
		if d.Category != nil {
			return d.Category.BrandName
		}
	case KindProduct:
		if d.Product != nil {
			return d.Product.BrandName
		}
	}
	return ""
}

// CategoryName returns the denormalized category reference, empty for kinds
// that carry none.
func (d *Document) CategoryName() string {
	switch d.Kind {
	case KindCategory:
		if d.Category != nil {
			return d.Category.CategoryName
		}
	case KindProduct:
		if d.Product != nil {
			return d.Product.CategoryName
		}
	}
	return ""
}

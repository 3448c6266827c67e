// Package menu derives the site navigation trees from the content snapshot.
// Trees are rebuilt on demand; a fresh snapshot always yields a fresh menu.
package menu

import (
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/yigityalim/imperial-tobacco-web/internal/content"
	"github.com/yigityalim/imperial-tobacco-web/internal/index"
)

// Truncation limits. They only cut the tail of an already-sorted list.
const (
	maxProductsPerCategory = 5
	maxFeaturedDesktop     = 8
	maxFeaturedMobile      = 10
)

// Item is one navigation entry.
type Item struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Href        string `json:"href"`
	Children    []Item `json:"children,omitempty"`
}

// Builder builds navigation trees with locale-aware name ordering.
type Builder struct {
	collator *collate.Collator
}

// NewBuilder returns a builder sorting names per the given BCP 47 locale tag.
// Unknown tags fall back to Turkish, the site's default locale.
func NewBuilder(locale string) *Builder {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Turkish
	}
	return &Builder{collator: collate.New(tag, collate.IgnoreCase)}
}

// Shallow builds the depth-1 mobile tree: top-level sections with flat child
// lists, brand entries carrying no nested categories.
func (b *Builder) Shallow(snap *index.Snapshot) []Item {
	return []Item{
		{
			ID:          "brands",
			Name:        "Markalar",
			Description: "Tüm premium markalarımız",
			Href:        "/brands",
			Children:    b.brandItems(snap, false),
		},
		{
			ID:          "categories",
			Name:        "Kategoriler",
			Description: "Ürün kategorilerimiz",
			Href:        "/categories",
			Children:    b.categoryItems(snap),
		},
		{
			ID:          "products",
			Name:        "Ürünler",
			Description: "Tüm ürünlerimiz",
			Href:        "/products",
			Children:    b.featuredProductItems(snap, maxFeaturedMobile),
		},
	}
}

// Deep builds the depth-3 desktop tree: brands nest their categories, each
// category nests up to five products in sortOrder.
func (b *Builder) Deep(snap *index.Snapshot) []Item {
	items := b.Shallow(snap)
	items[0].Children = b.brandItems(snap, true)
	items[2].Children = b.featuredProductItems(snap, maxFeaturedDesktop)
	return items
}

func (b *Builder) brandItems(snap *index.Snapshot, nested bool) []Item {
	brands := snap.ByKind(content.KindBrand)
	b.sortByName(brands, func(d *content.Document) string { return d.BrandName() })

	items := make([]Item, 0, len(brands))
	for _, brand := range brands {
		item := Item{
			ID:          "brand-" + slugID(brand.BrandName()),
			Name:        brand.BrandName(),
			Description: descriptionOr(brand, brand.BrandName()+" markası"),
			Href:        brand.Slug,
		}
		if nested {
			item.Children = b.brandCategories(snap, brand.BrandName())
		}
		items = append(items, item)
	}
	return items
}

func (b *Builder) brandCategories(snap *index.Snapshot, brandName string) []Item {
	cats := snap.CategoriesForBrand(brandName)
	b.sortByName(cats, func(d *content.Document) string { return d.CategoryName() })

	items := make([]Item, 0, len(cats))
	for _, cat := range cats {
		items = append(items, Item{
			ID:          "category-" + slugID(cat.CategoryName()),
			Name:        cat.CategoryName(),
			Description: descriptionOr(cat, cat.CategoryName()+" kategorisi"),
			Href:        cat.Slug,
			Children:    b.categoryProducts(snap, brandName, cat.CategoryName()),
		})
	}
	return items
}

func (b *Builder) categoryProducts(snap *index.Snapshot, brandName, categoryName string) []Item {
	prods := snap.ProductsForCategory(brandName, categoryName)
	sortBySortOrder(prods)
	prods = truncate(prods, maxProductsPerCategory)

	items := make([]Item, 0, len(prods))
	for _, p := range prods {
		items = append(items, Item{
			ID:          "product-" + productID(p),
			Name:        p.Name(),
			Description: productDescription(p),
			Href:        p.Slug,
		})
	}
	return items
}

func (b *Builder) categoryItems(snap *index.Snapshot) []Item {
	cats := snap.ByKind(content.KindCategory)
	b.sortByName(cats, func(d *content.Document) string { return d.CategoryName() })

	items := make([]Item, 0, len(cats))
	for _, cat := range cats {
		items = append(items, Item{
			ID:          "nav-category-" + slugID(cat.CategoryName()),
			Name:        strings.TrimSpace(cat.BrandName() + " " + cat.CategoryName()),
			Description: descriptionOr(cat, cat.CategoryName()+" kategorisi"),
			Href:        cat.Slug,
		})
	}
	return items
}

func (b *Builder) featuredProductItems(snap *index.Snapshot, limit int) []Item {
	prods := snap.Filter(func(d *content.Document) bool {
		return d.Kind == content.KindProduct && d.Product.Featured
	})
	sortBySortOrder(prods)
	prods = truncate(prods, limit)

	items := make([]Item, 0, len(prods))
	for _, p := range prods {
		items = append(items, Item{
			ID:          "nav-product-" + productID(p),
			Name:        strings.TrimSpace(p.BrandName() + " " + p.Name()),
			Description: productDescription(p),
			Href:        p.Slug,
		})
	}
	return items
}

func (b *Builder) sortByName(docs []*content.Document, name func(*content.Document) string) {
	sort.SliceStable(docs, func(i, j int) bool {
		return b.collator.CompareString(name(docs[i]), name(docs[j])) < 0
	})
}

func sortBySortOrder(docs []*content.Document) {
	sort.SliceStable(docs, func(i, j int) bool {
		return sortOrder(docs[i]) < sortOrder(docs[j])
	})
}

// sortOrder treats a missing product payload as order 0.
func sortOrder(d *content.Document) int {
	if d.Product == nil {
		return 0
	}
	return d.Product.SortOrder
}

func truncate(docs []*content.Document, limit int) []*content.Document {
	if len(docs) > limit {
		return docs[:limit]
	}
	return docs
}

func productID(d *content.Document) string {
	if d.Product != nil && d.Product.SKU != "" {
		return slugID(d.Product.SKU)
	}
	return slugID(d.Name())
}

func productDescription(d *content.Document) string {
	if d.Description != "" {
		return d.Description
	}
	if d.Product != nil && d.Product.Price > 0 {
		return d.Name() + " - " + formatPrice(d.Product.Price) + " " + d.Product.Currency
	}
	return d.Name() + " - Premium Quality"
}

func formatPrice(p float64) string {
	s := strings.TrimRight(strconv.FormatFloat(p, 'f', 2, 64), "0")
	return strings.TrimRight(s, ".")
}

func descriptionOr(d *content.Document, fallback string) string {
	if d.Description != "" {
		return d.Description
	}
	return fallback
}

func slugID(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")
}

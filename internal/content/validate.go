package content

import (
	"fmt"
	"time"
)

// RawDocument is the loader-facing input: a parsed frontmatter field map plus
// the document's raw hierarchical path and Markdown body.
type RawDocument struct {
	Kind    Kind
	RawPath []string
	Fields  map[string]any
	Body    []byte
}

// ValidationError reports a missing or malformed required field. It is fatal
// to that single document's inclusion in the snapshot; the rest of the
// snapshot continues loading.
type ValidationError struct {
	Kind   Kind
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s document: field %q: %s", e.Kind, e.Field, e.Reason)
}

func missing(kind Kind, field string) *ValidationError {
	return &ValidationError{Kind: kind, Field: field, Reason: "required field is missing"}
}

func wrongType(kind Kind, field, want string, got any) *ValidationError {
	return &ValidationError{Kind: kind, Field: field, Reason: fmt.Sprintf("expected %s, got %T", want, got)}
}

// Validate checks required fields for the target kind, applies declared
// defaults, and returns a normalized document without derived fields.
func Validate(raw RawDocument) (*Document, error) {
	dec := &decoder{kind: raw.Kind, fields: raw.Fields}

	doc := &Document{
		Kind:    raw.Kind,
		RawPath: append([]string(nil), raw.RawPath...),
	}

	doc.Title = dec.requiredString("title")
	doc.Description = dec.optionalString("description")
	doc.Date = dec.requiredDate("date")
	doc.Authors = dec.requiredAuthors("authors")
	doc.Published = dec.optionalBool("published", true)
	doc.TOCEnabled = dec.optionalBool("toc", true)

	switch raw.Kind {
	case KindBrand:
		doc.Brand = &BrandFields{
			BrandName:    dec.requiredString("brandName"),
			Logo:         dec.requiredString("logo"),
			FoundedYear:  int(dec.optionalNumber("foundedYear", 0)),
			Headquarters: dec.optionalString("headquarters"),
			Website:      dec.optionalString("website"),
			Gallery:      dec.gallery("gallery"),
			Categories:   dec.stringList("categories"),
		}
	case KindCategory:
		doc.Category = &CategoryFields{
			BrandName:      dec.requiredString("brandName"),
			CategoryName:   dec.requiredString("categoryName"),
			Cover:          dec.optionalString("cover"),
			Gallery:        dec.gallery("gallery"),
			Features:       dec.features("features"),
			TargetAudience: dec.optionalString("targetAudience"),
			PriceRange:     dec.optionalString("priceRange"),
		}
	case KindProduct:
		doc.Product = &ProductFields{
			BrandName:      dec.requiredString("brandName"),
			CategoryName:   dec.requiredString("categoryName"),
			ProductName:    dec.requiredString("productName"),
			SKU:            dec.optionalString("sku"),
			Price:          dec.optionalNumber("price", 0),
			Currency:       dec.optionalStringDefault("currency", "TRY"),
			Cover:          dec.optionalString("cover"),
			Gallery:        dec.gallery("gallery"),
			FilterColor:    dec.optionalString("filterColor"),
			NicotineLevel:  dec.optionalString("nicotineLevel"),
			TarLevel:       dec.optionalString("tarLevel"),
			PackSize:       int(dec.optionalNumber("packSize", 20)),
			Specifications: dec.specs("specifications"),
			Features:       dec.features("features"),
			InStock:        dec.optionalBool("inStock", true),
			Featured:       dec.optionalBool("featured", false),
			NewProduct:     dec.optionalBool("newProduct", false),
			Tags:           dec.stringList("tags"),
			SortOrder:      int(dec.optionalNumber("sortOrder", 0)),
		}
	case KindPost:
		doc.Post = &PostFields{
			Categories: dec.stringList("categories"),
			Cover:      dec.optionalString("cover"),
			Tags:       dec.stringList("tags"),
		}
	default:
		return nil, &ValidationError{Kind: raw.Kind, Field: "kind", Reason: "unknown document kind"}
	}

	if dec.err != nil {
		return nil, dec.err
	}
	return doc, nil
}

// decoder reads typed values out of a frontmatter field map, recording the
// first validation failure.
type decoder struct {
	kind   Kind
	fields map[string]any
	err    *ValidationError
}

func (d *decoder) fail(err *ValidationError) {
	if d.err == nil {
		d.err = err
	}
}

func (d *decoder) requiredString(name string) string {
	v, ok := d.fields[name]
	if !ok || v == nil {
		d.fail(missing(d.kind, name))
		return ""
	}
	s, ok := v.(string)
	if !ok {
		d.fail(wrongType(d.kind, name, "string", v))
		return ""
	}
	return s
}

func (d *decoder) optionalString(name string) string {
	return d.optionalStringDefault(name, "")
}

func (d *decoder) optionalStringDefault(name, def string) string {
	v, ok := d.fields[name]
	if !ok || v == nil {
		return def
	}
	s, ok := v.(string)
	if !ok {
		d.fail(wrongType(d.kind, name, "string", v))
		return def
	}
	return s
}

func (d *decoder) optionalBool(name string, def bool) bool {
	v, ok := d.fields[name]
	if !ok || v == nil {
		return def
	}
	b, ok := v.(bool)
	if !ok {
		d.fail(wrongType(d.kind, name, "bool", v))
		return def
	}
	return b
}

func (d *decoder) optionalNumber(name string, def float64) float64 {
	v, ok := d.fields[name]
	if !ok || v == nil {
		return def
	}
	switch n := v.(type) {
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case float64:
		return n
	default:
		d.fail(wrongType(d.kind, name, "number", v))
		return def
	}
}

func (d *decoder) requiredDate(name string) time.Time {
	v, ok := d.fields[name]
	if !ok || v == nil {
		d.fail(missing(d.kind, name))
		return time.Time{}
	}
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		for _, layout := range []string{time.RFC3339, "2006-01-02"} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed
			}
		}
		d.fail(&ValidationError{Kind: d.kind, Field: name, Reason: fmt.Sprintf("unparseable date %q", t)})
		return time.Time{}
	default:
		d.fail(wrongType(d.kind, name, "date", v))
		return time.Time{}
	}
}

func (d *decoder) requiredAuthors(name string) []Author {
	v, ok := d.fields[name]
	if !ok || v == nil {
		d.fail(missing(d.kind, name))
		return nil
	}
	items, ok := v.([]any)
	if !ok {
		d.fail(wrongType(d.kind, name, "list", v))
		return nil
	}
	authors := make([]Author, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			d.fail(wrongType(d.kind, name, "list of author objects", item))
			return nil
		}
		authors = append(authors, Author{
			Name:   stringOr(m, "name"),
			Role:   stringOr(m, "role"),
			Avatar: stringOr(m, "avatar"),
		})
	}
	return authors
}

func (d *decoder) stringList(name string) []string {
	v, ok := d.fields[name]
	if !ok || v == nil {
		return nil
	}
	items, ok := v.([]any)
	if !ok {
		d.fail(wrongType(d.kind, name, "list of strings", v))
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			d.fail(wrongType(d.kind, name, "list of strings", item))
			return nil
		}
		out = append(out, s)
	}
	return out
}

func (d *decoder) gallery(name string) []GalleryImage {
	items := d.objectList(name)
	if items == nil {
		return nil
	}
	out := make([]GalleryImage, 0, len(items))
	for _, m := range items {
		img := GalleryImage{
			Src:       stringOr(m, "src"),
			Alt:       stringOr(m, "alt"),
			Caption:   stringOr(m, "caption"),
			Thumbnail: stringOr(m, "thumbnail"),
		}
		if img.Src == "" {
			d.fail(missing(d.kind, name+".src"))
			return nil
		}
		if img.Alt == "" {
			d.fail(missing(d.kind, name+".alt"))
			return nil
		}
		out = append(out, img)
	}
	return out
}

func (d *decoder) features(name string) []Feature {
	items := d.objectList(name)
	if items == nil {
		return nil
	}
	out := make([]Feature, 0, len(items))
	for _, m := range items {
		f := Feature{
			Title:       stringOr(m, "title"),
			Description: stringOr(m, "description"),
			Icon:        stringOr(m, "icon"),
		}
		if f.Title == "" {
			d.fail(missing(d.kind, name+".title"))
			return nil
		}
		out = append(out, f)
	}
	return out
}

func (d *decoder) specs(name string) []Spec {
	items := d.objectList(name)
	if items == nil {
		return nil
	}
	out := make([]Spec, 0, len(items))
	for _, m := range items {
		s := Spec{Name: stringOr(m, "name"), Value: stringOr(m, "value")}
		if s.Name == "" {
			d.fail(missing(d.kind, name+".name"))
			return nil
		}
		if s.Value == "" {
			d.fail(missing(d.kind, name+".value"))
			return nil
		}
		out = append(out, s)
	}
	return out
}

func (d *decoder) objectList(name string) []map[string]any {
	v, ok := d.fields[name]
	if !ok || v == nil {
		return nil
	}
	items, ok := v.([]any)
	if !ok {
		d.fail(wrongType(d.kind, name, "list of objects", v))
		return nil
	}
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			d.fail(wrongType(d.kind, name, "list of objects", item))
			return nil
		}
		out = append(out, m)
	}
	return out
}

func stringOr(m map[string]any, key string) string {
	if s, ok := m[key].(string); ok {
		return s
	}
	return ""
}

package export

import (
	"strings"

	"github.com/storeops/bigcommerce-exporter/models"
)

// Resolver carries the lookup state one export needs beyond the product
// payload itself: the brand id to name map and the optional storefront
// domain prefixed onto relative custom URLs.
type Resolver struct {
	BrandNames   map[int]string
	CustomDomain string
}

// Flatten expands one product into CSV rows aligned to fields. With variants
// requested and present it emits one row per variant, resolving
// variant-overridable fields from the variant and everything else from the
// parent product. Otherwise it emits a single product row. A field with no
// value on the record resolves to the empty string, never an error.
func (r *Resolver) Flatten(p *models.Product, fields []Field, includeVariants bool) [][]string {
	if !includeVariants || len(p.Variants) == 0 {
		return [][]string{r.productRow(p, fields)}
	}

	rows := make([][]string, 0, len(p.Variants))
	for i := range p.Variants {
		v := &p.Variants[i]
		row := make([]string, len(fields))
		for j, f := range fields {
			def, ok := fieldDefs[f]
			if !ok {
				continue
			}
			if def.Variant != nil {
				row[j] = def.Variant(r, p, v)
			} else if def.Product != nil {
				row[j] = def.Product(r, p)
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// FlattenAll runs Flatten over a product sequence, preserving order.
func (r *Resolver) FlattenAll(products []models.Product, fields []Field, includeVariants bool) [][]string {
	var rows [][]string
	for i := range products {
		rows = append(rows, r.Flatten(&products[i], fields, includeVariants)...)
	}
	return rows
}

func (r *Resolver) productRow(p *models.Product, fields []Field) []string {
	row := make([]string, len(fields))
	for i, f := range fields {
		if def, ok := fieldDefs[f]; ok && def.Product != nil {
			row[i] = def.Product(r, p)
		}
	}
	return row
}

// applyDomain prefixes the storefront domain onto relative URLs. Absolute
// URLs and empty values pass through untouched.
func (r *Resolver) applyDomain(urlValue string) string {
	if r.CustomDomain == "" || urlValue == "" {
		return urlValue
	}
	if strings.HasPrefix(urlValue, "http://") || strings.HasPrefix(urlValue, "https://") {
		return urlValue
	}
	domain := strings.TrimRight(r.CustomDomain, "/")
	if !strings.HasPrefix(urlValue, "/") {
		urlValue = "/" + urlValue
	}
	return domain + urlValue
}

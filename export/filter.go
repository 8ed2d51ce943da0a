package export

import (
	"strings"

	"github.com/storeops/bigcommerce-exporter/models"
)

var unavailableValues = map[string]bool{
	"disabled":    true,
	"unavailable": true,
	"no":          true,
	"false":       true,
	"0":           true,
}

// FilterProducts drops unavailable or hidden products unless the caller
// asked to keep them.
func FilterProducts(products []models.Product, includeUnavailable, includeHidden bool) []models.Product {
	filtered := make([]models.Product, 0, len(products))
	for _, p := range products {
		if !includeUnavailable && unavailableValues[strings.ToLower(p.Availability)] {
			continue
		}
		if !includeHidden && !p.IsVisible {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

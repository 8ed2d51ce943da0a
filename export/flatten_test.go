package export

import (
	"reflect"
	"testing"

	"github.com/storeops/bigcommerce-exporter/models"
)

func floatPtr(f float64) *float64 { return &f }

func makeProduct() *models.Product {
	return &models.Product{
		ID:             42,
		Name:           "Widget",
		Sku:            "WID-BASE",
		Price:          19.99,
		BrandID:        7,
		InventoryLevel: 100,
		IsVisible:      true,
		Availability:   "available",
	}
}

func TestFlattenProductWithoutVariants(t *testing.T) {
	p := makeProduct()
	r := &Resolver{}

	rows := r.Flatten(p, []Field{FieldID, FieldName, FieldSku, FieldPrice}, true)
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1 (no variants falls back to the product row)", len(rows))
	}
	want := []string{"42", "Widget", "WID-BASE", "19.99"}
	if !reflect.DeepEqual(rows[0], want) {
		t.Errorf("row = %v, want %v", rows[0], want)
	}
}

func TestFlattenOneRowPerVariant(t *testing.T) {
	p := makeProduct()
	p.Variants = []models.Variant{
		{Sku: "WID-RED", Price: floatPtr(21.50)},
		{Sku: "WID-BLUE"}, // nil price inherits the product price
		{Sku: "WID-GREEN", Price: floatPtr(18)},
	}
	r := &Resolver{}

	rows := r.Flatten(p, []Field{FieldName, FieldSku, FieldPrice}, true)
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	want := [][]string{
		{"Widget", "WID-RED", "21.5"},
		{"Widget", "WID-BLUE", "19.99"},
		{"Widget", "WID-GREEN", "18"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("rows = %v, want %v", rows, want)
	}
}

func TestFlattenVariantsNotRequested(t *testing.T) {
	p := makeProduct()
	p.Variants = []models.Variant{{Sku: "WID-RED"}, {Sku: "WID-BLUE"}}
	r := &Resolver{}

	rows := r.Flatten(p, []Field{FieldSku}, false)
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if rows[0][0] != "WID-BASE" {
		t.Errorf("sku = %q, want product-level sku", rows[0][0])
	}
}

func TestFlattenMissingValuesAreEmpty(t *testing.T) {
	p := &models.Product{ID: 1} // no sku, no brand, no images
	r := &Resolver{}

	rows := r.Flatten(p, []Field{FieldSku, FieldBrandName, FieldPrimaryImageURL, FieldOptionValues, FieldCustomURL}, false)
	for i, v := range rows[0] {
		if v != "" {
			t.Errorf("column %d = %q, want empty string", i, v)
		}
	}
}

func TestFlattenBrandNameResolution(t *testing.T) {
	p := makeProduct()
	r := &Resolver{BrandNames: map[int]string{7: "Acme"}}

	rows := r.Flatten(p, []Field{FieldBrandName}, false)
	if rows[0][0] != "Acme" {
		t.Errorf("brand_name = %q, want Acme", rows[0][0])
	}
}

func TestFlattenVariantOptionValues(t *testing.T) {
	p := makeProduct()
	p.Variants = []models.Variant{{
		Sku: "WID-RED-L",
		OptionValues: []models.OptionValue{
			{OptionDisplayName: "Color", Label: "Red"},
			{OptionDisplayName: "Size", Label: "L"},
		},
	}}
	r := &Resolver{}

	rows := r.Flatten(p, []Field{FieldOptionValues}, true)
	if rows[0][0] != "Color: Red, Size: L" {
		t.Errorf("option_values = %q", rows[0][0])
	}
}

func TestFlattenCustomURLDomain(t *testing.T) {
	p := makeProduct()
	p.CustomURL = &models.CustomURL{URL: "/widget"}

	r := &Resolver{CustomDomain: "https://shop.example.com/"}
	rows := r.Flatten(p, []Field{FieldCustomURL}, false)
	if rows[0][0] != "https://shop.example.com/widget" {
		t.Errorf("custom_url = %q", rows[0][0])
	}

	// Absolute URLs pass through regardless of the domain setting.
	p.CustomURL = &models.CustomURL{URL: "https://cdn.example.net/widget"}
	rows = r.Flatten(p, []Field{FieldCustomURL}, false)
	if rows[0][0] != "https://cdn.example.net/widget" {
		t.Errorf("custom_url = %q", rows[0][0])
	}
}

func TestFlattenAllPreservesOrder(t *testing.T) {
	products := []models.Product{
		{ID: 1, Name: "A", Variants: []models.Variant{{Sku: "A-1"}, {Sku: "A-2"}}},
		{ID: 2, Name: "B"},
	}
	r := &Resolver{}

	rows := r.FlattenAll(products, []Field{FieldName, FieldSku}, true)
	want := [][]string{
		{"A", "A-1"},
		{"A", "A-2"},
		{"B", ""},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("rows = %v, want %v", rows, want)
	}
}

func TestFilterProducts(t *testing.T) {
	products := []models.Product{
		{ID: 1, IsVisible: true, Availability: "available"},
		{ID: 2, IsVisible: false, Availability: "available"},
		{ID: 3, IsVisible: true, Availability: "disabled"},
	}

	got := FilterProducts(products, false, false)
	if len(got) != 1 || got[0].ID != 1 {
		t.Errorf("default filter kept %v, want only product 1", ids(got))
	}

	got = FilterProducts(products, true, false)
	if len(got) != 2 {
		t.Errorf("includeUnavailable kept %v, want products 1 and 3", ids(got))
	}

	got = FilterProducts(products, true, true)
	if len(got) != 3 {
		t.Errorf("include everything kept %v, want all 3", ids(got))
	}
}

func ids(products []models.Product) []int64 {
	out := make([]int64, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

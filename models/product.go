package models

// Product mirrors the BigCommerce v3 catalog product payload, limited to the
// attributes the exporter can emit.
type Product struct {
	ID                      int64         `json:"id"`
	Name                    string        `json:"name"`
	Type                    string        `json:"type"`
	Sku                     string        `json:"sku"`
	Description             string        `json:"description"`
	Weight                  float64       `json:"weight"`
	Width                   float64       `json:"width"`
	Height                  float64       `json:"height"`
	Depth                   float64       `json:"depth"`
	Price                   float64       `json:"price"`
	CostPrice               float64       `json:"cost_price"`
	RetailPrice             float64       `json:"retail_price"`
	SalePrice               float64       `json:"sale_price"`
	MapPrice                float64       `json:"map_price"`
	TaxClassID              int           `json:"tax_class_id"`
	BrandID                 int           `json:"brand_id"`
	InventoryLevel          int           `json:"inventory_level"`
	Categories              []int         `json:"categories"`
	IsVisible               bool          `json:"is_visible"`
	IsFeatured              bool          `json:"is_featured"`
	IsFreeShipping          bool          `json:"is_free_shipping"`
	Availability            string        `json:"availability"`
	AvailabilityDescription string        `json:"availability_description"`
	Condition               string        `json:"condition"`
	Warranty                string        `json:"warranty"`
	SearchKeywords          string        `json:"search_keywords"`
	Upc                     string        `json:"upc"`
	Mpn                     string        `json:"mpn"`
	Gtin                    string        `json:"gtin"`
	BinPickingNumber        string        `json:"bin_picking_number"`
	DateCreated             string        `json:"date_created"`
	DateModified            string        `json:"date_modified"`
	TotalSold               int           `json:"total_sold"`
	ReviewsRatingSum        int           `json:"reviews_rating_sum"`
	ReviewsCount            int           `json:"reviews_count"`
	CustomURL               *CustomURL    `json:"custom_url,omitempty"`
	PrimaryImage            *Image        `json:"primary_image,omitempty"`
	Images                  []Image       `json:"images,omitempty"`
	CustomFields            []CustomField `json:"custom_fields,omitempty"`
	Variants                []Variant     `json:"variants,omitempty"`
}

// Variant is a purchasable sub-unit of a Product. Pointer fields are null in
// the API when the variant inherits the value from its parent product.
type Variant struct {
	ID             int64         `json:"id"`
	ProductID      int64         `json:"product_id"`
	Sku            string        `json:"sku"`
	Upc            string        `json:"upc"`
	Mpn            string        `json:"mpn"`
	Gtin           string        `json:"gtin"`
	Price          *float64      `json:"price"`
	SalePrice      *float64      `json:"sale_price"`
	RetailPrice    *float64      `json:"retail_price"`
	Weight         *float64      `json:"weight"`
	InventoryLevel *int          `json:"inventory_level"`
	ImageURL       string        `json:"image_url"`
	OptionValues   []OptionValue `json:"option_values,omitempty"`
}

// OptionValue is one chosen option on a variant, e.g. Color: Red.
type OptionValue struct {
	OptionDisplayName string `json:"option_display_name"`
	Label             string `json:"label"`
}

type Image struct {
	URLStandard  string `json:"url_standard"`
	URLThumbnail string `json:"url_thumbnail"`
	IsThumbnail  bool   `json:"is_thumbnail"`
}

type CustomField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// CustomURL is the storefront path of a product.
type CustomURL struct {
	URL string `json:"url"`
}

type Brand struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ProductsResponse is the paginated envelope returned by the catalog
// products endpoint.
type ProductsResponse struct {
	Data []Product `json:"data"`
	Meta Meta      `json:"meta"`
}

// BrandsResponse is the paginated envelope returned by the catalog brands
// endpoint.
type BrandsResponse struct {
	Data []Brand `json:"data"`
	Meta Meta    `json:"meta"`
}

type Meta struct {
	Pagination Pagination `json:"pagination"`
}

type Pagination struct {
	Total       int `json:"total"`
	Count       int `json:"count"`
	PerPage     int `json:"per_page"`
	CurrentPage int `json:"current_page"`
	TotalPages  int `json:"total_pages"`
}

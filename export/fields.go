package export

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/storeops/bigcommerce-exporter/models"
)

// Field names one exportable column. The set of fields is closed: every name
// a form can submit maps to an entry in fieldDefs, anything else is rejected
// by ParseSelection before it reaches the flattener.
type Field string

const (
	FieldID                      Field = "id"
	FieldName                    Field = "name"
	FieldSku                     Field = "sku"
	FieldPrice                   Field = "price"
	FieldSalePrice               Field = "sale_price"
	FieldRetailPrice             Field = "retail_price"
	FieldMapPrice                Field = "map_price"
	FieldCostPrice               Field = "cost_price"
	FieldTaxClassID              Field = "tax_class_id"
	FieldInventoryLevel          Field = "inventory_level"
	FieldType                    Field = "type"
	FieldWeight                  Field = "weight"
	FieldWidth                   Field = "width"
	FieldHeight                  Field = "height"
	FieldDepth                   Field = "depth"
	FieldBrandID                 Field = "brand_id"
	FieldBrandName               Field = "brand_name"
	FieldUpc                     Field = "upc"
	FieldMpn                     Field = "mpn"
	FieldGtin                    Field = "gtin"
	FieldBinPickingNumber        Field = "bin_picking_number"
	FieldCategoryIDs             Field = "category_ids"
	FieldPrimaryImageURL         Field = "primary_image_url"
	FieldThumbnailURL            Field = "thumbnail_url"
	FieldImageURLs               Field = "image_urls"
	FieldIsVisible               Field = "is_visible"
	FieldIsFeatured              Field = "is_featured"
	FieldIsFreeShipping          Field = "is_free_shipping"
	FieldAvailability            Field = "availability"
	FieldAvailabilityDescription Field = "availability_description"
	FieldCondition               Field = "condition"
	FieldDescription             Field = "description"
	FieldWarranty                Field = "warranty"
	FieldSearchKeywords          Field = "search_keywords"
	FieldCustomFields            Field = "custom_fields"
	FieldDateCreated             Field = "date_created"
	FieldDateModified            Field = "date_modified"
	FieldTotalSold               Field = "total_sold"
	FieldReviewsRatingSum        Field = "reviews_rating_sum"
	FieldReviewsCount            Field = "reviews_count"
	FieldVariantSkus             Field = "variant_skus"
	FieldVariantPrices           Field = "variant_prices"
	FieldOptionValues            Field = "option_values"
	FieldCustomURL               Field = "custom_url"
)

// fieldDef binds a field name to its CSV header label and its accessors. The
// Product accessor always exists; the Variant accessor only exists for
// attributes a variant can override, and when present it wins over the
// product value in variant rows.
type fieldDef struct {
	Label   string
	Product func(r *Resolver, p *models.Product) string
	Variant func(r *Resolver, p *models.Product, v *models.Variant) string
}

// fieldOrder fixes the display order of the selection form.
var fieldOrder = []Field{
	FieldID, FieldName, FieldSku, FieldPrice, FieldSalePrice, FieldRetailPrice,
	FieldMapPrice, FieldCostPrice, FieldTaxClassID, FieldInventoryLevel,
	FieldType, FieldWeight, FieldWidth, FieldHeight, FieldDepth,
	FieldBrandID, FieldBrandName, FieldUpc, FieldMpn, FieldGtin,
	FieldBinPickingNumber, FieldCategoryIDs, FieldPrimaryImageURL,
	FieldThumbnailURL, FieldImageURLs, FieldIsVisible, FieldIsFeatured,
	FieldIsFreeShipping, FieldAvailability, FieldAvailabilityDescription,
	FieldCondition, FieldDescription, FieldWarranty, FieldSearchKeywords,
	FieldCustomFields, FieldDateCreated, FieldDateModified, FieldTotalSold,
	FieldReviewsRatingSum, FieldReviewsCount, FieldVariantSkus,
	FieldVariantPrices, FieldOptionValues, FieldCustomURL,
}

var fieldDefs = map[Field]fieldDef{
	FieldID: {
		Label:   "Product ID",
		Product: func(_ *Resolver, p *models.Product) string { return strconv.FormatInt(p.ID, 10) },
	},
	FieldName: {
		Label:   "Name",
		Product: func(_ *Resolver, p *models.Product) string { return p.Name },
	},
	FieldSku: {
		Label:   "SKU",
		Product: func(_ *Resolver, p *models.Product) string { return p.Sku },
		Variant: func(_ *Resolver, _ *models.Product, v *models.Variant) string { return v.Sku },
	},
	FieldPrice: {
		Label:   "Price",
		Product: func(_ *Resolver, p *models.Product) string { return fmtFloat(p.Price) },
		Variant: func(_ *Resolver, p *models.Product, v *models.Variant) string {
			if v.Price != nil {
				return fmtFloat(*v.Price)
			}
			return fmtFloat(p.Price)
		},
	},
	FieldSalePrice: {
		Label:   "Sale Price",
		Product: func(_ *Resolver, p *models.Product) string { return fmtFloat(p.SalePrice) },
		Variant: func(_ *Resolver, p *models.Product, v *models.Variant) string {
			if v.SalePrice != nil {
				return fmtFloat(*v.SalePrice)
			}
			return fmtFloat(p.SalePrice)
		},
	},
	FieldRetailPrice: {
		Label:   "Retail Price",
		Product: func(_ *Resolver, p *models.Product) string { return fmtFloat(p.RetailPrice) },
		Variant: func(_ *Resolver, p *models.Product, v *models.Variant) string {
			if v.RetailPrice != nil {
				return fmtFloat(*v.RetailPrice)
			}
			return fmtFloat(p.RetailPrice)
		},
	},
	FieldMapPrice: {
		Label:   "MAP Price",
		Product: func(_ *Resolver, p *models.Product) string { return fmtFloat(p.MapPrice) },
	},
	FieldCostPrice: {
		Label:   "Cost Price",
		Product: func(_ *Resolver, p *models.Product) string { return fmtFloat(p.CostPrice) },
	},
	FieldTaxClassID: {
		Label:   "Tax Class ID",
		Product: func(_ *Resolver, p *models.Product) string { return strconv.Itoa(p.TaxClassID) },
	},
	FieldInventoryLevel: {
		Label:   "Inventory",
		Product: func(_ *Resolver, p *models.Product) string { return strconv.Itoa(p.InventoryLevel) },
		Variant: func(_ *Resolver, p *models.Product, v *models.Variant) string {
			if v.InventoryLevel != nil {
				return strconv.Itoa(*v.InventoryLevel)
			}
			return strconv.Itoa(p.InventoryLevel)
		},
	},
	FieldType: {
		Label:   "Type",
		Product: func(_ *Resolver, p *models.Product) string { return p.Type },
	},
	FieldWeight: {
		Label:   "Weight",
		Product: func(_ *Resolver, p *models.Product) string { return fmtFloat(p.Weight) },
		Variant: func(_ *Resolver, p *models.Product, v *models.Variant) string {
			if v.Weight != nil {
				return fmtFloat(*v.Weight)
			}
			return fmtFloat(p.Weight)
		},
	},
	FieldWidth: {
		Label:   "Width",
		Product: func(_ *Resolver, p *models.Product) string { return fmtFloat(p.Width) },
	},
	FieldHeight: {
		Label:   "Height",
		Product: func(_ *Resolver, p *models.Product) string { return fmtFloat(p.Height) },
	},
	FieldDepth: {
		Label:   "Depth",
		Product: func(_ *Resolver, p *models.Product) string { return fmtFloat(p.Depth) },
	},
	FieldBrandID: {
		Label:   "Brand ID",
		Product: func(_ *Resolver, p *models.Product) string { return strconv.Itoa(p.BrandID) },
	},
	FieldBrandName: {
		Label: "Brand Name",
		Product: func(r *Resolver, p *models.Product) string {
			return r.BrandNames[p.BrandID]
		},
	},
	FieldUpc: {
		Label:   "UPC",
		Product: func(_ *Resolver, p *models.Product) string { return p.Upc },
		Variant: func(_ *Resolver, _ *models.Product, v *models.Variant) string { return v.Upc },
	},
	FieldMpn: {
		Label:   "MPN",
		Product: func(_ *Resolver, p *models.Product) string { return p.Mpn },
		Variant: func(_ *Resolver, _ *models.Product, v *models.Variant) string { return v.Mpn },
	},
	FieldGtin: {
		Label:   "GTIN",
		Product: func(_ *Resolver, p *models.Product) string { return p.Gtin },
		Variant: func(_ *Resolver, _ *models.Product, v *models.Variant) string { return v.Gtin },
	},
	FieldBinPickingNumber: {
		Label:   "Bin Picking Number",
		Product: func(_ *Resolver, p *models.Product) string { return p.BinPickingNumber },
	},
	FieldCategoryIDs: {
		Label: "Category IDs",
		Product: func(_ *Resolver, p *models.Product) string {
			parts := make([]string, len(p.Categories))
			for i, id := range p.Categories {
				parts[i] = strconv.Itoa(id)
			}
			return strings.Join(parts, ", ")
		},
	},
	FieldPrimaryImageURL: {
		Label: "Primary Image URL",
		Product: func(_ *Resolver, p *models.Product) string {
			if p.PrimaryImage == nil {
				return ""
			}
			return p.PrimaryImage.URLStandard
		},
		Variant: func(_ *Resolver, p *models.Product, v *models.Variant) string {
			if v.ImageURL != "" {
				return v.ImageURL
			}
			if p.PrimaryImage == nil {
				return ""
			}
			return p.PrimaryImage.URLStandard
		},
	},
	FieldThumbnailURL: {
		Label: "Thumbnail URL",
		Product: func(_ *Resolver, p *models.Product) string {
			if p.PrimaryImage == nil {
				return ""
			}
			return p.PrimaryImage.URLThumbnail
		},
	},
	FieldImageURLs: {
		Label: "Image URLs",
		Product: func(_ *Resolver, p *models.Product) string {
			parts := make([]string, 0, len(p.Images))
			for _, img := range p.Images {
				parts = append(parts, img.URLStandard)
			}
			return strings.Join(parts, ", ")
		},
	},
	FieldIsVisible: {
		Label:   "Is Visible",
		Product: func(_ *Resolver, p *models.Product) string { return strconv.FormatBool(p.IsVisible) },
	},
	FieldIsFeatured: {
		Label:   "Is Featured",
		Product: func(_ *Resolver, p *models.Product) string { return strconv.FormatBool(p.IsFeatured) },
	},
	FieldIsFreeShipping: {
		Label:   "Is Free Shipping",
		Product: func(_ *Resolver, p *models.Product) string { return strconv.FormatBool(p.IsFreeShipping) },
	},
	FieldAvailability: {
		Label:   "Availability",
		Product: func(_ *Resolver, p *models.Product) string { return p.Availability },
	},
	FieldAvailabilityDescription: {
		Label:   "Availability Description",
		Product: func(_ *Resolver, p *models.Product) string { return p.AvailabilityDescription },
	},
	FieldCondition: {
		Label:   "Condition",
		Product: func(_ *Resolver, p *models.Product) string { return p.Condition },
	},
	FieldDescription: {
		Label:   "Description",
		Product: func(_ *Resolver, p *models.Product) string { return p.Description },
	},
	FieldWarranty: {
		Label:   "Warranty",
		Product: func(_ *Resolver, p *models.Product) string { return p.Warranty },
	},
	FieldSearchKeywords: {
		Label:   "Search Keywords",
		Product: func(_ *Resolver, p *models.Product) string { return p.SearchKeywords },
	},
	FieldCustomFields: {
		Label: "Custom Fields",
		Product: func(_ *Resolver, p *models.Product) string {
			parts := make([]string, 0, len(p.CustomFields))
			for _, cf := range p.CustomFields {
				if cf.Name != "" {
					parts = append(parts, fmt.Sprintf("%s: %s", cf.Name, cf.Value))
				} else {
					parts = append(parts, cf.Value)
				}
			}
			return strings.Join(parts, "; ")
		},
	},
	FieldDateCreated: {
		Label:   "Date Created",
		Product: func(_ *Resolver, p *models.Product) string { return p.DateCreated },
	},
	FieldDateModified: {
		Label:   "Date Modified",
		Product: func(_ *Resolver, p *models.Product) string { return p.DateModified },
	},
	FieldTotalSold: {
		Label:   "Total Sold",
		Product: func(_ *Resolver, p *models.Product) string { return strconv.Itoa(p.TotalSold) },
	},
	FieldReviewsRatingSum: {
		Label:   "Reviews Rating Sum",
		Product: func(_ *Resolver, p *models.Product) string { return strconv.Itoa(p.ReviewsRatingSum) },
	},
	FieldReviewsCount: {
		Label:   "Reviews Count",
		Product: func(_ *Resolver, p *models.Product) string { return strconv.Itoa(p.ReviewsCount) },
	},
	FieldVariantSkus: {
		Label: "Variant SKUs",
		Product: func(_ *Resolver, p *models.Product) string {
			parts := make([]string, 0, len(p.Variants))
			for _, v := range p.Variants {
				parts = append(parts, v.Sku)
			}
			return strings.Join(parts, ", ")
		},
	},
	FieldVariantPrices: {
		Label: "Variant Prices",
		Product: func(_ *Resolver, p *models.Product) string {
			parts := make([]string, 0, len(p.Variants))
			for _, v := range p.Variants {
				if v.Price != nil {
					parts = append(parts, fmtFloat(*v.Price))
				} else {
					parts = append(parts, fmtFloat(p.Price))
				}
			}
			return strings.Join(parts, ", ")
		},
	},
	FieldOptionValues: {
		Label:   "Options",
		Product: func(_ *Resolver, _ *models.Product) string { return "" },
		Variant: func(_ *Resolver, _ *models.Product, v *models.Variant) string {
			parts := make([]string, 0, len(v.OptionValues))
			for _, ov := range v.OptionValues {
				if ov.OptionDisplayName != "" {
					parts = append(parts, fmt.Sprintf("%s: %s", ov.OptionDisplayName, ov.Label))
				} else {
					parts = append(parts, ov.Label)
				}
			}
			return strings.Join(parts, ", ")
		},
	},
	FieldCustomURL: {
		Label: "Custom URL",
		Product: func(r *Resolver, p *models.Product) string {
			if p.CustomURL == nil {
				return ""
			}
			return r.applyDomain(p.CustomURL.URL)
		},
	},
}

// FieldOption feeds the selection form.
type FieldOption struct {
	Name  Field
	Label string
}

// FieldOptions returns every exportable field in display order.
func FieldOptions() []FieldOption {
	opts := make([]FieldOption, 0, len(fieldOrder))
	for _, f := range fieldOrder {
		opts = append(opts, FieldOption{Name: f, Label: fieldDefs[f].Label})
	}
	return opts
}

// Label returns the CSV header label for a field, or the raw name if it is
// somehow unknown.
func (f Field) Label() string {
	if def, ok := fieldDefs[f]; ok {
		return def.Label
	}
	return string(f)
}

// ParseSelection turns the comma-joined ordered form value into a field
// selection. Order is preserved, duplicates are dropped, and unknown names
// are rejected.
func ParseSelection(raw string) ([]Field, error) {
	var fields []Field
	seen := make(map[Field]bool)
	for _, part := range strings.Split(raw, ",") {
		name := Field(strings.TrimSpace(part))
		if name == "" {
			continue
		}
		if _, ok := fieldDefs[name]; !ok {
			return nil, fmt.Errorf("unknown field %q", name)
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		fields = append(fields, name)
	}
	return fields, nil
}

// Header maps a field selection to its CSV header labels.
func Header(fields []Field) []string {
	header := make([]string, len(fields))
	for i, f := range fields {
		header[i] = f.Label()
	}
	return header
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

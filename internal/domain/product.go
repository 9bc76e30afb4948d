package domain

import "time"

// ColorName carries the three renderings of a variant name. All three denote
// the same variant; the catalog, the storefront cart and historical order
// snapshots may each use a different language.
type ColorName struct {
	EN string `json:"en"`
	FR string `json:"fr"`
	AR string `json:"ar"`
}

// Color is one variant of a product with its own stock bucket.
type Color struct {
	ColorName ColorName `json:"colorName"`
	Images    []string  `json:"images"`
	Stock     int       `json:"stock"`
}

// Translation holds the localized title and description of a product.
type Translation struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

type Translations struct {
	EN Translation `json:"en,omitzero"`
	FR Translation `json:"fr,omitzero"`
	AR Translation `json:"ar,omitzero"`
}

type Product struct {
	ID            string       `json:"id"`
	Title         string       `json:"title"`
	Description   string       `json:"description,omitempty"`
	Translations  Translations `json:"translations"`
	MainCategory  string       `json:"mainCategory"`
	SubCategory   string       `json:"subCategory"`
	FrameType     string       `json:"frameType,omitempty"`
	CoverImage    string       `json:"coverImage,omitempty"`
	Brand         string       `json:"brand,omitempty"`
	OldPriceCents int64        `json:"oldPriceCents"`
	NewPriceCents int64        `json:"newPriceCents"`
	Colors        []Color      `json:"colors"`
	StockQuantity int          `json:"stockQuantity"`
	Trending      bool         `json:"trending"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

// TotalStock sums the per-color buckets. StockQuantity must equal this after
// any mutation of Colors.
func (p Product) TotalStock() int {
	total := 0
	for _, c := range p.Colors {
		total += c.Stock
	}
	return total
}

package internal

import "github.com/shopspring/decimal"

type RawTextBlock struct {
	Text string `json:"text"`
	HTML string `json:"html,omitempty"`
}

type RawScrapeSnapshot struct {
	RawTitle        string         `json:"raw_title"`
	FullPageText    string         `json:"full_page_text"`
	Rows            []RawTextBlock `json:"rows"`
	ThumbnailURL    *string        `json:"thumbnail_url,omitempty"`
	ImageURLs       []string       `json:"image_urls"`
	DescriptionHTML *string        `json:"description_html,omitempty"`
	SpecsHTML       *string        `json:"specs_html,omitempty"`
}

type VariantRow struct {
	Colour      *string
	Size        *string
	PriceSource *decimal.Decimal
}

type OptionName string

const (
	OptionColour OptionName = "Colour"
	OptionSize   OptionName = "Size"

	DefaultOptionValue = "Default"
	OneSize            = "One Size"
)

type Option struct {
	Name   OptionName `json:"name"`
	Values []string   `json:"values"`
}

type InventoryPolicy string

const InventoryContinue InventoryPolicy = "continue"

type Variant struct {
	Option1             string          `json:"option1"`
	Option2             *string         `json:"option2,omitempty"`
	Price               *string         `json:"price"`
	InventoryPolicy     InventoryPolicy `json:"inventory_policy"`
	InventoryManagement string          `json:"inventory_management"`
	Taxable             bool            `json:"taxable"`
	RequiresShipping    bool            `json:"requires_shipping"`
}

type StageStatus map[string]string

const StageOK = "ok"

type ProductRecord struct {
	Title           string      `json:"title"`
	Vendor          *string     `json:"vendor,omitempty"`
	Tag             *string     `json:"tag,omitempty"`
	ProductType     *string     `json:"product_type"`
	Options         []Option    `json:"options"`
	Variants        []Variant   `json:"variants"`
	DescriptionHTML *string     `json:"description_html,omitempty"`
	SpecsHTML       *string     `json:"specs_html,omitempty"`
	Colours         []string    `json:"colours"`
	Sizes           []string    `json:"sizes"`
	Count           int         `json:"count"`
	Status          StageStatus `json:"status"`
}

type Credentials struct {
	Email    string
	Password string
}

package models

// Catalog types mirror the headless CMS payloads consumed by this service.
// Field names follow the CMS wire format (camelCase identifiers, documentId).

type ProductImage struct {
	ID         int    `json:"id"`
	DocumentID string `json:"documentId"`
	Name       string `json:"name"`
	URL        string `json:"url"`
}

type ProductVariant struct {
	ID    int     `json:"id"`
	SKU   string  `json:"sku"`
	Size  string  `json:"size"`
	Color string  `json:"color"`
	Price float64 `json:"price"`
	Stock int     `json:"stock"`
}

type Tag struct {
	ID         int    `json:"id"`
	DocumentID string `json:"documentId"`
	Name       string `json:"name"`
	Slug       string `json:"slug"`
}

type CategoryImage struct {
	URL string `json:"url"`
}

type Category struct {
	ID          int            `json:"id"`
	DocumentID  string         `json:"documentId"`
	Name        string         `json:"name"`
	Slug        string         `json:"slug"`
	Description string         `json:"description,omitempty"`
	Image       *CategoryImage `json:"image,omitempty"`
	Tags        []Tag          `json:"tags,omitempty"`
}

type Product struct {
	ID                    int                  `json:"id"`
	DocumentID            string               `json:"documentId"`
	Title                 string               `json:"title"`
	Slug                  string               `json:"slug"`
	Subtitle              string               `json:"subtitle,omitempty"`
	Description           string               `json:"description,omitempty"`
	Price                 float64              `json:"price"`
	OriginalPrice         float64              `json:"original_price,omitempty"`
	Currency              string               `json:"currency,omitempty"`
	AllowCustomization    bool                 `json:"allow_customization,omitempty"`
	Category              *Category            `json:"category,omitempty"`
	Tags                  []Tag                `json:"tags,omitempty"`
	Variants              []ProductVariant     `json:"variants,omitempty"`
	Images                []ProductImage       `json:"images,omitempty"`
	CustomizationTemplate []CustomizationField `json:"customization_template,omitempty"`
}

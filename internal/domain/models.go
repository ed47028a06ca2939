package domain

import "strings"

// CatalogType selects one of the three fixed product catalogs.
type CatalogType string

const (
	AmazonDeals    CatalogType = "amazon_deals"
	Ebooks         CatalogType = "ebooks"
	AutomationApps CatalogType = "automation_apps"
)

// CatalogTypes lists the catalogs in navigation order.
var CatalogTypes = []CatalogType{AmazonDeals, Ebooks, AutomationApps}

// ParseCatalogType accepts the canonical names plus the URL spellings the
// storefront pages have used (e_books, hyphenated names).
func ParseCatalogType(s string) (CatalogType, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "-", "_")
	switch s {
	case "amazon_deals":
		return AmazonDeals, true
	case "ebooks", "e_books":
		return Ebooks, true
	case "automation_apps":
		return AutomationApps, true
	}
	return "", false
}

// FileName is the storage key of the catalog. Unknown values fall back to
// the deals catalog.
func (t CatalogType) FileName() string {
	switch t {
	case Ebooks:
		return "ebooks.json"
	case AutomationApps:
		return "automation_apps.json"
	default:
		return "amazon_deals.json"
	}
}

func (t CatalogType) Title() string {
	switch t {
	case Ebooks:
		return "E-Books"
	case AutomationApps:
		return "Automation Apps"
	default:
		return "Amazon Deals"
	}
}

// Status is the single status tag of a product record.
type Status string

const (
	StatusActive     Status = "active"
	StatusInactive   Status = "inactive"
	StatusHot        Status = "hot"
	StatusTrending   Status = "trending"
	StatusBestseller Status = "bestseller"
)

// Promotional reports whether the status is one of the promotional variants
// of a listing (hot, trending, bestseller).
func (s Status) Promotional() bool {
	return s == StatusHot || s == StatusTrending || s == StatusBestseller
}

func (s Status) Valid() bool {
	return s == StatusActive || s == StatusInactive || s.Promotional()
}

// Product is one record of a catalog as persisted in the catalog store.
type Product struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	SearchTerms string   `json:"searchTerms,omitempty"`
	Category    string   `json:"category"`
	Rating      float64  `json:"rating"`
	Reviews     int      `json:"reviews"`
	Price       string   `json:"price"` // pre-formatted, e.g. "Rs 1,299"
	Images      []string `json:"images"`
	Link        string   `json:"link"`
	Status      Status   `json:"status"`
	CreatedAt   string   `json:"createdAt"`
}

// ProductPatch carries the fields of a shallow update; nil fields are left
// untouched.
type ProductPatch struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	SearchTerms *string   `json:"searchTerms,omitempty"`
	Category    *string   `json:"category,omitempty"`
	Rating      *float64  `json:"rating,omitempty"`
	Reviews     *int      `json:"reviews,omitempty"`
	Price       *string   `json:"price,omitempty"`
	Images      *[]string `json:"images,omitempty"`
	Link        *string   `json:"link,omitempty"`
	Status      *Status   `json:"status,omitempty"`
}

// Apply merges the patch over p and returns the result.
func (pp ProductPatch) Apply(p Product) Product {
	if pp.Title != nil {
		p.Title = *pp.Title
	}
	if pp.Description != nil {
		p.Description = *pp.Description
	}
	if pp.SearchTerms != nil {
		p.SearchTerms = *pp.SearchTerms
	}
	if pp.Category != nil {
		p.Category = *pp.Category
	}
	if pp.Rating != nil {
		p.Rating = *pp.Rating
	}
	if pp.Reviews != nil {
		p.Reviews = *pp.Reviews
	}
	if pp.Price != nil {
		p.Price = *pp.Price
	}
	if pp.Images != nil {
		p.Images = append([]string(nil), (*pp.Images)...)
	}
	if pp.Link != nil {
		p.Link = *pp.Link
	}
	if pp.Status != nil {
		p.Status = *pp.Status
	}
	return p
}

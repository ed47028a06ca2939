package validate

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"storefront/internal/domain"
)

const (
	maxQ        = 100
	maxCategory = 60
	maxTitle    = 200
	maxText     = 4000
	maxImages   = 20
	maxQty      = 99
)

var (
	reID    = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	rePrice = regexp.MustCompile(`^(Rs\.? ?)?[0-9][0-9,]*(\.[0-9]{1,2})?$`)
	reURL   = regexp.MustCompile(`^(https?://|/)\S+$`)
)

// Catalog validates the :type route parameter.
func Catalog(s string) (domain.CatalogType, bool) {
	return domain.ParseCatalogType(s)
}

// Page parses the page query value; anything unusable is page 1.
func Page(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Q trims a search query and caps its length at a rune boundary. Empty means
// no search.
func Q(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > maxQ {
		cut := maxQ
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = s[:cut]
	}
	return s
}

// Category trims a category filter; "all" and empty both mean no filter.
func Category(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "all") {
		return "", true
	}
	return s, len(s) <= maxCategory
}

// ID validates a product identifier.
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

func Status(s string) (domain.Status, bool) {
	st := domain.Status(strings.ToLower(strings.TrimSpace(s)))
	return st, st.Valid()
}

func Price(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && rePrice.MatchString(s)
}

// Qty validates a cart line quantity.
func Qty(n int) bool {
	return n >= 1 && n <= maxQty
}

// Product checks the fields an admin submits for a new product and returns
// the first problem found, or "" when the record is acceptable.
func Product(p *domain.Product) string {
	p.Title = strings.TrimSpace(p.Title)
	p.Category = strings.TrimSpace(p.Category)
	if p.Title == "" || len(p.Title) > maxTitle {
		return "title is required (max 200 chars)"
	}
	if len(p.Description) > maxText || len(p.SearchTerms) > maxText {
		return "description too long"
	}
	if len(p.Category) > maxCategory {
		return "category too long"
	}
	if p.Rating < 0 || p.Rating > 5 {
		return "rating must be between 0 and 5"
	}
	if p.Reviews < 0 {
		return "reviews must not be negative"
	}
	if p.Price != "" {
		if _, ok := Price(p.Price); !ok {
			return "invalid price"
		}
	}
	if len(p.Images) > maxImages {
		return "too many images"
	}
	for _, img := range p.Images {
		if !reURL.MatchString(img) {
			return "invalid image url"
		}
	}
	if p.Link != "" && !reURL.MatchString(p.Link) {
		return "invalid link"
	}
	if p.Status != "" && !p.Status.Valid() {
		return "invalid status"
	}
	return ""
}

// Patch applies the same rules to the fields present in a patch. Text fields
// are trimmed in place so the stored values match what was checked.
func Patch(pp *domain.ProductPatch) string {
	if pp.Title != nil {
		t := strings.TrimSpace(*pp.Title)
		if t == "" {
			return "title must not be empty"
		}
		pp.Title = &t
	}
	if pp.Category != nil {
		c := strings.TrimSpace(*pp.Category)
		pp.Category = &c
	}
	if pp.Status != nil {
		st, ok := Status(string(*pp.Status))
		if !ok {
			return "invalid status"
		}
		pp.Status = &st
	}
	merged := pp.Apply(domain.Product{Title: "x", Status: domain.StatusActive})
	return Product(&merged)
}

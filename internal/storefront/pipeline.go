// Package storefront turns a catalog into what a shopper sees: the
// filter/search/paginate pipeline, the view model for grid, reel and
// pagination, and the Session that ties them to a reel controller.
package storefront

import (
	"strings"

	"storefront/internal/domain"
)

const DefaultPageSize = 10

// Query is the filter state of a view: category, search text and a 1-based
// page number.
type Query struct {
	Category string `json:"category"`
	Search   string `json:"search"`
	Page     int    `json:"page"`
}

// Pipeline filters, searches and paginates a catalog. It is a pure value;
// the zero value uses DefaultPageSize and shows only "active" records.
type Pipeline struct {
	PageSize int
	// IncludePromotional also shows hot/trending/bestseller records. Off by
	// default: only the literal "active" status is visible.
	IncludePromotional bool
}

func (p Pipeline) pageSize() int {
	if p.PageSize <= 0 {
		return DefaultPageSize
	}
	return p.PageSize
}

func (p Pipeline) visible(s domain.Status) bool {
	if s == domain.StatusActive {
		return true
	}
	return p.IncludePromotional && s.Promotional()
}

// Filter applies status, category and search filters, preserving order.
func (p Pipeline) Filter(products []domain.Product, q Query) []domain.Product {
	term := strings.ToLower(q.Search)
	out := make([]domain.Product, 0, len(products))
	for _, pr := range products {
		if !p.visible(pr.Status) {
			continue
		}
		if q.Category != "" && pr.Category != q.Category {
			continue
		}
		if term != "" && !matches(pr, term) {
			continue
		}
		out = append(out, pr)
	}
	return out
}

func matches(p domain.Product, term string) bool {
	return strings.Contains(strings.ToLower(p.Title), term) ||
		strings.Contains(strings.ToLower(p.Description), term) ||
		(p.SearchTerms != "" && strings.Contains(strings.ToLower(p.SearchTerms), term))
}

// Paginate returns the page-th slice of filtered. Pages past the end, and
// pages below 1, are empty.
func (p Pipeline) Paginate(filtered []domain.Product, page int) []domain.Product {
	size := p.pageSize()
	if page < 1 {
		return []domain.Product{}
	}
	start := (page - 1) * size
	if start >= len(filtered) {
		return []domain.Product{}
	}
	end := start + size
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end]
}

// Run filters then paginates, returning the page and the filtered count.
func (p Pipeline) Run(products []domain.Product, q Query) ([]domain.Product, int) {
	filtered := p.Filter(products, q)
	return p.Paginate(filtered, q.Page), len(filtered)
}

// TotalPages is ceil(count / page size).
func (p Pipeline) TotalPages(count int) int {
	size := p.pageSize()
	return (count + size - 1) / size
}

// Categories returns the distinct non-empty categories of the whole catalog
// in first-appearance order.
func Categories(products []domain.Product) []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range products {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		out = append(out, p.Category)
	}
	return out
}

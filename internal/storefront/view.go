package storefront

import (
	"math"
	"strconv"

	"storefront/internal/domain"
)

// PlaceholderImage replaces a missing or broken product image.
const PlaceholderImage = "https://via.placeholder.com/300x300?text=Image+Error"

type Badge struct {
	Class string `json:"class"`
	Label string `json:"label"`
}

// BadgeFor returns the single badge shown for a status, or nil for active.
func BadgeFor(s domain.Status) *Badge {
	switch s {
	case domain.StatusActive:
		return nil
	case domain.StatusHot:
		return &Badge{Class: "hot", Label: "Hot"}
	case domain.StatusTrending:
		return &Badge{Class: "trending", Label: "Trending"}
	case domain.StatusBestseller:
		return &Badge{Class: "bestseller", Label: "Best Seller"}
	default:
		return &Badge{Class: "inactive", Label: "Inactive"}
	}
}

// Stars is a five-slot rating split into full, half and empty stars.
type Stars struct {
	Full  int `json:"full"`
	Half  int `json:"half"`
	Empty int `json:"empty"`
}

func StarsFor(rating float64) Stars {
	if math.IsNaN(rating) || rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}
	full := int(math.Floor(rating))
	half := 0
	if rating-float64(full) >= 0.5 {
		half = 1
	}
	return Stars{Full: full, Half: half, Empty: 5 - full - half}
}

// Glyphs lists the slots in display order: "full", "half", "empty".
func (s Stars) Glyphs() []string {
	out := make([]string, 0, 5)
	for i := 0; i < s.Full; i++ {
		out = append(out, "full")
	}
	for i := 0; i < s.Half; i++ {
		out = append(out, "half")
	}
	for i := 0; i < s.Empty; i++ {
		out = append(out, "empty")
	}
	return out
}

// Card is the display data of one product, shared by grid and reel.
type Card struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Link        string `json:"link"`
	Image       string `json:"image"`
	Reviews     int    `json:"reviews"`
	Stars       Stars  `json:"stars"`
	Badge       *Badge `json:"badge,omitempty"`
}

// ReelCard is a Card with its position in the reel.
type ReelCard struct {
	Card
	Index int `json:"index"`
}

func CardFor(p domain.Product) Card {
	img := PlaceholderImage
	if len(p.Images) > 0 && p.Images[0] != "" {
		img = p.Images[0]
	}
	return Card{
		ID:          p.ID,
		Title:       p.Title,
		Category:    p.Category,
		Description: p.Description,
		Price:       p.Price,
		Link:        p.Link,
		Image:       img,
		Reviews:     p.Reviews,
		Stars:       StarsFor(p.Rating),
		Badge:       BadgeFor(p.Status),
	}
}

type PageLink struct {
	Label  string `json:"label"`
	Page   int    `json:"page"`
	Active bool   `json:"active"`
}

// Pagination holds the page links; Links is empty when there is at most one
// page.
type Pagination struct {
	Current    int        `json:"current"`
	TotalPages int        `json:"totalPages"`
	Links      []PageLink `json:"links"`
}

func (p Pagination) Visible() bool { return len(p.Links) > 0 }

func BuildPagination(current, totalPages int) Pagination {
	pg := Pagination{Current: current, TotalPages: totalPages, Links: []PageLink{}}
	if totalPages <= 1 {
		return pg
	}
	if current > 1 {
		pg.Links = append(pg.Links, PageLink{Label: "Previous", Page: current - 1})
	}
	for i := 1; i <= totalPages; i++ {
		pg.Links = append(pg.Links, PageLink{Label: strconv.Itoa(i), Page: i, Active: i == current})
	}
	if current < totalPages {
		pg.Links = append(pg.Links, PageLink{Label: "Next", Page: current + 1})
	}
	return pg
}

type CategoryOption struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

// CategoryOptions builds the dropdown: "All Categories" first, then every
// category of the unfiltered catalog. selected survives only if present.
func CategoryOptions(products []domain.Product, selected string) []CategoryOption {
	cats := Categories(products)
	found := false
	opts := make([]CategoryOption, 0, len(cats)+1)
	opts = append(opts, CategoryOption{Value: "", Label: "All Categories"})
	for _, c := range cats {
		sel := c == selected
		found = found || sel
		opts = append(opts, CategoryOption{Value: c, Label: c, Selected: sel})
	}
	opts[0].Selected = !found
	return opts
}

// View is everything a presentation layer needs to paint one catalog page.
type View struct {
	Catalog    domain.CatalogType `json:"catalog"`
	Title      string             `json:"title"`
	Query      Query              `json:"query"`
	Total      int                `json:"total"`
	Grid       []Card             `json:"grid"`
	Reel       []ReelCard         `json:"reel"`
	Pagination Pagination         `json:"pagination"`
	Categories []CategoryOption   `json:"categories"`
	Empty      bool               `json:"empty"`
}

// Build runs the pipeline over products and assembles the full view.
func (p Pipeline) Build(kind domain.CatalogType, products []domain.Product, q Query) View {
	page, total := p.Run(products, q)
	v := View{
		Catalog:    kind,
		Title:      kind.Title(),
		Query:      q,
		Total:      total,
		Grid:       make([]Card, 0, len(page)),
		Reel:       make([]ReelCard, 0, len(page)),
		Pagination: BuildPagination(q.Page, p.TotalPages(total)),
		Categories: CategoryOptions(products, q.Category),
		Empty:      len(page) == 0,
	}
	for i, pr := range page {
		c := CardFor(pr)
		v.Grid = append(v.Grid, c)
		v.Reel = append(v.Reel, ReelCard{Card: c, Index: i})
	}
	return v
}

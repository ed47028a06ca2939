package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"storefront/internal/domain"
)

var ErrProductNotFound = errors.New("product not found")

// Service owns read-modify-write access to the catalogs in a Store. Every
// mutation loads the full catalog, transforms it and writes it back.
type Service struct {
	store Store
	now   func() time.Time
	mu    sync.Mutex
}

func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// Load returns the catalog for kind. A missing entry is initialized empty and
// persisted; a malformed entry reads as empty.
func (s *Service) Load(kind domain.CatalogType) ([]domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(kind)
}

func (s *Service) load(kind domain.CatalogType) ([]domain.Product, error) {
	raw, err := s.store.Get(kind.FileName())
	if errors.Is(err, ErrNotFound) {
		products := []domain.Product{}
		return products, s.save(kind, products)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", kind.FileName(), err)
	}
	var products []domain.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		log.Printf("[catalog] %s is malformed, treating as empty: %v", kind.FileName(), err)
		return []domain.Product{}, nil
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}

func (s *Service) save(kind domain.CatalogType, products []domain.Product) error {
	raw, err := json.Marshal(products)
	if err != nil {
		return err
	}
	if err := s.store.Put(kind.FileName(), raw); err != nil {
		return fmt.Errorf("save %s: %w", kind.FileName(), err)
	}
	return nil
}

// Replace overwrites the whole catalog, e.g. from an import file.
func (s *Service) Replace(kind domain.CatalogType, products []domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if products == nil {
		products = []domain.Product{}
	}
	return s.save(kind, products)
}

// Add stores p under a fresh id and creation time at the front of the catalog.
func (s *Service) Add(kind domain.CatalogType, p domain.Product) (domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.load(kind)
	if err != nil {
		return domain.Product{}, err
	}
	now := s.now()
	p.ID = NewProductID(now)
	p.CreatedAt = now.UTC().Format(time.RFC3339Nano)
	if p.Status == "" {
		p.Status = domain.StatusActive
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	products = append([]domain.Product{p}, products...)
	return p, s.save(kind, products)
}

// Update merges patch over the record with id.
func (s *Service) Update(kind domain.CatalogType, id string, patch domain.ProductPatch) (domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.load(kind)
	if err != nil {
		return domain.Product{}, err
	}
	i := indexOf(products, id)
	if i < 0 {
		return domain.Product{}, ErrProductNotFound
	}
	products[i] = patch.Apply(products[i])
	return products[i], s.save(kind, products)
}

func (s *Service) Delete(kind domain.CatalogType, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.load(kind)
	if err != nil {
		return err
	}
	i := indexOf(products, id)
	if i < 0 {
		return ErrProductNotFound
	}
	products = append(products[:i], products[i+1:]...)
	return s.save(kind, products)
}

// Duplicate copies the record with id under a new id and creation time, with
// " (Copy)" appended to the title, and puts the copy first.
func (s *Service) Duplicate(kind domain.CatalogType, id string) (domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.load(kind)
	if err != nil {
		return domain.Product{}, err
	}
	i := indexOf(products, id)
	if i < 0 {
		return domain.Product{}, ErrProductNotFound
	}
	now := s.now()
	cp := products[i]
	cp.Images = append([]string(nil), products[i].Images...)
	cp.ID = NewProductID(now)
	cp.Title = products[i].Title + " (Copy)"
	cp.CreatedAt = now.UTC().Format(time.RFC3339Nano)
	products = append([]domain.Product{cp}, products...)
	return cp, s.save(kind, products)
}

// Get returns a single record.
func (s *Service) Get(kind domain.CatalogType, id string) (domain.Product, error) {
	products, err := s.Load(kind)
	if err != nil {
		return domain.Product{}, err
	}
	if i := indexOf(products, id); i >= 0 {
		return products[i], nil
	}
	return domain.Product{}, ErrProductNotFound
}

func indexOf(products []domain.Product, id string) int {
	for i := range products {
		if products[i].ID == id {
			return i
		}
	}
	return -1
}

// NewProductID builds "prod_<unix-ms>_<9 random chars>". Uniqueness is
// probabilistic.
func NewProductID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("prod_%d_%s", now.UnixMilli(), suffix)
}

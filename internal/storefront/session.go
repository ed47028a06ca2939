package storefront

import (
	"sync"
	"time"

	"storefront/internal/catalog"
	"storefront/internal/domain"
	"storefront/internal/reel"
)

type SessionOptions struct {
	Pipeline  Pipeline
	ReelDelay time.Duration
	// OnRender receives every freshly built view. Called without locks held.
	OnRender func(View)
	// OnReel receives the reel index each time it changes.
	OnReel func(index int)
}

// Session is the explicit state of one browsing session: the active catalog
// snapshot, the view state and the reel controller. Every interaction
// re-runs the pipeline and republishes the whole view.
type Session struct {
	svc      *catalog.Service
	pipeline Pipeline
	onRender func(View)

	mu       sync.Mutex
	kind     domain.CatalogType
	products []domain.Product
	query    Query
	view     View

	reel *reel.Controller
}

// NewSession loads kind from svc and renders page 1.
func NewSession(svc *catalog.Service, kind domain.CatalogType, opts SessionOptions) (*Session, error) {
	s := &Session{
		svc:      svc,
		pipeline: opts.Pipeline,
		onRender: opts.OnRender,
		kind:     kind,
		query:    Query{Page: 1},
	}
	if s.onRender == nil {
		s.onRender = func(View) {}
	}
	s.reel = reel.New(opts.ReelDelay, opts.OnReel)

	products, err := svc.Load(kind)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.products = products
	v := s.buildLocked()
	s.mu.Unlock()
	s.publish(v)
	return s, nil
}

func (s *Session) buildLocked() View {
	s.view = s.pipeline.Build(s.kind, s.products, s.query)
	return s.view
}

// publish restarts the reel for the new page before handing the view out, so
// a stale timer never runs against a replaced page.
func (s *Session) publish(v View) {
	s.reel.Start(len(v.Reel))
	s.onRender(v)
}

func (s *Session) update(fn func()) View {
	s.mu.Lock()
	fn()
	v := s.buildLocked()
	s.mu.Unlock()
	s.publish(v)
	return v
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

func (s *Session) Query() Query {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

func (s *Session) Catalog() domain.CatalogType {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kind
}

// SetCategory filters by category ("" for all) and returns to page 1.
func (s *Session) SetCategory(category string) View {
	return s.update(func() {
		s.query.Category = category
		s.query.Page = 1
	})
}

// SetSearch filters by search text and returns to page 1.
func (s *Session) SetSearch(text string) View {
	return s.update(func() {
		s.query.Search = text
		s.query.Page = 1
	})
}

func (s *Session) GoToPage(page int) View {
	return s.update(func() { s.query.Page = page })
}

// SwitchCatalog loads another catalog and resets the view state.
func (s *Session) SwitchCatalog(kind domain.CatalogType) (View, error) {
	products, err := s.svc.Load(kind)
	if err != nil {
		return View{}, err
	}
	return s.update(func() {
		s.kind = kind
		s.products = products
		s.query = Query{Page: 1}
	}), nil
}

// Reload re-reads the active catalog from the store.
func (s *Session) Reload() (View, error) {
	kind := s.Catalog()
	products, err := s.svc.Load(kind)
	if err != nil {
		return View{}, err
	}
	return s.update(func() { s.products = products }), nil
}

func (s *Session) NextReel() int  { return s.reel.Next() }
func (s *Session) PrevReel() int  { return s.reel.Prev() }
func (s *Session) ReelIndex() int { return s.reel.Index() }

func (s *Session) Add(p domain.Product) (domain.Product, error) {
	added, err := s.svc.Add(s.Catalog(), p)
	if err != nil {
		return domain.Product{}, err
	}
	_, err = s.Reload()
	return added, err
}

func (s *Session) Update(id string, patch domain.ProductPatch) (domain.Product, error) {
	updated, err := s.svc.Update(s.Catalog(), id, patch)
	if err != nil {
		return domain.Product{}, err
	}
	_, err = s.Reload()
	return updated, err
}

func (s *Session) Delete(id string) error {
	if err := s.svc.Delete(s.Catalog(), id); err != nil {
		return err
	}
	_, err := s.Reload()
	return err
}

func (s *Session) Duplicate(id string) (domain.Product, error) {
	cp, err := s.svc.Duplicate(s.Catalog(), id)
	if err != nil {
		return domain.Product{}, err
	}
	_, err = s.Reload()
	return cp, err
}

// Close stops the reel timer.
func (s *Session) Close() { s.reel.Stop() }

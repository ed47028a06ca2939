// Package tui is a terminal storefront: it binds a storefront.Session to
// bubbletea widgets.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"storefront/internal/catalog"
	"storefront/internal/domain"
	"storefront/internal/storefront"
)

// Messages
type viewMsg storefront.View
type reelMsg int

// Model is the bubbletea model of the terminal storefront.
type Model struct {
	session *storefront.Session
	events  chan tea.Msg

	view      storefront.View
	reelIndex int

	search    textinput.Model
	searching bool

	status string
	width  int
	height int
}

// New opens a session on kind. Session callbacks are forwarded to the
// program through a buffered channel; when it is full the event is dropped,
// since every key handler reads the fresh view straight from the session.
func New(svc *catalog.Service, kind domain.CatalogType, opts storefront.SessionOptions) (Model, error) {
	events := make(chan tea.Msg, 64)
	send := func(msg tea.Msg) {
		select {
		case events <- msg:
		default:
		}
	}
	opts.OnRender = func(v storefront.View) { send(viewMsg(v)) }
	opts.OnReel = func(i int) { send(reelMsg(i)) }

	s, err := storefront.NewSession(svc, kind, opts)
	if err != nil {
		return Model{}, err
	}

	ti := textinput.New()
	ti.Placeholder = "search title, description or keywords"
	ti.CharLimit = 100
	ti.Prompt = "/ "

	return Model{
		session:   s,
		events:    events,
		view:      s.View(),
		reelIndex: s.ReelIndex(),
		search:    ti,
	}, nil
}

// Close stops the reel timer.
func (m Model) Close() { m.session.Close() }

func (m Model) wait() tea.Cmd {
	return func() tea.Msg { return <-m.events }
}

func (m Model) Init() tea.Cmd {
	return m.wait()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case viewMsg:
		m.view = storefront.View(msg)
		m.reelIndex = m.session.ReelIndex()
		return m, m.wait()

	case reelMsg:
		m.reelIndex = int(msg)
		return m, m.wait()

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.handleKeyPress(msg)
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		m.apply(m.session.SetSearch(m.search.Value()))
		return m, nil
	case tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		m.search.SetValue(m.view.Query.Search)
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	switch msg.String() {
	case "q", "ctrl+c":
		m.session.Close()
		return m, tea.Quit

	case "/":
		m.searching = true
		return m, m.search.Focus()

	case "c":
		m.apply(m.session.SetCategory(nextCategory(m.view.Categories)))

	case "x":
		m.search.SetValue("")
		m.session.SetCategory("")
		m.apply(m.session.SetSearch(""))

	case "n", "pgdown":
		if m.view.Query.Page < m.view.Pagination.TotalPages {
			m.apply(m.session.GoToPage(m.view.Query.Page + 1))
		}

	case "p", "pgup":
		if m.view.Query.Page > 1 {
			m.apply(m.session.GoToPage(m.view.Query.Page - 1))
		}

	case "right", "l":
		m.reelIndex = m.session.NextReel()

	case "left", "h":
		m.reelIndex = m.session.PrevReel()

	case "tab":
		v, err := m.session.SwitchCatalog(nextCatalog(m.view.Catalog))
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.search.SetValue("")
		m.apply(v)

	case "r":
		v, err := m.session.Reload()
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.apply(v)

	case "d":
		if card, ok := m.currentReel(); ok {
			if _, err := m.session.Duplicate(card.ID); err != nil {
				m.status = err.Error()
				return m, nil
			}
			m.apply(m.session.View())
			m.status = "duplicated " + card.Title
		}
	}
	return m, nil
}

func (m *Model) apply(v storefront.View) {
	m.view = v
	m.reelIndex = m.session.ReelIndex()
}

func (m Model) currentReel() (storefront.ReelCard, bool) {
	if m.reelIndex < 0 || m.reelIndex >= len(m.view.Reel) {
		return storefront.ReelCard{}, false
	}
	return m.view.Reel[m.reelIndex], true
}

// nextCategory cycles through the dropdown options, wrapping to "All".
func nextCategory(opts []storefront.CategoryOption) string {
	for i, o := range opts {
		if o.Selected {
			return opts[(i+1)%len(opts)].Value
		}
	}
	return ""
}

func nextCatalog(cur domain.CatalogType) domain.CatalogType {
	for i, t := range domain.CatalogTypes {
		if t == cur {
			return domain.CatalogTypes[(i+1)%len(domain.CatalogTypes)]
		}
	}
	return domain.CatalogTypes[0]
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(" Storefront "))
	b.WriteString("  ")
	for _, t := range domain.CatalogTypes {
		if t == m.view.Catalog {
			b.WriteString(activeTabStyle.Render(t.Title()))
		} else {
			b.WriteString(inactiveTabStyle.Render(t.Title()))
		}
	}
	b.WriteString("\n\n")

	b.WriteString(m.renderFilters())
	b.WriteString("\n\n")

	if card, ok := m.currentReel(); ok {
		b.WriteString(reelStyle.Render(fmt.Sprintf("%s %d/%d\n%s\n%s  %s",
			mutedStyle.Render("featured"), m.reelIndex+1, len(m.view.Reel),
			card.Title, priceStyle.Render(card.Price), stars(card.Stars))))
		b.WriteString("\n\n")
	}

	if m.view.Empty {
		b.WriteString(mutedStyle.Render("  No products found"))
		b.WriteString("\n")
	}
	for _, c := range m.view.Grid {
		b.WriteString(renderCard(c))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(renderPagination(m.view.Pagination))
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("/ search  c category  x clear  n/p page  ←/→ reel  tab catalog  d duplicate  r reload  q quit"))
	return b.String()
}

func (m Model) renderFilters() string {
	category := "All Categories"
	for _, o := range m.view.Categories {
		if o.Selected {
			category = o.Label
		}
	}
	line := fmt.Sprintf("Category: %s   %d result(s)", category, m.view.Total)
	if m.searching {
		return line + "\n" + m.search.View()
	}
	if m.view.Query.Search != "" {
		line += fmt.Sprintf("   search: %q", m.view.Query.Search)
	}
	return line
}

func renderCard(c storefront.Card) string {
	badge := ""
	if c.Badge != nil {
		badge = badgeStyles[c.Badge.Class].Render(" "+c.Badge.Label+" ") + " "
	}
	return fmt.Sprintf("  %s%s  %s  %s %s  %s",
		badge, c.Title,
		priceStyle.Render(c.Price),
		stars(c.Stars), mutedStyle.Render(fmt.Sprintf("(%d)", c.Reviews)),
		mutedStyle.Render(c.Category))
}

func stars(s storefront.Stars) string {
	glyphs := map[string]string{"full": "★", "half": "⯪", "empty": "☆"}
	var b strings.Builder
	for _, g := range s.Glyphs() {
		b.WriteString(glyphs[g])
	}
	return starStyle.Render(b.String())
}

func renderPagination(p storefront.Pagination) string {
	if !p.Visible() {
		return ""
	}
	parts := make([]string, 0, len(p.Links))
	for _, l := range p.Links {
		if l.Active {
			parts = append(parts, activeTabStyle.Render(l.Label))
		} else {
			parts = append(parts, inactiveTabStyle.Render(l.Label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

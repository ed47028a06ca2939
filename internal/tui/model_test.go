package tui

import (
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/catalog"
	"storefront/internal/domain"
	"storefront/internal/storefront"
)

func newModel(t *testing.T, n int) Model {
	t.Helper()
	svc := catalog.NewService(catalog.NewMemoryStore())
	products := make([]domain.Product, 0, n)
	for i := 0; i < n; i++ {
		cat := "Kitchen"
		if i%2 == 1 {
			cat = "Garden"
		}
		products = append(products, domain.Product{
			ID: fmt.Sprintf("p%02d", i), Title: fmt.Sprintf("Item %02d", i),
			Category: cat, Rating: 4.5, Price: "Rs 100", Status: domain.StatusActive,
		})
	}
	require.NoError(t, svc.Replace(domain.AmazonDeals, products))
	m, err := New(svc, domain.AmazonDeals, storefront.SessionOptions{ReelDelay: time.Hour})
	require.NoError(t, err)
	t.Cleanup(m.Close)
	return m
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(Model)
	}
	return m
}

func key(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func TestPagingAndReel(t *testing.T) {
	m := newModel(t, 25)
	assert.Equal(t, 1, m.view.Query.Page)

	m = press(t, m, key("n"), key("n"), key("n"))
	assert.Equal(t, 3, m.view.Query.Page, "paging stops at the last page")
	assert.Len(t, m.view.Grid, 5)

	m = press(t, m, key("p"))
	assert.Equal(t, 2, m.view.Query.Page)
	assert.Equal(t, 0, m.reelIndex)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 9, m.reelIndex)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 1, m.reelIndex)
}

func TestCategoryCycleAndSearch(t *testing.T) {
	m := newModel(t, 6)

	m = press(t, m, key("c"))
	assert.Equal(t, "Kitchen", m.view.Query.Category)
	m = press(t, m, key("c"))
	assert.Equal(t, "Garden", m.view.Query.Category)
	m = press(t, m, key("c"))
	assert.Equal(t, "", m.view.Query.Category)

	m = press(t, m, key("/"))
	require.True(t, m.searching)
	m = press(t, m, key("item 03"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.searching)
	assert.Equal(t, 1, m.view.Total)
	assert.Contains(t, m.View(), "Item 03")

	m = press(t, m, key("x"))
	assert.Equal(t, 6, m.view.Total)
}

func TestSwitchCatalogAndDuplicate(t *testing.T) {
	m := newModel(t, 3)

	m = press(t, m, key("d"))
	assert.Equal(t, 4, m.view.Total)
	assert.Equal(t, "Item 00 (Copy)", m.view.Grid[0].Title)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, domain.Ebooks, m.view.Catalog)
	assert.True(t, m.view.Empty)
	assert.Contains(t, m.View(), "No products found")
}

func TestQuitStopsReel(t *testing.T) {
	m := newModel(t, 3)
	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

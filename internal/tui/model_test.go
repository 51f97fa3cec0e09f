package tui

import (
	"context"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/specmaru/backend/internal/domain"
	"github.com/specmaru/backend/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSource struct {
	products map[domain.Category][]domain.Product
}

func (s *staticSource) Products(ctx context.Context, category domain.Category) ([]domain.Product, error) {
	out, ok := s.products[category]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrCategoryUnavailable, category)
	}
	tagged := make([]domain.Product, len(out))
	copy(tagged, out)
	for i := range tagged {
		tagged[i].Category = category
	}
	return tagged, nil
}

func (s *staticSource) News(ctx context.Context) ([]domain.NewsItem, error) {
	return nil, nil
}

func testCatalog() []domain.Product {
	return []domain.Product{
		{ID: "s1", Name: "갤럭시 S24", Category: domain.CategorySmartphones,
			Specs: domain.NewSpecs("출시일", "2024.01")},
		{ID: "l1", Name: "맥북 프로 14", Category: domain.CategoryLaptops,
			Specs: domain.NewSpecs("무게", "1.55kg")},
	}
}

func testService() *usecase.CatalogService {
	return usecase.NewCatalogService(&staticSource{
		products: map[domain.Category][]domain.Product{
			domain.CategorySmartphones: {{ID: "s1", Name: "갤럭시 S24", Specs: domain.NewSpecs("출시일", "2024.01")}},
			domain.CategoryLaptops:     {{ID: "l1", Name: "맥북 프로 14", Specs: domain.NewSpecs("무게", "1.55kg")}},
		},
	}, nil)
}

func loaded(t *testing.T, m Model) Model {
	t.Helper()
	next, _ := m.Update(catalogLoadedMsg{catalog: testCatalog()})
	got, ok := next.(Model)
	require.True(t, ok)
	require.NotNil(t, got.engine)
	return got
}

func typeRunes(m Model, s string) Model {
	for _, r := range s {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(Model)
	}
	return m
}

func press(m Model, keyType tea.KeyType) Model {
	next, _ := m.Update(tea.KeyMsg{Type: keyType})
	return next.(Model)
}

func TestModelLoadsCatalog(t *testing.T) {
	m := New(testService(), "", "")
	assert.True(t, m.loading)

	m = loaded(t, m)
	assert.False(t, m.loading)
	assert.False(t, m.engine.Slot(usecase.SlotLeft).Filled)
}

func TestModelSearchAndCommit(t *testing.T) {
	m := loaded(t, New(testService(), "", ""))

	m = typeRunes(m, "갤럭시")
	slot := m.engine.Slot(usecase.SlotLeft)
	require.Len(t, slot.Results, 1)
	assert.Equal(t, -1, slot.Highlight)

	m = press(m, tea.KeyDown)
	assert.Equal(t, 0, m.engine.Slot(usecase.SlotLeft).Highlight)

	m = press(m, tea.KeyEnter)
	slot = m.engine.Slot(usecase.SlotLeft)
	require.True(t, slot.Filled)
	assert.Equal(t, "s1", slot.Product.ID)
	assert.Empty(t, slot.Query)
}

func TestModelEnterWithoutHighlightIsNoop(t *testing.T) {
	m := loaded(t, New(testService(), "", ""))
	m = typeRunes(m, "갤럭시")

	m = press(m, tea.KeyEnter)
	assert.False(t, m.engine.Slot(usecase.SlotLeft).Filled)
	assert.NotEmpty(t, m.status)
}

func TestModelCategoryMismatchKeepsState(t *testing.T) {
	m := loaded(t, New(testService(), "", ""))

	// Left slot fixed to a smartphone; right searches for a laptop.
	m.engine.Fill(usecase.SlotLeft, testCatalog()[0])
	m.setFocus(usecase.SlotRight)

	m = typeRunes(m, "맥북")
	m = press(m, tea.KeyDown)
	m = press(m, tea.KeyEnter)

	right := m.engine.Slot(usecase.SlotRight)
	assert.False(t, right.Filled, "mismatched commit must not fill the slot")
	assert.Equal(t, "맥북", right.Query)
	assert.NotEmpty(t, m.status, "mismatch must surface a warning")

	left := m.engine.Slot(usecase.SlotLeft)
	require.True(t, left.Filled)
	assert.Equal(t, "s1", left.Product.ID)
}

func TestModelClearSlot(t *testing.T) {
	m := loaded(t, New(testService(), "", ""))
	m.engine.Fill(usecase.SlotLeft, testCatalog()[0])

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'-'}})
	m = next.(Model)

	assert.False(t, m.engine.Slot(usecase.SlotLeft).Filled)
}

func TestModelHydrationAppliesCurrentGeneration(t *testing.T) {
	m := New(testService(), "s1", "")
	m = loaded(t, m) // issues one hydration request for the left slot

	next, _ := m.Update(slotResolvedMsg{
		side:       usecase.SlotLeft,
		generation: 1,
		product:    testCatalog()[0],
		found:      true,
	})
	m = next.(Model)

	slot := m.engine.Slot(usecase.SlotLeft)
	require.True(t, slot.Filled)
	assert.Equal(t, "s1", slot.Product.ID)
}

func TestModelStaleHydrationDiscarded(t *testing.T) {
	m := New(testService(), "s1", "")
	m = loaded(t, m)

	// A second request supersedes the one issued at load time.
	m.engine.BeginHydration(usecase.SlotLeft)

	next, _ := m.Update(slotResolvedMsg{
		side:       usecase.SlotLeft,
		generation: 1,
		product:    testCatalog()[0],
		found:      true,
	})
	m = next.(Model)

	assert.False(t, m.engine.Slot(usecase.SlotLeft).Filled, "stale resolution must be dropped")
}

func TestModelTabSwitchesFocus(t *testing.T) {
	m := loaded(t, New(testService(), "", ""))
	assert.Equal(t, usecase.SlotLeft, m.focus)

	m = press(m, tea.KeyTab)
	assert.Equal(t, usecase.SlotRight, m.focus)
}

func TestModelViewRendersDiff(t *testing.T) {
	m := loaded(t, New(testService(), "", ""))
	m.engine.Fill(usecase.SlotLeft, testCatalog()[0])
	m.engine.Fill(usecase.SlotRight, testCatalog()[1])

	view := m.View()
	assert.Contains(t, view, "출시일")
	assert.Contains(t, view, "무게")
	assert.Contains(t, view, "갤럭시 S24")
}

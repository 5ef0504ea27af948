package components

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/storefront/internal/domain"
)

func testCategories() []domain.Category {
	return []domain.Category{
		{Slug: "beauty", Name: "Beauty"},
		{Slug: "fragrances", Name: "Fragrances"},
		{Slug: "laptops", Name: "Laptops"},
		{Slug: "smartphones", Name: "Smartphones"},
		{Slug: "sports-accessories", Name: "Sports Accessories"},
	}
}

func typeInto(p *CategoryPicker, text string) {
	for _, r := range text {
		p.HandleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func Test_CategoryPicker_Filter(t *testing.T) {
	tests := []struct {
		query string
		want  []string
	}{
		{query: "", want: []string{"", "beauty", "fragrances", "laptops", "smartphones", "sports-accessories"}},
		{query: "lap", want: []string{"laptops"}},
		{query: "phone", want: []string{"smartphones"}},
		{query: "zzz", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			// given
			p := NewCategoryPicker()
			p.SetCategories(testCategories())
			p.Show("")

			// when
			typeInto(&p, tt.query)

			// then
			assert.Equal(t, tt.query, p.Query())
			assert.Equal(t, tt.want, p.Filtered())
		})
	}
}

func Test_CategoryPicker_Select(t *testing.T) {
	// given
	p := NewCategoryPicker()
	p.SetCategories(testCategories())
	p.Show("laptops")

	// when: cursor starts on the active category, one row down is smartphones
	p.HandleKey(tea.KeyMsg{Type: tea.KeyDown})
	handled, _, sel := p.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})

	// then
	assert.True(t, handled)
	require.NotNil(t, sel)
	assert.Equal(t, "smartphones", sel.Slug)
	assert.False(t, p.IsVisible())
}

func Test_CategoryPicker_SelectAllProducts(t *testing.T) {
	// given
	p := NewCategoryPicker()
	p.SetCategories(testCategories())
	p.Show("beauty")

	// when
	p.HandleKey(tea.KeyMsg{Type: tea.KeyUp})
	_, _, sel := p.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})

	// then
	require.NotNil(t, sel)
	assert.Empty(t, sel.Slug)
}

func Test_CategoryPicker_EscapeCancels(t *testing.T) {
	// given
	p := NewCategoryPicker()
	p.SetCategories(testCategories())
	p.Show("")

	// when
	handled, _, sel := p.HandleKey(tea.KeyMsg{Type: tea.KeyEsc})

	// then
	assert.True(t, handled)
	assert.Nil(t, sel)
	assert.False(t, p.IsVisible())
}

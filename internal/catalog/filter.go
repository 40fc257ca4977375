// internal/catalog/filter.go
//
// Package catalog derives the visible product list from a product collection,
// a free-text search term and a set of selected categories.
package catalog

import (
	"slices"
	"strings"

	"github.com/javajoker/farmfresh/internal/models"
)

// Filter is owned by a single view and is not safe for concurrent use.
type Filter struct {
	products   []models.Product
	searchTerm string
	selected   map[models.Category]bool
}

func NewFilter(products []models.Product) *Filter {
	return &Filter{
		products: products,
		selected: make(map[models.Category]bool),
	}
}

// SetProducts replaces the source collection with a fresh copy of server state.
func (f *Filter) SetProducts(products []models.Product) {
	f.products = products
}

func (f *Filter) Products() []models.Product {
	return f.products
}

// SetSearchTerm replaces the active search text. The term is applied literally.
func (f *Filter) SetSearchTerm(term string) {
	f.searchTerm = term
}

func (f *Filter) SearchTerm() string {
	return f.searchTerm
}

// ToggleCategory adds the category when absent and removes it when present.
func (f *Filter) ToggleCategory(category models.Category) {
	if f.selected[category] {
		delete(f.selected, category)
		return
	}
	f.selected[category] = true
}

func (f *Filter) IsSelected(category models.Category) bool {
	return f.selected[category]
}

// Selected returns the selection in canonical category order. Values outside the
// enumeration come last, sorted.
func (f *Filter) Selected() []models.Category {
	out := make([]models.Category, 0, len(f.selected))
	for _, c := range models.Categories() {
		if f.selected[c] {
			out = append(out, c)
		}
	}
	var extra []models.Category
	for c := range f.selected {
		if !c.Valid() {
			extra = append(extra, c)
		}
	}
	slices.Sort(extra)
	return append(out, extra...)
}

// ClearCategories resets the selection so every category matches again.
func (f *Filter) ClearCategories() {
	f.selected = make(map[models.Category]bool)
}

// VisibleProducts recomputes the filtered view from the current inputs.
func (f *Filter) VisibleProducts() []models.Product {
	return Apply(f.products, f.searchTerm, f.selected)
}

// Apply is the pure form of the filter. An empty term matches every product and an
// empty selection matches every category.
func Apply(products []models.Product, term string, selected map[models.Category]bool) []models.Product {
	needle := strings.ToLower(term)
	visible := make([]models.Product, 0, len(products))

	for _, p := range products {
		if needle != "" && !matchesTerm(p, needle) {
			continue
		}
		if len(selected) > 0 && !selected[p.Category] {
			continue
		}
		visible = append(visible, p)
	}

	return visible
}

func matchesTerm(p models.Product, needle string) bool {
	return strings.Contains(strings.ToLower(p.Name), needle) ||
		strings.Contains(strings.ToLower(p.Description), needle)
}

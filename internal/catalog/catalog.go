// Package catalog holds the read-only list of learnable items.
package catalog

import (
	"fmt"

	"github.com/vytor/speakflash/internal/models"
)

// Catalog is an ordered, immutable list of items. Order is the order the
// items were supplied in and is what planners iterate by.
type Catalog struct {
	items      []models.LearnableItem
	byID       map[int64]int
	categories []string
}

// New builds a catalog from items. Ids must be unique.
func New(items []models.LearnableItem) (*Catalog, error) {
	c := &Catalog{
		items: make([]models.LearnableItem, len(items)),
		byID:  make(map[int64]int, len(items)),
	}
	copy(c.items, items)

	seen := map[string]bool{}
	for i, item := range c.items {
		if _, dup := c.byID[item.ID]; dup {
			return nil, fmt.Errorf("duplicate item id %d", item.ID)
		}
		c.byID[item.ID] = i
		if !seen[item.Category] {
			seen[item.Category] = true
			c.categories = append(c.categories, item.Category)
		}
	}
	return c, nil
}

// MustNew is New for fixed catalogs that are known to be valid.
func MustNew(items []models.LearnableItem) *Catalog {
	c, err := New(items)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Catalog) Len() int { return len(c.items) }

// Items returns a copy of every item in catalog order.
func (c *Catalog) Items() []models.LearnableItem {
	out := make([]models.LearnableItem, len(c.items))
	copy(out, c.items)
	return out
}

// Each calls fn for every item matching filter, in catalog order, until fn
// returns false.
func (c *Catalog) Each(filter models.CategoryFilter, fn func(models.LearnableItem) bool) {
	for _, item := range c.items {
		if !filter.Matches(item) {
			continue
		}
		if !fn(item) {
			return
		}
	}
}

func (c *Catalog) Get(id int64) (models.LearnableItem, bool) {
	i, ok := c.byID[id]
	if !ok {
		return models.LearnableItem{}, false
	}
	return c.items[i], true
}

// Categories returns every category in first-seen order.
func (c *Catalog) Categories() []string {
	out := make([]string, len(c.categories))
	copy(out, c.categories)
	return out
}

func (c *Catalog) HasCategory(category string) bool {
	for _, cat := range c.categories {
		if cat == category {
			return true
		}
	}
	return false
}

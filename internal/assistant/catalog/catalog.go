// Package catalog holds the ordered intent to trigger-phrase table used by
// the matcher. A Catalog is built once at startup and never mutated.
package catalog

import (
	"hr-assistant/internal/assistant/normalize"
	"hr-assistant/internal/models"
	"hr-assistant/pkg/registry"
)

type Catalog struct {
	ids     []models.IntentID
	phrases map[models.IntentID][]string
}

// New builds a Catalog from parsed entries, folding every phrase with folder
// (root casing rules when nil). Entry order and phrase order are kept; a
// phrase repeated within one intent is kept once.
func New(entries []registry.IntentEntry, folder *normalize.Folder) *Catalog {
	if folder == nil {
		folder = normalize.Default()
	}
	c := &Catalog{
		ids:     make([]models.IntentID, 0, len(entries)),
		phrases: make(map[models.IntentID][]string, len(entries)),
	}

	for _, entry := range entries {
		id := models.IntentID(entry.ID)
		if _, exists := c.phrases[id]; exists {
			continue
		}

		seen := make(map[string]struct{}, len(entry.Phrases))
		folded := make([]string, 0, len(entry.Phrases))
		for _, p := range entry.Phrases {
			p = folder.Fold(p)
			if p == "" {
				continue
			}
			if _, dup := seen[p]; dup {
				continue
			}
			seen[p] = struct{}{}
			folded = append(folded, p)
		}

		c.ids = append(c.ids, id)
		c.phrases[id] = folded
	}

	return c
}

// Empty returns a catalog with no intents; every message classifies as none.
func Empty() *Catalog {
	return &Catalog{phrases: map[models.IntentID][]string{}}
}

func (c *Catalog) Len() int {
	return len(c.ids)
}

// Intents returns the intent ids in catalog order.
func (c *Catalog) Intents() []models.IntentID {
	out := make([]models.IntentID, len(c.ids))
	copy(out, c.ids)
	return out
}

// Phrases returns a copy of the folded trigger phrases for id, in source order.
func (c *Catalog) Phrases(id models.IntentID) []string {
	p, ok := c.phrases[id]
	if !ok {
		return nil
	}
	out := make([]string, len(p))
	copy(out, p)
	return out
}

func (c *Catalog) Has(id models.IntentID) bool {
	_, ok := c.phrases[id]
	return ok
}

// Range calls fn for each intent in catalog order until fn returns false.
// fn must not modify phrases.
func (c *Catalog) Range(fn func(id models.IntentID, phrases []string) bool) {
	for _, id := range c.ids {
		if !fn(id, c.phrases[id]) {
			return
		}
	}
}

// Package matcher classifies a message into an intent by trigger-phrase
// containment.
package matcher

import (
	"strings"

	"hr-assistant/internal/assistant/catalog"
	"hr-assistant/internal/assistant/normalize"
	"hr-assistant/internal/models"
)

type Matcher struct {
	folder *normalize.Folder
}

func New(folder *normalize.Folder) *Matcher {
	if folder == nil {
		folder = normalize.Default()
	}
	return &Matcher{folder: folder}
}

// Classify returns the first intent, in catalog order, with a phrase
// contained in the folded message. Phrases are tried in source order and
// matched as plain substrings with no word-boundary check, so "leave balance"
// also hits "leave balances". ok is false when nothing matches.
func (m *Matcher) Classify(message string, cat *catalog.Catalog) (intent models.IntentID, ok bool) {
	folded := m.Normalize(message)
	if folded == "" || cat == nil {
		return "", false
	}

	cat.Range(func(id models.IntentID, phrases []string) bool {
		for _, p := range phrases {
			if strings.Contains(folded, p) {
				intent, ok = id, true
				return false
			}
		}
		return true
	})
	return intent, ok
}

// Normalize exposes the folding applied before matching; handlers probe the
// same form for secondary keywords.
func (m *Matcher) Normalize(message string) string {
	return m.folder.Fold(message)
}

// pkg/registry/schema.go
package registry

// CurrentVersion is the only versioned catalog format understood by Parse.
const CurrentVersion = 1

// Document is a parsed intent catalog in source order.
type Document struct {
	// Version is 0 for the legacy bare mapping.
	Version int
	Intents []IntentEntry
}

// IntentEntry is one intent id with its trigger phrases as written in the source.
type IntentEntry struct {
	ID      string
	Phrases []string
}

func (d *Document) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Intents)
}

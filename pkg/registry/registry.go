// pkg/registry/registry.go
package registry

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	ErrMalformed          = errors.New("malformed intent catalog")
	ErrUnsupportedVersion = errors.New("unsupported intent catalog version")
)

// LoadDocument reads and parses a catalog file. A missing file is reported
// with an error satisfying errors.Is(err, os.ErrNotExist).
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes either the versioned form
//
//	version: 1
//	intents:
//	  leave_balance:
//	    - leave balance
//
// or the legacy bare mapping of intent id to phrase list. Mapping order is
// preserved. An empty document yields an empty Document.
func Parse(data []byte) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		return &Document{}, nil
	}

	top := root.Content[0]
	if isNull(top) {
		return &Document{}, nil
	}
	if top.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: line %d: top level must be a mapping", ErrMalformed, top.Line)
	}

	if versionNode := lookup(top, "version"); versionNode != nil && versionNode.Kind == yaml.ScalarNode {
		return parseVersioned(top, versionNode)
	}

	intents, err := parseIntents(top)
	if err != nil {
		return nil, err
	}
	return &Document{Version: 0, Intents: intents}, nil
}

func parseVersioned(top, versionNode *yaml.Node) (*Document, error) {
	version, err := strconv.Atoi(versionNode.Value)
	if err != nil {
		return nil, fmt.Errorf("%w: line %d: version %q is not an integer", ErrMalformed, versionNode.Line, versionNode.Value)
	}
	if version != CurrentVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}

	for i := 0; i < len(top.Content); i += 2 {
		switch key := top.Content[i].Value; key {
		case "version", "intents":
		default:
			return nil, fmt.Errorf("%w: line %d: unknown key %q", ErrMalformed, top.Content[i].Line, key)
		}
	}

	doc := &Document{Version: version}
	intentsNode := lookup(top, "intents")
	if intentsNode == nil || isNull(intentsNode) {
		return doc, nil
	}
	if intentsNode.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: line %d: intents must be a mapping", ErrMalformed, intentsNode.Line)
	}

	doc.Intents, err = parseIntents(intentsNode)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func parseIntents(mapping *yaml.Node) ([]IntentEntry, error) {
	seen := make(map[string]int, len(mapping.Content)/2)
	intents := make([]IntentEntry, 0, len(mapping.Content)/2)

	for i := 0; i+1 < len(mapping.Content); i += 2 {
		keyNode, valueNode := mapping.Content[i], mapping.Content[i+1]
		if keyNode.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("%w: line %d: intent id must be a scalar", ErrMalformed, keyNode.Line)
		}
		id := strings.TrimSpace(keyNode.Value)
		if id == "" {
			return nil, fmt.Errorf("%w: line %d: empty intent id", ErrMalformed, keyNode.Line)
		}
		if first, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: line %d: intent %q already defined on line %d", ErrMalformed, keyNode.Line, id, first)
		}
		seen[id] = keyNode.Line

		phrases, err := parsePhrases(id, valueNode)
		if err != nil {
			return nil, err
		}
		intents = append(intents, IntentEntry{ID: id, Phrases: phrases})
	}

	return intents, nil
}

func parsePhrases(id string, node *yaml.Node) ([]string, error) {
	if isNull(node) {
		return []string{}, nil
	}
	if node.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("%w: line %d: intent %q must map to a list of phrases", ErrMalformed, node.Line, id)
	}

	phrases := make([]string, 0, len(node.Content))
	for _, item := range node.Content {
		// unquoted numbers, booleans and dates are kept as written
		if item.Kind != yaml.ScalarNode || isNull(item) {
			return nil, fmt.Errorf("%w: line %d: phrase for intent %q must be a non-null scalar", ErrMalformed, item.Line, id)
		}
		phrase := strings.TrimSpace(item.Value)
		if phrase == "" {
			// an empty phrase would be contained in every message
			return nil, fmt.Errorf("%w: line %d: blank phrase for intent %q", ErrMalformed, item.Line, id)
		}
		phrases = append(phrases, phrase)
	}
	return phrases, nil
}

func lookup(mapping *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Kind == yaml.ScalarNode && mapping.Content[i].Value == key {
			return mapping.Content[i+1]
		}
	}
	return nil
}

func isNull(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null"
}

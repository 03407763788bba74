package handlers

import (
	"regexp"
	"strings"
)

// probe selects a field when any keyword is contained in, or any pattern
// matches, the folded message.
type probe struct {
	field    string
	keywords []string
	patterns []*regexp.Regexp
}

func (p probe) matches(folded string) bool {
	for _, k := range p.keywords {
		if strings.Contains(folded, k) {
			return true
		}
	}
	for _, re := range p.patterns {
		if re.MatchString(folded) {
			return true
		}
	}
	return false
}

// firstField returns the field of the first matching probe, in order.
func firstField(probes []probe, folded string) (string, bool) {
	for _, p := range probes {
		if p.matches(folded) {
			return p.field, true
		}
	}
	return "", false
}

package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hr-assistant/internal/assistant/catalog"
	"hr-assistant/internal/assistant/normalize"
	"hr-assistant/internal/models"
	"hr-assistant/pkg/registry"
)

func TestClassify_BuiltinCatalog(t *testing.T) {
	m := New(normalize.New("en"))
	cat := catalog.Default()

	tests := []struct {
		message string
		want    models.IntentID
		wantOK  bool
	}{
		{"Show my LEAVE BALANCE please", models.IntentLeaveBalance, true},
		{"   how many leave days do I have?  ", models.IntentLeaveBalance, true},
		{"What is the status of my leave?", models.IntentMyLeaveStatus, true},
		{"hours this week", models.IntentTimesheetThisWeek, true},
		{"who is my manager", models.IntentMyInfoSummary, true},
		{"What's my username", models.IntentMyIdentity, true},
		{"who am i", models.IntentMyIdentity, true},
		{"I need claim help", models.IntentClaimHelp, true},
		{"how to fill timesheet", models.IntentTimeHelp, true},
		// "apply for leave" is registered under leave_help first.
		{"I want to apply for leave", models.IntentLeaveHelp, true},
		{"how to apply leave", models.IntentApplyLeave, true},
		// plain substring containment, no word boundaries
		{"myleave balances", models.IntentLeaveBalance, true},
		{"what's the weather", "", false},
		{"", "", false},
		{"    ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			got, ok := m.Classify(tt.message, cat)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassify_FirstRegisteredIntentWins(t *testing.T) {
	m := New(nil)
	cat := catalog.New([]registry.IntentEntry{
		{ID: "generic", Phrases: []string{"leave"}},
		{ID: "specific", Phrases: []string{"leave balance"}},
	}, normalize.Default())

	got, ok := m.Classify("my leave balance", cat)
	assert.True(t, ok)
	assert.Equal(t, models.IntentID("generic"), got)
}

func TestClassify_EmptyCatalog(t *testing.T) {
	m := New(nil)
	_, ok := m.Classify("leave balance", catalog.Empty())
	assert.False(t, ok)

	_, ok = m.Classify("leave balance", nil)
	assert.False(t, ok)
}

func TestClassify_IntentWithoutPhrasesNeverMatches(t *testing.T) {
	m := New(nil)
	cat := catalog.New([]registry.IntentEntry{
		{ID: "password_help"},
		{ID: "buzz_help", Phrases: []string{"buzz"}},
	}, normalize.Default())

	got, ok := m.Classify("password buzz", cat)
	assert.True(t, ok)
	assert.Equal(t, models.IntentBuzzHelp, got)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "who am i", New(nil).Normalize("  Who Am I \t"))
}

package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hr-assistant/internal/assistant/normalize"
	"hr-assistant/internal/models"
	"hr-assistant/pkg/registry"
)

func TestDefault_OrderAndContents(t *testing.T) {
	c := Default()

	require.Equal(t, 13, c.Len())
	assert.Equal(t, []models.IntentID{
		models.IntentLeaveBalance,
		models.IntentMyLeaveStatus,
		models.IntentTimesheetThisWeek,
		models.IntentMyInfoSummary,
		models.IntentMyIdentity,
		models.IntentPerformanceHelp,
		models.IntentDashboardHelp,
		models.IntentDirectoryHelp,
		models.IntentClaimHelp,
		models.IntentBuzzHelp,
		models.IntentTimeHelp,
		models.IntentLeaveHelp,
		models.IntentApplyLeave,
	}, c.Intents())

	assert.Equal(t, []string{"apply for leave", "how to apply leave"}, c.Phrases(models.IntentApplyLeave))
	assert.False(t, c.Has(models.IntentPasswordHelp))
	assert.Nil(t, c.Phrases(models.IntentPasswordHelp))
}

func TestNew_FoldsAndDeduplicates(t *testing.T) {
	c := New([]registry.IntentEntry{
		{ID: "leave_help", Phrases: []string{"Leave Help", "leave help", "  HOW TO REQUEST LEAVE "}},
		{ID: "buzz_help", Phrases: []string{}},
		{ID: "leave_help", Phrases: []string{"ignored"}},
	}, normalize.New("en"))

	assert.Equal(t, 2, c.Len())
	assert.Equal(t, []string{"leave help", "how to request leave"}, c.Phrases("leave_help"))
	assert.Empty(t, c.Phrases("buzz_help"))
	assert.True(t, c.Has("buzz_help"))
}

func TestCatalog_IsNotMutatedThroughAccessors(t *testing.T) {
	c := Default()

	ids := c.Intents()
	ids[0] = "tampered"
	phrases := c.Phrases(models.IntentLeaveBalance)
	phrases[0] = "tampered"

	assert.Equal(t, models.IntentLeaveBalance, c.Intents()[0])
	assert.Equal(t, "leave balance", c.Phrases(models.IntentLeaveBalance)[0])
}

func TestCatalog_RangeStopsEarly(t *testing.T) {
	var visited []models.IntentID
	Default().Range(func(id models.IntentID, _ []string) bool {
		visited = append(visited, id)
		return len(visited) < 3
	})
	assert.Len(t, visited, 3)
}

func TestEmpty(t *testing.T) {
	c := Empty()
	assert.Equal(t, 0, c.Len())
	assert.Empty(t, c.Intents())
	assert.Equal(t, "0 intents, 0 phrases", Describe(c))
}

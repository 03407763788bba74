// Package scope decides, before any data is read, whether a classified
// intent is answered with personal data or downgraded to its FAQ reply.
package scope

import "hr-assistant/internal/models"

// Action is the effective treatment of an intent for one caller.
type Action string

const (
	// ActionHandle dispatches to the intent's own handler.
	ActionHandle Action = "handle"
	// ActionFAQ substitutes the static FAQ answer for the intent.
	ActionFAQ Action = "faq"
)

// DefaultAdminRoleID is the administrative role when none is configured.
const DefaultAdminRoleID int64 = 1

var defaultSelfService = []models.IntentID{
	models.IntentLeaveBalance,
	models.IntentMyLeaveStatus,
	models.IntentTimesheetThisWeek,
	models.IntentMyInfoSummary,
	models.IntentMyIdentity,
}

// Guard downgrades self-service intents for the administrative role.
type Guard struct {
	adminRoleID int64
	selfService map[models.IntentID]struct{}
}

func NewGuard(adminRoleID int64) *Guard {
	g := &Guard{
		adminRoleID: adminRoleID,
		selfService: make(map[models.IntentID]struct{}, len(defaultSelfService)),
	}
	for _, id := range defaultSelfService {
		g.selfService[id] = struct{}{}
	}
	return g
}

// Restrict returns ActionFAQ for a self-service intent requested by the
// administrative role and ActionHandle otherwise. An absent role is never
// administrative.
func (g *Guard) Restrict(intent models.IntentID, roleID *int64) Action {
	if roleID == nil || *roleID != g.adminRoleID {
		return ActionHandle
	}
	if g.IsSelfService(intent) {
		return ActionFAQ
	}
	return ActionHandle
}

func (g *Guard) IsSelfService(intent models.IntentID) bool {
	_, ok := g.selfService[intent]
	return ok
}

func (g *Guard) AdminRoleID() int64 {
	return g.adminRoleID
}

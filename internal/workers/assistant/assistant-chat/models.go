// internal/workers/assistant/assistant-chat/models.go
package assistantchat

import "hr-assistant/internal/models"

type Input struct {
	Message        string  `json:"message"`
	EmployeeNumber *int64  `json:"employeeNumber"`
	UserRoleID     *int64  `json:"userRoleId"`
	Username       *string `json:"username"`
}

func (in *Input) request() models.ConversationRequest {
	return models.ConversationRequest{
		Message:  in.Message,
		CallerID: in.EmployeeNumber,
		RoleID:   in.UserRoleID,
		Username: in.Username,
	}
}

type Output struct {
	Reply  string           `json:"reply"`
	Intent *models.IntentID `json:"intent"`
}

package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"hr-assistant/internal/common/validation"
	"hr-assistant/internal/models"
)

type chatResponse struct {
	Data models.ReplyPayload `json:"data"`
	Meta responseMeta        `json:"meta"`
}

type responseMeta struct {
	RequestID string `json:"requestId"`
}

type errorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

// handleChat answers POST /api/v2/assistant/chat. The caller identity headers
// are set by the authenticating gateway in front of this service.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var body map[string]interface{}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&body); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "request body too large"})
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json"})
		return
	}

	result, err := validation.ValidateChatRequest(body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json"})
		return
	}
	if !result.Valid {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:   "invalid chat request",
			Details: result.GetErrorMessages(),
		})
		return
	}

	req := models.ConversationRequest{Message: body["message"].(string)}
	if req.CallerID, err = optionalInt(r, HeaderEmployeeNumber); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	if req.RoleID, err = optionalInt(r, HeaderUserRoleID); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	if name := strings.TrimSpace(r.Header.Get(HeaderUsername)); name != "" {
		req.Username = &name
	}

	reply := s.engine.HandleMessage(r.Context(), req)

	writeJSON(w, http.StatusOK, chatResponse{
		Data: reply,
		Meta: responseMeta{RequestID: RequestID(r.Context())},
	})
}

func optionalInt(r *http.Request, header string) (*int64, error) {
	raw := strings.TrimSpace(r.Header.Get(header))
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, errors.New(header + " must be an integer")
	}
	return &n, nil
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

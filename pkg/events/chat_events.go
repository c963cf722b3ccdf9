package events

import "time"

const (
	TypeChatTurnCompleted      = "CHAT_TURN_COMPLETED"
	TypeLawyersMatched         = "LAWYERS_MATCHED"
	TypeLawyerContactRequested = "LAWYER_CONTACT_REQUESTED"
)

func NewChatTurnCompleted(sessionID string, lawyerLookup bool, failureKind string) BaseEvent {
	return BaseEvent{
		Type: TypeChatTurnCompleted,
		Data: map[string]interface{}{
			"session_id":    sessionID,
			"lawyer_lookup": lawyerLookup,
			"failure_kind":  failureKind,
		},
		OccurredAt: time.Now(),
	}
}

func NewLawyersMatched(sessionID, location, caseType, granularity string, count int) BaseEvent {
	return BaseEvent{
		Type: TypeLawyersMatched,
		Data: map[string]interface{}{
			"session_id":  sessionID,
			"location":    location,
			"case_type":   caseType,
			"granularity": granularity,
			"count":       count,
		},
		OccurredAt: time.Now(),
	}
}

// ContactRequest is the payload of a LAWYER_CONTACT_REQUESTED event.
type ContactRequest struct {
	LawyerID    int64
	FirmName    string
	FirmEmail   string
	ClientName  string
	ClientEmail string
	ClientPhone string
	Message     string
}

func NewLawyerContactRequested(req ContactRequest) BaseEvent {
	return BaseEvent{
		Type: TypeLawyerContactRequested,
		Data: map[string]interface{}{
			"lawyer_id":    req.LawyerID,
			"firm_name":    req.FirmName,
			"firm_email":   req.FirmEmail,
			"client_name":  req.ClientName,
			"client_email": req.ClientEmail,
			"client_phone": req.ClientPhone,
			"message":      req.Message,
		},
		OccurredAt: time.Now(),
	}
}

// ContactRequestFromPayload rebuilds a ContactRequest from a decoded event
// payload. JSON numbers arrive as float64.
func ContactRequestFromPayload(data map[string]interface{}) ContactRequest {
	str := func(key string) string {
		s, _ := data[key].(string)
		return s
	}
	var id int64
	switch v := data["lawyer_id"].(type) {
	case float64:
		id = int64(v)
	case int64:
		id = v
	case int:
		id = int64(v)
	}
	return ContactRequest{
		LawyerID:    id,
		FirmName:    str("firm_name"),
		FirmEmail:   str("firm_email"),
		ClientName:  str("client_name"),
		ClientEmail: str("client_email"),
		ClientPhone: str("client_phone"),
		Message:     str("message"),
	}
}

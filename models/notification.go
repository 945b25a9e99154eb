package models

const (
	EventContactAdded       = "contact_added"
	EventVisibilityChanged  = "visibility_changed"
	EventInvitationAccepted = "invitation_accepted"
)

// Notification is delivered over every configured channel (websocket, web push).
type Notification struct {
	Type    string                 `json:"type"`
	Title   string                 `json:"title,omitempty"`
	Body    string                 `json:"body,omitempty"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}

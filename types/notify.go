package types

const (
	NotifyTypeInfo         = "info"
	NotifyTypeShareShow    = "share_dialog_show"
	NotifyTypeShareResult  = "share_dialog_result"
	NotifyTypeComposeSheet = "compose_sheet"
	NotifyTypeWebDialog    = "web_dialog"
)

// Notification represents a notification message structure
type Notification struct {
	Type    string         `json:"type,omitempty"`    // Notification type, e.g. "share_dialog_show"
	Title   string         `json:"title,omitempty"`   // Notification title
	Message string         `json:"message,omitempty"` // Notification message/content
	Data    map[string]any `json:"data,omitempty"`    // Additional data fields
}

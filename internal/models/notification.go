package models

// Notification is a local notification scheduling request.
type Notification struct {
	Title          string `json:"title"`
	Body           string `json:"body"`
	SecondsFromNow int    `json:"secondsFromNow"`
	DeepLinkPath   string `json:"deepLinkPath,omitempty"`
}

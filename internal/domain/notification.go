package domain

type NotificationType string

const (
	NotificationProduct NotificationType = "product"
	NotificationMarket  NotificationType = "market"
	NotificationOrder   NotificationType = "order"
	NotificationAlert   NotificationType = "alert"
)

// ValidNotificationType reports whether t is one of the known categories.
func ValidNotificationType(t NotificationType) bool {
	switch t {
	case NotificationProduct, NotificationMarket, NotificationOrder, NotificationAlert:
		return true
	}
	return false
}

// Notification is a typed alert shown to a user. IsRead only ever
// transitions from false to true.
type Notification struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Date        string           `json:"date"`
	IsRead      bool             `json:"isRead"`
	Type        NotificationType `json:"type"`
	HasVideo    bool             `json:"hasVideo,omitempty"`
	VideoURL    string           `json:"videoUrl,omitempty"`
}

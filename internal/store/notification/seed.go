package notification

import "agriconnect/internal/domain"

// seedNotifications is the fixed fallback content for a user with no
// persisted record, standing in for a backend fetch. Two entries are
// unread.
func seedNotifications() []domain.Notification {
	return []domain.Notification{
		{
			ID:          "1",
			Title:       "New Organic Fertilizer Available",
			Description: "Check out the latest eco-friendly fertilizer for your crops. This new formula increases yield by up to 20% while being completely safe for the environment.",
			Date:        "2 hours ago",
			IsRead:      false,
			Type:        domain.NotificationProduct,
			HasVideo:    true,
			VideoURL:    "#",
		},
		{
			ID:          "2",
			Title:       "Market Price Update",
			Description: "Tomato prices have increased by 5% in your region due to seasonal changes. Consider adjusting your pricing strategy to maximize profits.",
			Date:        "1 day ago",
			IsRead:      true,
			Type:        domain.NotificationMarket,
		},
		{
			ID:          "3",
			Title:       "New Order Received",
			Description: "You have received a new order from Green Grocers for 50kg of organic tomatoes. Please review and confirm by end of day.",
			Date:        "2 days ago",
			IsRead:      true,
			Type:        domain.NotificationOrder,
		},
		{
			ID:          "4",
			Title:       "New Irrigation System Technology",
			Description: "Revolutionary smart irrigation system that reduces water usage by 30%. Perfect for drought-prone areas and environmentally conscious farmers.",
			Date:        "3 days ago",
			IsRead:      false,
			Type:        domain.NotificationProduct,
			HasVideo:    true,
			VideoURL:    "#",
		},
		{
			ID:          "5",
			Title:       "Weather Alert",
			Description: "Heavy rainfall expected in your area over the next 48 hours. Consider harvesting sensitive crops early to prevent damage.",
			Date:        "4 days ago",
			IsRead:      true,
			Type:        domain.NotificationAlert,
		},
	}
}

package models

// ActivityLog records notable clinic events (appointment confirmations,
// completions, cancellations) for the dashboard activity feed.
type ActivityLog struct {
	BaseModel
	ActionType  string `gorm:"size:50" json:"action_type"`
	Description string `gorm:"size:255" json:"description"`
	Status      string `gorm:"size:20" json:"status"` // "success" or "danger"
}

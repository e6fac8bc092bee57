package models

// NotificationType indicates what kind of event the notification reports
type NotificationType string

const (
	NotificationTypeLevelUp     NotificationType = "level_up"
	NotificationTypeAchievement NotificationType = "achievement"
)

// Notification is a user-facing message produced after a successful
// order submission (level-ups, unlocked achievements). The service only
// records and streams them; rendering is the client's job.
type Notification struct {
	ID           string           `gorm:"primaryKey;type:uuid" json:"id"`
	UserID       string           `gorm:"index;not null" json:"user_id"`
	Type         NotificationType `gorm:"type:varchar(24);not null" json:"type"`
	Title        string           `gorm:"not null" json:"title"`
	Body         string           `gorm:"type:text" json:"body"`
	Level        int              `json:"level,omitempty"`
	EarnedXP     int64            `json:"earned_xp,omitempty"`
	EarnedPoints int64            `json:"earned_points,omitempty"`
	Viewed       bool             `gorm:"default:false;index" json:"viewed"`

	Timestamps
}

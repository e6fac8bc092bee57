package models

import (
	"time"

	"gorm.io/gorm"
)

// CafeUser is a local snapshot of the profile data this service needs
// for display (leaderboard names, favorite drinks). Owned and managed
// solely by the order service; populated via sync worker from the
// profile service.
type CafeUser struct {
	ID                string     `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	ExternalUserID    string     `gorm:"uniqueIndex;not null" json:"external_user_id"` // the profile service's UUID
	Username          string     `gorm:"index;not null" json:"username"`
	DisplayName       string     `json:"display_name"`
	FavoriteDrink     *string    `json:"favorite_drink,omitempty"`
	ProfilePictureURL *string    `json:"profile_picture_url,omitempty"`
	CreatedAt         time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt         time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	LastSeen          *time.Time `json:"last_seen,omitempty"`

	// Soft delete (if needed for history)
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

package entity

import "github.com/google/uuid"

// AdminProfile represents admin-specific profile data
type AdminProfile struct {
	UserID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	Position string    `gorm:"type:varchar(50);not null" json:"position"`
	Title    string    `gorm:"type:varchar(50)" json:"title,omitempty"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (AdminProfile) TableName() string {
	return "admin_profiles"
}

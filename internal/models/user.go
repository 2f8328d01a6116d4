package models

import (
	"time"

	"github.com/google/uuid"
)

// User is the minimal profile row referenced by cases and messages.
// Credential handling lives in the upstream identity service.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Email     string    `gorm:"type:varchar(200);not null;uniqueIndex" json:"email"`
	Phone     string    `gorm:"type:varchar(32)" json:"phone,omitempty"`
	Avatar    string    `gorm:"type:text" json:"avatar,omitempty"`
	Role      string    `gorm:"type:varchar(16);not null;default:'client'" json:"role"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

package user

import (
	"time"

	"tour-booking/constants"
)

// User model for all principals: customers, employees and super admins.
type User struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string `gorm:"type:varchar(255);not null" json:"name"`
	Email    string `gorm:"type:varchar(255);not null;unique" json:"email"`
	Password string `gorm:"type:varchar(255);not null" json:"-"`
	Role     string `gorm:"type:varchar(50);not null;default:'CUSTOMER'" json:"role"`
	Status   string `gorm:"type:varchar(50);not null;default:'ACTIVE'" json:"status"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// IsActive reports whether the account can authenticate. Deleted accounts
// stay in the table with status INACTIVE (soft delete).
func (u *User) IsActive() bool {
	return u.Status == constants.UserStatusActive
}

// IsEmployee reports whether the user can be bound to a booking.
func (u *User) IsEmployee() bool {
	return u.Role == constants.RoleEmployee
}

// Public returns the JSON-safe projection used in auth responses.
func (u *User) Public() map[string]interface{} {
	return map[string]interface{}{
		"id":    u.ID,
		"email": u.Email,
		"name":  u.Name,
		"role":  u.Role,
	}
}

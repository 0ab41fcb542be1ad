package models

import "gorm.io/gorm"

// Role is the closed set of access tiers. Anything else read from storage
// or input normalises to RoleUser.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// ParseRole normalises a raw role string at the boundary.
func ParseRole(s string) Role {
	if s == string(RoleAdmin) {
		return RoleAdmin
	}
	return RoleUser
}

// User is an account record. Password always holds the bcrypt hash, never
// plaintext. RememberVersion is embedded in every remember-me token issued
// for the account; bumping it revokes all outstanding tokens at once.
type User struct {
	gorm.Model
	Username        string `gorm:"uniqueIndex;size:150;not null" json:"username"`
	Password        string `gorm:"size:150;not null" json:"-"`
	Role            Role   `gorm:"size:50;not null;default:user" json:"role"`
	Email           string `gorm:"size:150" json:"email"`
	Phone           string `gorm:"size:20" json:"phone"`
	Address         string `gorm:"size:200" json:"address"`
	RememberVersion uint   `gorm:"not null;default:0" json:"-"`
}

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

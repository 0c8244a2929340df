package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Providers
const (
	ProviderEmail  = "email"
	ProviderGoogle = "google"
)

type User struct {
	BaseModel
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	Username     string `gorm:"uniqueIndex;not null" json:"username"`
	FirstName    string `gorm:"not null" json:"firstName"`
	LastName     string `gorm:"not null" json:"lastName"`
	PasswordHash string `gorm:"not null" json:"-"`

	Avatar       string `json:"avatar,omitempty"`
	BusinessName string `json:"businessName,omitempty"`
	PhoneNumber  string `gorm:"default:'+4412345678'" json:"phoneNumber,omitempty"`
	Address      string `json:"address,omitempty"`
	City         string `json:"city,omitempty"`
	Country      string `json:"country,omitempty"`

	IsEmailVerified bool   `gorm:"not null;default:false" json:"isEmailVerified"`
	Provider        string `gorm:"not null;default:'email'" json:"provider"`
	GoogleID        string `json:"-"`
	Active          bool   `gorm:"not null;default:true" json:"active"`

	// Roles holds a JSON array of role names; never empty after creation
	Roles datatypes.JSON `gorm:"not null" json:"roles"`

	PasswordChangedAt *time.Time `json:"-"`

	// Relations
	RefreshTokens []RefreshToken `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// RefreshToken is one member of a user's revocable session set. A user may
// hold several rows at once, one per device/session.
type RefreshToken struct {
	BaseModel
	UserID    string    `gorm:"not null;index" json:"-"`
	Token     string    `gorm:"not null;uniqueIndex" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"-"`
}

// VerificationToken is a single-use token for email verification and password
// reset. The unique index on UserID enforces at most one live token per user;
// CreatedAt drives the expiry window check at consumption time.
type VerificationToken struct {
	BaseModel
	UserID string `gorm:"not null;uniqueIndex" json:"-"`
	Token  string `gorm:"not null" json:"-"`
}

// RoleList decodes the stored role set
func (u *User) RoleList() []string {
	var roles []string
	if len(u.Roles) > 0 {
		_ = json.Unmarshal(u.Roles, &roles)
	}
	return roles
}

// SetRoles encodes the role set for storage
func (u *User) SetRoles(roles []string) {
	data, _ := json.Marshal(roles)
	u.Roles = datatypes.JSON(data)
}

// HasRole reports whether the user carries the given role
func (u *User) HasRole(role string) bool {
	for _, r := range u.RoleList() {
		if r == role {
			return true
		}
	}
	return false
}

// BeforeCreate guarantees the role set is never empty
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if len(u.RoleList()) == 0 {
		u.SetRoles([]string{RoleUser})
	}
	if u.Provider == "" {
		u.Provider = ProviderEmail
	}
	return nil
}

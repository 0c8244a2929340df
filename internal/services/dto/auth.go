package dto

// RegisterRequest is the registration payload. Every rule the user model
// enforces is declared here so malformed input never reaches a domain object.
type RegisterRequest struct {
	Email           string `json:"email" binding:"required" validate:"required,email"`
	Username        string `json:"username" binding:"required" validate:"required,username"`
	FirstName       string `json:"firstName" binding:"required" validate:"required,person-name"`
	LastName        string `json:"lastName" binding:"required" validate:"required,person-name"`
	Password        string `json:"password" binding:"required" validate:"required,strong-password"`
	PasswordConfirm string `json:"passwordConfirm" binding:"required" validate:"required,eqfield=Password"`

	PhoneNumber  string `json:"phoneNumber" validate:"omitempty,intl-phone"`
	BusinessName string `json:"businessName"`
	Address      string `json:"address"`
	City         string `json:"city"`
	Country      string `json:"country"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required" validate:"required,email"`
	Password string `json:"password" binding:"required" validate:"required"`
}

// AuthResponse is the body returned by login and token refresh. The refresh
// token itself travels in the session cookie, never in the body.
type AuthResponse struct {
	Success     bool   `json:"success"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Username    string `json:"username"`
	Provider    string `json:"provider"`
	Avatar      string `json:"avatar,omitempty"`
	AccessToken string `json:"accessToken"`
}

type ResendTokenRequest struct {
	Email string `json:"email" binding:"required" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Email string `json:"email" binding:"required" validate:"required,email"`
}

type ResetPasswordConfirm struct {
	UserID          string `json:"userId" binding:"required" validate:"required"`
	EmailToken      string `json:"emailToken" binding:"required" validate:"required"`
	Password        string `json:"password" binding:"required" validate:"required"`
	PasswordConfirm string `json:"passwordConfirm" binding:"required" validate:"required"`
}

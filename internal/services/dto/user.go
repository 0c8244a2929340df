package dto

// UpdateProfileRequest carries the self-service profile fields. Identity
// and credential fields are deliberately absent; the handler additionally
// rejects requests that try to smuggle them in.
type UpdateProfileRequest struct {
	FirstName    string `json:"firstName" validate:"omitempty,person-name"`
	LastName     string `json:"lastName" validate:"omitempty,person-name"`
	Avatar       string `json:"avatar"`
	BusinessName string `json:"businessName"`
	PhoneNumber  string `json:"phoneNumber" validate:"omitempty,intl-phone"`
	Address      string `json:"address"`
	City         string `json:"city"`
	Country      string `json:"country"`
}

// UserProfileResponse is the public view of a user record
type UserProfileResponse struct {
	Email           string `json:"email"`
	Username        string `json:"username"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Avatar          string `json:"avatar,omitempty"`
	BusinessName    string `json:"businessName,omitempty"`
	PhoneNumber     string `json:"phoneNumber,omitempty"`
	Address         string `json:"address,omitempty"`
	City            string `json:"city,omitempty"`
	Country         string `json:"country,omitempty"`
	Provider        string `json:"provider"`
	IsEmailVerified bool   `json:"isEmailVerified"`
	Active          bool   `json:"active"`
}

package models

// Customer is an invoice recipient, owned by the user who created it
type Customer struct {
	BaseModel
	CreatedBy   string `gorm:"type:uuid;not null;index" json:"createdBy"`
	Name        string `gorm:"not null" json:"name"`
	Email       string `gorm:"not null;index" json:"email"`
	PhoneNumber string `gorm:"not null" json:"phoneNumber"`
	VatTinNo    string `json:"vatTinNo,omitempty"`
	Address     string `json:"address,omitempty"`
	City        string `json:"city,omitempty"`
	Country     string `json:"country,omitempty"`
}

package dto

type CreateCustomerRequest struct {
	Name        string `json:"name" binding:"required" validate:"required"`
	Email       string `json:"email" binding:"required" validate:"required,email"`
	PhoneNumber string `json:"phoneNumber" binding:"required" validate:"required,intl-phone"`
	VatTinNo    string `json:"vatTinNo"`
	Address     string `json:"address"`
	City        string `json:"city"`
	Country     string `json:"country"`
}

type UpdateCustomerRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email" validate:"omitempty,email"`
	PhoneNumber string `json:"phoneNumber" validate:"omitempty,intl-phone"`
	VatTinNo    string `json:"vatTinNo"`
	Address     string `json:"address"`
	City        string `json:"city"`
	Country     string `json:"country"`
}

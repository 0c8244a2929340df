package dto

import "time"

// BillingItem is one invoice line
type BillingItem struct {
	ItemName  string  `json:"itemName" validate:"required"`
	UnitPrice float64 `json:"unitPrice" validate:"gte=0"`
	Quantity  int     `json:"quantity" validate:"gte=0"`
	Discount  float64 `json:"discount" validate:"gte=0"`
}

type CreateDocumentRequest struct {
	DocumentType   string     `json:"documentType" validate:"omitempty,is-document-type"`
	DocumentNumber string     `json:"documentNumber"`
	DueDate        *time.Time `json:"dueDate"`
	CustomerID     string     `json:"customerId" binding:"required" validate:"required"`

	BillingItems    []BillingItem `json:"billingItems" validate:"dive"`
	AdditionalInfo  string        `json:"additionalInfo"`
	TermsConditions string        `json:"termsConditions"`

	Currency string  `json:"currency"`
	Rates    float64 `json:"rates" validate:"gte=0"`
	SalesTax float64 `json:"salesTax" validate:"gte=0"`
	SubTotal float64 `json:"subTotal" validate:"gte=0"`
	Total    float64 `json:"total" validate:"gte=0"`
}

type UpdateDocumentRequest struct {
	DocumentType   string     `json:"documentType" validate:"omitempty,is-document-type"`
	DocumentNumber string     `json:"documentNumber"`
	DueDate        *time.Time `json:"dueDate"`

	BillingItems    []BillingItem `json:"billingItems" validate:"dive"`
	AdditionalInfo  string        `json:"additionalInfo"`
	TermsConditions string        `json:"termsConditions"`

	Currency            string  `json:"currency"`
	Rates               float64 `json:"rates" validate:"gte=0"`
	SalesTax            float64 `json:"salesTax" validate:"gte=0"`
	SubTotal            float64 `json:"subTotal" validate:"gte=0"`
	Total               float64 `json:"total" validate:"gte=0"`
	TotalAmountReceived float64 `json:"totalAmountReceived" validate:"gte=0"`
	Status              string  `json:"status" validate:"omitempty,is-payment-status"`
}

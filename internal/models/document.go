package models

import (
	"time"

	"gorm.io/datatypes"
)

type DocumentType string
type PaymentStatus string

const (
	DocumentTypeInvoice   DocumentType = "Invoice"
	DocumentTypeReceipt   DocumentType = "Receipt"
	DocumentTypeQuotation DocumentType = "Quotation"

	PaymentStatusPaid    PaymentStatus = "Paid"
	PaymentStatusNotPaid PaymentStatus = "Not Paid"
)

// Document is a billing document (invoice, receipt or quotation) owned by the
// user who created it. Line items and totals arrive from the client already
// computed; the server stores and serves them.
type Document struct {
	BaseModel
	CreatedBy string `gorm:"type:uuid;not null;index" json:"createdBy"`

	DocumentType   DocumentType `gorm:"type:varchar(20);not null;default:'Invoice'" json:"documentType"`
	DocumentNumber string       `json:"documentNumber,omitempty"`
	DueDate        *time.Time   `json:"dueDate,omitempty"`

	CustomerID string    `gorm:"type:uuid;index" json:"customerId,omitempty"`
	Customer   *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`

	// BillingItems holds a JSON array of {itemName, unitPrice, quantity, discount}
	BillingItems datatypes.JSON `json:"billingItems,omitempty"`

	AdditionalInfo  string `json:"additionalInfo,omitempty"`
	TermsConditions string `json:"termsConditions,omitempty"`

	Currency            string        `gorm:"default:'USD'" json:"currency"`
	Rates               float64       `json:"rates"`
	SalesTax            float64       `json:"salesTax"`
	SubTotal            float64       `json:"subTotal"`
	Total               float64       `json:"total"`
	TotalAmountReceived float64       `json:"totalAmountReceived"`
	Status              PaymentStatus `gorm:"type:varchar(20);not null;default:'Not Paid'" json:"status"`
}

package validator

import (
	"regexp"
	"unicode"

	"billpilot_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

var (
	// first char a letter, then 3-23 of letters/digits/hyphen/underscore
	usernameRe = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9-_]{3,23}$`)

	personNameRe = regexp.MustCompile(`^[A-Za-z0-9]+$`)

	// leading + then country code and subscriber number
	intlPhoneRe = regexp.MustCompile(`^\+[1-9][0-9]{6,14}$`)
)

// registerCustomRules registers the account and billing validation tags.
func registerCustomRules(v *validator.Validate) {
	mustRegister(v, "username", validateUsername)
	mustRegister(v, "person-name", validatePersonName)
	mustRegister(v, "intl-phone", validateIntlPhone)
	mustRegister(v, "strong-password", validateStrongPassword)
	mustRegister(v, "is-document-type", validateDocumentType)
	mustRegister(v, "is-payment-status", validatePaymentStatus)
}

func validateUsername(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // empty values are 'required's job
	}
	return usernameRe.MatchString(value)
}

func validatePersonName(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return personNameRe.MatchString(value)
}

func validateIntlPhone(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return intlPhoneRe.MatchString(value)
}

// validateStrongPassword mirrors the registration policy: at least 8
// characters with an uppercase letter, a lowercase letter and a symbol.
func validateStrongPassword(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	if len(value) < 8 {
		return false
	}

	var hasUpper, hasLower, hasSymbol bool
	for _, r := range value {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSymbol = true
		}
	}
	return hasUpper && hasLower && hasSymbol
}

func validateDocumentType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.DocumentType(value) {
	case models.DocumentTypeInvoice, models.DocumentTypeReceipt, models.DocumentTypeQuotation:
		return true
	default:
		return false
	}
}

func validatePaymentStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.PaymentStatus(value) {
	case models.PaymentStatusPaid, models.PaymentStatusNotPaid:
		return true
	default:
		return false
	}
}

package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registerForm struct {
	Email           string `json:"email" validate:"required,email"`
	Username        string `json:"username" validate:"required,username"`
	FirstName       string `json:"firstName" validate:"required,person-name"`
	Password        string `json:"password" validate:"required,strong-password"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required,eqfield=Password"`
	PhoneNumber     string `json:"phoneNumber" validate:"omitempty,intl-phone"`
}

func validForm() registerForm {
	return registerForm{
		Email:           "billy@example.com",
		Username:        "billy-the-kid",
		FirstName:       "Billy",
		Password:        "Str0ng-Pass!",
		PasswordConfirm: "Str0ng-Pass!",
		PhoneNumber:     "+441234567890",
	}
}

func TestValidatorAcceptsValidForm(t *testing.T) {
	v := New()
	assert.NoError(t, v.Validate(validForm()))
}

func TestValidatorUsesJSONFieldNames(t *testing.T) {
	v := New()
	form := validForm()
	form.FirstName = ""

	err := v.Validate(form)
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Contains(t, vErr.Errors, "firstName")
}

func TestUsernameRule(t *testing.T) {
	v := New()

	for _, bad := range []string{"ab", "1starts-with-digit", "has spaces", "way-too-long-username-over-limit"} {
		form := validForm()
		form.Username = bad
		assert.Error(t, v.Validate(form), "username %q should fail", bad)
	}

	form := validForm()
	form.Username = "Valid_user-42"
	assert.NoError(t, v.Validate(form))
}

func TestStrongPasswordRule(t *testing.T) {
	v := New()

	cases := map[string]bool{
		"Str0ng-Pass!": true,
		"alllower1!":   false, // no upper
		"ALLUPPER1!":   false, // no lower
		"NoSymbols1A":  false, // no symbol
		"Sh0rt-!":      false, // too short
	}
	for password, ok := range cases {
		form := validForm()
		form.Password = password
		form.PasswordConfirm = password
		err := v.Validate(form)
		if ok {
			assert.NoError(t, err, "password %q should pass", password)
		} else {
			assert.Error(t, err, "password %q should fail", password)
		}
	}
}

func TestPasswordConfirmMustMatch(t *testing.T) {
	v := New()
	form := validForm()
	form.PasswordConfirm = "Different-1!"

	err := v.Validate(form)
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, "Passwords do not match", vErr.Errors["passwordConfirm"])
}

func TestIntlPhoneRule(t *testing.T) {
	v := New()

	form := validForm()
	form.PhoneNumber = "0123456"
	assert.Error(t, v.Validate(form))

	form.PhoneNumber = "+15551234567"
	assert.NoError(t, v.Validate(form))

	// omitempty: absent phone is fine
	form.PhoneNumber = ""
	assert.NoError(t, v.Validate(form))
}

func TestDocumentEnumRules(t *testing.T) {
	v := New()

	type doc struct {
		DocumentType string `json:"documentType" validate:"omitempty,is-document-type"`
		Status       string `json:"status" validate:"omitempty,is-payment-status"`
	}

	assert.NoError(t, v.Validate(doc{DocumentType: "Invoice", Status: "Paid"}))
	assert.NoError(t, v.Validate(doc{DocumentType: "Quotation", Status: "Not Paid"}))
	assert.Error(t, v.Validate(doc{DocumentType: "Napkin"}))
	assert.Error(t, v.Validate(doc{Status: "Maybe"}))
}

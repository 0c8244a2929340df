package apperrors

import (
	"net/http"
)

/*
Predefined errors for the account and billing domain. Factories are used when
a repository error needs wrapping, plain variables for the frequent static
cases.
*/

// --- Registration and identity ---

// ErrEmailAlreadyExists - the email is already bound to another account (409)
var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"The email address you have entered is already associated with another account",
	http.StatusConflict,
)

// ErrUsernameAlreadyExists - the username is taken (409)
var ErrUsernameAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"That username is already taken",
	http.StatusConflict,
)

// --- Login ---

// ErrInvalidCredentials - wrong email or password. One message for both so the
// response cannot be used to enumerate accounts.
var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Incorrect email or password",
	http.StatusUnauthorized,
)

// ErrUserNotVerified - login attempted before the email was verified (400)
var ErrUserNotVerified = New(
	CodeNotVerified,
	"auth",
	"You are not verified. Check your email, a verification link was sent when you registered",
	http.StatusBadRequest,
)

// ErrUserDeactivated - the account was deactivated by an admin (400)
var ErrUserDeactivated = New(
	CodeDeactivated,
	"auth",
	"You have been deactivated by the admin and login is not possible. Please contact support",
	http.StatusBadRequest,
)

// --- Tokens ---

// ErrMissingRefreshCookie - no session cookie on a route that requires one (401)
var ErrMissingRefreshCookie = New(
	CodeUnauthorized,
	"auth",
	"No session cookie was provided",
	http.StatusUnauthorized,
)

// ErrRefreshTokenRejected - the presented refresh token is invalid, reused or
// does not belong to its holder (403). Deliberately unspecific.
var ErrRefreshTokenRejected = New(
	CodeForbidden,
	"auth",
	"Refresh token rejected",
	http.StatusForbidden,
)

// ErrInvalidVerificationToken - the email token does not match the stored one (400)
var ErrInvalidVerificationToken = New(
	CodeInvalidToken,
	"auth",
	"Token invalid! Your token may have expired",
	http.StatusBadRequest,
)

// ErrExpiredVerificationToken - the token exists but is past its window (400)
var ErrExpiredVerificationToken = New(
	CodeTokenExpired,
	"auth",
	"Your token is either invalid or expired. Try resetting your password again",
	http.StatusBadRequest,
)

// ErrAlreadyVerified - resend-verification called for a verified account (400)
var ErrAlreadyVerified = New(
	CodeConflict,
	"auth",
	"This account has already been verified. Please login",
	http.StatusBadRequest,
)

// --- Passwords ---

// ErrPasswordMismatch - password and confirmation differ (400)
var ErrPasswordMismatch = New(
	CodeValidationFailed,
	"auth",
	"Passwords do not match",
	http.StatusBadRequest,
)

// ErrPasswordTooShort - password below the minimum length (400)
var ErrPasswordTooShort = New(
	CodeValidationFailed,
	"auth",
	"Passwords must be at least 8 characters long",
	http.StatusBadRequest,
)

// ErrProtectedProfileField - profile update touched a field that has its own flow (400)
var ErrProtectedProfileField = New(
	CodeValidationFailed,
	"user",
	"You are not allowed to update that field on this route",
	http.StatusBadRequest,
)

// ErrPasswordUpdateNotAllowed - profile update tried to change the password (400)
var ErrPasswordUpdateNotAllowed = New(
	CodeValidationFailed,
	"user",
	"This route is not for password updates. Please use the password reset functionality instead",
	http.StatusBadRequest,
)

// --- Ownership ---

// ErrNotResourceOwner - the caller does not own the customer/document (401,
// matching the behaviour the API has always had)
var ErrNotResourceOwner = New(
	CodeForbidden,
	"billing",
	"You are not authorized to access this resource. It is not yours",
	http.StatusUnauthorized,
)

// --- Factories ---

// ErrNotFound wraps a repository miss as 404
func ErrNotFound(err error, domain, message string) *AppError {
	return Wrap(err, CodeNotFound, domain, message, http.StatusNotFound)
}

// ErrAlreadyExists wraps a uniqueness violation as 409
func ErrAlreadyExists(err error, domain, message string) *AppError {
	return Wrap(err, CodeAlreadyExists, domain, message, http.StatusConflict)
}

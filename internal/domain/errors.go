package domain

import "errors"

// Sentinel errors for the service layer. Handlers translate these to HTTP
// statuses; storage drivers never leak past the repository boundary.
var (
	ErrNotFound         = errors.New("resource not found")
	ErrUnauthenticated  = errors.New("authentication required")
	ErrPermissionDenied = errors.New("permission denied")

	// uniqueness conflicts detected at the persistence boundary
	ErrDuplicateBooking = errors.New(BookingIntegrityError)
	ErrDuplicateRating  = errors.New(RatingIntegrityError)

	ErrUserNotFound     = errors.New(UserForEmailNotFoundError)
	ErrUnknownUser      = errors.New(UnknownUserError)
	ErrInvalidResetLink = errors.New(InvalidResetLinkError)
	ErrInvalidRequest   = errors.New(InvalidRequestError)
	ErrMailDispatch     = errors.New(RequestPasswordResetError)
)

// User-facing message texts.
const (
	BookingIntegrityError = "You have already booked this pool. Request an update if required"
	RatingIntegrityError  = "Already rated! request update to make changes"

	StartDatePastError = "Start date can not be past"
	EndDatePastError   = "End date can not be past"
	StartDateError     = "Start date must be less than or equal to end date"

	NoActiveAccountError      = "No active account found with the given credentials"
	UnknownUserError          = "Request for unknown user"
	UserForEmailNotFoundError = "User for email not found"
	InvalidRequestError       = "Invalid request"
	InvalidResetLinkError     = "Reset link is now invalid"
	RequestPasswordResetError = "An error occurred while sending email, try again later"

	UserRegistrationMessage     = "User created successfully"
	RequestSuccessfulMessage    = "Request successfull"
	PasswordChangedMessage      = "Password changed successfully"
	RequestPasswordResetMessage = "An email has been sent to reset your password"
	RequestPasswordResetSubject = "Password reset"
)

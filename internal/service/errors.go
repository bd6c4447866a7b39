package service

import "errors"

var (
	// ErrAuthenticationRequired is returned when a credential is missing,
	// invalid, or expired, or when the resolved user is inactive.
	ErrAuthenticationRequired = errors.New("authentication required")

	// ErrInvalidCredentials is returned on a failed login.
	ErrInvalidCredentials = errors.New("incorrect email or password")

	// ErrNotAuthorized is returned on a role or ownership mismatch.
	ErrNotAuthorized = errors.New("not authorized")

	// ErrDriverNotVerified is returned when an unapproved driver tries to
	// browse or accept orders.
	ErrDriverNotVerified = errors.New("driver account is not verified yet")

	// ErrEmailTaken is returned when registering an email twice.
	ErrEmailTaken = errors.New("email already registered")

	// ErrPlateTaken is returned when a license plate is already registered.
	ErrPlateTaken = errors.New("license plate already registered")

	// ErrInvalidRole is returned when registration carries an unknown or
	// non self-assignable role.
	ErrInvalidRole = errors.New("invalid role")

	// ErrOrderNotAvailable is returned when accepting an order that is no
	// longer pending, including a lost accept race.
	ErrOrderNotAvailable = errors.New("order is not available")

	// ErrOrderNotCompletable is returned when completing an order that is
	// not in the accepted state.
	ErrOrderNotCompletable = errors.New("order cannot be completed")

	// ErrOrderAlreadyClosed is returned when cancelling a completed or
	// already cancelled order.
	ErrOrderAlreadyClosed = errors.New("order already completed or cancelled")

	// ErrOrderNotCompleted is returned when reviewing an order that has
	// not been completed.
	ErrOrderNotCompleted = errors.New("order is not completed")

	// ErrAlreadyReviewed is returned when an order already has a review.
	ErrAlreadyReviewed = errors.New("order already reviewed")

	// ErrWrongCarPhotoCount is returned when a submission does not carry
	// exactly the required number of car photos.
	ErrWrongCarPhotoCount = errors.New("exactly 4 car photos are required")

	// ErrMissingDocument is returned when a required document slot is
	// absent from a submission.
	ErrMissingDocument = errors.New("missing required document")

	// ErrReasonRequired is returned when rejecting a driver without a
	// reason.
	ErrReasonRequired = errors.New("rejection reason is required")

	// ErrInvalidPickupTime is returned for a malformed pickup time.
	ErrInvalidPickupTime = errors.New("invalid pickup time")

	// ErrInvalidPassengersCount is returned for an out-of-range passenger
	// count.
	ErrInvalidPassengersCount = errors.New("passengers count must be between 1 and 8")

	// ErrInvalidLuggageCount is returned for a negative luggage count.
	ErrInvalidLuggageCount = errors.New("luggage count cannot be negative")

	// ErrInvalidPrice is returned for a non-positive price.
	ErrInvalidPrice = errors.New("price must be positive")

	// ErrInvalidRating is returned for a rating outside 1..5.
	ErrInvalidRating = errors.New("rating must be between 1 and 5")

	// ErrInvalidDate is returned for a malformed date filter.
	ErrInvalidDate = errors.New("invalid date")
)

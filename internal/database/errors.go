package database

import "errors"

var (
	// Lookup failures.
	ErrUserNotFound    = errors.New("user not found")
	ErrItemNotFound    = errors.New("item not found")
	ErrRequestNotFound = errors.New("request not found")
	ErrBookingNotFound = errors.New("booking not found")

	// Validation failures.
	ErrBlankField       = errors.New("required field is blank")
	ErrInvalidDateRange = errors.New("start must be strictly before end")
	ErrUnknownState     = errors.New("unknown booking state filter")
	ErrNegativePage     = errors.New("pagination arguments must not be negative")
	ErrNoItems          = errors.New("owner has no items")
	ErrNoBookings       = errors.New("item has no bookings")
	ErrBookingNotOver   = errors.New("booking has not finished yet")

	// Authorization failures.
	ErrNotOwner    = errors.New("user is not the owner of the item")
	ErrNotBooker   = errors.New("user has no booking of the item")
	ErrNotApproved = errors.New("user has no approved booking of the item")

	// Conflicts and availability.
	ErrEmailTaken   = errors.New("email is already in use")
	ErrUserHasData  = errors.New("user still owns items or bookings")
	ErrNotAvailable = errors.New("item is not available for booking")
)

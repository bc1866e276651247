package services

import "errors"

var (
	ErrForbidden          = errors.New("services: operation not allowed for this user")
	ErrListingNotActive   = errors.New("services: listing is not active")
	ErrOwnListing         = errors.New("services: cannot book own listing")
	ErrInvalidDateRange   = errors.New("services: check_out must be after check_in")
	ErrInvalidSlots       = errors.New("services: slots must be at least 1")
	ErrReviewNotAllowed   = errors.New("services: review requires a completed booking")
	ErrInvalidRole        = errors.New("services: unknown role")
	ErrInvalidCoordinates = errors.New("services: listing has no coordinates")
)

package errorvalues

import "errors"

var (
	ErrUserNotFound = errors.New("user doesn't exists")
	ErrInvalidToken = errors.New("invalid token")

	ErrTipNotFound = errors.New("tip doesn't exist")

	ErrFarcasterLinkNotFound = errors.New("farcaster id isn't linked to any user")

	// Empty user or tip id passed to the progress log
	ErrInvalidIdentifier = errors.New("identifier must not be empty")
	ErrStoreUnavailable  = errors.New("store unavailable")

	ErrPaymentFailed           = errors.New("payment failed")
	ErrPaymentNotConfirmed     = errors.New("payment isn't confirmed")
	ErrUnknownSubscriptionType = errors.New("unknown subscription type")
	ErrSubscriptionNotFound    = errors.New("subscription doesn't exist")
	ErrTxNotFound              = errors.New("transaction doesn't exist")
	ErrValidation              = errors.New("validation error")
)

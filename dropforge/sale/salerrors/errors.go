package salerrors

import (
	"errors"
	"fmt"
)

// Lookup errors
var (
	ErrAuctionNotFound = errors.New("auction not found")
	ErrItemNotFound    = errors.New("item not found")
	ErrNoBids          = errors.New("no bids recorded for auction")
	ErrNoActiveTier    = errors.New("no active tier")
	ErrTierNotFound    = errors.New("tier not found")
	ErrSaleNotFound    = errors.New("sale record not found")
)

// Validation errors: rejected synchronously, no state mutated.
var (
	ErrAuctionNotActive = errors.New("auction is not active")
	ErrAuctionEnded     = errors.New("auction has already ended")
	ErrAuctionNotEnded  = errors.New("auction has not ended yet")
	ErrItemUnavailable  = errors.New("item is not available")
	ErrItemNotReserved  = errors.New("item is not reserved")
)

// Conflict errors: the caller raced a concurrent writer and should retry
// against a refreshed view.
var (
	ErrBidConflict = errors.New("bid conflicts with a concurrent update")
	ErrLeaseHeld   = errors.New("scheduler lease held by another instance")
)

// ErrAlreadyFinalized marks a finalize call on a settled auction. Callers
// treat it as a soft no-op and return the prior result.
var ErrAlreadyFinalized = errors.New("auction already finalized")

// BidTooLowError reports the computed minimum so callers can surface it.
type BidTooLowError struct {
	OfferedCents int64
	MinimumCents int64
}

func (e *BidTooLowError) Error() string {
	return fmt.Sprintf("bid of %d is below the minimum of %d", e.OfferedCents, e.MinimumCents)
}

// IsValidation reports whether err is a synchronous rejection rather than a
// conflict or an infrastructure failure.
func IsValidation(err error) bool {
	var tooLow *BidTooLowError
	if errors.As(err, &tooLow) {
		return true
	}
	return errors.Is(err, ErrAuctionNotActive) ||
		errors.Is(err, ErrAuctionEnded) ||
		errors.Is(err, ErrAuctionNotEnded) ||
		errors.Is(err, ErrItemUnavailable) ||
		errors.Is(err, ErrItemNotReserved)
}

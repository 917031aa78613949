package capability

import "errors"

// errors shared by the vault contracts
var (
	ErrPermissionDenied    = errors.New("permission denied")
	ErrPausedOperation     = errors.New("paused operation")
	ErrPriceGuardTripped   = errors.New("price guard tripped")
	ErrWithdrawalTooSoon   = errors.New("withdrawal too soon")
	ErrBadPriceData        = errors.New("bad price data")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrReentrancyBlocked   = errors.New("reentrancy blocked")
	ErrEmergencyMode       = errors.New("emergency mode")
	ErrNotEmergencyMode    = errors.New("not emergency mode")
	ErrAlreadyBound        = errors.New("already bound")
	ErrInvalidLength       = errors.New("invalid length")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInvalidAddress      = errors.New("invalid address")
	ErrInvalidResult       = errors.New("invalid call result")
)

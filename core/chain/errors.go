package chain

import "errors"

// errors
var (
	ErrChainClosed      = errors.New("chain closed")
	ErrInvalidChainID   = errors.New("invalid chain id")
	ErrInvalidSequence  = errors.New("invalid sequence")
	ErrInvalidTimestamp = errors.New("invalid timestamp")
	ErrNotExistEvents   = errors.New("not exist events")
	ErrInvalidTxFormat  = errors.New("invalid transaction format")
)

package token

import "errors"

// errors
var (
	ErrNotTokenMaster        = errors.New("not token master")
	ErrNotTokenMinter        = errors.New("not token minter")
	ErrInsufficientAllowance = errors.New("insufficient allowance")
	ErrZeroAddress           = errors.New("zero address")
	ErrNegativeAmount        = errors.New("negative amount")
)

package swaprouter

import "errors"

var (
	ErrInvalidPath              = errors.New("Router: INVALID_PATH")
	ErrNotExistPair             = errors.New("Router: NOT_EXIST_PAIR")
	ErrInsufficientSwapAmount   = errors.New("Router: INSUFFICIENT_SWAP_AMOUNT")
	ErrInsufficientOutputAmount = errors.New("Router: INSUFFICIENT_OUTPUT_AMOUNT")
)

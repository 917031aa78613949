package types

import "errors"

// runtime errors
var (
	ErrNotExistContract  = errors.New("not exist contract")
	ErrInvalidClassID    = errors.New("invalid class id")
	ErrExistContractType = errors.New("exist contract type")
	ErrMethodNotExist    = errors.New("method not exist")
	ErrInvalidInputCount = errors.New("invalid inputs count")
	ErrInvalidInputType  = errors.New("invalid input type")
	ErrContractPanic     = errors.New("contract panic")
)

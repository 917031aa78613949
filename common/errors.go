package common

import "github.com/pkg/errors"

// common errors
var (
	ErrInvalidAddressFormat = errors.New("invalid address format")
	ErrInvalidSignature     = errors.New("invalid signature")
)

package feemanager

import "errors"

var ErrInvalidFeeRate = errors.New("invalid fee rate")

package main

import "github.com/pkg/errors"

// errors
var (
	ErrInvalidConfig  = errors.New("invalid config")
	ErrUnknownSymbol  = errors.New("unknown token symbol")
	ErrUnknownFarm    = errors.New("unknown farm")
	ErrUnknownIBVault = errors.New("unknown ib vault")
	ErrNoViewer       = errors.New("genesis has no viewer")
)

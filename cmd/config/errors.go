package config

import "errors"

// ErrUnknownKey is returned when the config has a key that no field takes
var ErrUnknownKey = errors.New("unknown config key")

package farm

import "errors"

var ErrNotExistPool = errors.New("not exist pool")

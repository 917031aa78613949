package types

import (
	"github.com/meverselabs/yieldvault/common/hash"
)

// Loader provides the committed state below a context
type Loader interface {
	TargetHeight() uint32
	LastHash() hash.Hash256
	LastTimestamp() uint64
	Data(key string) []byte
}

type emptyLoader struct{}

// NewEmptyLoader returns a loader of an empty chain
func NewEmptyLoader() Loader {
	return &emptyLoader{}
}

func (st *emptyLoader) TargetHeight() uint32 {
	return 1
}

func (st *emptyLoader) LastHash() hash.Hash256 {
	return hash.Hash256{}
}

func (st *emptyLoader) LastTimestamp() uint64 {
	return 0
}

func (st *emptyLoader) Data(key string) []byte {
	return nil
}

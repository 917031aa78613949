package chain

import (
	"sync"

	"github.com/bluele/gcache"
	"github.com/meverselabs/yieldvault/common/bin"
	"github.com/meverselabs/yieldvault/common/hash"
	"github.com/meverselabs/yieldvault/core/backend"
	"github.com/meverselabs/yieldvault/core/types"
	"github.com/pkg/errors"
)

// store key prefixes
var (
	tagData      = byte(0x01)
	tagHeight    = []byte{0x10, 'h'}
	tagLastHash  = []byte{0x10, 'p'}
	tagTimestamp = []byte{0x10, 't'}
)

// Store saves the committed chain state
// All updates of a block are executed in one backend transaction
type Store struct {
	sync.RWMutex
	db        backend.StoreBackend
	cache     gcache.Cache
	height    uint32
	lastHash  hash.Hash256
	timestamp uint64
	isClose   bool
}

// NewStore returns a Store reading the last committed block from the backend
func NewStore(db backend.StoreBackend, cacheSize int) (*Store, error) {
	st := &Store{
		db:    db,
		cache: gcache.New(cacheSize).LRU().Build(),
	}
	if err := db.View(func(txn backend.StoreReader) error {
		if bs, err := txn.Get(tagHeight); err == nil {
			st.height = bin.Uint32(bs)
		} else if errors.Cause(err) != backend.ErrNotExistKey {
			return err
		}
		if bs, err := txn.Get(tagLastHash); err == nil {
			copy(st.lastHash[:], bs)
		} else if errors.Cause(err) != backend.ErrNotExistKey {
			return err
		}
		if bs, err := txn.Get(tagTimestamp); err == nil {
			st.timestamp = bin.Uint64(bs)
		} else if errors.Cause(err) != backend.ErrNotExistKey {
			return err
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return st, nil
}

// Close terminates the store
func (st *Store) Close() {
	st.Lock()
	defer st.Unlock()
	if st.isClose {
		return
	}
	st.isClose = true
	st.db.Close()
}

// Height returns the height of the last committed block
func (st *Store) Height() uint32 {
	st.RLock()
	defer st.RUnlock()
	return st.height
}

// TargetHeight returns the height of the next block
func (st *Store) TargetHeight() uint32 {
	st.RLock()
	defer st.RUnlock()
	return st.height + 1
}

// LastHash returns the hash of the last committed block
func (st *Store) LastHash() hash.Hash256 {
	st.RLock()
	defer st.RUnlock()
	return st.lastHash
}

// LastTimestamp returns the timestamp of the last committed block
func (st *Store) LastTimestamp() uint64 {
	st.RLock()
	defer st.RUnlock()
	return st.timestamp
}

func toStoreKey(key string) []byte {
	return append([]byte{tagData}, key...)
}

// Data returns the committed value of the key, nil if it does not exist
func (st *Store) Data(key string) []byte {
	if v, err := st.cache.Get(key); err == nil {
		return v.([]byte)
	}

	st.RLock()
	defer st.RUnlock()
	if st.isClose {
		return nil
	}

	var value []byte
	if err := st.db.View(func(txn backend.StoreReader) error {
		bs, err := txn.Get(toStoreKey(key))
		if err != nil {
			return err
		}
		value = bs
		return nil
	}); err != nil {
		value = nil
	}
	st.cache.Set(key, value)
	return value
}

// Commit writes the changes of the context as the block of its target height
func (st *Store) Commit(ctx *types.Context) error {
	st.Lock()
	defer st.Unlock()

	if st.isClose {
		return errors.WithStack(ErrChainClosed)
	}
	if ctx.TargetHeight() != st.height+1 {
		return errors.Wrapf(ErrInvalidSequence, "context height %v, store height %v", ctx.TargetHeight(), st.height)
	}

	LastHash := ctx.Hash()
	base := ctx.Base()
	if err := st.db.Update(func(txn backend.StoreWriter) error {
		var err error
		base.Range(func(key string, value []byte) bool {
			if len(value) == 0 {
				err = txn.Delete(toStoreKey(key))
			} else {
				err = txn.Set(toStoreKey(key), value)
			}
			return err == nil
		})
		if err != nil {
			return err
		}
		if err := txn.Set(tagHeight, bin.Uint32Bytes(ctx.TargetHeight())); err != nil {
			return err
		}
		if err := txn.Set(tagLastHash, LastHash[:]); err != nil {
			return err
		}
		return txn.Set(tagTimestamp, bin.Uint64Bytes(ctx.LastTimestamp()))
	}); err != nil {
		return err
	}

	base.Range(func(key string, value []byte) bool {
		st.cache.Remove(key)
		return true
	})
	st.height = ctx.TargetHeight()
	st.lastHash = LastHash
	st.timestamp = ctx.LastTimestamp()
	return nil
}

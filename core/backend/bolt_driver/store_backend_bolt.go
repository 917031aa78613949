package bolt_driver

import (
	"bytes"
	"os"
	"path/filepath"
	"time"

	"github.com/boltdb/bolt"
	"github.com/meverselabs/yieldvault/common/rlog"
	"github.com/meverselabs/yieldvault/core/backend"
	"github.com/pkg/errors"
)

func init() {
	backend.RegisterDriver("bolt", NewStoreBackendBolt)
}

var stateBucket = []byte("state")

type StoreBackendBolt struct {
	db *bolt.DB
}

// NewStoreBackendBolt opens the bolt database file at the path
func NewStoreBackendBolt(path string) (backend.StoreBackend, error) {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return nil, errors.WithStack(err)
	}

	start := time.Now()
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if err := db.Update(func(txn *bolt.Tx) error {
		_, err := txn.CreateBucketIfNotExists(stateBucket)
		return err
	}); err != nil {
		db.Close()
		return nil, errors.WithStack(err)
	}
	logger := rlog.GetForComponent("backend")
	logger.Info().Str("path", path).Dur("elapsed", time.Since(start)).Msg("bolt opened")
	return &StoreBackendBolt{db: db}, nil
}

func (st *StoreBackendBolt) Shrink() {
}

func (st *StoreBackendBolt) Close() {
	st.db.Close()
}

func (st *StoreBackendBolt) View(fn func(txn backend.StoreReader) error) error {
	return st.db.View(func(txn *bolt.Tx) error {
		return fn(&storeBackendBoltTx{bucket: txn.Bucket(stateBucket)})
	})
}

func (st *StoreBackendBolt) Update(fn func(txn backend.StoreWriter) error) error {
	return st.db.Update(func(txn *bolt.Tx) error {
		return fn(&storeBackendBoltTx{bucket: txn.Bucket(stateBucket)})
	})
}

type storeBackendBoltTx struct {
	bucket *bolt.Bucket
}

// Get copies the value, bolt memory is only valid inside the transaction
func (r *storeBackendBoltTx) Get(key []byte) ([]byte, error) {
	value := r.bucket.Get(key)
	if value == nil {
		return nil, backend.ErrNotExistKey
	}
	return append([]byte{}, value...), nil
}

func (r *storeBackendBoltTx) Iterate(prefix []byte, fn func(key []byte, value []byte) error) error {
	c := r.bucket.Cursor()
	for key, value := c.Seek(prefix); key != nil && bytes.HasPrefix(key, prefix); key, value = c.Next() {
		if err := fn(append([]byte{}, key...), append([]byte{}, value...)); err != nil {
			return err
		}
	}
	return nil
}

func (r *storeBackendBoltTx) Set(key []byte, value []byte) error {
	return errors.WithStack(r.bucket.Put(key, value))
}

func (r *storeBackendBoltTx) Delete(key []byte) error {
	return errors.WithStack(r.bucket.Delete(key))
}

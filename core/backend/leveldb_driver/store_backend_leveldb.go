package leveldb_driver

import (
	"time"

	"github.com/meverselabs/yieldvault/common/rlog"
	"github.com/meverselabs/yieldvault/core/backend"
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"
)

func init() {
	backend.RegisterDriver("leveldb", NewStoreBackendLevelDB)
	backend.RegisterDriver("memory", NewStoreBackendMemory)
}

type StoreBackendLevelDB struct {
	db *leveldb.DB
}

// NewStoreBackendLevelDB opens the leveldb database at the path
func NewStoreBackendLevelDB(path string) (backend.StoreBackend, error) {
	start := time.Now()
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	logger := rlog.GetForComponent("backend")
	logger.Info().Str("path", path).Dur("elapsed", time.Since(start)).Msg("leveldb opened")
	return &StoreBackendLevelDB{db: db}, nil
}

// NewStoreBackendMemory opens a leveldb database kept in memory, the path is ignored
func NewStoreBackendMemory(path string) (backend.StoreBackend, error) {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &StoreBackendLevelDB{db: db}, nil
}

func (st *StoreBackendLevelDB) Shrink() {
	if err := st.db.CompactRange(util.Range{}); err != nil {
		logger := rlog.GetForComponent("backend")
		logger.Warn().Err(err).Msg("leveldb compaction")
	}
}

func (st *StoreBackendLevelDB) Close() {
	st.db.Close()
}

func (st *StoreBackendLevelDB) View(fn func(txn backend.StoreReader) error) error {
	snap, err := st.db.GetSnapshot()
	if err != nil {
		return errors.WithStack(err)
	}
	defer snap.Release()
	return fn(&storeBackendLevelDBSnapshot{snap: snap})
}

func (st *StoreBackendLevelDB) Update(fn func(txn backend.StoreWriter) error) error {
	txn, err := st.db.OpenTransaction()
	if err != nil {
		return errors.WithStack(err)
	}
	if err := fn(&storeBackendLevelDBTx{txn: txn}); err != nil {
		txn.Discard()
		return err
	}
	if err := txn.Commit(); err != nil {
		txn.Discard()
		return errors.WithStack(err)
	}
	return nil
}

type levelReader interface {
	Get(key []byte, ro *opt.ReadOptions) ([]byte, error)
	NewIterator(slice *util.Range, ro *opt.ReadOptions) iterator.Iterator
}

func get(r levelReader, key []byte) ([]byte, error) {
	value, err := r.Get(key, nil)
	if err != nil {
		if err == leveldb.ErrNotFound {
			return nil, backend.ErrNotExistKey
		}
		return nil, errors.WithStack(err)
	}
	return value, nil
}

func iterate(r levelReader, prefix []byte, fn func(key []byte, value []byte) error) error {
	var rg *util.Range
	if len(prefix) > 0 {
		rg = &util.Range{Start: prefix, Limit: backend.PrefixEnd(prefix)}
	}
	it := r.NewIterator(rg, nil)
	defer it.Release()
	for it.Next() {
		key := append([]byte{}, it.Key()...)
		value := append([]byte{}, it.Value()...)
		if err := fn(key, value); err != nil {
			return err
		}
	}
	return errors.WithStack(it.Error())
}

type storeBackendLevelDBSnapshot struct {
	snap *leveldb.Snapshot
}

func (r *storeBackendLevelDBSnapshot) Get(key []byte) ([]byte, error) {
	return get(r.snap, key)
}

func (r *storeBackendLevelDBSnapshot) Iterate(prefix []byte, fn func(key []byte, value []byte) error) error {
	return iterate(r.snap, prefix, fn)
}

type storeBackendLevelDBTx struct {
	txn *leveldb.Transaction
}

func (r *storeBackendLevelDBTx) Get(key []byte) ([]byte, error) {
	return get(r.txn, key)
}

func (r *storeBackendLevelDBTx) Iterate(prefix []byte, fn func(key []byte, value []byte) error) error {
	return iterate(r.txn, prefix, fn)
}

func (r *storeBackendLevelDBTx) Set(key []byte, value []byte) error {
	return errors.WithStack(r.txn.Put(key, value, nil))
}

func (r *storeBackendLevelDBTx) Delete(key []byte) error {
	return errors.WithStack(r.txn.Delete(key, nil))
}

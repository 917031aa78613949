package txsearch

import (
	"bytes"
	"encoding/json"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/meverselabs/yieldvault/common"
	"github.com/meverselabs/yieldvault/common/bin"
	"github.com/meverselabs/yieldvault/common/rlog"
	"github.com/meverselabs/yieldvault/core/types"
)

// ErrNotIndexed is returned for a height the index has not seen yet
var ErrNotIndexed = errors.New("not indexed height")

// TxSearch keeps the events of every sealed block so they can be read after the chain
// dropped them from its cache
type TxSearch struct {
	sync.Mutex
	db     *leveldb.DB
	logger zerolog.Logger
}

// NewTxSearch opens the index at the path, an empty path keeps it in memory
func NewTxSearch(Path string) (*TxSearch, error) {
	var db *leveldb.DB
	var err error
	if len(Path) == 0 {
		db, err = leveldb.Open(storage.NewMemStorage(), nil)
	} else {
		db, err = leveldb.OpenFile(Path, nil)
	}
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &TxSearch{
		db:     db,
		logger: rlog.GetForComponent("txsearch"),
	}, nil
}

// Name returns the name of the service
func (t *TxSearch) Name() string {
	return "yieldvault.txsearch"
}

// Close closes the index
func (t *TxSearch) Close() {
	t.Lock()
	defer t.Unlock()
	if err := t.db.Close(); err != nil {
		t.logger.Warn().Err(err).Msg("close")
	}
}

// Height returns the last indexed height
func (t *TxSearch) Height() uint32 {
	bs, err := t.db.Get([]byte{tagHeight}, nil)
	if err != nil {
		return 0
	}
	return bin.Uint32(bs)
}

// OnBlockSealed indexes the events of the block
func (t *TxSearch) OnBlockSealed(height uint32, events []*types.Event) error {
	t.Lock()
	defer t.Unlock()

	batch := new(leveldb.Batch)
	for i, e := range events {
		bs, err := json.Marshal(e)
		if err != nil {
			return errors.WithStack(err)
		}
		batch.Put(toEventKey(height, uint32(i)), bs)
		batch.Put(toContractEventKey(e.Contract, height, uint32(i)), nil)
	}
	batch.Put([]byte{tagHeight}, bin.Uint32Bytes(height))
	if err := t.db.Write(batch, nil); err != nil {
		return errors.WithStack(err)
	}
	t.logger.Debug().Uint32("height", height).Int("events", len(events)).Msg("indexed")
	return nil
}

// Events returns the events of the block at the height
func (t *TxSearch) Events(height uint32) ([]*types.Event, error) {
	if height > t.Height() {
		return nil, errors.Wrapf(ErrNotIndexed, "height %v", height)
	}
	iter := t.db.NewIterator(util.BytesPrefix(toEventPrefix(height)), nil)
	defer iter.Release()

	events := []*types.Event{}
	for iter.Next() {
		e, err := decodeEvent(iter.Value())
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	if err := iter.Error(); err != nil {
		return nil, errors.WithStack(err)
	}
	return events, nil
}

// ContractEvents returns at most limit events of the contract emitted from the height fromHeight to toHeight
func (t *TxSearch) ContractEvents(addr common.Address, fromHeight uint32, toHeight uint32, limit int) ([]*types.Event, error) {
	if h := t.Height(); toHeight > h {
		toHeight = h
	}
	iter := t.db.NewIterator(&util.Range{
		Start: toContractEventKey(addr, fromHeight, 0),
		Limit: toContractEventKey(addr, toHeight+1, 0),
	}, nil)
	defer iter.Release()

	events := []*types.Event{}
	for iter.Next() {
		if limit > 0 && len(events) >= limit {
			break
		}
		height, seq := fromContractEventKey(iter.Key())
		bs, err := t.db.Get(toEventKey(height, seq), nil)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		e, err := decodeEvent(bs)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	if err := iter.Error(); err != nil {
		return nil, errors.WithStack(err)
	}
	return events, nil
}

func decodeEvent(bs []byte) (*types.Event, error) {
	dec := json.NewDecoder(bytes.NewReader(bs))
	dec.UseNumber()
	e := &types.Event{}
	if err := dec.Decode(e); err != nil {
		return nil, errors.WithStack(err)
	}
	return e, nil
}

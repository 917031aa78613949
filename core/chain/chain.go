package chain

import (
	"sync"
	"time"

	"github.com/bluele/gcache"
	"github.com/meverselabs/yieldvault/common"
	"github.com/meverselabs/yieldvault/common/bin"
	"github.com/meverselabs/yieldvault/common/metrics"
	"github.com/meverselabs/yieldvault/common/rlog"
	"github.com/meverselabs/yieldvault/core/types"
	"github.com/pkg/errors"
)

var tagSeq = []byte("seq")

var (
	metricTxCounter = metrics.LazyLoadCounterVec("txs_total", []string{"method", "result"})
	metricHeight    = metrics.LazyLoadGauge("height")
	metricTxLatency = metrics.LazyLoadHistogramVec("tx_latency_ms", []string{"method"}, metrics.BucketTxMillis)
)

// Service is notified after every sealed block
type Service interface {
	Name() string
	OnBlockSealed(height uint32, events []*types.Event) error
}

// Chain executes contract calls one at a time on the context of the pending block
type Chain struct {
	sync.Mutex
	chainID  uint64
	store    *Store
	ctx      *types.Context
	txCount  int
	events   gcache.Cache
	services []Service
	isClose  bool
}

// NewChain returns a Chain building the block after the last committed one
func NewChain(ChainID uint64, store *Store, Timestamp uint64) *Chain {
	cn := &Chain{
		chainID: ChainID,
		store:   store,
		events:  gcache.New(1024).LRU().Build(),
	}
	if Timestamp < store.LastTimestamp() {
		Timestamp = store.LastTimestamp()
	}
	cn.ctx = types.NewContext(store, Timestamp)
	metricHeight().Set(int64(store.Height()))
	return cn
}

// ChainID returns the id of the chain
func (cn *Chain) ChainID() uint64 {
	return cn.chainID
}

// Height returns the height of the last sealed block
func (cn *Chain) Height() uint32 {
	return cn.store.Height()
}

// TargetHeight returns the height of the pending block
func (cn *Chain) TargetHeight() uint32 {
	cn.Lock()
	defer cn.Unlock()
	return cn.ctx.TargetHeight()
}

// AddService registers the service for the blocks sealed from now on
func (cn *Chain) AddService(s Service) {
	cn.Lock()
	defer cn.Unlock()
	cn.services = append(cn.services, s)
}

// Close seals nothing and closes the store
func (cn *Chain) Close() {
	cn.Lock()
	defer cn.Unlock()
	if cn.isClose {
		return
	}
	cn.isClose = true
	cn.store.Close()
}

// Deploy creates a contract in the pending block
func (cn *Chain) Deploy(owner common.Address, ClassID uint64, Args []byte) (common.Address, error) {
	cn.Lock()
	defer cn.Unlock()
	if cn.isClose {
		return common.ZeroAddr, errors.WithStack(ErrChainClosed)
	}

	cont, err := cn.ctx.DeployContract(owner, ClassID, Args)
	if err != nil {
		return common.ZeroAddr, err
	}
	logger := rlog.GetForComponent("chain")
	logger.Info().
		Str("contract", cont.Name()).
		Str("address", cont.Address().String()).
		Msg("contract deployed")
	return cont.Address(), nil
}

// Seq returns the last used sequence of the signer
func (cn *Chain) Seq(addr common.Address) uint64 {
	cn.Lock()
	defer cn.Unlock()
	return cn.seq(addr)
}

func (cn *Chain) seq(addr common.Address) uint64 {
	return bin.Uint64(cn.ctx.Data(common.ZeroAddr, addr, tagSeq))
}

// Execute runs the call as one atomic state transition of the pending block
func (cn *Chain) Execute(from common.Address, to common.Address, Method string, Args []interface{}) ([]interface{}, error) {
	cn.Lock()
	defer cn.Unlock()
	if cn.isClose {
		return nil, errors.WithStack(ErrChainClosed)
	}
	return cn.execute(from, to, Method, Args)
}

// ExecuteTx verifies the signed transaction and executes it, the sequence is consumed even when the call fails
func (cn *Chain) ExecuteTx(stx *SignedTransaction) ([]interface{}, error) {
	from, err := stx.Sender()
	if err != nil {
		return nil, err
	}
	if stx.Tx.ChainID != cn.chainID {
		return nil, errors.Wrapf(ErrInvalidChainID, "got %v want %v", stx.Tx.ChainID, cn.chainID)
	}
	args, err := stx.Tx.DecodeArgs()
	if err != nil {
		return nil, err
	}

	cn.Lock()
	defer cn.Unlock()
	if cn.isClose {
		return nil, errors.WithStack(ErrChainClosed)
	}

	seq := cn.seq(from)
	if stx.Tx.Seq != seq+1 {
		return nil, errors.Wrapf(ErrInvalidSequence, "got %v want %v", stx.Tx.Seq, seq+1)
	}
	sn := cn.ctx.Snapshot()
	cn.ctx.SetData(common.ZeroAddr, from, tagSeq, bin.Uint64Bytes(stx.Tx.Seq))
	cn.ctx.Commit(sn)

	return cn.execute(from, stx.Tx.To, stx.Tx.Method, args)
}

func (cn *Chain) execute(from common.Address, to common.Address, Method string, Args []interface{}) ([]interface{}, error) {
	start := time.Now()
	logger := rlog.GetForComponent("chain")

	cn.ctx.SetEventIndex(uint16(cn.txCount))
	cn.txCount++

	sn := cn.ctx.Snapshot()
	rets, err := cn.ctx.Call(from, to, Method, Args)

	result := "ok"
	if err != nil {
		cn.ctx.Revert(sn)
		result = "fail"
		logger.Debug().Err(err).Str("method", Method).Str("to", to.String()).Msg("call reverted")
	} else {
		cn.ctx.Commit(sn)
	}
	metricTxCounter().AddWithLabel(1, map[string]string{"method": Method, "result": result})
	metricTxLatency().ObserveWithLabels(time.Since(start).Milliseconds(), map[string]string{"method": Method})
	return rets, err
}

// View runs the call on a throw-away snapshot
func (cn *Chain) View(from common.Address, to common.Address, Method string, Args []interface{}) ([]interface{}, error) {
	cn.Lock()
	defer cn.Unlock()
	if cn.isClose {
		return nil, errors.WithStack(ErrChainClosed)
	}

	sn := cn.ctx.Snapshot()
	defer cn.ctx.Revert(sn)
	return cn.ctx.Call(from, to, Method, Args)
}

// NextBlock seals the pending block and starts the next one at the timestamp
func (cn *Chain) NextBlock(Timestamp uint64) error {
	cn.Lock()
	defer cn.Unlock()
	if cn.isClose {
		return errors.WithStack(ErrChainClosed)
	}
	if Timestamp < cn.ctx.LastTimestamp() {
		return errors.Wrapf(ErrInvalidTimestamp, "got %v last %v", Timestamp, cn.ctx.LastTimestamp())
	}

	height := cn.ctx.TargetHeight()
	events := cn.ctx.Events()
	if err := cn.store.Commit(cn.ctx); err != nil {
		return err
	}
	cn.events.Set(height, events)

	logger := rlog.GetForComponent("chain")
	for _, e := range events {
		logger.Debug().Uint32("height", e.Height).Str("contract", e.Contract.String()).Str("event", e.Name).Msg("event")
	}
	logger.Info().Uint32("height", height).Int("txs", cn.txCount).Int("events", len(events)).Msg("block sealed")
	for _, s := range cn.services {
		if err := s.OnBlockSealed(height, events); err != nil {
			logger.Error().Err(err).Str("service", s.Name()).Uint32("height", height).Msg("service failed")
		}
	}

	cn.ctx = types.NewContext(cn.store, Timestamp)
	cn.txCount = 0
	metricHeight().Set(int64(height))
	return nil
}

// Events returns the events of a recently sealed block or of the pending one
func (cn *Chain) Events(height uint32) ([]*types.Event, error) {
	cn.Lock()
	defer cn.Unlock()
	if height == cn.ctx.TargetHeight() {
		return cn.ctx.Events(), nil
	}
	v, err := cn.events.Get(height)
	if err != nil {
		return nil, errors.Wrapf(ErrNotExistEvents, "height %v", height)
	}
	return v.([]*types.Event), nil
}

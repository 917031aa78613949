package types

import (
	"github.com/meverselabs/yieldvault/common"
	"github.com/meverselabs/yieldvault/common/bin"
	"github.com/meverselabs/yieldvault/common/hash"
	"github.com/pkg/errors"
)

var (
	tagContractDefine = []byte("define")
	tagDeploySeq      = []byte("deploySeq")
)

// Context is an intermediate in-memory state using the context data stack of a block
type Context struct {
	loader     Loader
	height     uint32
	lastHash   hash.Hash256
	timestamp  uint64
	stack      []*ContextData
	eventIndex uint16
}

// NewContext returns a Context of the target height of the loader
func NewContext(loader Loader, timestamp uint64) *Context {
	ctx := &Context{
		loader:    loader,
		height:    loader.TargetHeight(),
		lastHash:  loader.LastHash(),
		timestamp: timestamp,
	}
	ctx.stack = []*ContextData{NewContextData(loader, nil)}
	return ctx
}

// NewEmptyContext returns a Context of an empty chain
func NewEmptyContext() *Context {
	return NewContext(NewEmptyLoader(), 0)
}

// NextContext returns the context of the next block on top of the changes of this one
func (ctx *Context) NextContext(timestamp uint64) *Context {
	return NewContext(&contextLoader{ctx: ctx}, timestamp)
}

type contextLoader struct {
	ctx *Context
}

func (l *contextLoader) TargetHeight() uint32 {
	return l.ctx.height + 1
}

func (l *contextLoader) LastHash() hash.Hash256 {
	return l.ctx.Hash()
}

func (l *contextLoader) LastTimestamp() uint64 {
	return l.ctx.timestamp
}

func (l *contextLoader) Data(key string) []byte {
	return l.ctx.Top().get(key)
}

// TargetHeight returns the height of the block being built
func (ctx *Context) TargetHeight() uint32 {
	return ctx.height
}

// LastHash returns the hash of the previous block
func (ctx *Context) LastHash() hash.Hash256 {
	return ctx.lastHash
}

// LastTimestamp returns the timestamp of the block being built
func (ctx *Context) LastTimestamp() uint64 {
	return ctx.timestamp
}

// Top returns the top snapshot
func (ctx *Context) Top() *ContextData {
	return ctx.stack[len(ctx.stack)-1]
}

// Base returns the bottom layer that holds every committed change of the block
func (ctx *Context) Base() *ContextData {
	return ctx.stack[0]
}

// Hash returns the hash value of it
func (ctx *Context) Hash() hash.Hash256 {
	return hash.Hashes(ctx.lastHash, ctx.Base().Hash())
}

// Snapshot push a snapshot and returns the snapshot number
func (ctx *Context) Snapshot() int {
	ctx.stack = append(ctx.stack, NewContextData(ctx.loader, ctx.Top()))
	return len(ctx.stack) - 1
}

// Revert removes snapshots after the snapshot number
func (ctx *Context) Revert(sn int) {
	if sn < 1 || sn > len(ctx.stack)-1 {
		return
	}
	ctx.stack = ctx.stack[:sn]
}

// Commit apply snapshots to the parent layer
func (ctx *Context) Commit(sn int) {
	if sn < 1 {
		return
	}
	for len(ctx.stack) > sn {
		top := ctx.stack[len(ctx.stack)-1]
		ctx.stack = ctx.stack[:len(ctx.stack)-1]
		top.mergeInto(ctx.Top())
	}
}

// StackSize returns the depth of the snapshot stack
func (ctx *Context) StackSize() int {
	return len(ctx.stack)
}

// SetEventIndex sets the transaction index stamped on emitted events
func (ctx *Context) SetEventIndex(idx uint16) {
	ctx.eventIndex = idx
}

// EmitEvent adds the event to the top snapshot
func (ctx *Context) EmitEvent(cont common.Address, name string, fields []interface{}) {
	ctx.Top().AddEvent(&Event{
		Height:   ctx.height,
		Index:    ctx.eventIndex,
		Contract: cont,
		Name:     name,
		Fields:   fields,
	})
}

// Events returns the committed events of the block
func (ctx *Context) Events() []*Event {
	return ctx.Base().Events()
}

// Data returns the data from the top snapshot
func (ctx *Context) Data(cont common.Address, addr common.Address, name []byte) []byte {
	return ctx.Top().Data(cont, addr, name)
}

// SetData inserts the data to the top snapshot
func (ctx *Context) SetData(cont common.Address, addr common.Address, name []byte, value []byte) {
	ctx.Top().SetData(cont, addr, name, value)
}

func (ctx *Context) contractDefine(addr common.Address) (*ContractDefine, error) {
	bs := ctx.Data(common.ZeroAddr, addr, tagContractDefine)
	if len(bs) == 0 {
		return nil, errors.Wrapf(ErrNotExistContract, "%v", addr.String())
	}
	cd := &ContractDefine{}
	if _, err := bin.ReadFromBytes(cd, bs); err != nil {
		return nil, err
	}
	return cd, nil
}

// IsContract returns is the contract
func (ctx *Context) IsContract(addr common.Address) bool {
	return len(ctx.Data(common.ZeroAddr, addr, tagContractDefine)) > 0
}

// Contract returns the contract instance of the address
func (ctx *Context) Contract(addr common.Address) (Contract, error) {
	cd, err := ctx.contractDefine(addr)
	if err != nil {
		return nil, err
	}
	return CreateContract(cd)
}

// ContractAddress returns the address a deployment of the owner will get
func ContractAddress(owner common.Address, ClassID uint64, seq uint64) common.Address {
	h := hash.Hash([]byte{0xff}, owner[:], bin.Uint64Bytes(ClassID), bin.Uint64Bytes(seq))
	return common.BytesToAddress(h[12:])
}

// DeployContract creates the contract and runs its OnCreate
func (ctx *Context) DeployContract(owner common.Address, ClassID uint64, Args []byte) (Contract, error) {
	if !IsValidClassID(ClassID) {
		return nil, errors.WithStack(ErrInvalidClassID)
	}

	sn := ctx.Snapshot()
	cont, err := func() (Contract, error) {
		seq := bin.Uint64(ctx.Data(common.ZeroAddr, common.ZeroAddr, tagDeploySeq))
		ctx.SetData(common.ZeroAddr, common.ZeroAddr, tagDeploySeq, bin.Uint64Bytes(seq+1))

		cd := &ContractDefine{
			Address: ContractAddress(owner, ClassID, seq),
			Owner:   owner,
			ClassID: ClassID,
		}
		ctx.SetData(common.ZeroAddr, cd.Address, tagContractDefine, bin.MustWriterToBytes(cd))

		cont, err := CreateContract(cd)
		if err != nil {
			return nil, err
		}
		cc := ctx.ContractContext(cont, owner)
		if err := cont.OnCreate(cc, Args); err != nil {
			return nil, err
		}
		return cont, nil
	}()
	if err != nil {
		ctx.Revert(sn)
		return nil, err
	}
	ctx.Commit(sn)
	return cont, nil
}

// ContractContext returns a ContractContext of the contract called by from
func (ctx *Context) ContractContext(cont Contract, from common.Address) *ContractContext {
	cc := &ContractContext{
		cont: cont.Address(),
		from: from,
		ctx:  ctx,
	}
	cc.Exec = NewInteractor(ctx).Exec
	return cc
}

// Call executes the method of the contract as an atomic state transition signed by from
func (ctx *Context) Call(from common.Address, to common.Address, MethodName string, Args []interface{}) ([]interface{}, error) {
	cont, err := ctx.Contract(to)
	if err != nil {
		return nil, err
	}
	cc := ctx.ContractContext(cont, from)
	return execMethod(cc, cont, MethodName, Args)
}

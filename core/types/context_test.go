package types

import (
	"errors"
	"testing"

	"github.com/meverselabs/yieldvault/common"
	"github.com/meverselabs/yieldvault/common/amount"
	"github.com/meverselabs/yieldvault/common/bin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errCounterLimit = errors.New("counter limit")

type counterContract struct {
	addr   common.Address
	master common.Address
}

func (cont *counterContract) Name() string            { return "counter" }
func (cont *counterContract) Address() common.Address { return cont.addr }
func (cont *counterContract) Master() common.Address  { return cont.master }

func (cont *counterContract) Init(addr, master common.Address) {
	cont.addr, cont.master = addr, master
}

func (cont *counterContract) OnCreate(cc *ContractContext, Args []byte) error {
	cc.SetContractData([]byte{0x01}, bin.Uint64Bytes(bin.Uint64(Args)))
	return nil
}

func (cont *counterContract) Front() interface{} { return &counterFront{cont: cont} }

type counterFront struct {
	cont *counterContract
}

func (f *counterFront) Value(cc *ContractContext) uint64 {
	return bin.Uint64(cc.ContractData([]byte{0x01}))
}

func (f *counterFront) Add(cc *ContractContext, n uint64) (uint64, error) {
	v := bin.Uint64(cc.ContractData([]byte{0x01})) + n
	cc.SetContractData([]byte{0x01}, bin.Uint64Bytes(v))
	cc.EmitEvent("Added", cc.From(), n)
	if v > 100 {
		return 0, errCounterLimit
	}
	return v, nil
}

func (f *counterFront) AddTo(cc *ContractContext, other common.Address, n uint64) (uint64, error) {
	cc.SetAccountData(cc.From(), []byte{0x02}, bin.BoolBytes(true))
	rets, err := cc.Exec(cc, other, "Add", []interface{}{n})
	if err != nil {
		return 0, err
	}
	return rets[0].(uint64), nil
}

func (f *counterFront) Caller(cc *ContractContext) common.Address {
	return cc.From()
}

func (f *counterFront) CallerOf(cc *ContractContext, other common.Address) (common.Address, error) {
	rets, err := cc.Exec(cc, other, "caller", nil)
	if err != nil {
		return common.ZeroAddr, err
	}
	return rets[0].(common.Address), nil
}

func (f *counterFront) Boom(cc *ContractContext) {
	cc.SetContractData([]byte{0x01}, bin.Uint64Bytes(999))
	panic("boom")
}

func (f *counterFront) Scale(cc *ContractContext, am *amount.Amount, addrs []common.Address) *amount.Amount {
	return am.MulC(int64(len(addrs)))
}

func deployCounters(t *testing.T, ctx *Context, n int) []common.Address {
	ClassID, err := RegisterContractType(&counterContract{})
	require.NoError(t, err)
	owner := common.HexToAddress("0x1000000000000000000000000000000000000001")
	addrs := []common.Address{}
	for i := 0; i < n; i++ {
		cont, err := ctx.DeployContract(owner, ClassID, bin.Uint64Bytes(uint64(i)))
		require.NoError(t, err)
		addrs = append(addrs, cont.Address())
	}
	return addrs
}

func TestDeployContract(t *testing.T) {
	ctx := NewEmptyContext()
	addrs := deployCounters(t, ctx, 2)
	assert.NotEqual(t, addrs[0], addrs[1])
	assert.True(t, ctx.IsContract(addrs[0]))
	assert.False(t, ctx.IsContract(common.HexToAddress("0x01")))

	rets, err := ctx.Call(common.ZeroAddr, addrs[1], "value", nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), rets[0])

	_, err = ctx.DeployContract(common.ZeroAddr, 12345, nil)
	assert.ErrorIs(t, err, ErrInvalidClassID)
}

func TestSnapshotRevertCommit(t *testing.T) {
	ctx := NewEmptyContext()
	cont := common.HexToAddress("0x02")
	ctx.SetData(cont, common.ZeroAddr, []byte("k"), []byte{1})

	sn := ctx.Snapshot()
	ctx.SetData(cont, common.ZeroAddr, []byte("k"), []byte{2})
	assert.Equal(t, []byte{2}, ctx.Data(cont, common.ZeroAddr, []byte("k")))
	ctx.Revert(sn)
	assert.Equal(t, []byte{1}, ctx.Data(cont, common.ZeroAddr, []byte("k")))

	sn = ctx.Snapshot()
	ctx.SetData(cont, common.ZeroAddr, []byte("k"), nil)
	ctx.Snapshot()
	ctx.SetData(cont, common.ZeroAddr, []byte("j"), []byte{3})
	ctx.Commit(sn)
	assert.Equal(t, 1, ctx.StackSize())
	assert.Nil(t, ctx.Data(cont, common.ZeroAddr, []byte("k")))
	assert.Equal(t, []byte{3}, ctx.Data(cont, common.ZeroAddr, []byte("j")))

	bs := ctx.Data(cont, common.ZeroAddr, []byte("j"))
	bs[0] = 9
	assert.Equal(t, []byte{3}, ctx.Data(cont, common.ZeroAddr, []byte("j")))
}

func TestCallRevertsOnError(t *testing.T) {
	ctx := NewEmptyContext()
	addrs := deployCounters(t, ctx, 1)
	user := common.HexToAddress("0x3000000000000000000000000000000000000003")

	rets, err := ctx.Call(user, addrs[0], "Add", []interface{}{"40"})
	require.NoError(t, err)
	assert.Equal(t, uint64(40), rets[0])
	assert.Len(t, ctx.Events(), 1)

	_, err = ctx.Call(user, addrs[0], "Add", []interface{}{uint64(70)})
	assert.ErrorIs(t, err, errCounterLimit)
	rets, _ = ctx.Call(user, addrs[0], "Value", nil)
	assert.Equal(t, uint64(40), rets[0])
	assert.Len(t, ctx.Events(), 1)

	_, err = ctx.Call(user, addrs[0], "Boom", nil)
	assert.ErrorIs(t, err, ErrContractPanic)
	rets, _ = ctx.Call(user, addrs[0], "Value", nil)
	assert.Equal(t, uint64(40), rets[0])
	assert.Equal(t, 1, ctx.StackSize())
}

func TestNestedExec(t *testing.T) {
	ctx := NewEmptyContext()
	addrs := deployCounters(t, ctx, 2)
	user := common.HexToAddress("0x3000000000000000000000000000000000000003")

	rets, err := ctx.Call(user, addrs[0], "CallerOf", []interface{}{addrs[1]})
	require.NoError(t, err)
	assert.Equal(t, addrs[0], rets[0])

	rets, err = ctx.Call(user, addrs[0], "Caller", nil)
	require.NoError(t, err)
	assert.Equal(t, user, rets[0])

	_, err = ctx.Call(user, addrs[0], "AddTo", []interface{}{addrs[1], uint64(200)})
	assert.ErrorIs(t, err, errCounterLimit)
	assert.Nil(t, ctx.Data(addrs[0], user, []byte{0x02}))

	_, err = ctx.Call(user, addrs[0], "AddTo", []interface{}{addrs[1].String(), 5})
	require.NoError(t, err)
	assert.Equal(t, []byte{1}, ctx.Data(addrs[0], user, []byte{0x02}))
	rets, _ = ctx.Call(user, addrs[1], "Value", nil)
	assert.Equal(t, uint64(6), rets[0])
}

func TestContractInputsConv(t *testing.T) {
	ctx := NewEmptyContext()
	addrs := deployCounters(t, ctx, 1)

	rets, err := ctx.Call(common.ZeroAddr, addrs[0], "Scale", []interface{}{
		"1.5",
		[]interface{}{addrs[0].String(), addrs[0]},
	})
	require.NoError(t, err)
	assert.True(t, amount.MustParseAmount("3").Equal(rets[0].(*amount.Amount)))

	_, err = ctx.Call(common.ZeroAddr, addrs[0], "Scale", []interface{}{"1"})
	assert.ErrorIs(t, err, ErrInvalidInputCount)

	_, err = ctx.Call(common.ZeroAddr, addrs[0], "Scale", []interface{}{true, []string{}})
	assert.ErrorIs(t, err, ErrInvalidInputType)

	_, err = ctx.Call(common.ZeroAddr, addrs[0], "Missing", nil)
	assert.ErrorIs(t, err, ErrMethodNotExist)
}

func TestNextContext(t *testing.T) {
	ctx := NewEmptyContext()
	addrs := deployCounters(t, ctx, 1)
	_, err := ctx.Call(common.ZeroAddr, addrs[0], "Add", []interface{}{uint64(3)})
	require.NoError(t, err)

	next := ctx.NextContext(1000)
	assert.Equal(t, ctx.TargetHeight()+1, next.TargetHeight())
	assert.Equal(t, ctx.Hash(), next.LastHash())
	assert.Equal(t, uint64(1000), next.LastTimestamp())
	assert.Empty(t, next.Events())

	rets, err := next.Call(common.ZeroAddr, addrs[0], "Add", []interface{}{uint64(1)})
	require.NoError(t, err)
	assert.Equal(t, uint64(4), rets[0])
	rets, _ = ctx.Call(common.ZeroAddr, addrs[0], "Value", nil)
	assert.Equal(t, uint64(3), rets[0])
}

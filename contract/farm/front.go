package farm

import (
	"github.com/meverselabs/yieldvault/common"
	"github.com/meverselabs/yieldvault/common/amount"
	"github.com/meverselabs/yieldvault/core/types"
)

func (cont *FarmContract) Front() interface{} {
	return &front{
		cont: cont,
	}
}

type front struct {
	cont *FarmContract
}

//////////////////////////////////////////////////
// Public Writer Functions
//////////////////////////////////////////////////

func (f *front) MassUpdatePools(cc *types.ContractContext) error {
	return f.cont.MassUpdatePools(cc)
}

func (f *front) UpdatePool(cc *types.ContractContext, pid uint64) error {
	return f.cont.UpdatePool(cc, pid)
}

func (f *front) Deposit(cc *types.ContractContext, pid uint64, amt *amount.Amount) error {
	return f.cont.Deposit(cc, pid, amt)
}

func (f *front) Withdraw(cc *types.ContractContext, pid uint64, amt *amount.Amount) error {
	return f.cont.Withdraw(cc, pid, amt)
}

func (f *front) EmergencyWithdraw(cc *types.ContractContext, pid uint64) error {
	return f.cont.EmergencyWithdraw(cc, pid)
}

//////////////////////////////////////////////////
// Public Writer only owner Functions
//////////////////////////////////////////////////

func (f *front) Add(cc *types.ContractContext, allocPoint uint32, want common.Address, withUpdate bool) (uint64, error) {
	return f.cont.Add(cc, allocPoint, want, withUpdate)
}

func (f *front) Set(cc *types.ContractContext, pid uint64, allocPoint uint32, withUpdate bool) error {
	return f.cont.Set(cc, pid, allocPoint, withUpdate)
}

func (f *front) SetTokenPerBlock(cc *types.ContractContext, tokenPerBlock *amount.Amount) error {
	return f.cont.SetTokenPerBlock(cc, tokenPerBlock)
}

func (f *front) TransferOwnership(cc *types.ContractContext, newOwner common.Address) error {
	return f.cont.TransferOwnership(cc, newOwner)
}

//////////////////////////////////////////////////
// Public Reader Functions
//////////////////////////////////////////////////

func (f *front) Owner(cc *types.ContractContext) common.Address {
	return f.cont.Owner(cc)
}

func (f *front) FarmToken(cc *types.ContractContext) common.Address {
	return f.cont.FarmToken(cc)
}

func (f *front) TokenPerBlock(cc *types.ContractContext) *amount.Amount {
	return f.cont.TokenPerBlock(cc)
}

func (f *front) StartBlock(cc *types.ContractContext) uint32 {
	return f.cont.StartBlock(cc)
}

func (f *front) TotalAllocPoint(cc *types.ContractContext) uint32 {
	return f.cont.TotalAllocPoint(cc)
}

func (f *front) PoolLength(cc *types.ContractContext) uint64 {
	return f.cont.PoolLength(cc)
}

// PoolInfo returns want, alloc point, last reward block, acc token per share and total staked
func (f *front) PoolInfo(cc *types.ContractContext, pid uint64) (common.Address, uint32, uint32, *amount.Amount, *amount.Amount, error) {
	pool, err := f.cont.PoolInfo(cc, pid)
	if err != nil {
		return common.ZeroAddr, 0, 0, nil, nil, err
	}
	return pool.Want, pool.AllocPoint, pool.LastRewardBlock, pool.AccTokenPerShare, pool.TotalAmount, nil
}

func (f *front) UserInfo(cc *types.ContractContext, pid uint64, user common.Address) (*amount.Amount, *amount.Amount) {
	return f.cont.UserInfo(cc, pid, user)
}

func (f *front) PendingReward(cc *types.ContractContext, pid uint64, user common.Address) (*amount.Amount, error) {
	return f.cont.PendingReward(cc, pid, user)
}

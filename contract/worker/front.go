package worker

import (
	"github.com/meverselabs/yieldvault/common"
	"github.com/meverselabs/yieldvault/common/amount"
	"github.com/meverselabs/yieldvault/contract/capability"
	"github.com/meverselabs/yieldvault/core/types"
)

type workerContract interface {
	capability.Strategy
	HarvestSource(cc *types.ContractContext, index uint64) (*amount.Amount, error)
	Owner(cc *types.ContractContext) common.Address
	Vault(cc *types.ContractContext) common.Address
	IsPaused(cc *types.ContractContext) bool
	Oracle(cc *types.ContractContext) common.Address
	Router(cc *types.ContractContext) common.Address
	PrincipalToken(cc *types.ContractContext) common.Address
	VaultRewardToken(cc *types.ContractContext) common.Address
	Reserve(cc *types.ContractContext) *amount.Amount
	TotalStaked(cc *types.ContractContext) (*amount.Amount, error)
	SetVault(cc *types.ContractContext, vault common.Address) error
	Pause(cc *types.ContractContext) error
	Unpause(cc *types.ContractContext) error
	SetMinSwap(cc *types.ContractContext, minPrimary *amount.Amount, minSecondary *amount.Amount) error
	TransferOwnership(cc *types.ContractContext, newOwner common.Address) error
}

func (w *SingleWorker) Front() interface{} {
	return &front{
		cont: w,
	}
}

func (w *DualWorker) Front() interface{} {
	return &dualFront{
		front: front{
			cont: w,
		},
		dual: w,
	}
}

type front struct {
	cont workerContract
}

//////////////////////////////////////////////////
// Public Writer only vault Functions
//////////////////////////////////////////////////

func (f *front) Stake(cc *types.ContractContext, amt *amount.Amount) error {
	return f.cont.Stake(cc, amt)
}

func (f *front) Unstake(cc *types.ContractContext, amt *amount.Amount) (*amount.Amount, error) {
	return f.cont.Unstake(cc, amt)
}

func (f *front) Harvest(cc *types.ContractContext) (*amount.Amount, error) {
	return f.cont.Harvest(cc)
}

func (f *front) ClaimReward(cc *types.ContractContext, amt *amount.Amount) error {
	return f.cont.ClaimReward(cc, amt)
}

func (f *front) EmergencyUnstake(cc *types.ContractContext) (*amount.Amount, error) {
	return f.cont.EmergencyUnstake(cc)
}

//////////////////////////////////////////////////
// Public Writer only worker Functions
//////////////////////////////////////////////////

func (f *front) HarvestSource(cc *types.ContractContext, index uint64) (*amount.Amount, error) {
	return f.cont.HarvestSource(cc, index)
}

//////////////////////////////////////////////////
// Public Writer only owner Functions
//////////////////////////////////////////////////

func (f *front) SetVault(cc *types.ContractContext, vault common.Address) error {
	return f.cont.SetVault(cc, vault)
}

func (f *front) Pause(cc *types.ContractContext) error {
	return f.cont.Pause(cc)
}

func (f *front) Unpause(cc *types.ContractContext) error {
	return f.cont.Unpause(cc)
}

func (f *front) SetMinSwap(cc *types.ContractContext, minPrimary *amount.Amount, minSecondary *amount.Amount) error {
	return f.cont.SetMinSwap(cc, minPrimary, minSecondary)
}

func (f *front) TransferOwnership(cc *types.ContractContext, newOwner common.Address) error {
	return f.cont.TransferOwnership(cc, newOwner)
}

//////////////////////////////////////////////////
// Public Reader Functions
//////////////////////////////////////////////////

func (f *front) PendingReward(cc *types.ContractContext) (*amount.Amount, error) {
	return f.cont.PendingReward(cc)
}

func (f *front) Owner(cc *types.ContractContext) common.Address {
	return f.cont.Owner(cc)
}

func (f *front) Vault(cc *types.ContractContext) common.Address {
	return f.cont.Vault(cc)
}

func (f *front) IsPaused(cc *types.ContractContext) bool {
	return f.cont.IsPaused(cc)
}

func (f *front) Oracle(cc *types.ContractContext) common.Address {
	return f.cont.Oracle(cc)
}

func (f *front) Router(cc *types.ContractContext) common.Address {
	return f.cont.Router(cc)
}

func (f *front) PrincipalToken(cc *types.ContractContext) common.Address {
	return f.cont.PrincipalToken(cc)
}

func (f *front) VaultRewardToken(cc *types.ContractContext) common.Address {
	return f.cont.VaultRewardToken(cc)
}

func (f *front) Reserve(cc *types.ContractContext) *amount.Amount {
	return f.cont.Reserve(cc)
}

func (f *front) TotalStaked(cc *types.ContractContext) (*amount.Amount, error) {
	return f.cont.TotalStaked(cc)
}

type dualFront struct {
	front
	dual *DualWorker
}

func (f *dualFront) Park(cc *types.ContractContext) error {
	return f.dual.Park(cc)
}

func (f *dualFront) IBVault(cc *types.ContractContext) common.Address {
	return f.dual.IBVault(cc)
}

func (f *dualFront) Parked(cc *types.ContractContext) (*amount.Amount, *amount.Amount, error) {
	return f.dual.Parked(cc)
}

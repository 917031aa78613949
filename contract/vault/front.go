package vault

import (
	"math/big"

	"github.com/meverselabs/yieldvault/common"
	"github.com/meverselabs/yieldvault/common/amount"
	"github.com/meverselabs/yieldvault/core/types"
)

func (cont *VaultContract) Front() interface{} {
	return &front{
		cont: cont,
	}
}

type front struct {
	cont *VaultContract
}

//////////////////////////////////////////////////
// Public Writer Functions
//////////////////////////////////////////////////

func (f *front) Deposit(cc *types.ContractContext, amt *amount.Amount) error {
	return f.cont.Deposit(cc, amt)
}

func (f *front) Withdraw(cc *types.ContractContext, amt *amount.Amount) error {
	return f.cont.Withdraw(cc, amt)
}

func (f *front) WithdrawAll(cc *types.ContractContext) error {
	return f.cont.WithdrawAll(cc)
}

func (f *front) Work(cc *types.ContractContext) error {
	return f.cont.Work(cc)
}

func (f *front) UserEmergencyWithdraw(cc *types.ContractContext) error {
	return f.cont.UserEmergencyWithdraw(cc)
}

//////////////////////////////////////////////////
// Public Writer only owner Functions
//////////////////////////////////////////////////

func (f *front) EmergencyWithdrawWorker(cc *types.ContractContext) error {
	return f.cont.EmergencyWithdrawWorker(cc)
}

func (f *front) SetDelayWithdrawalBlock(cc *types.ContractContext, blocks uint32) error {
	return f.cont.SetDelayWithdrawalBlock(cc, blocks)
}

func (f *front) Pause(cc *types.ContractContext) error {
	return f.cont.Pause(cc)
}

func (f *front) Unpause(cc *types.ContractContext) error {
	return f.cont.Unpause(cc)
}

func (f *front) SetFeeManager(cc *types.ContractContext, feeManager common.Address) error {
	return f.cont.SetFeeManager(cc, feeManager)
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

func (f *front) Strategy(cc *types.ContractContext) common.Address {
	return f.cont.Strategy(cc)
}

func (f *front) PrincipalToken(cc *types.ContractContext) common.Address {
	return f.cont.PrincipalToken(cc)
}

func (f *front) RewardToken(cc *types.ContractContext) common.Address {
	return f.cont.RewardToken(cc)
}

func (f *front) FeeManager(cc *types.ContractContext) common.Address {
	return f.cont.FeeManager(cc)
}

func (f *front) TotalPrincipal(cc *types.ContractContext) *amount.Amount {
	return f.cont.TotalPrincipal(cc)
}

func (f *front) AccRewardPerShare(cc *types.ContractContext) *amount.Amount {
	return f.cont.AccRewardPerShare(cc)
}

func (f *front) IsPaused(cc *types.ContractContext) bool {
	return f.cont.IsPaused(cc)
}

func (f *front) IsEmergency(cc *types.ContractContext) bool {
	return f.cont.IsEmergency(cc)
}

func (f *front) WithdrawalDelayBlocks(cc *types.ContractContext) uint32 {
	return f.cont.WithdrawalDelayBlocks(cc)
}

func (f *front) State(cc *types.ContractContext) *VaultState {
	return f.cont.State(cc)
}

func (f *front) PendingReward(cc *types.ContractContext) (*amount.Amount, error) {
	return f.cont.PendingReward(cc)
}

func (f *front) TotalRewardPerShare(cc *types.ContractContext) (*amount.Amount, error) {
	return f.cont.TotalRewardPerShare(cc)
}

func (f *front) UserPendingReward(cc *types.ContractContext, user common.Address) (*amount.Amount, error) {
	return f.cont.UserPendingReward(cc, user)
}

// UserInfo returns the principal, the reward debt and the last deposit height of the user
func (f *front) UserInfo(cc *types.ContractContext, user common.Address) (*amount.Amount, *amount.Amount, uint32) {
	pos := f.cont.UserInfo(cc, user)
	return pos.Principal, pos.RewardDebt, pos.LastDepositHeight
}

//////////////////////////////////////////////////
// Receipt Reader Functions
//////////////////////////////////////////////////

func (f *front) Name(cc *types.ContractContext) string {
	return f.cont.TokenName(cc)
}

func (f *front) Symbol(cc *types.ContractContext) string {
	return f.cont.Symbol(cc)
}

func (f *front) Decimals(cc *types.ContractContext) *big.Int {
	return f.cont.Decimals(cc)
}

// TotalSupply of the receipt is the total principal
func (f *front) TotalSupply(cc *types.ContractContext) *amount.Amount {
	return f.cont.TotalPrincipal(cc)
}

// BalanceOf the receipt is the principal of the user
func (f *front) BalanceOf(cc *types.ContractContext, user common.Address) *amount.Amount {
	return f.cont.UserInfo(cc, user).Principal
}

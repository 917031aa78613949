package capability

import (
	"github.com/meverselabs/yieldvault/common"
	"github.com/meverselabs/yieldvault/common/amount"
	"github.com/meverselabs/yieldvault/core/types"
)

// IBVault calls an intermediary vault that issues shares for its underlying token
type IBVault struct {
	Addr common.Address
}

func (v IBVault) Deposit(cc *types.ContractContext, amt *amount.Amount) (*amount.Amount, error) {
	return callAmount(cc, v.Addr, "Deposit", amt)
}

func (v IBVault) Withdraw(cc *types.ContractContext, shares *amount.Amount) (*amount.Amount, error) {
	return callAmount(cc, v.Addr, "Withdraw", shares)
}

func (v IBVault) ShareToken(cc *types.ContractContext) (common.Address, error) {
	return callAddress(cc, v.Addr, "ShareToken")
}

func (v IBVault) Underlying(cc *types.ContractContext) (common.Address, error) {
	return callAddress(cc, v.Addr, "Underlying")
}

func (v IBVault) TotalToken(cc *types.ContractContext) (*amount.Amount, error) {
	return callAmount(cc, v.Addr, "TotalToken")
}

func (v IBVault) TotalShares(cc *types.ContractContext) (*amount.Amount, error) {
	return callAmount(cc, v.Addr, "TotalShares")
}

func (v IBVault) SharesToToken(cc *types.ContractContext, shares *amount.Amount) (*amount.Amount, error) {
	return callAmount(cc, v.Addr, "SharesToToken", shares)
}

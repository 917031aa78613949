package ibvault

import (
	"github.com/meverselabs/yieldvault/common"
	"github.com/meverselabs/yieldvault/common/amount"
	"github.com/meverselabs/yieldvault/core/types"
)

func (cont *IBVaultContract) Front() interface{} {
	return &front{
		cont: cont,
	}
}

type front struct {
	cont *IBVaultContract
}

func (f *front) Underlying(cc *types.ContractContext) common.Address {
	return f.cont.Underlying(cc)
}

func (f *front) ShareToken(cc *types.ContractContext) common.Address {
	return f.cont.ShareToken(cc)
}

func (f *front) TotalToken(cc *types.ContractContext) (*amount.Amount, error) {
	return f.cont.TotalToken(cc)
}

func (f *front) TotalShares(cc *types.ContractContext) (*amount.Amount, error) {
	return f.cont.TotalShares(cc)
}

func (f *front) SharesToToken(cc *types.ContractContext, shares *amount.Amount) (*amount.Amount, error) {
	return f.cont.SharesToToken(cc, shares)
}

func (f *front) Deposit(cc *types.ContractContext, amt *amount.Amount) (*amount.Amount, error) {
	return f.cont.Deposit(cc, amt)
}

func (f *front) Withdraw(cc *types.ContractContext, shares *amount.Amount) (*amount.Amount, error) {
	return f.cont.Withdraw(cc, shares)
}

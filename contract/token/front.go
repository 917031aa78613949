package token

import (
	"math/big"

	"github.com/meverselabs/yieldvault/common"
	"github.com/meverselabs/yieldvault/common/amount"
	"github.com/meverselabs/yieldvault/core/types"
)

func (cont *TokenContract) Front() interface{} {
	return &front{
		cont: cont,
	}
}

type front struct {
	cont *TokenContract
}

func (f *front) Transfer(cc *types.ContractContext, To common.Address, Amount *amount.Amount) (bool, error) {
	err := f.cont.Transfer(cc, To, Amount)
	return err == nil, err
}

func (f *front) TransferFrom(cc *types.ContractContext, From common.Address, To common.Address, Amount *amount.Amount) (bool, error) {
	err := f.cont.TransferFrom(cc, From, To, Amount)
	return err == nil, err
}

func (f *front) Approve(cc *types.ContractContext, To common.Address, Amount *amount.Amount) (bool, error) {
	err := f.cont.Approve(cc, To, Amount)
	return err == nil, err
}

func (f *front) Mint(cc *types.ContractContext, To common.Address, Amount *amount.Amount) error {
	return f.cont.Mint(cc, To, Amount)
}

func (f *front) Burn(cc *types.ContractContext, Amount *amount.Amount) error {
	return f.cont.Burn(cc, Amount)
}

func (f *front) SetMinter(cc *types.ContractContext, To common.Address, Is bool) error {
	return f.cont.SetMinter(cc, To, Is)
}

func (f *front) Pause(cc *types.ContractContext) error {
	return f.cont.Pause(cc)
}

func (f *front) Unpause(cc *types.ContractContext) error {
	return f.cont.Unpause(cc)
}

//////////////////////////////////////////////////
// Public Reader Functions
//////////////////////////////////////////////////

func (f *front) Name(cc *types.ContractContext) string {
	return f.cont.TokenName(cc)
}

func (f *front) Symbol(cc *types.ContractContext) string {
	return f.cont.Symbol(cc)
}

func (f *front) TotalSupply(cc *types.ContractContext) *amount.Amount {
	return f.cont.TotalSupply(cc)
}

func (f *front) Decimals(cc *types.ContractContext) *big.Int {
	return f.cont.Decimals(cc)
}

func (f *front) BalanceOf(cc *types.ContractContext, from common.Address) *amount.Amount {
	return f.cont.BalanceOf(cc, from)
}

func (f *front) IsMinter(cc *types.ContractContext, addr common.Address) bool {
	return f.cont.IsMinter(cc, addr)
}

func (f *front) IsPaused(cc *types.ContractContext) bool {
	return f.cont.IsPaused(cc)
}

func (f *front) Allowance(cc *types.ContractContext, owner common.Address, spender common.Address) *amount.Amount {
	return f.cont.Allowance(cc, owner, spender)
}

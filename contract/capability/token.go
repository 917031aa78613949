package capability

import (
	"github.com/meverselabs/yieldvault/common"
	"github.com/meverselabs/yieldvault/common/amount"
	"github.com/meverselabs/yieldvault/core/types"
)

// Token calls a fungible token contract
type Token struct {
	Addr common.Address
}

func (t Token) BalanceOf(cc *types.ContractContext, who common.Address) (*amount.Amount, error) {
	return callAmount(cc, t.Addr, "BalanceOf", who)
}

func (t Token) TotalSupply(cc *types.ContractContext) (*amount.Amount, error) {
	return callAmount(cc, t.Addr, "TotalSupply")
}

func (t Token) Allowance(cc *types.ContractContext, owner common.Address, spender common.Address) (*amount.Amount, error) {
	return callAmount(cc, t.Addr, "Allowance", owner, spender)
}

func (t Token) Transfer(cc *types.ContractContext, to common.Address, amt *amount.Amount) error {
	return call(cc, t.Addr, "Transfer", to, amt)
}

func (t Token) TransferFrom(cc *types.ContractContext, from common.Address, to common.Address, amt *amount.Amount) error {
	return call(cc, t.Addr, "TransferFrom", from, to, amt)
}

func (t Token) Approve(cc *types.ContractContext, spender common.Address, amt *amount.Amount) error {
	return call(cc, t.Addr, "Approve", spender, amt)
}

func (t Token) Mint(cc *types.ContractContext, to common.Address, amt *amount.Amount) error {
	return call(cc, t.Addr, "Mint", to, amt)
}

func (t Token) Burn(cc *types.ContractContext, amt *amount.Amount) error {
	return call(cc, t.Addr, "Burn", amt)
}

// SelfBalance returns the balance held by the running contract
func (t Token) SelfBalance(cc *types.ContractContext) (*amount.Amount, error) {
	return t.BalanceOf(cc, cc.Address())
}

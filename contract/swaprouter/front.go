package swaprouter

import (
	"github.com/meverselabs/yieldvault/common"
	"github.com/meverselabs/yieldvault/common/amount"
	"github.com/meverselabs/yieldvault/core/types"
)

func (cont *RouterContract) Front() interface{} {
	return &front{
		cont: cont,
	}
}

type front struct {
	cont *RouterContract
}

func (f *front) Owner(cc *types.ContractContext) common.Address {
	return f.cont.Owner(cc)
}

func (f *front) Rate(cc *types.ContractContext, tokenIn common.Address, tokenOut common.Address) *amount.Amount {
	return f.cont.Rate(cc, tokenIn, tokenOut)
}

func (f *front) SetRate(cc *types.ContractContext, tokenIn common.Address, tokenOut common.Address, rate *amount.Amount) error {
	return f.cont.SetRate(cc, tokenIn, tokenOut, rate)
}

func (f *front) GetAmountsOut(cc *types.ContractContext, amountIn *amount.Amount, path []common.Address) ([]*amount.Amount, error) {
	return f.cont.GetAmountsOut(cc, amountIn, path)
}

func (f *front) SwapExactTokensForTokens(cc *types.ContractContext, amountIn *amount.Amount, amountOutMin *amount.Amount, path []common.Address, to common.Address) ([]*amount.Amount, error) {
	return f.cont.SwapExactTokensForTokens(cc, amountIn, amountOutMin, path, to)
}

func (f *front) TransferOwnership(cc *types.ContractContext, newOwner common.Address) error {
	return f.cont.TransferOwnership(cc, newOwner)
}

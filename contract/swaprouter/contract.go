package swaprouter

import (
	"bytes"

	"github.com/meverselabs/yieldvault/common"
	"github.com/meverselabs/yieldvault/common/amount"
	"github.com/meverselabs/yieldvault/contract/capability"
	"github.com/meverselabs/yieldvault/core/types"
	"github.com/pkg/errors"
)

var ownable = capability.Ownable{Tag: tagOwner}

// RouterContract is a swap desk quoting every pair at an owner-set rate.
// Swaps are paid from the inventory the router holds.
type RouterContract struct {
	addr   common.Address
	master common.Address
}

func (cont *RouterContract) Name() string {
	return "RouterContract"
}

func (cont *RouterContract) Address() common.Address {
	return cont.addr
}

func (cont *RouterContract) Master() common.Address {
	return cont.master
}

func (cont *RouterContract) Init(addr common.Address, master common.Address) {
	cont.addr = addr
	cont.master = master
}

func (cont *RouterContract) OnCreate(cc *types.ContractContext, Args []byte) error {
	data := &RouterContractConstruction{}
	if _, err := data.ReadFrom(bytes.NewReader(Args)); err != nil {
		return err
	}
	ownable.SetOwner(cc, data.Owner)
	return nil
}

func (cont *RouterContract) Owner(cc *types.ContractContext) common.Address {
	return ownable.Owner(cc)
}

// Rate returns the amount of tokenOut paid for one coin of tokenIn
func (cont *RouterContract) Rate(cc *types.ContractContext, tokenIn common.Address, tokenOut common.Address) *amount.Amount {
	return amount.NewAmountFromBytes(cc.ContractData(makeRateKey(tokenIn, tokenOut)))
}

func (cont *RouterContract) SetRate(cc *types.ContractContext, tokenIn common.Address, tokenOut common.Address, rate *amount.Amount) error {
	if err := ownable.OnlyOwner(cc); err != nil {
		return err
	}
	if tokenIn == tokenOut {
		return errors.Wrap(ErrInvalidPath, "identical tokens")
	}
	if rate.IsMinus() {
		return errors.Wrap(capability.ErrInvalidAmount, "negative rate")
	}
	cc.SetContractData(makeRateKey(tokenIn, tokenOut), rate.Bytes())
	cc.EmitEvent("RateUpdated", tokenIn, tokenOut, rate)
	return nil
}

func (cont *RouterContract) GetAmountsOut(cc *types.ContractContext, amountIn *amount.Amount, path []common.Address) ([]*amount.Amount, error) {
	if len(path) < 2 {
		return nil, errors.WithStack(ErrInvalidPath)
	}
	if amountIn.IsMinus() {
		return nil, errors.WithStack(ErrInsufficientSwapAmount)
	}
	amounts := make([]*amount.Amount, len(path))
	amounts[0] = amountIn.Clone()
	for i := 0; i < len(path)-1; i++ {
		rate := cont.Rate(cc, path[i], path[i+1])
		if rate.IsZero() {
			return nil, errors.Wrapf(ErrNotExistPair, "%v -> %v", path[i].String(), path[i+1].String())
		}
		amounts[i+1] = amounts[i].MulDiv(rate, amount.COIN)
	}
	return amounts, nil
}

func (cont *RouterContract) SwapExactTokensForTokens(cc *types.ContractContext, amountIn *amount.Amount, amountOutMin *amount.Amount, path []common.Address, to common.Address) ([]*amount.Amount, error) {
	if !amountIn.IsPlus() {
		return nil, errors.WithStack(ErrInsufficientSwapAmount)
	}
	amounts, err := cont.GetAmountsOut(cc, amountIn, path)
	if err != nil {
		return nil, err
	}
	amountOut := amounts[len(amounts)-1]
	if amountOut.Less(amountOutMin) {
		return nil, errors.Wrapf(ErrInsufficientOutputAmount, "out %v, min %v", amountOut.String(), amountOutMin.String())
	}
	in := capability.Token{Addr: path[0]}
	if err := in.TransferFrom(cc, cc.From(), cont.addr, amountIn); err != nil {
		return nil, err
	}
	if amountOut.IsPlus() {
		out := capability.Token{Addr: path[len(path)-1]}
		if err := out.Transfer(cc, to, amountOut); err != nil {
			return nil, err
		}
	}
	cc.EmitEvent("Swap", cc.From(), path[0], path[len(path)-1], amountIn, amountOut, to)
	return amounts, nil
}

func (cont *RouterContract) TransferOwnership(cc *types.ContractContext, newOwner common.Address) error {
	return ownable.TransferOwnership(cc, newOwner)
}

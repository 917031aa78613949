package capability

import (
	"github.com/meverselabs/yieldvault/common"
	"github.com/meverselabs/yieldvault/common/amount"
	"github.com/meverselabs/yieldvault/core/types"
	"github.com/pkg/errors"
)

// Router calls a swap router contract
type Router struct {
	Addr common.Address
}

func (r Router) GetAmountsOut(cc *types.ContractContext, amountIn *amount.Amount, path []common.Address) ([]*amount.Amount, error) {
	return callAmounts(cc, r.Addr, "GetAmountsOut", amountIn, path)
}

// Quote returns the output of the last hop of the path
func (r Router) Quote(cc *types.ContractContext, amountIn *amount.Amount, path []common.Address) (*amount.Amount, error) {
	if len(path) < 2 {
		return amountIn, nil
	}
	amounts, err := r.GetAmountsOut(cc, amountIn, path)
	if err != nil {
		return nil, err
	}
	if len(amounts) != len(path) {
		return nil, errors.Wrapf(ErrInvalidResult, "GetAmountsOut returns %v amounts for %v hops", len(amounts), len(path))
	}
	return amounts[len(amounts)-1], nil
}

func (r Router) SwapExactTokensForTokens(cc *types.ContractContext, amountIn *amount.Amount, amountOutMin *amount.Amount, path []common.Address, to common.Address) ([]*amount.Amount, error) {
	return callAmounts(cc, r.Addr, "SwapExactTokensForTokens", amountIn, amountOutMin, path, to)
}

package capability

import (
	"github.com/meverselabs/yieldvault/common"
	"github.com/meverselabs/yieldvault/common/amount"
	"github.com/meverselabs/yieldvault/core/types"
	"github.com/pkg/errors"
)

// FeeCalculator calls the fee manager contract
type FeeCalculator struct {
	Addr common.Address
}

// ComputeFee splits the gross amount into the fee and the net amount of the beneficiary
func (f FeeCalculator) ComputeFee(cc *types.ContractContext, gross *amount.Amount, beneficiary common.Address) (*amount.Amount, *amount.Amount, error) {
	if f.Addr == common.ZeroAddr {
		return amount.NewAmount(0, 0), gross, nil
	}
	is, err := cc.Exec(cc, f.Addr, "ComputeFee", []interface{}{gross, beneficiary})
	if err != nil {
		return nil, nil, err
	}
	if len(is) != 2 {
		return nil, nil, errors.Wrapf(ErrInvalidResult, "ComputeFee returns %v values", len(is))
	}
	fee, ok1 := is[0].(*amount.Amount)
	net, ok2 := is[1].(*amount.Amount)
	if !ok1 || !ok2 {
		return nil, nil, errors.Wrap(ErrInvalidResult, "ComputeFee")
	}
	return fee, net, nil
}

func (f FeeCalculator) FeeRecipient(cc *types.ContractContext) (common.Address, error) {
	return callAddress(cc, f.Addr, "FeeRecipient")
}

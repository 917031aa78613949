package capability

import (
	"github.com/meverselabs/yieldvault/common"
	"github.com/meverselabs/yieldvault/common/amount"
	"github.com/meverselabs/yieldvault/core/types"
	"github.com/pkg/errors"
)

func callAmount(cc *types.ContractContext, addr common.Address, method string, args ...interface{}) (*amount.Amount, error) {
	is, err := cc.Exec(cc, addr, method, args)
	if err != nil {
		return nil, err
	}
	if len(is) == 0 {
		return nil, errors.Wrapf(ErrInvalidResult, "%v returns nothing", method)
	}
	am, ok := is[0].(*amount.Amount)
	if !ok {
		return nil, errors.Wrapf(ErrInvalidResult, "%v returns %T", method, is[0])
	}
	return am, nil
}

func callAmounts(cc *types.ContractContext, addr common.Address, method string, args ...interface{}) ([]*amount.Amount, error) {
	is, err := cc.Exec(cc, addr, method, args)
	if err != nil {
		return nil, err
	}
	if len(is) == 0 {
		return nil, errors.Wrapf(ErrInvalidResult, "%v returns nothing", method)
	}
	ams, ok := is[0].([]*amount.Amount)
	if !ok {
		return nil, errors.Wrapf(ErrInvalidResult, "%v returns %T", method, is[0])
	}
	return ams, nil
}

func callAddress(cc *types.ContractContext, addr common.Address, method string, args ...interface{}) (common.Address, error) {
	is, err := cc.Exec(cc, addr, method, args)
	if err != nil {
		return common.ZeroAddr, err
	}
	if len(is) == 0 {
		return common.ZeroAddr, errors.Wrapf(ErrInvalidResult, "%v returns nothing", method)
	}
	a, ok := is[0].(common.Address)
	if !ok {
		return common.ZeroAddr, errors.Wrapf(ErrInvalidResult, "%v returns %T", method, is[0])
	}
	return a, nil
}

func callBool(cc *types.ContractContext, addr common.Address, method string, args ...interface{}) (bool, error) {
	is, err := cc.Exec(cc, addr, method, args)
	if err != nil {
		return false, err
	}
	if len(is) == 0 {
		return false, errors.Wrapf(ErrInvalidResult, "%v returns nothing", method)
	}
	b, ok := is[0].(bool)
	if !ok {
		return false, errors.Wrapf(ErrInvalidResult, "%v returns %T", method, is[0])
	}
	return b, nil
}

func call(cc *types.ContractContext, addr common.Address, method string, args ...interface{}) error {
	_, err := cc.Exec(cc, addr, method, args)
	return err
}

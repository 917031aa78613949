package feemanager

import (
	"github.com/meverselabs/yieldvault/common"
	"github.com/meverselabs/yieldvault/common/amount"
	"github.com/meverselabs/yieldvault/core/types"
)

func (cont *FeeManagerContract) Front() interface{} {
	return &front{
		cont: cont,
	}
}

type front struct {
	cont *FeeManagerContract
}

func (f *front) Owner(cc *types.ContractContext) common.Address {
	return f.cont.Owner(cc)
}

func (f *front) DiscountToken(cc *types.ContractContext) common.Address {
	return f.cont.DiscountToken(cc)
}

func (f *front) FeeRecipient(cc *types.ContractContext) common.Address {
	return f.cont.FeeRecipient(cc)
}

// FeeSchedule returns the base rate, the discount rate and the minimum discount balance
func (f *front) FeeSchedule(cc *types.ContractContext) (uint16, uint16, *amount.Amount) {
	fs := f.cont.FeeSchedule(cc)
	return fs.BaseFeeBps, fs.DiscountFeeBps, fs.MinDiscountBalance
}

func (f *front) ComputeFee(cc *types.ContractContext, gross *amount.Amount, beneficiary common.Address) (*amount.Amount, *amount.Amount) {
	return f.cont.ComputeFee(cc, gross, beneficiary)
}

func (f *front) SetFeeSchedule(cc *types.ContractContext, baseFeeBps uint16, discountFeeBps uint16, minDiscountBalance *amount.Amount) error {
	return f.cont.SetFeeSchedule(cc, baseFeeBps, discountFeeBps, minDiscountBalance)
}

func (f *front) SetFeeRecipient(cc *types.ContractContext, recipient common.Address) error {
	return f.cont.SetFeeRecipient(cc, recipient)
}

func (f *front) SetDiscountToken(cc *types.ContractContext, token common.Address) error {
	return f.cont.SetDiscountToken(cc, token)
}

func (f *front) TransferOwnership(cc *types.ContractContext, newOwner common.Address) error {
	return f.cont.TransferOwnership(cc, newOwner)
}

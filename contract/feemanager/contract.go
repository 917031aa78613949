package feemanager

import (
	"bytes"

	"github.com/meverselabs/yieldvault/common"
	"github.com/meverselabs/yieldvault/common/amount"
	"github.com/meverselabs/yieldvault/common/bin"
	"github.com/meverselabs/yieldvault/contract/capability"
	"github.com/meverselabs/yieldvault/core/types"
	"github.com/pkg/errors"
)

var ownable = capability.Ownable{Tag: tagOwner}

// FeeManagerContract splits a reward payout into the fee and the net amount
type FeeManagerContract struct {
	addr   common.Address
	master common.Address
}

func (cont *FeeManagerContract) Name() string {
	return "FeeManagerContract"
}

func (cont *FeeManagerContract) Address() common.Address {
	return cont.addr
}

func (cont *FeeManagerContract) Master() common.Address {
	return cont.master
}

func (cont *FeeManagerContract) Init(addr common.Address, master common.Address) {
	cont.addr = addr
	cont.master = master
}

func (cont *FeeManagerContract) OnCreate(cc *types.ContractContext, Args []byte) error {
	data := &FeeManagerContractConstruction{}
	if _, err := data.ReadFrom(bytes.NewReader(Args)); err != nil {
		return err
	}
	ownable.SetOwner(cc, data.Owner)
	cc.SetContractData([]byte{tagDiscountToken}, data.DiscountToken[:])
	cc.SetContractData([]byte{tagFeeRecipient}, data.FeeRecipient[:])
	return cont.setFeeSchedule(cc, &data.FeeSchedule)
}

func (cont *FeeManagerContract) setFeeSchedule(cc *types.ContractContext, fs *FeeSchedule) error {
	if fs.BaseFeeBps > MaxFeeBps || fs.DiscountFeeBps > MaxFeeBps {
		return errors.Wrapf(ErrInvalidFeeRate, "base %v discount %v", fs.BaseFeeBps, fs.DiscountFeeBps)
	}
	if fs.MinDiscountBalance == nil {
		fs.MinDiscountBalance = amount.NewAmount(0, 0)
	}
	cc.SetContractData([]byte{tagFeeSchedule}, bin.MustWriterToBytes(fs))
	return nil
}

// feeRate returns the discount rate when the beneficiary holds enough discount token.
// Any failure reading the balance selects the base rate.
func (cont *FeeManagerContract) feeRate(cc *types.ContractContext, fs *FeeSchedule, beneficiary common.Address) uint16 {
	discountToken := cont.DiscountToken(cc)
	if discountToken == common.ZeroAddr || !cc.IsContract(discountToken) {
		return fs.BaseFeeBps
	}
	bal, err := capability.Token{Addr: discountToken}.BalanceOf(cc, beneficiary)
	if err != nil || bal == nil {
		return fs.BaseFeeBps
	}
	if !bal.Less(fs.MinDiscountBalance) {
		return fs.DiscountFeeBps
	}
	return fs.BaseFeeBps
}

//////////////////////////////////////////////////
// Public Reader Functions
//////////////////////////////////////////////////

func (cont *FeeManagerContract) Owner(cc *types.ContractContext) common.Address {
	return ownable.Owner(cc)
}

func (cont *FeeManagerContract) DiscountToken(cc *types.ContractContext) common.Address {
	return common.BytesToAddress(cc.ContractData([]byte{tagDiscountToken}))
}

func (cont *FeeManagerContract) FeeRecipient(cc *types.ContractContext) common.Address {
	return common.BytesToAddress(cc.ContractData([]byte{tagFeeRecipient}))
}

func (cont *FeeManagerContract) FeeSchedule(cc *types.ContractContext) *FeeSchedule {
	fs := &FeeSchedule{}
	if _, err := fs.ReadFrom(bytes.NewReader(cc.ContractData([]byte{tagFeeSchedule}))); err != nil {
		return &FeeSchedule{MinDiscountBalance: amount.NewAmount(0, 0)}
	}
	return fs
}

// ComputeFee returns floor(gross * rate / 10000) as the fee and the rest as the net amount
func (cont *FeeManagerContract) ComputeFee(cc *types.ContractContext, gross *amount.Amount, beneficiary common.Address) (*amount.Amount, *amount.Amount) {
	if gross == nil || !gross.IsPlus() {
		return amount.NewAmount(0, 0), amount.NewAmount(0, 0)
	}
	fs := cont.FeeSchedule(cc)
	rate := cont.feeRate(cc, fs, beneficiary)
	fee := gross.MulC(int64(rate)).DivC(MaxFeeBps)
	return fee, gross.Sub(fee)
}

//////////////////////////////////////////////////
// Public Writer only owner Functions
//////////////////////////////////////////////////

func (cont *FeeManagerContract) SetFeeSchedule(cc *types.ContractContext, baseFeeBps uint16, discountFeeBps uint16, minDiscountBalance *amount.Amount) error {
	if err := ownable.OnlyOwner(cc); err != nil {
		return err
	}
	if err := cont.setFeeSchedule(cc, &FeeSchedule{
		BaseFeeBps:         baseFeeBps,
		DiscountFeeBps:     discountFeeBps,
		MinDiscountBalance: minDiscountBalance,
	}); err != nil {
		return err
	}
	cc.EmitEvent("FeeScheduleUpdated", baseFeeBps, discountFeeBps, minDiscountBalance)
	return nil
}

func (cont *FeeManagerContract) SetFeeRecipient(cc *types.ContractContext, recipient common.Address) error {
	if err := ownable.OnlyOwner(cc); err != nil {
		return err
	}
	if recipient == common.ZeroAddr {
		return errors.Wrap(capability.ErrInvalidAddress, "fee recipient")
	}
	cc.SetContractData([]byte{tagFeeRecipient}, recipient[:])
	cc.EmitEvent("FeeRecipientUpdated", recipient)
	return nil
}

func (cont *FeeManagerContract) SetDiscountToken(cc *types.ContractContext, token common.Address) error {
	if err := ownable.OnlyOwner(cc); err != nil {
		return err
	}
	cc.SetContractData([]byte{tagDiscountToken}, token[:])
	return nil
}

func (cont *FeeManagerContract) TransferOwnership(cc *types.ContractContext, newOwner common.Address) error {
	return ownable.TransferOwnership(cc, newOwner)
}

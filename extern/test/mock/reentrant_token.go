package mock

import (
	"github.com/meverselabs/yieldvault/common"
	"github.com/meverselabs/yieldvault/common/amount"
	"github.com/meverselabs/yieldvault/contract/capability"
	"github.com/meverselabs/yieldvault/core/types"
	"github.com/pkg/errors"
)

const (
	tagTarget  = byte(0x01)
	tagBalance = byte(0x02)
)

// ReentrantToken calls Deposit of the target back from inside TransferFrom
type ReentrantToken struct {
	addr   common.Address
	master common.Address
}

func (cont *ReentrantToken) Name() string {
	return "ReentrantToken"
}

func (cont *ReentrantToken) Address() common.Address {
	return cont.addr
}

func (cont *ReentrantToken) Master() common.Address {
	return cont.master
}

func (cont *ReentrantToken) Init(addr common.Address, master common.Address) {
	cont.addr = addr
	cont.master = master
}

func (cont *ReentrantToken) OnCreate(cc *types.ContractContext, Args []byte) error {
	return nil
}

func (cont *ReentrantToken) Front() interface{} {
	return cont
}

func (cont *ReentrantToken) SetTarget(cc *types.ContractContext, target common.Address) error {
	if cc.From() != cont.master {
		return errors.WithStack(capability.ErrPermissionDenied)
	}
	cc.SetContractData([]byte{tagTarget}, target[:])
	return nil
}

func (cont *ReentrantToken) Mint(cc *types.ContractContext, to common.Address, amt *amount.Amount) error {
	cc.SetAccountData(to, []byte{tagBalance}, cont.BalanceOf(cc, to).Add(amt).Bytes())
	return nil
}

func (cont *ReentrantToken) BalanceOf(cc *types.ContractContext, who common.Address) *amount.Amount {
	return amount.NewAmountFromBytes(cc.AccountData(who, []byte{tagBalance}))
}

func (cont *ReentrantToken) Approve(cc *types.ContractContext, spender common.Address, amt *amount.Amount) (bool, error) {
	return true, nil
}

func (cont *ReentrantToken) Transfer(cc *types.ContractContext, to common.Address, amt *amount.Amount) (bool, error) {
	return true, cont.move(cc, cc.From(), to, amt)
}

func (cont *ReentrantToken) TransferFrom(cc *types.ContractContext, from common.Address, to common.Address, amt *amount.Amount) (bool, error) {
	target := common.BytesToAddress(cc.ContractData([]byte{tagTarget}))
	if target != common.ZeroAddr {
		if _, err := cc.Exec(cc, target, "Deposit", []interface{}{amt}); err != nil {
			return false, err
		}
	}
	return true, cont.move(cc, from, to, amt)
}

func (cont *ReentrantToken) move(cc *types.ContractContext, from common.Address, to common.Address, amt *amount.Amount) error {
	bal := cont.BalanceOf(cc, from)
	if bal.Less(amt) {
		return errors.WithStack(capability.ErrInsufficientBalance)
	}
	cc.SetAccountData(from, []byte{tagBalance}, bal.Sub(amt).Bytes())
	cc.SetAccountData(to, []byte{tagBalance}, cont.BalanceOf(cc, to).Add(amt).Bytes())
	return nil
}

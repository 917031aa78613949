package token

import (
	"bytes"
	"math/big"

	"github.com/meverselabs/yieldvault/common"
	"github.com/meverselabs/yieldvault/common/amount"
	"github.com/meverselabs/yieldvault/contract/capability"
	"github.com/meverselabs/yieldvault/core/types"
	"github.com/pkg/errors"
)

var pausable = capability.Pausable{Tag: tagPause}

type TokenContract struct {
	addr   common.Address
	master common.Address
}

func (cont *TokenContract) Name() string {
	return "TokenContract"
}

func (cont *TokenContract) Address() common.Address {
	return cont.addr
}

func (cont *TokenContract) Master() common.Address {
	return cont.master
}

func (cont *TokenContract) Init(addr common.Address, master common.Address) {
	cont.addr = addr
	cont.master = master
}

func (cont *TokenContract) OnCreate(cc *types.ContractContext, Args []byte) error {
	data := &TokenContractConstruction{}
	if _, err := data.ReadFrom(bytes.NewReader(Args)); err != nil {
		return err
	}
	cc.SetContractData([]byte{tagTokenName}, []byte(data.Name))
	cc.SetContractData([]byte{tagTokenSymbol}, []byte(data.Symbol))
	for k, v := range data.InitialSupplyMap {
		if err := cont.addBalance(cc, k, v); err != nil {
			return err
		}
	}
	return nil
}

//////////////////////////////////////////////////
// Private Functions
//////////////////////////////////////////////////

func (cont *TokenContract) addBalance(cc *types.ContractContext, addr common.Address, am *amount.Amount) error {
	if !am.IsPlus() {
		return nil
	}
	bal := cont.BalanceOf(cc, addr).Add(am)
	cc.SetAccountData(addr, []byte{tagTokenAmount}, bal.Bytes())

	total := cont.TotalSupply(cc).Add(am)
	cc.SetContractData([]byte{tagTokenTotalSupply}, total.Bytes())
	return nil
}

func (cont *TokenContract) subBalance(cc *types.ContractContext, addr common.Address, am *amount.Amount) error {
	if !am.IsPlus() {
		return nil
	}
	bal := cont.BalanceOf(cc, addr)
	if bal.Less(am) {
		return errors.Wrapf(capability.ErrInsufficientBalance, "%v has %v of %v, needs %v", addr.String(), bal.String(), cont.Symbol(cc), am.String())
	}
	bal = bal.Sub(am)
	if bal.IsZero() {
		cc.SetAccountData(addr, []byte{tagTokenAmount}, nil)
	} else {
		cc.SetAccountData(addr, []byte{tagTokenAmount}, bal.Bytes())
	}

	total := cont.TotalSupply(cc).Sub(am)
	cc.SetContractData([]byte{tagTokenTotalSupply}, total.Bytes())
	return nil
}

func (cont *TokenContract) move(cc *types.ContractContext, From common.Address, To common.Address, Amount *amount.Amount) error {
	if err := pausable.WhenNotPaused(cc); err != nil {
		return err
	}
	if To == common.ZeroAddr {
		return errors.Wrap(ErrZeroAddress, "transfer to")
	}
	if Amount.IsMinus() {
		return errors.WithStack(ErrNegativeAmount)
	}
	if err := cont.subBalance(cc, From, Amount); err != nil {
		return err
	}
	if err := cont.addBalance(cc, To, Amount); err != nil {
		return err
	}
	cc.EmitEvent("Transfer", From, To, Amount)
	return nil
}

func (cont *TokenContract) isMasterOrMinter(cc *types.ContractContext) bool {
	return cc.From() == cont.Master() || cont.IsMinter(cc, cc.From())
}

//////////////////////////////////////////////////
// Public Writer Functions
//////////////////////////////////////////////////

func (cont *TokenContract) Transfer(cc *types.ContractContext, To common.Address, Amount *amount.Amount) error {
	return cont.move(cc, cc.From(), To, Amount)
}

func (cont *TokenContract) TransferFrom(cc *types.ContractContext, From common.Address, To common.Address, Amount *amount.Amount) error {
	if Amount.IsZero() {
		return nil
	}
	allowed := cont.Allowance(cc, From, cc.From())
	if allowed.Less(Amount) {
		return errors.Wrapf(ErrInsufficientAllowance, "%v allowed %v to spend %v, needs %v", From.String(), cc.From().String(), allowed.String(), Amount.String())
	}
	if err := cont.move(cc, From, To, Amount); err != nil {
		return err
	}
	cont._approve(cc, From, cc.From(), allowed.Sub(Amount))
	return nil
}

func (cont *TokenContract) Approve(cc *types.ContractContext, spender common.Address, Amount *amount.Amount) error {
	if spender == common.ZeroAddr {
		return errors.Wrap(ErrZeroAddress, "approve to")
	}
	if Amount.IsMinus() {
		return errors.WithStack(ErrNegativeAmount)
	}
	cont._approve(cc, cc.From(), spender, Amount)
	cc.EmitEvent("Approval", cc.From(), spender, Amount)
	return nil
}

func (cont *TokenContract) _approve(cc *types.ContractContext, owner common.Address, spender common.Address, Amount *amount.Amount) {
	if Amount.IsZero() {
		cc.SetAccountData(owner, MakeAllowanceTokenKey(spender), nil)
		return
	}
	cc.SetAccountData(owner, MakeAllowanceTokenKey(spender), Amount.Bytes())
}

func (cont *TokenContract) Mint(cc *types.ContractContext, To common.Address, Amount *amount.Amount) error {
	if !cont.isMasterOrMinter(cc) {
		return errors.Wrapf(ErrNotTokenMinter, "%v", cc.From().String())
	}
	if To == common.ZeroAddr {
		return errors.Wrap(ErrZeroAddress, "mint to")
	}
	if Amount.IsMinus() {
		return errors.WithStack(ErrNegativeAmount)
	}
	if err := cont.addBalance(cc, To, Amount); err != nil {
		return err
	}
	cc.EmitEvent("Transfer", common.ZeroAddr, To, Amount)
	return nil
}

func (cont *TokenContract) Burn(cc *types.ContractContext, Amount *amount.Amount) error {
	if Amount.IsMinus() {
		return errors.WithStack(ErrNegativeAmount)
	}
	if err := cont.subBalance(cc, cc.From(), Amount); err != nil {
		return err
	}
	cc.EmitEvent("Transfer", cc.From(), common.ZeroAddr, Amount)
	return nil
}

func (cont *TokenContract) SetMinter(cc *types.ContractContext, To common.Address, Is bool) error {
	if cc.From() != cont.Master() {
		return errors.WithStack(ErrNotTokenMaster)
	}
	if Is {
		cc.SetAccountData(To, []byte{tagTokenMinter}, []byte{1})
	} else {
		cc.SetAccountData(To, []byte{tagTokenMinter}, nil)
	}
	return nil
}

func (cont *TokenContract) Pause(cc *types.ContractContext) error {
	if cc.From() != cont.Master() {
		return errors.WithStack(ErrNotTokenMaster)
	}
	pausable.SetPaused(cc, true)
	return nil
}

func (cont *TokenContract) Unpause(cc *types.ContractContext) error {
	if cc.From() != cont.Master() {
		return errors.WithStack(ErrNotTokenMaster)
	}
	pausable.SetPaused(cc, false)
	return nil
}

//////////////////////////////////////////////////
// Public Reader Functions
//////////////////////////////////////////////////

// TokenName is served as Name by the front
func (cont *TokenContract) TokenName(cc *types.ContractContext) string {
	return string(cc.ContractData([]byte{tagTokenName}))
}

func (cont *TokenContract) Symbol(cc *types.ContractContext) string {
	return string(cc.ContractData([]byte{tagTokenSymbol}))
}

func (cont *TokenContract) TotalSupply(cc *types.ContractContext) *amount.Amount {
	return amount.NewAmountFromBytes(cc.ContractData([]byte{tagTokenTotalSupply}))
}

func (cont *TokenContract) Decimals(cc *types.ContractContext) *big.Int {
	return big.NewInt(amount.FractionalCount)
}

func (cont *TokenContract) BalanceOf(cc *types.ContractContext, from common.Address) *amount.Amount {
	return amount.NewAmountFromBytes(cc.AccountData(from, []byte{tagTokenAmount}))
}

func (cont *TokenContract) IsMinter(cc *types.ContractContext, addr common.Address) bool {
	bs := cc.AccountData(addr, []byte{tagTokenMinter})
	return len(bs) == 1 && bs[0] == 1
}

func (cont *TokenContract) IsPaused(cc *types.ContractContext) bool {
	return pausable.IsPaused(cc)
}

func (cont *TokenContract) Allowance(cc *types.ContractContext, owner common.Address, spender common.Address) *amount.Amount {
	return amount.NewAmountFromBytes(cc.AccountData(owner, MakeAllowanceTokenKey(spender)))
}

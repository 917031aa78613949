package ibvault

import (
	"bytes"

	"github.com/meverselabs/yieldvault/common"
	"github.com/meverselabs/yieldvault/common/amount"
	"github.com/meverselabs/yieldvault/contract/capability"
	"github.com/meverselabs/yieldvault/core/types"
	"github.com/pkg/errors"
)

// IBVaultContract holds an underlying token and issues interest bearing shares for it.
// Anything sent to the vault without minting raises the value of every share.
type IBVaultContract struct {
	addr   common.Address
	master common.Address
}

func (cont *IBVaultContract) Name() string {
	return "IBVaultContract"
}

func (cont *IBVaultContract) Address() common.Address {
	return cont.addr
}

func (cont *IBVaultContract) Master() common.Address {
	return cont.master
}

func (cont *IBVaultContract) Init(addr common.Address, master common.Address) {
	cont.addr = addr
	cont.master = master
}

func (cont *IBVaultContract) OnCreate(cc *types.ContractContext, Args []byte) error {
	data := &IBVaultContractConstruction{}
	if _, err := data.ReadFrom(bytes.NewReader(Args)); err != nil {
		return err
	}
	if data.Underlying == common.ZeroAddr || data.ShareToken == common.ZeroAddr {
		return errors.Wrap(capability.ErrInvalidAddress, "ibvault tokens")
	}
	cc.SetContractData([]byte{tagUnderlying}, data.Underlying[:])
	cc.SetContractData([]byte{tagShareToken}, data.ShareToken[:])
	return nil
}

func (cont *IBVaultContract) underlying(cc *types.ContractContext) capability.Token {
	return capability.Token{Addr: cont.Underlying(cc)}
}

func (cont *IBVaultContract) shareToken(cc *types.ContractContext) capability.Token {
	return capability.Token{Addr: cont.ShareToken(cc)}
}

//////////////////////////////////////////////////
// Public Reader Functions
//////////////////////////////////////////////////

func (cont *IBVaultContract) Underlying(cc *types.ContractContext) common.Address {
	return common.BytesToAddress(cc.ContractData([]byte{tagUnderlying}))
}

func (cont *IBVaultContract) ShareToken(cc *types.ContractContext) common.Address {
	return common.BytesToAddress(cc.ContractData([]byte{tagShareToken}))
}

// TotalToken returns the underlying held by the vault
func (cont *IBVaultContract) TotalToken(cc *types.ContractContext) (*amount.Amount, error) {
	return cont.underlying(cc).SelfBalance(cc)
}

func (cont *IBVaultContract) TotalShares(cc *types.ContractContext) (*amount.Amount, error) {
	return cont.shareToken(cc).TotalSupply(cc)
}

// SharesToToken returns the underlying redeemed by the shares
func (cont *IBVaultContract) SharesToToken(cc *types.ContractContext, shares *amount.Amount) (*amount.Amount, error) {
	totalToken, err := cont.TotalToken(cc)
	if err != nil {
		return nil, err
	}
	totalShares, err := cont.TotalShares(cc)
	if err != nil {
		return nil, err
	}
	if totalShares.IsZero() {
		return amount.NewAmount(0, 0), nil
	}
	return shares.MulDiv(totalToken, totalShares), nil
}

//////////////////////////////////////////////////
// Public Writer Functions
//////////////////////////////////////////////////

// Deposit pulls the underlying from the caller and mints shares for it
func (cont *IBVaultContract) Deposit(cc *types.ContractContext, amt *amount.Amount) (*amount.Amount, error) {
	if !amt.IsPlus() {
		return nil, errors.Wrap(capability.ErrInvalidAmount, "deposit")
	}
	totalToken, err := cont.TotalToken(cc)
	if err != nil {
		return nil, err
	}
	totalShares, err := cont.TotalShares(cc)
	if err != nil {
		return nil, err
	}
	shares := amt
	if totalShares.IsPlus() && totalToken.IsPlus() {
		shares = amt.MulDiv(totalShares, totalToken)
	}
	if !shares.IsPlus() {
		return nil, errors.Wrap(capability.ErrInvalidAmount, "zero shares")
	}
	if err := cont.underlying(cc).TransferFrom(cc, cc.From(), cont.addr, amt); err != nil {
		return nil, err
	}
	if err := cont.shareToken(cc).Mint(cc, cc.From(), shares); err != nil {
		return nil, err
	}
	cc.EmitEvent("Deposit", cc.From(), amt, shares)
	return shares, nil
}

// Withdraw burns the shares of the caller and returns the underlying they stand for
func (cont *IBVaultContract) Withdraw(cc *types.ContractContext, shares *amount.Amount) (*amount.Amount, error) {
	if !shares.IsPlus() {
		return nil, errors.Wrap(capability.ErrInvalidAmount, "withdraw")
	}
	amt, err := cont.SharesToToken(cc, shares)
	if err != nil {
		return nil, err
	}
	st := cont.shareToken(cc)
	if err := st.TransferFrom(cc, cc.From(), cont.addr, shares); err != nil {
		return nil, err
	}
	if err := st.Burn(cc, shares); err != nil {
		return nil, err
	}
	if amt.IsPlus() {
		if err := cont.underlying(cc).Transfer(cc, cc.From(), amt); err != nil {
			return nil, err
		}
	}
	cc.EmitEvent("Withdraw", cc.From(), shares, amt)
	return amt, nil
}

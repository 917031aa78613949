package util

import (
	"io"

	"github.com/meverselabs/yieldvault/common"
	"github.com/meverselabs/yieldvault/common/amount"
	"github.com/meverselabs/yieldvault/common/bin"
	"github.com/meverselabs/yieldvault/contract/token"
	"github.com/meverselabs/yieldvault/core/types"
)

// Deploy deploys the contract owned by Admin, contArgs may be nil
func (tc *TestContext) Deploy(contType types.Contract, contArgs io.WriterTo) (common.Address, error) {
	classID, err := types.RegisterContractType(contType)
	if err != nil {
		return common.ZeroAddr, err
	}
	var args []byte
	if contArgs != nil {
		bs, _, err := bin.WriterToBytes(contArgs)
		if err != nil {
			return common.ZeroAddr, err
		}
		args = bs
	}
	return tc.Cn.Deploy(Admin, classID, args)
}

func (tc *TestContext) DeployContract(contType types.Contract, contArgs io.WriterTo) common.Address {
	addr, err := tc.Deploy(contType, contArgs)
	if err != nil {
		panic(err)
	}
	return addr
}

// MakeToken deploys a token holding amt for Admin
func (tc *TestContext) MakeToken(name string, symbol string, amt string) common.Address {
	tokenContArgs := &token.TokenContractConstruction{
		Name:   name,
		Symbol: symbol,
		InitialSupplyMap: map[common.Address]*amount.Amount{
			Admin: amount.MustParseAmount(amt),
		},
	}
	return tc.DeployContract(&token.TokenContract{}, tokenContArgs)
}

// Mint mints amt of the token to the address, Admin is the token master
func (tc *TestContext) Mint(tokenAddr common.Address, to common.Address, amt *amount.Amount) {
	tc.MustExec(Admin, tokenAddr, "Mint", to, amt)
}

func (tc *TestContext) SetMinter(tokenAddr common.Address, minter common.Address) {
	tc.MustExec(Admin, tokenAddr, "SetMinter", minter, true)
}

func (tc *TestContext) Approve(user common.Address, tokenAddr common.Address, spender common.Address, amt *amount.Amount) {
	tc.MustExec(user, tokenAddr, "Approve", spender, amt)
}

func (tc *TestContext) BalanceOf(tokenAddr common.Address, who common.Address) *amount.Amount {
	return tc.MustView(tokenAddr, "BalanceOf", who)[0].(*amount.Amount)
}

// Amount returns the first result of a call as an amount
func Amount(is []interface{}) *amount.Amount {
	return is[0].(*amount.Amount)
}

func Address(is []interface{}) common.Address {
	return is[0].(common.Address)
}

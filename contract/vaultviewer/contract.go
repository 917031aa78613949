package vaultviewer

import (
	"github.com/meverselabs/yieldvault/common"
	"github.com/meverselabs/yieldvault/common/amount"
	"github.com/meverselabs/yieldvault/contract/capability"
	"github.com/meverselabs/yieldvault/core/types"
	"github.com/pkg/errors"
)

// VaultViewerContract reads the positions of a user across many vaults in one call
type VaultViewerContract struct {
	addr   common.Address
	master common.Address
}

func (cont *VaultViewerContract) Name() string {
	return "VaultViewerContract"
}

func (cont *VaultViewerContract) Address() common.Address {
	return cont.addr
}

func (cont *VaultViewerContract) Master() common.Address {
	return cont.master
}

func (cont *VaultViewerContract) Init(addr common.Address, master common.Address) {
	cont.addr = addr
	cont.master = master
}

func (cont *VaultViewerContract) OnCreate(cc *types.ContractContext, Args []byte) error {
	return nil
}

// UserInfos is the position of a user in each vault, index aligned
type UserInfos struct {
	Vaults   []common.Address `json:"vaults"`
	Rewards  []common.Address `json:"rewards"`
	Balances []*amount.Amount `json:"balances"`
	Pending  []*amount.Amount `json:"pending"`
}

func (cont *VaultViewerContract) GetUserInfo(cc *types.ContractContext, vaults []common.Address, user common.Address) (*UserInfos, error) {
	infos := &UserInfos{
		Vaults:   make([]common.Address, 0, len(vaults)),
		Rewards:  make([]common.Address, 0, len(vaults)),
		Balances: make([]*amount.Amount, 0, len(vaults)),
		Pending:  make([]*amount.Amount, 0, len(vaults)),
	}
	for _, v := range vaults {
		reward, err := viewAddress(cc, v, "RewardToken")
		if err != nil {
			return nil, err
		}
		balance, err := viewAmount(cc, v, "BalanceOf", user)
		if err != nil {
			return nil, err
		}
		pending, err := viewAmount(cc, v, "UserPendingReward", user)
		if err != nil {
			return nil, err
		}
		infos.Vaults = append(infos.Vaults, v)
		infos.Rewards = append(infos.Rewards, reward)
		infos.Balances = append(infos.Balances, balance)
		infos.Pending = append(infos.Pending, pending)
	}
	return infos, nil
}

func viewAddress(cc *types.ContractContext, addr common.Address, method string, args ...interface{}) (common.Address, error) {
	is, err := cc.Exec(cc, addr, method, args)
	if err != nil {
		return common.ZeroAddr, err
	}
	if len(is) == 0 {
		return common.ZeroAddr, errors.Wrapf(capability.ErrInvalidResult, "%v of %v", method, addr.String())
	}
	v, ok := is[0].(common.Address)
	if !ok {
		return common.ZeroAddr, errors.Wrapf(capability.ErrInvalidResult, "%v of %v returns %T", method, addr.String(), is[0])
	}
	return v, nil
}

func viewAmount(cc *types.ContractContext, addr common.Address, method string, args ...interface{}) (*amount.Amount, error) {
	is, err := cc.Exec(cc, addr, method, args)
	if err != nil {
		return nil, err
	}
	if len(is) == 0 {
		return nil, errors.Wrapf(capability.ErrInvalidResult, "%v of %v", method, addr.String())
	}
	v, ok := is[0].(*amount.Amount)
	if !ok {
		return nil, errors.Wrapf(capability.ErrInvalidResult, "%v of %v returns %T", method, addr.String(), is[0])
	}
	return v, nil
}

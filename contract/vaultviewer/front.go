package vaultviewer

import (
	"github.com/meverselabs/yieldvault/common"
	"github.com/meverselabs/yieldvault/core/types"
)

func (cont *VaultViewerContract) Front() interface{} {
	return &front{
		cont: cont,
	}
}

type front struct {
	cont *VaultViewerContract
}

func (f *front) GetUserInfo(cc *types.ContractContext, vaults []common.Address, user common.Address) (*UserInfos, error) {
	return f.cont.GetUserInfo(cc, vaults, user)
}

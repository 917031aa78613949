package types

import (
	"github.com/meverselabs/yieldvault/common"
)

// Contract defines chain Contract functions
type Contract interface {
	Name() string
	Address() common.Address
	Master() common.Address
	Init(addr common.Address, master common.Address)
	OnCreate(cc *ContractContext, Args []byte) error
	Front() interface{}
}

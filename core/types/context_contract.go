package types

import (
	"github.com/meverselabs/yieldvault/common"
)

// ContractContext is an context for the contract
type ContractContext struct {
	cont common.Address
	from common.Address
	ctx  *Context
	Exec ExecFunc
}

// TargetHeight returns the height of the block being built
func (cc *ContractContext) TargetHeight() uint32 {
	return cc.ctx.TargetHeight()
}

// LastTimestamp returns the timestamp of the block being built
func (cc *ContractContext) LastTimestamp() uint64 {
	return cc.ctx.LastTimestamp()
}

// From returns the caller address, the signer or the calling contract
func (cc *ContractContext) From() common.Address {
	return cc.from
}

// Address returns the address of the running contract
func (cc *ContractContext) Address() common.Address {
	return cc.cont
}

// ContractData returns the contract data from the top snapshot
func (cc *ContractContext) ContractData(name []byte) []byte {
	return cc.ctx.Data(cc.cont, common.ZeroAddr, name)
}

// SetContractData inserts the contract data to the top snapshot
func (cc *ContractContext) SetContractData(name []byte, value []byte) {
	cc.ctx.SetData(cc.cont, common.ZeroAddr, name, value)
}

// AccountData returns the account data from the top snapshot
func (cc *ContractContext) AccountData(addr common.Address, name []byte) []byte {
	return cc.ctx.Data(cc.cont, addr, name)
}

// SetAccountData inserts the account data to the top snapshot
func (cc *ContractContext) SetAccountData(addr common.Address, name []byte, value []byte) {
	cc.ctx.SetData(cc.cont, addr, name, value)
}

// IsContract returns is the contract
func (cc *ContractContext) IsContract(addr common.Address) bool {
	return cc.ctx.IsContract(addr)
}

// EmitEvent records an event of the running contract
func (cc *ContractContext) EmitEvent(name string, fields ...interface{}) {
	cc.ctx.EmitEvent(cc.cont, name, fields)
}

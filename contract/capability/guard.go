package capability

import (
	"github.com/meverselabs/yieldvault/common"
	"github.com/meverselabs/yieldvault/core/types"
	"github.com/pkg/errors"
)

// Ownable keeps the owner address under the tag of the contract data
type Ownable struct {
	Tag byte
}

func (o Ownable) Owner(cc *types.ContractContext) common.Address {
	return common.BytesToAddress(cc.ContractData([]byte{o.Tag}))
}

func (o Ownable) SetOwner(cc *types.ContractContext, owner common.Address) {
	cc.SetContractData([]byte{o.Tag}, owner[:])
}

// OnlyOwner fails unless the caller is the owner
func (o Ownable) OnlyOwner(cc *types.ContractContext) error {
	if cc.From() != o.Owner(cc) {
		return errors.Wrapf(ErrPermissionDenied, "%v is not the owner", cc.From().String())
	}
	return nil
}

func (o Ownable) TransferOwnership(cc *types.ContractContext, newOwner common.Address) error {
	if err := o.OnlyOwner(cc); err != nil {
		return err
	}
	if newOwner == common.ZeroAddr {
		return errors.Wrap(ErrInvalidAddress, "new owner")
	}
	o.SetOwner(cc, newOwner)
	cc.EmitEvent("OwnershipTransferred", cc.From(), newOwner)
	return nil
}

// Pausable keeps the paused flag under the tag of the contract data
type Pausable struct {
	Tag byte
}

func (p Pausable) IsPaused(cc *types.ContractContext) bool {
	bs := cc.ContractData([]byte{p.Tag})
	return len(bs) == 1 && bs[0] == 1
}

func (p Pausable) SetPaused(cc *types.ContractContext, paused bool) {
	if paused {
		cc.SetContractData([]byte{p.Tag}, []byte{1})
		cc.EmitEvent("Paused", cc.From())
	} else {
		cc.SetContractData([]byte{p.Tag}, nil)
		cc.EmitEvent("Unpaused", cc.From())
	}
}

func (p Pausable) WhenNotPaused(cc *types.ContractContext) error {
	if p.IsPaused(cc) {
		return errors.WithStack(ErrPausedOperation)
	}
	return nil
}

// ReentrancyGuard is a latch kept in the contract data.
// A failed call reverts its snapshot which also clears the latch.
type ReentrancyGuard struct {
	Tag byte
}

func (g ReentrancyGuard) Enter(cc *types.ContractContext) error {
	bs := cc.ContractData([]byte{g.Tag})
	if len(bs) == 1 && bs[0] == 1 {
		return errors.WithStack(ErrReentrancyBlocked)
	}
	cc.SetContractData([]byte{g.Tag}, []byte{1})
	return nil
}

func (g ReentrancyGuard) Exit(cc *types.ContractContext) {
	cc.SetContractData([]byte{g.Tag}, nil)
}

package mock

import (
	"bytes"
	"io"

	"github.com/meverselabs/yieldvault/common"
	"github.com/meverselabs/yieldvault/common/amount"
	"github.com/meverselabs/yieldvault/common/bin"
	"github.com/meverselabs/yieldvault/contract/capability"
	"github.com/meverselabs/yieldvault/core/types"
	"github.com/pkg/errors"
)

const (
	tagVault     = byte(0x01)
	tagPrincipal = byte(0x02)
	tagReward    = byte(0x03)
	tagPending   = byte(0x04)
	tagReserve   = byte(0x05)
	tagStaked    = byte(0x06)
)

type StrategyConstruction struct {
	PrincipalToken common.Address
	RewardToken    common.Address
}

func (s *StrategyConstruction) WriteTo(w io.Writer) (int64, error) {
	sw := bin.NewSumWriter()
	if sum, err := sw.Address(w, s.PrincipalToken); err != nil {
		return sum, err
	}
	if sum, err := sw.Address(w, s.RewardToken); err != nil {
		return sum, err
	}
	return sw.Sum(), nil
}

func (s *StrategyConstruction) ReadFrom(r io.Reader) (int64, error) {
	sr := bin.NewSumReader()
	if sum, err := sr.Address(r, &s.PrincipalToken); err != nil {
		return sum, err
	}
	if sum, err := sr.Address(r, &s.RewardToken); err != nil {
		return sum, err
	}
	return sr.Sum(), nil
}

// Strategy credits whatever reward the test sets as pending.
// It must be a minter of the reward token.
type Strategy struct {
	addr   common.Address
	master common.Address
}

var _ capability.Strategy = &Strategy{}

func (cont *Strategy) Name() string {
	return "MockStrategy"
}

func (cont *Strategy) Address() common.Address {
	return cont.addr
}

func (cont *Strategy) Master() common.Address {
	return cont.master
}

func (cont *Strategy) Init(addr common.Address, master common.Address) {
	cont.addr = addr
	cont.master = master
}

func (cont *Strategy) OnCreate(cc *types.ContractContext, Args []byte) error {
	data := &StrategyConstruction{}
	if _, err := data.ReadFrom(bytes.NewReader(Args)); err != nil {
		return err
	}
	cc.SetContractData([]byte{tagPrincipal}, data.PrincipalToken[:])
	cc.SetContractData([]byte{tagReward}, data.RewardToken[:])
	return nil
}

func (cont *Strategy) Front() interface{} {
	return cont
}

func (cont *Strategy) amountOf(cc *types.ContractContext, tag byte) *amount.Amount {
	return amount.NewAmountFromBytes(cc.ContractData([]byte{tag}))
}

func (cont *Strategy) setAmount(cc *types.ContractContext, tag byte, am *amount.Amount) {
	cc.SetContractData([]byte{tag}, am.Bytes())
}

func (cont *Strategy) onlyVault(cc *types.ContractContext) error {
	if cc.From() != cont.Vault(cc) {
		return errors.WithStack(capability.ErrPermissionDenied)
	}
	return nil
}

func (cont *Strategy) principal(cc *types.ContractContext) capability.Token {
	return capability.Token{Addr: common.BytesToAddress(cc.ContractData([]byte{tagPrincipal}))}
}

func (cont *Strategy) reward(cc *types.ContractContext) capability.Token {
	return capability.Token{Addr: common.BytesToAddress(cc.ContractData([]byte{tagReward}))}
}

func (cont *Strategy) SetVault(cc *types.ContractContext, vault common.Address) error {
	if cc.From() != cont.master {
		return errors.WithStack(capability.ErrPermissionDenied)
	}
	cc.SetContractData([]byte{tagVault}, vault[:])
	return nil
}

// SetPending sets the reward the next Harvest credits
func (cont *Strategy) SetPending(cc *types.ContractContext, am *amount.Amount) error {
	if cc.From() != cont.master {
		return errors.WithStack(capability.ErrPermissionDenied)
	}
	cont.setAmount(cc, tagPending, am)
	return nil
}

func (cont *Strategy) Stake(cc *types.ContractContext, amt *amount.Amount) error {
	if err := cont.onlyVault(cc); err != nil {
		return err
	}
	if err := cont.principal(cc).TransferFrom(cc, cc.From(), cont.addr, amt); err != nil {
		return err
	}
	cont.setAmount(cc, tagStaked, cont.TotalStaked(cc).Add(amt))
	return nil
}

func (cont *Strategy) Unstake(cc *types.ContractContext, amt *amount.Amount) (*amount.Amount, error) {
	if err := cont.onlyVault(cc); err != nil {
		return nil, err
	}
	staked := cont.TotalStaked(cc)
	if staked.Less(amt) {
		return nil, errors.WithStack(capability.ErrInsufficientBalance)
	}
	cont.setAmount(cc, tagStaked, staked.Sub(amt))
	if err := cont.principal(cc).Transfer(cc, cc.From(), amt); err != nil {
		return nil, err
	}
	return amt, nil
}

func (cont *Strategy) Harvest(cc *types.ContractContext) (*amount.Amount, error) {
	if err := cont.onlyVault(cc); err != nil {
		return nil, err
	}
	credited := cont.amountOf(cc, tagPending)
	if !credited.IsPlus() {
		return amount.NewAmount(0, 0), nil
	}
	if err := cont.reward(cc).Mint(cc, cont.addr, credited); err != nil {
		return nil, err
	}
	cont.setAmount(cc, tagPending, amount.NewAmount(0, 0))
	cont.setAmount(cc, tagReserve, cont.Reserve(cc).Add(credited))
	return credited, nil
}

func (cont *Strategy) PendingReward(cc *types.ContractContext) (*amount.Amount, error) {
	return cont.amountOf(cc, tagPending), nil
}

func (cont *Strategy) ClaimReward(cc *types.ContractContext, amt *amount.Amount) error {
	if err := cont.onlyVault(cc); err != nil {
		return err
	}
	reserve := cont.Reserve(cc)
	if reserve.Less(amt) {
		return errors.WithStack(capability.ErrInsufficientBalance)
	}
	cont.setAmount(cc, tagReserve, reserve.Sub(amt))
	return cont.reward(cc).Transfer(cc, cc.From(), amt)
}

func (cont *Strategy) EmergencyUnstake(cc *types.ContractContext) (*amount.Amount, error) {
	if err := cont.onlyVault(cc); err != nil {
		return nil, err
	}
	staked := cont.TotalStaked(cc)
	cont.setAmount(cc, tagStaked, amount.NewAmount(0, 0))
	if staked.IsPlus() {
		if err := cont.principal(cc).Transfer(cc, cc.From(), staked); err != nil {
			return nil, err
		}
	}
	return staked, nil
}

func (cont *Strategy) Vault(cc *types.ContractContext) common.Address {
	return common.BytesToAddress(cc.ContractData([]byte{tagVault}))
}

func (cont *Strategy) Reserve(cc *types.ContractContext) *amount.Amount {
	return cont.amountOf(cc, tagReserve)
}

func (cont *Strategy) TotalStaked(cc *types.ContractContext) *amount.Amount {
	return cont.amountOf(cc, tagStaked)
}

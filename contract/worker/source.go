package worker

import (
	"bytes"

	"github.com/meverselabs/yieldvault/common"
	"github.com/meverselabs/yieldvault/common/amount"
	"github.com/meverselabs/yieldvault/common/bin"
	"github.com/meverselabs/yieldvault/contract/capability"
	"github.com/meverselabs/yieldvault/core/types"
	"github.com/pkg/errors"
)

// source is a farm pool whose reward is swapped into the vault reward token along path
type source struct {
	farm    capability.Farm
	pid     uint64
	path    []common.Address
	minSwap *amount.Amount
}

type sourceTags struct {
	farm    byte
	pid     byte
	path    byte
	minSwap byte
}

var (
	primaryTags   = sourceTags{farm: tagFarm, pid: tagPoolID, path: tagRewardPath, minSwap: tagMinSwap}
	secondaryTags = sourceTags{farm: tagSecondFarm, pid: tagSecondPoolID, path: tagSecondRewardPath, minSwap: tagSecondMinSwap}
)

func loadSource(cc *types.ContractContext, tags sourceTags) source {
	var path []common.Address
	if _, err := bin.NewSumReader().Addresses(bytes.NewReader(cc.ContractData([]byte{tags.path})), &path); err != nil {
		path = nil
	}
	return source{
		farm:    capability.Farm{Addr: common.BytesToAddress(cc.ContractData([]byte{tags.farm}))},
		pid:     bin.Uint64(cc.ContractData([]byte{tags.pid})),
		path:    path,
		minSwap: amount.NewAmountFromBytes(cc.ContractData([]byte{tags.minSwap})),
	}
}

func storeSource(cc *types.ContractContext, tags sourceTags, farm common.Address, pid uint64, path []common.Address) {
	var buf bytes.Buffer
	if _, err := bin.NewSumWriter().Addresses(&buf, path); err != nil {
		panic(err)
	}
	cc.SetContractData([]byte{tags.farm}, farm[:])
	cc.SetContractData([]byte{tags.pid}, bin.Uint64Bytes(pid))
	cc.SetContractData([]byte{tags.path}, buf.Bytes())
}

func (s source) rewardToken() capability.Token {
	return capability.Token{Addr: s.path[0]}
}

// unswapped returns the farm reward accrued for the worker and the reward it already holds
func (s source) unswapped(cc *types.ContractContext) (*amount.Amount, *amount.Amount, error) {
	pending, err := s.farm.PendingReward(cc, s.pid, cc.Address())
	if err != nil {
		return nil, nil, err
	}
	held, err := s.rewardToken().SelfBalance(cc)
	if err != nil {
		return nil, nil, err
	}
	return pending, held, nil
}

// harvest claims the farm reward and swaps the reward held by the worker.
// It returns zero without touching anything when nothing has accrued.
func (s source) harvest(cc *types.ContractContext, router capability.Router) (*amount.Amount, error) {
	zero := amount.NewAmount(0, 0)
	pending, err := s.farm.PendingReward(cc, s.pid, cc.Address())
	if err != nil {
		return nil, err
	}
	if pending.IsPlus() {
		if err := s.farm.Deposit(cc, s.pid, zero); err != nil {
			return nil, err
		}
	}
	reward := s.rewardToken()
	bal, err := reward.SelfBalance(cc)
	if err != nil {
		return nil, err
	}
	if !bal.IsPlus() || bal.Less(s.minSwap) {
		return zero, nil
	}
	if err := reward.Approve(cc, router.Addr, bal); err != nil {
		return nil, err
	}
	amounts, err := router.SwapExactTokensForTokens(cc, bal, zero, s.path, cc.Address())
	if err != nil {
		return nil, err
	}
	if len(amounts) != len(s.path) {
		return nil, errors.Wrapf(capability.ErrInvalidResult, "swap returns %v amounts", len(amounts))
	}
	credited := amounts[len(amounts)-1]
	cc.EmitEvent("SourceHarvested", s.farm.Addr, s.pid, bal, credited)
	return credited, nil
}

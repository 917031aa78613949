package farm

import (
	"io"

	"github.com/meverselabs/yieldvault/common"
	"github.com/meverselabs/yieldvault/common/amount"
	"github.com/meverselabs/yieldvault/common/bin"
)

type FarmContractConstruction struct {
	Owner         common.Address
	FarmToken     common.Address
	TokenPerBlock *amount.Amount
	StartBlock    uint32
}

func (s *FarmContractConstruction) WriteTo(w io.Writer) (int64, error) {
	sw := bin.NewSumWriter()
	if sum, err := sw.Address(w, s.Owner); err != nil {
		return sum, err
	}
	if sum, err := sw.Address(w, s.FarmToken); err != nil {
		return sum, err
	}
	if sum, err := sw.Amount(w, s.TokenPerBlock); err != nil {
		return sum, err
	}
	if sum, err := sw.Uint32(w, s.StartBlock); err != nil {
		return sum, err
	}
	return sw.Sum(), nil
}

func (s *FarmContractConstruction) ReadFrom(r io.Reader) (int64, error) {
	sr := bin.NewSumReader()
	if sum, err := sr.Address(r, &s.Owner); err != nil {
		return sum, err
	}
	if sum, err := sr.Address(r, &s.FarmToken); err != nil {
		return sum, err
	}
	if sum, err := sr.Amount(r, &s.TokenPerBlock); err != nil {
		return sum, err
	}
	if sum, err := sr.Uint32(r, &s.StartBlock); err != nil {
		return sum, err
	}
	return sr.Sum(), nil
}

type PoolInfo struct {
	Want             common.Address
	AllocPoint       uint32
	LastRewardBlock  uint32
	AccTokenPerShare *amount.Amount
	TotalAmount      *amount.Amount
}

func (s *PoolInfo) WriteTo(w io.Writer) (int64, error) {
	sw := bin.NewSumWriter()
	if sum, err := sw.Address(w, s.Want); err != nil {
		return sum, err
	}
	if sum, err := sw.Uint32(w, s.AllocPoint); err != nil {
		return sum, err
	}
	if sum, err := sw.Uint32(w, s.LastRewardBlock); err != nil {
		return sum, err
	}
	if sum, err := sw.Amount(w, s.AccTokenPerShare); err != nil {
		return sum, err
	}
	if sum, err := sw.Amount(w, s.TotalAmount); err != nil {
		return sum, err
	}
	return sw.Sum(), nil
}

func (s *PoolInfo) ReadFrom(r io.Reader) (int64, error) {
	sr := bin.NewSumReader()
	if sum, err := sr.Address(r, &s.Want); err != nil {
		return sum, err
	}
	if sum, err := sr.Uint32(r, &s.AllocPoint); err != nil {
		return sum, err
	}
	if sum, err := sr.Uint32(r, &s.LastRewardBlock); err != nil {
		return sum, err
	}
	if sum, err := sr.Amount(r, &s.AccTokenPerShare); err != nil {
		return sum, err
	}
	if sum, err := sr.Amount(r, &s.TotalAmount); err != nil {
		return sum, err
	}
	return sr.Sum(), nil
}

type UserInfo struct {
	Amount     *amount.Amount
	RewardDebt *amount.Amount
}

func (s *UserInfo) WriteTo(w io.Writer) (int64, error) {
	sw := bin.NewSumWriter()
	if sum, err := sw.Amount(w, s.Amount); err != nil {
		return sum, err
	}
	if sum, err := sw.Amount(w, s.RewardDebt); err != nil {
		return sum, err
	}
	return sw.Sum(), nil
}

func (s *UserInfo) ReadFrom(r io.Reader) (int64, error) {
	sr := bin.NewSumReader()
	if sum, err := sr.Amount(r, &s.Amount); err != nil {
		return sum, err
	}
	if sum, err := sr.Amount(r, &s.RewardDebt); err != nil {
		return sum, err
	}
	return sr.Sum(), nil
}

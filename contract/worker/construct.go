package worker

import (
	"io"

	"github.com/meverselabs/yieldvault/common"
	"github.com/meverselabs/yieldvault/common/bin"
)

type SingleWorkerConstruction struct {
	Owner            common.Address
	Oracle           common.Address
	Router           common.Address
	PrincipalToken   common.Address
	VaultRewardToken common.Address
	Farm             common.Address
	PoolID           uint64
	RewardPath       []common.Address
}

func (s *SingleWorkerConstruction) WriteTo(w io.Writer) (int64, error) {
	sw := bin.NewSumWriter()
	for _, addr := range []common.Address{s.Owner, s.Oracle, s.Router, s.PrincipalToken, s.VaultRewardToken, s.Farm} {
		if sum, err := sw.Address(w, addr); err != nil {
			return sum, err
		}
	}
	if sum, err := sw.Uint64(w, s.PoolID); err != nil {
		return sum, err
	}
	if sum, err := sw.Addresses(w, s.RewardPath); err != nil {
		return sum, err
	}
	return sw.Sum(), nil
}

func (s *SingleWorkerConstruction) ReadFrom(r io.Reader) (int64, error) {
	sr := bin.NewSumReader()
	for _, addr := range []*common.Address{&s.Owner, &s.Oracle, &s.Router, &s.PrincipalToken, &s.VaultRewardToken, &s.Farm} {
		if sum, err := sr.Address(r, addr); err != nil {
			return sum, err
		}
	}
	if sum, err := sr.Uint64(r, &s.PoolID); err != nil {
		return sum, err
	}
	if sum, err := sr.Addresses(r, &s.RewardPath); err != nil {
		return sum, err
	}
	return sr.Sum(), nil
}

// DualWorkerConstruction adds the second source. Its farm pool stakes the shares of IBVault,
// whose underlying must be the vault reward token.
type DualWorkerConstruction struct {
	SingleWorkerConstruction
	IBVault          common.Address
	SecondFarm       common.Address
	SecondPoolID     uint64
	SecondRewardPath []common.Address
}

func (s *DualWorkerConstruction) WriteTo(w io.Writer) (int64, error) {
	sw := bin.NewSumWriter()
	if sum, err := sw.WriterTo(w, &s.SingleWorkerConstruction); err != nil {
		return sum, err
	}
	if sum, err := sw.Address(w, s.IBVault); err != nil {
		return sum, err
	}
	if sum, err := sw.Address(w, s.SecondFarm); err != nil {
		return sum, err
	}
	if sum, err := sw.Uint64(w, s.SecondPoolID); err != nil {
		return sum, err
	}
	if sum, err := sw.Addresses(w, s.SecondRewardPath); err != nil {
		return sum, err
	}
	return sw.Sum(), nil
}

func (s *DualWorkerConstruction) ReadFrom(r io.Reader) (int64, error) {
	sr := bin.NewSumReader()
	if sum, err := sr.ReaderFrom(r, &s.SingleWorkerConstruction); err != nil {
		return sum, err
	}
	if sum, err := sr.Address(r, &s.IBVault); err != nil {
		return sum, err
	}
	if sum, err := sr.Address(r, &s.SecondFarm); err != nil {
		return sum, err
	}
	if sum, err := sr.Uint64(r, &s.SecondPoolID); err != nil {
		return sum, err
	}
	if sum, err := sr.Addresses(r, &s.SecondRewardPath); err != nil {
		return sum, err
	}
	return sr.Sum(), nil
}

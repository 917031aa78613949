package vault

import (
	"io"

	"github.com/meverselabs/yieldvault/common"
	"github.com/meverselabs/yieldvault/common/amount"
	"github.com/meverselabs/yieldvault/common/bin"
)

type VaultContractConstruction struct {
	Owner                 common.Address
	Strategy              common.Address
	PrincipalToken        common.Address
	RewardToken           common.Address
	FeeManager            common.Address
	WithdrawalDelayBlocks uint32
	Name                  string
	Symbol                string
}

func (s *VaultContractConstruction) WriteTo(w io.Writer) (int64, error) {
	sw := bin.NewSumWriter()
	for _, addr := range []common.Address{s.Owner, s.Strategy, s.PrincipalToken, s.RewardToken, s.FeeManager} {
		if sum, err := sw.Address(w, addr); err != nil {
			return sum, err
		}
	}
	if sum, err := sw.Uint32(w, s.WithdrawalDelayBlocks); err != nil {
		return sum, err
	}
	if sum, err := sw.String(w, s.Name); err != nil {
		return sum, err
	}
	if sum, err := sw.String(w, s.Symbol); err != nil {
		return sum, err
	}
	return sw.Sum(), nil
}

func (s *VaultContractConstruction) ReadFrom(r io.Reader) (int64, error) {
	sr := bin.NewSumReader()
	for _, addr := range []*common.Address{&s.Owner, &s.Strategy, &s.PrincipalToken, &s.RewardToken, &s.FeeManager} {
		if sum, err := sr.Address(r, addr); err != nil {
			return sum, err
		}
	}
	if sum, err := sr.Uint32(r, &s.WithdrawalDelayBlocks); err != nil {
		return sum, err
	}
	if sum, err := sr.String(r, &s.Name); err != nil {
		return sum, err
	}
	if sum, err := sr.String(r, &s.Symbol); err != nil {
		return sum, err
	}
	return sr.Sum(), nil
}

// UserPosition is the principal of a depositor and the accumulator snapshot it is settled at
type UserPosition struct {
	Principal         *amount.Amount
	RewardDebt        *amount.Amount
	LastDepositHeight uint32
}

func (s *UserPosition) WriteTo(w io.Writer) (int64, error) {
	sw := bin.NewSumWriter()
	if sum, err := sw.Amount(w, s.Principal); err != nil {
		return sum, err
	}
	if sum, err := sw.Amount(w, s.RewardDebt); err != nil {
		return sum, err
	}
	if sum, err := sw.Uint32(w, s.LastDepositHeight); err != nil {
		return sum, err
	}
	return sw.Sum(), nil
}

func (s *UserPosition) ReadFrom(r io.Reader) (int64, error) {
	sr := bin.NewSumReader()
	if sum, err := sr.Amount(r, &s.Principal); err != nil {
		return sum, err
	}
	if sum, err := sr.Amount(r, &s.RewardDebt); err != nil {
		return sum, err
	}
	if sum, err := sr.Uint32(r, &s.LastDepositHeight); err != nil {
		return sum, err
	}
	return sr.Sum(), nil
}

// VaultState is the singleton accounting state of a vault
type VaultState struct {
	TotalPrincipal        *amount.Amount
	AccRewardPerShare     *amount.Amount
	Paused                bool
	EmergencyMode         bool
	WithdrawalDelayBlocks uint32
}

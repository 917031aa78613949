package feemanager

import (
	"io"

	"github.com/meverselabs/yieldvault/common"
	"github.com/meverselabs/yieldvault/common/amount"
	"github.com/meverselabs/yieldvault/common/bin"
)

type FeeManagerContractConstruction struct {
	Owner         common.Address
	DiscountToken common.Address
	FeeRecipient  common.Address
	FeeSchedule
}

func (s *FeeManagerContractConstruction) WriteTo(w io.Writer) (int64, error) {
	sw := bin.NewSumWriter()
	if sum, err := sw.Address(w, s.Owner); err != nil {
		return sum, err
	}
	if sum, err := sw.Address(w, s.DiscountToken); err != nil {
		return sum, err
	}
	if sum, err := sw.Address(w, s.FeeRecipient); err != nil {
		return sum, err
	}
	if sum, err := sw.WriterTo(w, &s.FeeSchedule); err != nil {
		return sum, err
	}
	return sw.Sum(), nil
}

func (s *FeeManagerContractConstruction) ReadFrom(r io.Reader) (int64, error) {
	sr := bin.NewSumReader()
	if sum, err := sr.Address(r, &s.Owner); err != nil {
		return sum, err
	}
	if sum, err := sr.Address(r, &s.DiscountToken); err != nil {
		return sum, err
	}
	if sum, err := sr.Address(r, &s.FeeRecipient); err != nil {
		return sum, err
	}
	if sum, err := sr.ReaderFrom(r, &s.FeeSchedule); err != nil {
		return sum, err
	}
	return sr.Sum(), nil
}

// FeeSchedule selects the discount rate for holders of at least MinDiscountBalance of the discount token
type FeeSchedule struct {
	BaseFeeBps         uint16
	DiscountFeeBps     uint16
	MinDiscountBalance *amount.Amount
}

func (s *FeeSchedule) WriteTo(w io.Writer) (int64, error) {
	sw := bin.NewSumWriter()
	if sum, err := sw.Uint16(w, s.BaseFeeBps); err != nil {
		return sum, err
	}
	if sum, err := sw.Uint16(w, s.DiscountFeeBps); err != nil {
		return sum, err
	}
	if sum, err := sw.Amount(w, s.MinDiscountBalance); err != nil {
		return sum, err
	}
	return sw.Sum(), nil
}

func (s *FeeSchedule) ReadFrom(r io.Reader) (int64, error) {
	sr := bin.NewSumReader()
	if sum, err := sr.Uint16(r, &s.BaseFeeBps); err != nil {
		return sum, err
	}
	if sum, err := sr.Uint16(r, &s.DiscountFeeBps); err != nil {
		return sum, err
	}
	if sum, err := sr.Amount(r, &s.MinDiscountBalance); err != nil {
		return sum, err
	}
	return sr.Sum(), nil
}

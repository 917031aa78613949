package priceoracle

import (
	"io"

	"github.com/meverselabs/yieldvault/common"
	"github.com/meverselabs/yieldvault/common/amount"
	"github.com/meverselabs/yieldvault/common/bin"
)

type PriceOracleContractConstruction struct {
	Owner            common.Address
	Feeder           common.Address
	Router           common.Address
	ThresholdPercent uint64
}

func (s *PriceOracleContractConstruction) WriteTo(w io.Writer) (int64, error) {
	sw := bin.NewSumWriter()
	if sum, err := sw.Address(w, s.Owner); err != nil {
		return sum, err
	}
	if sum, err := sw.Address(w, s.Feeder); err != nil {
		return sum, err
	}
	if sum, err := sw.Address(w, s.Router); err != nil {
		return sum, err
	}
	if sum, err := sw.Uint64(w, s.ThresholdPercent); err != nil {
		return sum, err
	}
	return sw.Sum(), nil
}

func (s *PriceOracleContractConstruction) ReadFrom(r io.Reader) (int64, error) {
	sr := bin.NewSumReader()
	if sum, err := sr.Address(r, &s.Owner); err != nil {
		return sum, err
	}
	if sum, err := sr.Address(r, &s.Feeder); err != nil {
		return sum, err
	}
	if sum, err := sr.Address(r, &s.Router); err != nil {
		return sum, err
	}
	if sum, err := sr.Uint64(r, &s.ThresholdPercent); err != nil {
		return sum, err
	}
	return sr.Sum(), nil
}

// PriceRecord is the feeder price of one coin of token A in token B
type PriceRecord struct {
	Price      *amount.Amount
	LastUpdate uint64
}

func (s *PriceRecord) WriteTo(w io.Writer) (int64, error) {
	sw := bin.NewSumWriter()
	if sum, err := sw.Amount(w, s.Price); err != nil {
		return sum, err
	}
	if sum, err := sw.Uint64(w, s.LastUpdate); err != nil {
		return sum, err
	}
	return sw.Sum(), nil
}

func (s *PriceRecord) ReadFrom(r io.Reader) (int64, error) {
	sr := bin.NewSumReader()
	if sum, err := sr.Amount(r, &s.Price); err != nil {
		return sum, err
	}
	if sum, err := sr.Uint64(r, &s.LastUpdate); err != nil {
		return sum, err
	}
	return sr.Sum(), nil
}

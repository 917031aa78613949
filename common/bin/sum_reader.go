package bin

import (
	"io"

	"github.com/meverselabs/yieldvault/common"
	"github.com/meverselabs/yieldvault/common/amount"
)

// SumReader accumulates the read byte count of a sequence of fields
type SumReader struct {
	sum int64
}

func NewSumReader() *SumReader {
	return &SumReader{}
}

func (sr *SumReader) Uint8(r io.Reader, p *uint8) (int64, error) {
	v, n, err := ReadUint8(r)
	sr.sum += n
	if err != nil {
		return sr.sum, err
	}
	*p = v
	return sr.sum, nil
}

func (sr *SumReader) Uint16(r io.Reader, p *uint16) (int64, error) {
	v, n, err := ReadUint16(r)
	sr.sum += n
	if err != nil {
		return sr.sum, err
	}
	*p = v
	return sr.sum, nil
}

func (sr *SumReader) Uint32(r io.Reader, p *uint32) (int64, error) {
	v, n, err := ReadUint32(r)
	sr.sum += n
	if err != nil {
		return sr.sum, err
	}
	*p = v
	return sr.sum, nil
}

func (sr *SumReader) Uint64(r io.Reader, p *uint64) (int64, error) {
	v, n, err := ReadUint64(r)
	sr.sum += n
	if err != nil {
		return sr.sum, err
	}
	*p = v
	return sr.sum, nil
}

func (sr *SumReader) Bytes(r io.Reader, p *[]byte) (int64, error) {
	v, n, err := ReadBytes(r)
	sr.sum += n
	if err != nil {
		return sr.sum, err
	}
	*p = v
	return sr.sum, nil
}

func (sr *SumReader) String(r io.Reader, p *string) (int64, error) {
	v, n, err := ReadString(r)
	sr.sum += n
	if err != nil {
		return sr.sum, err
	}
	*p = v
	return sr.sum, nil
}

func (sr *SumReader) Bool(r io.Reader, p *bool) (int64, error) {
	v, n, err := ReadBool(r)
	sr.sum += n
	if err != nil {
		return sr.sum, err
	}
	*p = v
	return sr.sum, nil
}

func (sr *SumReader) Address(r io.Reader, p *common.Address) (int64, error) {
	v, n, err := ReadBytes(r)
	sr.sum += n
	if err != nil {
		return sr.sum, err
	}
	if len(v) != common.AddressLength {
		return sr.sum, ErrInvalidLength
	}
	copy((*p)[:], v)
	return sr.sum, nil
}

func (sr *SumReader) Amount(r io.Reader, p **amount.Amount) (int64, error) {
	v, n, err := ReadBytes(r)
	sr.sum += n
	if err != nil {
		return sr.sum, err
	}
	*p = amount.NewAmountFromBytes(v)
	return sr.sum, nil
}

func (sr *SumReader) Addresses(r io.Reader, p *[]common.Address) (int64, error) {
	var l uint16
	if _, err := sr.Uint16(r, &l); err != nil {
		return sr.sum, err
	}
	vs := make([]common.Address, l)
	for i := range vs {
		if _, err := sr.Address(r, &vs[i]); err != nil {
			return sr.sum, err
		}
	}
	*p = vs
	return sr.sum, nil
}

func (sr *SumReader) Amounts(r io.Reader, p *[]*amount.Amount) (int64, error) {
	var l uint16
	if _, err := sr.Uint16(r, &l); err != nil {
		return sr.sum, err
	}
	vs := make([]*amount.Amount, l)
	for i := range vs {
		if _, err := sr.Amount(r, &vs[i]); err != nil {
			return sr.sum, err
		}
	}
	*p = vs
	return sr.sum, nil
}

func (sr *SumReader) ReaderFrom(r io.Reader, p io.ReaderFrom) (int64, error) {
	n, err := p.ReadFrom(r)
	sr.sum += n
	return sr.sum, err
}

func (sr *SumReader) Sum() int64 {
	return sr.sum
}

package amount

import (
	"math/big"
	"strings"

	"github.com/pkg/errors"
)

// FractionalCount represent the number of under the float point
const FractionalCount = 18

var (
	// COIN is 1 coin
	COIN = NewAmount(1, 0)
	// ZeroCoin is zero
	ZeroCoin = NewAmount(0, 0)

	fractionalMax = new(big.Int).Exp(big.NewInt(10), big.NewInt(FractionalCount), nil)
)

// ErrInvalidAmountFormat is returned when a string cannot be parsed as an amount
var ErrInvalidAmountFormat = errors.New("invalid amount format")

// Amount is the precision float value based on the big.Int
type Amount struct {
	*big.Int
}

func newAmount(value int64) *Amount {
	return &Amount{
		Int: big.NewInt(value),
	}
}

// NewAmount returns the amount that is consisted of the integer and the fractional value
func NewAmount(i uint64, f uint64) *Amount {
	bi := new(big.Int).SetUint64(i)
	bi.Mul(bi, fractionalMax)
	bi.Add(bi, new(big.Int).SetUint64(f))
	return &Amount{Int: bi}
}

// NewAmountFromBytes parse the amount from the byte array
func NewAmountFromBytes(bs []byte) *Amount {
	b := newAmount(0)
	b.Int.SetBytes(bs)
	return b
}

// NewAmountFromBigInt copies the given integer as the raw value of the amount
func NewAmountFromBigInt(bi *big.Int) *Amount {
	if bi == nil {
		return newAmount(0)
	}
	return &Amount{Int: new(big.Int).Set(bi)}
}

// MarshalJSON is a marshaler function
func (am *Amount) MarshalJSON() ([]byte, error) {
	return []byte(`"` + am.String() + `"`), nil
}

// UnmarshalJSON is a unmarshaler function
func (am *Amount) UnmarshalJSON(bs []byte) error {
	if len(bs) < 3 || bs[0] != '"' || bs[len(bs)-1] != '"' {
		return errors.WithStack(ErrInvalidAmountFormat)
	}
	v, err := ParseAmount(string(bs[1 : len(bs)-1]))
	if err != nil {
		return err
	}
	am.Int = v.Int
	return nil
}

// Clone returns the clonend value of it
func (am *Amount) Clone() *Amount {
	return NewAmountFromBigInt(am.Int)
}

// Add returns a + b (*immutable)
func (am *Amount) Add(b *Amount) *Amount {
	c := newAmount(0)
	c.Int.Add(am.Int, b.Int)
	return c
}

// Sub returns a - b (*immutable)
func (am *Amount) Sub(b *Amount) *Amount {
	c := newAmount(0)
	c.Int.Sub(am.Int, b.Int)
	return c
}

// Mul returns a * b (*immutable), raw integer product without rescaling
func (am *Amount) Mul(b *Amount) *Amount {
	c := newAmount(0)
	c.Int.Mul(am.Int, b.Int)
	return c
}

// MulC returns a * b (*immutable)
func (am *Amount) MulC(b int64) *Amount {
	c := newAmount(0)
	c.Int.Mul(am.Int, big.NewInt(b))
	return c
}

// Div returns a / b (*immutable), floor of the raw integers
func (am *Amount) Div(b *Amount) *Amount {
	c := newAmount(0)
	c.Int.Div(am.Int, b.Int)
	return c
}

// DivC returns a / b (*immutable)
func (am *Amount) DivC(b int64) *Amount {
	c := newAmount(0)
	c.Int.Div(am.Int, big.NewInt(b))
	return c
}

// MulDiv returns floor(a * b / c) (*immutable)
func (am *Amount) MulDiv(b *Amount, c *Amount) *Amount {
	r := newAmount(0)
	r.Int.Mul(am.Int, b.Int)
	r.Int.Div(r.Int, c.Int)
	return r
}

// MulDivCeil returns ceil(a * b / c) (*immutable)
func (am *Amount) MulDivCeil(b *Amount, c *Amount) *Amount {
	r := newAmount(0)
	m := new(big.Int)
	r.Int.Mul(am.Int, b.Int)
	r.Int.DivMod(r.Int, c.Int, m)
	if m.Sign() != 0 {
		r.Int.Add(r.Int, big.NewInt(1))
	}
	return r
}

// Min returns the smaller of a and b
func Min(a *Amount, b *Amount) *Amount {
	if a.Cmp(b.Int) <= 0 {
		return a
	}
	return b
}

// IsZero returns a == 0
func (am *Amount) IsZero() bool {
	return am.Int == nil || am.Int.Sign() == 0
}

// IsPlus returns a > 0
func (am *Amount) IsPlus() bool {
	return am.Int != nil && am.Int.Sign() > 0
}

// IsMinus returns a < 0
func (am *Amount) IsMinus() bool {
	return am.Int != nil && am.Int.Sign() < 0
}

// Less returns a < b
func (am *Amount) Less(b *Amount) bool {
	return am.Int.Cmp(b.Int) < 0
}

// Equal checks that two values is same or not
func (am *Amount) Equal(b *Amount) bool {
	return am.Int.Cmp(b.Int) == 0
}

// String returns the float string of the amount
func (am *Amount) String() string {
	if am.IsZero() {
		return "0"
	}
	sign := ""
	abs := new(big.Int).Set(am.Int)
	if abs.Sign() < 0 {
		sign = "-"
		abs.Neg(abs)
	}
	str := abs.String()
	if len(str) <= FractionalCount {
		str = strings.Repeat("0", FractionalCount-len(str)+1) + str
	}
	si := str[:len(str)-FractionalCount]
	sf := strings.TrimRight(str[len(str)-FractionalCount:], "0")
	if len(sf) > 0 {
		return sign + si + "." + sf
	}
	return sign + si
}

// ParseAmount parse the amount from the float string
func ParseAmount(str string) (*Amount, error) {
	ls := strings.SplitN(str, ".", 2)
	if len(ls[0]) == 0 {
		return nil, errors.WithStack(ErrInvalidAmountFormat)
	}
	pi, ok := new(big.Int).SetString(ls[0], 10)
	if !ok || pi.Sign() < 0 {
		return nil, errors.WithStack(ErrInvalidAmountFormat)
	}
	pi.Mul(pi, fractionalMax)
	if len(ls) == 2 {
		frac := ls[1]
		if len(frac) == 0 || len(frac) > FractionalCount {
			return nil, errors.WithStack(ErrInvalidAmountFormat)
		}
		pf, ok := new(big.Int).SetString(frac+strings.Repeat("0", FractionalCount-len(frac)), 10)
		if !ok || pf.Sign() < 0 {
			return nil, errors.WithStack(ErrInvalidAmountFormat)
		}
		pi.Add(pi, pf)
	}
	return &Amount{Int: pi}, nil
}

// MustParseAmount parse the amount from the float string
func MustParseAmount(str string) *Amount {
	am, err := ParseAmount(str)
	if err != nil {
		panic(err)
	}
	return am
}

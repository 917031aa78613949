package amount

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Amount(t *testing.T) {
	a := COIN.DivC(1000)
	b := COIN.MulC(10000)
	assert.Equal(t, "0.001", a.String())
	assert.Equal(t, "10000", b.String())
	assert.Equal(t, "10000.001", a.Add(b).String())
	assert.Equal(t, "-9999.999", a.Sub(b).String())
	assert.Equal(t, "0.0000001", a.DivC(10000).String())
	assert.Equal(t, "90", a.MulC(90000).String())

	c, err := ParseAmount("10000.00121454")
	assert.NoError(t, err)
	assert.Equal(t, "10000.00121454", c.String())
}

func TestParseAmount(t *testing.T) {
	am := MustParseAmount("497.5")
	assert.Equal(t, 0, am.Cmp(NewAmount(497, 500000000000000000).Int))

	for _, s := range []string{"", ".5", "1.", "abc", "-1", "1.0000000000000000001"} {
		_, err := ParseAmount(s)
		assert.ErrorIs(t, err, ErrInvalidAmountFormat, s)
	}
}

func TestMulDiv(t *testing.T) {
	seven := NewAmountFromBigInt(big.NewInt(7))
	two := NewAmountFromBigInt(big.NewInt(2))
	three := NewAmountFromBigInt(big.NewInt(3))
	assert.Equal(t, int64(4), seven.MulDiv(two, three).Int64())
	assert.Equal(t, int64(5), seven.MulDivCeil(two, three).Int64())
	assert.Equal(t, int64(4), seven.MulDivCeil(two, NewAmountFromBigInt(big.NewInt(7))).Add(two).Int64())
	assert.True(t, Min(two, three).Equal(two))
}

func TestJSON(t *testing.T) {
	am := MustParseAmount("12.25")
	bs, err := am.MarshalJSON()
	assert.NoError(t, err)
	assert.Equal(t, `"12.25"`, string(bs))

	var got Amount
	assert.NoError(t, got.UnmarshalJSON(bs))
	assert.True(t, got.Equal(am))
}

package priceoracle

import (
	"testing"

	"github.com/meverselabs/yieldvault/common"
	"github.com/meverselabs/yieldvault/common/amount"
	"github.com/stretchr/testify/assert"
)

func TestIsOver(t *testing.T) {
	stored := amount.NewAmount(1000, 0)
	for _, c := range []struct {
		live      string
		threshold uint64
		over      bool
	}{
		{"1000", 10, false},
		{"900", 10, false},
		{"899.9", 10, true},
		{"1200", 10, false},
		{"999", 0, true},
		{"1000", 0, false},
		{"0", 100, false},
		{"0", 99, true},
	} {
		assert.Equal(t, c.over, isOver(stored, amount.MustParseAmount(c.live), c.threshold), "%v at %v%%", c.live, c.threshold)
	}
}

func TestPriceKey(t *testing.T) {
	a := common.HexToAddress("0x0000000000000000000000000000000000000001")
	b := common.HexToAddress("0x0000000000000000000000000000000000000002")
	assert.NotEqual(t, makePriceKey(a, b), makePriceKey(b, a))
	assert.Equal(t, makePriceKey(a, b), makePriceKey(a, b))
	assert.Len(t, makePriceKey(a, b), 1+common.AddressLength*2)
}

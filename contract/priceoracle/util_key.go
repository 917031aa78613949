package priceoracle

import "github.com/meverselabs/yieldvault/common"

var (
	tagOwner     = byte(0x01)
	tagFeeder    = byte(0x02)
	tagRouter    = byte(0x03)
	tagThreshold = byte(0x04)
	tagPrice     = byte(0x10)
)

func makePriceKey(tokenA common.Address, tokenB common.Address) []byte {
	bs := make([]byte, 1+common.AddressLength*2)
	bs[0] = tagPrice
	copy(bs[1:], tokenA[:])
	copy(bs[1+common.AddressLength:], tokenB[:])
	return bs
}

package swaprouter

import "github.com/meverselabs/yieldvault/common"

var (
	tagOwner = byte(0x01)
	tagRate  = byte(0x10)
)

func makeRateKey(tokenIn common.Address, tokenOut common.Address) []byte {
	bs := make([]byte, 1+common.AddressLength*2)
	bs[0] = tagRate
	copy(bs[1:], tokenIn[:])
	copy(bs[1+common.AddressLength:], tokenOut[:])
	return bs
}

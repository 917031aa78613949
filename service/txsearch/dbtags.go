package txsearch

import (
	"github.com/meverselabs/yieldvault/common"
	"github.com/meverselabs/yieldvault/common/bin"
)

// tags
var (
	//process
	tagHeight = byte(0x10)

	//event
	tagEvent         = byte(0x21)
	tagContractEvent = byte(0x22)
)

// toEventKey is ordered by height then by the position in the block
func toEventKey(height uint32, seq uint32) []byte {
	bs := make([]byte, 9)
	bs[0] = tagEvent
	copy(bs[1:], bin.Uint32Bytes(height))
	copy(bs[5:], bin.Uint32Bytes(seq))
	return bs
}

func toEventPrefix(height uint32) []byte {
	bs := make([]byte, 5)
	bs[0] = tagEvent
	copy(bs[1:], bin.Uint32Bytes(height))
	return bs
}

func toContractEventKey(addr common.Address, height uint32, seq uint32) []byte {
	bs := make([]byte, 1+common.AddressLength+8)
	bs[0] = tagContractEvent
	copy(bs[1:], addr[:])
	copy(bs[1+common.AddressLength:], bin.Uint32Bytes(height))
	copy(bs[5+common.AddressLength:], bin.Uint32Bytes(seq))
	return bs
}

func fromContractEventKey(key []byte) (uint32, uint32) {
	return bin.Uint32(key[1+common.AddressLength:]), bin.Uint32(key[5+common.AddressLength:])
}

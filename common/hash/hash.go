package hash

import (
	"encoding/binary"

	ecommon "github.com/ethereum/go-ethereum/common"
	ecrypto "github.com/ethereum/go-ethereum/crypto"
)

// Hash256 is the keccak256 digest used for state and transaction hashes
type Hash256 = ecommon.Hash

const HashLength = ecommon.HashLength

// Hash returns the keccak256 hash of the concatenated data
func Hash(data ...[]byte) Hash256 {
	return ecrypto.Keccak256Hash(data...)
}

// Uint64 returns the first 8 bytes of the hash as a little endian number
func Uint64(data ...[]byte) uint64 {
	h := Hash(data...)
	return binary.LittleEndian.Uint64(h[:])
}

// Hashes chains the hashes with a separator byte and hashes the result
func Hashes(hs ...Hash256) Hash256 {
	data := make([]byte, 0, (HashLength+1)*len(hs))
	for i, h := range hs {
		data = append(data, h[:]...)
		if i < len(hs)-1 {
			data = append(data, 'h')
		}
	}
	return Hash(data)
}

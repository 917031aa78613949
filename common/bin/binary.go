package bin

import (
	"encoding/binary"
	"errors"

	"github.com/meverselabs/yieldvault/common"
	"github.com/meverselabs/yieldvault/common/amount"
)

// ErrInvalidLength is returned when a value cannot be fully read or written
var ErrInvalidLength = errors.New("invalid length")

// Uint32Bytes returns a byte array of the uint32 number
func Uint32Bytes(v uint32) []byte {
	BNum := make([]byte, 4)
	binary.LittleEndian.PutUint32(BNum, v)
	return BNum
}

// Uint64Bytes returns a byte array of the uint64 number
func Uint64Bytes(v uint64) []byte {
	BNum := make([]byte, 8)
	binary.LittleEndian.PutUint64(BNum, v)
	return BNum
}

// Uint32 returns a uint32 number of the byte array, zero for an unset value
func Uint32(v []byte) uint32 {
	if len(v) < 4 {
		return 0
	}
	return binary.LittleEndian.Uint32(v)
}

// Uint64 returns a uint64 number of the byte array, zero for an unset value
func Uint64(v []byte) uint64 {
	if len(v) < 8 {
		return 0
	}
	return binary.LittleEndian.Uint64(v)
}

// Amount returns a Amount of the byte array
func Amount(v []byte) *amount.Amount {
	return amount.NewAmountFromBytes(v)
}

// Address returns an Address of the byte array, zero when the length does not match
func Address(v []byte) common.Address {
	var addr common.Address
	if len(v) == common.AddressLength {
		copy(addr[:], v)
	}
	return addr
}

// Bool returns true for a single non-zero byte
func Bool(v []byte) bool {
	return len(v) == 1 && v[0] != 0
}

// BoolBytes returns the stored form of a flag, nil for false so that the key is deleted
func BoolBytes(v bool) []byte {
	if v {
		return []byte{1}
	}
	return nil
}

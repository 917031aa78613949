package farm

import (
	"github.com/meverselabs/yieldvault/common"
	"github.com/meverselabs/yieldvault/common/bin"
)

var (
	tagOwner           = byte(0x01)
	tagFarmToken       = byte(0x02)
	tagTokenPerBlock   = byte(0x05)
	tagStartBlock      = byte(0x06)
	tagTotalAllocPoint = byte(0x07)
	tagPoolInfo        = byte(0x08)
	tagPoolLength      = byte(0x09)
	tagUserInfo        = byte(0x10)
)

// ACC_SCALE is the precision of AccTokenPerShare
var ACC_SCALE = int64(1e12)

func makePoolInfoKey(pid uint64) []byte {
	bs := make([]byte, 9)
	bs[0] = tagPoolInfo
	copy(bs[1:], bin.Uint64Bytes(pid))
	return bs
}

func makeUserInfoKey(pid uint64, user common.Address) []byte {
	bs := make([]byte, 9+common.AddressLength)
	bs[0] = tagUserInfo
	copy(bs[1:], bin.Uint64Bytes(pid))
	copy(bs[9:], user[:])
	return bs
}

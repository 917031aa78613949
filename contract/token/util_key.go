package token

import (
	"github.com/meverselabs/yieldvault/common"
)

var (
	tagTokenName        = byte(0x01)
	tagTokenSymbol      = byte(0x02)
	tagTokenMinter      = byte(0x03)
	tagTokenTotalSupply = byte(0x04)
	tagTokenAmount      = byte(0x10)
	tagTokenApprove     = byte(0x12)
	tagPause            = byte(0x15)
)

func MakeAllowanceTokenKey(spender common.Address) []byte {
	bs := make([]byte, 1+common.AddressLength)
	bs[0] = tagTokenApprove
	copy(bs[1:], spender[:])
	return bs
}

package vault

var (
	tagOwner                 = byte(0x01)
	tagPause                 = byte(0x02)
	tagLatch                 = byte(0x03)
	tagStrategy              = byte(0x04)
	tagPrincipalToken        = byte(0x05)
	tagRewardToken           = byte(0x06)
	tagFeeManager            = byte(0x07)
	tagName                  = byte(0x08)
	tagSymbol                = byte(0x09)
	tagTotalPrincipal        = byte(0x10)
	tagAccRewardPerShare     = byte(0x11)
	tagEmergency             = byte(0x12)
	tagWithdrawalDelayBlocks = byte(0x13)
	tagPosition              = byte(0x20)
)

// SCALE is the fixed point precision of the accumulator
const SCALE = 1_000_000_000_000

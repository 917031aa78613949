package worker

var (
	tagOwner            = byte(0x01)
	tagPause            = byte(0x02)
	tagLatch            = byte(0x03)
	tagVault            = byte(0x04)
	tagOracle           = byte(0x05)
	tagRouter           = byte(0x06)
	tagPrincipalToken   = byte(0x07)
	tagVaultRewardToken = byte(0x08)
	tagReserve          = byte(0x09)
	tagFarm             = byte(0x10)
	tagPoolID           = byte(0x11)
	tagRewardPath       = byte(0x12)
	tagMinSwap          = byte(0x13)
	tagSecondFarm       = byte(0x20)
	tagSecondPoolID     = byte(0x21)
	tagSecondRewardPath = byte(0x22)
	tagSecondMinSwap    = byte(0x23)
	tagIBVault          = byte(0x24)
)

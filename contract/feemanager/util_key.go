package feemanager

var (
	tagOwner         = byte(0x01)
	tagDiscountToken = byte(0x02)
	tagFeeRecipient  = byte(0x03)
	tagFeeSchedule   = byte(0x04)
)

// MaxFeeBps is 100%
const MaxFeeBps = 10000

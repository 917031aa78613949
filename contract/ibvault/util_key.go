package ibvault

var (
	tagUnderlying = byte(0x01)
	tagShareToken = byte(0x02)
)

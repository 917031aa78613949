package types

import (
	"github.com/meverselabs/yieldvault/common"
)

// Event is emitted by a contract while it executes
type Event struct {
	Height   uint32         `json:"height"`
	Index    uint16         `json:"index"`
	Contract common.Address `json:"contract"`
	Name     string         `json:"name"`
	Fields   []interface{}  `json:"fields"`
}

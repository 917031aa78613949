package types

import (
	"bytes"

	"github.com/meverselabs/yieldvault/common"
	"github.com/meverselabs/yieldvault/common/bin"
	"github.com/meverselabs/yieldvault/common/hash"
	"github.com/tidwall/btree"
)

// ContextData is a snapshot layer of the context.
// A nil value in the map marks a deleted key.
type ContextData struct {
	loader  Loader
	parent  *ContextData
	dataMap btree.Map[string, []byte]
	events  []*Event
}

// NewContextData returns a ContextData on top of the parent (or the loader when parent is nil)
func NewContextData(loader Loader, parent *ContextData) *ContextData {
	return &ContextData{
		loader: loader,
		parent: parent,
	}
}

// DataKey returns the storage key of the data owned by cont and scoped to addr
func DataKey(cont common.Address, addr common.Address, name []byte) string {
	return string(cont[:]) + string(addr[:]) + string(name)
}

func (ctd *ContextData) get(key string) []byte {
	if v, has := ctd.dataMap.Get(key); has {
		return v
	}
	if ctd.parent != nil {
		return ctd.parent.get(key)
	}
	return ctd.loader.Data(key)
}

// Data returns a copy of the stored value
func (ctd *ContextData) Data(cont common.Address, addr common.Address, name []byte) []byte {
	v := ctd.get(DataKey(cont, addr, name))
	if len(v) == 0 {
		return nil
	}
	bs := make([]byte, len(v))
	copy(bs, v)
	return bs
}

// SetData stores the value, an empty value removes the key
func (ctd *ContextData) SetData(cont common.Address, addr common.Address, name []byte, value []byte) {
	key := DataKey(cont, addr, name)
	if len(value) == 0 {
		ctd.dataMap.Set(key, nil)
		return
	}
	bs := make([]byte, len(value))
	copy(bs, value)
	ctd.dataMap.Set(key, bs)
}

// AddEvent appends the event to this layer
func (ctd *ContextData) AddEvent(e *Event) {
	ctd.events = append(ctd.events, e)
}

// Events returns the events of this layer
func (ctd *ContextData) Events() []*Event {
	return ctd.events
}

// Range iterates the changed keys in order, value is nil for a deleted key
func (ctd *ContextData) Range(fn func(key string, value []byte) bool) {
	ctd.dataMap.Scan(fn)
}

// Len returns the number of changed keys
func (ctd *ContextData) Len() int {
	return ctd.dataMap.Len()
}

func (ctd *ContextData) mergeInto(p *ContextData) {
	ctd.dataMap.Scan(func(key string, value []byte) bool {
		p.dataMap.Set(key, value)
		return true
	})
	p.events = append(p.events, ctd.events...)
}

// Hash returns the hash of the ordered changes
func (ctd *ContextData) Hash() hash.Hash256 {
	var buf bytes.Buffer
	ctd.dataMap.Scan(func(key string, value []byte) bool {
		bin.WriteString(&buf, key)
		bin.WriteBytes(&buf, value)
		return true
	})
	return hash.Hash(buf.Bytes())
}

package bencode

import (
	"github.com/elliotchance/orderedmap"
)

// Dict maps byte-string keys to values and remembers the order in which the
// keys appeared in the document. Keys are held as Go strings, which carry
// arbitrary bytes.
type Dict struct {
	m *orderedmap.OrderedMap
}

func newDict() *Dict {
	return &Dict{m: orderedmap.NewOrderedMap()}
}

// add inserts a new key and reports false if the key is already present.
func (d *Dict) add(key string, value *Value) bool {
	if _, exists := d.m.Get(key); exists {
		return false
	}
	d.m.Set(key, value)
	return true
}

func (d *Dict) Get(key string) (*Value, bool) {
	v, ok := d.m.Get(key)
	if !ok {
		return nil, false
	}
	return v.(*Value), true
}

// Keys returns the keys in document order.
func (d *Dict) Keys() []string {
	raw := d.m.Keys()
	keys := make([]string, 0, len(raw))
	for _, k := range raw {
		keys = append(keys, k.(string))
	}
	return keys
}

func (d *Dict) Len() int {
	return d.m.Len()
}

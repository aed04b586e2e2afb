package bencode

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

type Kind int

const (
	Integer Kind = iota
	ByteString
	List
	Dictionary
)

func (k Kind) String() string {
	switch k {
	case Integer:
		return "integer"
	case ByteString:
		return "byte string"
	case List:
		return "list"
	case Dictionary:
		return "dictionary"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is a node of a decoded bencode document. Exactly one of the payload
// fields is meaningful, selected by kind. A Value is never modified once
// built.
type Value struct {
	kind Kind
	i    int64
	s    []byte
	l    []*Value
	d    *Dict
	// raw is the encoded form of a decoded list or dictionary.
	raw []byte
}

// Entry is a key/value pair handed to NewDictionary.
type Entry struct {
	Key   string
	Value *Value
}

func NewInteger(i int64) *Value {
	return &Value{kind: Integer, i: i}
}

func NewByteString(b []byte) *Value {
	s := make([]byte, len(b))
	copy(s, b)
	return &Value{kind: ByteString, s: s}
}

func NewString(s string) *Value {
	return &Value{kind: ByteString, s: []byte(s)}
}

func NewList(items ...*Value) *Value {
	l := make([]*Value, len(items))
	copy(l, items)
	return &Value{kind: List, l: l}
}

// NewDictionary builds a dictionary keeping entries in the given order.
// It panics if a key is repeated.
func NewDictionary(entries ...Entry) *Value {
	d := newDict()
	for _, e := range entries {
		if !d.add(e.Key, e.Value) {
			panic("bencode: duplicate dictionary key " + strconv.Quote(e.Key))
		}
	}
	return &Value{kind: Dictionary, d: d}
}

func (v *Value) Kind() Kind {
	return v.kind
}

func (v *Value) Int() (int64, error) {
	if v.kind != Integer {
		return 0, v.mismatch(Integer)
	}
	return v.i, nil
}

// Bytes returns the payload of a byte string. The slice is shared with the
// value and must not be modified.
func (v *Value) Bytes() ([]byte, error) {
	if v.kind != ByteString {
		return nil, v.mismatch(ByteString)
	}
	return v.s, nil
}

func (v *Value) List() ([]*Value, error) {
	if v.kind != List {
		return nil, v.mismatch(List)
	}
	return v.l, nil
}

func (v *Value) Dict() (*Dict, error) {
	if v.kind != Dictionary {
		return nil, v.mismatch(Dictionary)
	}
	return v.d, nil
}

// Raw returns the bytes a list or dictionary was decoded from, exactly as they
// appeared in the input, key order included. It is nil for scalars and for
// values built in memory. The slice must not be modified.
func (v *Value) Raw() []byte {
	return v.raw
}

func (v *Value) mismatch(want Kind) error {
	return errors.WithStack(&TypeMismatchError{Want: want, Got: v.kind})
}

// Equal reports whether two trees hold the same data. Dictionary key order
// is not significant.
func (v *Value) Equal(other *Value) bool {
	if v == nil || other == nil {
		return v == other
	}
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case Integer:
		return v.i == other.i
	case ByteString:
		return string(v.s) == string(other.s)
	case List:
		if len(v.l) != len(other.l) {
			return false
		}
		for i := range v.l {
			if !v.l[i].Equal(other.l[i]) {
				return false
			}
		}
		return true
	case Dictionary:
		if v.d.Len() != other.d.Len() {
			return false
		}
		for _, k := range v.d.Keys() {
			a, _ := v.d.Get(k)
			b, ok := other.d.Get(k)
			if !ok || !a.Equal(b) {
				return false
			}
		}
		return true
	}
	return false
}

// Interface converts the tree into plain Go values: int64, []byte, []any
// and map[string]any.
func (v *Value) Interface() any {
	switch v.kind {
	case Integer:
		return v.i
	case ByteString:
		return v.s
	case List:
		r := make([]any, 0, len(v.l))
		for _, item := range v.l {
			r = append(r, item.Interface())
		}
		return r
	case Dictionary:
		r := make(map[string]any, v.d.Len())
		for _, k := range v.d.Keys() {
			item, _ := v.d.Get(k)
			r[k] = item.Interface()
		}
		return r
	}
	return nil
}

func (v *Value) String() string {
	b := &strings.Builder{}
	v.format(b)
	return b.String()
}

func (v *Value) format(b *strings.Builder) {
	switch v.kind {
	case Integer:
		b.WriteString(strconv.FormatInt(v.i, 10))
	case ByteString:
		b.WriteString(strconv.Quote(string(v.s)))
	case List:
		b.WriteByte('[')
		for i, item := range v.l {
			if i > 0 {
				b.WriteString(", ")
			}
			item.format(b)
		}
		b.WriteByte(']')
	case Dictionary:
		b.WriteByte('{')
		for i, k := range v.d.Keys() {
			if i > 0 {
				b.WriteString(", ")
			}
			item, _ := v.d.Get(k)
			fmt.Fprintf(b, "%q: ", k)
			item.format(b)
		}
		b.WriteByte('}')
	}
}

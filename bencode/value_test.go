package bencode

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestValueAccessors(t *testing.T) {
	values := map[Kind]*Value{
		Integer:    NewInteger(7),
		ByteString: NewString("seven"),
		List:       NewList(NewInteger(7)),
		Dictionary: NewDictionary(Entry{"n", NewInteger(7)}),
	}
	for kind, v := range values {
		assert.Equal(t, kind, v.Kind())

		_, err := v.Int()
		assert.Equal(t, kind == Integer, err == nil, "Int on %s", kind)
		_, err = v.Bytes()
		assert.Equal(t, kind == ByteString, err == nil, "Bytes on %s", kind)
		_, err = v.List()
		assert.Equal(t, kind == List, err == nil, "List on %s", kind)
		_, err = v.Dict()
		assert.Equal(t, kind == Dictionary, err == nil, "Dict on %s", kind)
	}
}

func TestTypeMismatchError(t *testing.T) {
	_, err := NewString("x").Int()
	var tm *TypeMismatchError
	if assert.True(t, errors.As(err, &tm)) {
		assert.Equal(t, Integer, tm.Want)
		assert.Equal(t, ByteString, tm.Got)
		assert.Equal(t, "bencode: value is a byte string, not a integer", tm.Error())
	}
}

func TestNewDictionaryDuplicatePanics(t *testing.T) {
	assert.Panics(t, func() {
		NewDictionary(Entry{"a", NewInteger(1)}, Entry{"a", NewInteger(2)})
	})
}

func TestConstructorsCopy(t *testing.T) {
	raw := []byte("abc")
	v := NewByteString(raw)
	raw[0] = 'x'
	b, _ := v.Bytes()
	assert.Equal(t, []byte("abc"), b)

	items := []*Value{NewInteger(1)}
	l := NewList(items...)
	items[0] = NewInteger(2)
	got, _ := l.List()
	assert.True(t, NewInteger(1).Equal(got[0]))
}

func TestValueEqual(t *testing.T) {
	a := NewDictionary(Entry{"a", NewInteger(1)}, Entry{"b", NewString("x")})
	b := NewDictionary(Entry{"b", NewString("x")}, Entry{"a", NewInteger(1)})
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(NewDictionary(Entry{"a", NewInteger(1)})))
	assert.False(t, NewList(NewInteger(1)).Equal(NewList(NewString("1"))))
	assert.False(t, NewInteger(1).Equal(nil))
}

func TestValueInterface(t *testing.T) {
	v := NewDictionary(
		Entry{"n", NewInteger(3)},
		Entry{"l", NewList(NewString("a"))},
	)
	assert.Equal(t, map[string]any{
		"n": int64(3),
		"l": []any{[]byte("a")},
	}, v.Interface())
}

func TestValueString(t *testing.T) {
	v := NewDictionary(Entry{"k", NewList(NewInteger(1), NewString("s"))})
	assert.Equal(t, `{"k": [1, "s"]}`, v.String())
}

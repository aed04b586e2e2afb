package bencode

import (
	"bytes"
	"fmt"
	"math"

	"github.com/pkg/errors"
)

const DefaultMaxDepth = 512

type decodeOptions struct {
	strictKeyOrder bool
	allowTrailing  bool
	maxDepth       int
}

type DecodeOption func(o *decodeOptions)

// WithStrictKeyOrder rejects dictionaries whose keys are not in ascending
// byte order, as canonical bencode requires.
func WithStrictKeyOrder() DecodeOption {
	return func(o *decodeOptions) {
		o.strictKeyOrder = true
	}
}

// WithTrailingData lets Decode ignore bytes following the top-level value.
func WithTrailingData() DecodeOption {
	return func(o *decodeOptions) {
		o.allowTrailing = true
	}
}

// WithMaxDepth bounds how deeply lists and dictionaries may nest.
func WithMaxDepth(depth int) DecodeOption {
	return func(o *decodeOptions) {
		if depth > 0 {
			o.maxDepth = depth
		}
	}
}

func newDecodeOptions(opts []DecodeOption) *decodeOptions {
	o := &decodeOptions{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Decode parses exactly one bencoded value from buf. Unless WithTrailingData
// is given, the value must span the whole buffer. The returned tree does not
// share memory with buf.
func Decode(buf []byte, opts ...DecodeOption) (*Value, error) {
	o := newDecodeOptions(opts)
	v, pos, err := o.decodeAny(bytes.Clone(buf), 0, 0)
	if err != nil {
		return nil, err
	}
	if !o.allowTrailing && pos != len(buf) {
		return nil, formatError(pos, "trailing data after value")
	}
	return v, nil
}

// DecodePrefix parses the value at the start of buf and returns the offset
// just past it. Bytes after that offset are left to the caller.
func DecodePrefix(buf []byte, opts ...DecodeOption) (*Value, int, error) {
	o := newDecodeOptions(opts)
	v, pos, err := o.decodeAny(bytes.Clone(buf), 0, 0)
	if err != nil {
		return nil, 0, err
	}
	return v, pos, nil
}

func formatError(pos int, format string, args ...any) error {
	return errors.WithStack(&FormatError{Offset: pos, Msg: fmt.Sprintf(format, args...)})
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func (o *decodeOptions) decodeAny(buf []byte, pos int, depth int) (*Value, int, error) {
	if pos >= len(buf) {
		return nil, pos, formatError(pos, "unexpected end of input")
	}
	switch c := buf[pos]; {
	case isDigit(c):
		s, next, err := decodeBytes(buf, pos)
		if err != nil {
			return nil, pos, err
		}
		return &Value{kind: ByteString, s: s}, next, nil
	case c == 'i':
		i, next, err := decodeInt(buf, pos)
		if err != nil {
			return nil, pos, err
		}
		return &Value{kind: Integer, i: i}, next, nil
	case c == 'l':
		return o.decodeList(buf, pos, depth)
	case c == 'd':
		return o.decodeDict(buf, pos, depth)
	default:
		return nil, pos, formatError(pos, "invalid value type %q", c)
	}
}

func (o *decodeOptions) decodeList(buf []byte, pos int, depth int) (*Value, int, error) {
	if depth >= o.maxDepth {
		return nil, pos, formatError(pos, "nesting too deep")
	}
	ret := make([]*Value, 0)
	i := pos + 1
	for {
		if i >= len(buf) {
			return nil, i, formatError(i, "unterminated list")
		}
		if buf[i] == 'e' {
			return &Value{kind: List, l: ret, raw: buf[pos : i+1]}, i + 1, nil
		}
		item, next, err := o.decodeAny(buf, i, depth+1)
		if err != nil {
			return nil, i, err
		}
		ret = append(ret, item)
		i = next
	}
}

func (o *decodeOptions) decodeDict(buf []byte, pos int, depth int) (*Value, int, error) {
	if depth >= o.maxDepth {
		return nil, pos, formatError(pos, "nesting too deep")
	}
	ret := newDict()
	var prev []byte
	i := pos + 1
	for {
		if i >= len(buf) {
			return nil, i, formatError(i, "unterminated dictionary")
		}
		if buf[i] == 'e' {
			return &Value{kind: Dictionary, d: ret, raw: buf[pos : i+1]}, i + 1, nil
		}
		if !isDigit(buf[i]) {
			return nil, i, formatError(i, "dictionary key must be string")
		}
		key, next, err := decodeBytes(buf, i)
		if err != nil {
			return nil, i, err
		}
		if _, exists := ret.Get(string(key)); exists {
			return nil, i, formatError(i, "duplicate key %q", key)
		}
		if o.strictKeyOrder && prev != nil && bytes.Compare(key, prev) < 0 {
			return nil, i, formatError(i, "dictionary keys not sorted: %q after %q", key, prev)
		}
		if next < len(buf) && buf[next] == 'e' {
			return nil, next, formatError(next, "missing value for key %q", key)
		}
		item, after, err := o.decodeAny(buf, next, depth+1)
		if err != nil {
			return nil, next, err
		}
		ret.add(string(key), item)
		prev = key
		i = after
	}
}

// decodeBytes reads <len>:<payload> starting at pos and returns a copy of
// the payload.
func decodeBytes(buf []byte, pos int) ([]byte, int, error) {
	i := pos
	var n uint64
	for ; i < len(buf) && isDigit(buf[i]); i++ {
		n = n*10 + uint64(buf[i]-'0')
		if n > uint64(len(buf)) {
			return nil, pos, formatError(pos, "string length exceeds input")
		}
	}
	if i >= len(buf) || bytes.IndexByte(buf[i:], ':') < 0 {
		return nil, pos, formatError(pos, "invalid string: missing colon")
	}
	if buf[i] != ':' {
		return nil, pos, formatError(i, "invalid string length: non-digit %q", buf[i])
	}
	if i == pos {
		return nil, pos, formatError(pos, "invalid string length: no digits")
	}
	if i-pos > 1 && buf[pos] == '0' {
		return nil, pos, formatError(pos, "invalid string length: leading zero")
	}
	start := i + 1
	if uint64(len(buf)-start) < n {
		return nil, pos, formatError(start, "unexpected end of input: string needs %d bytes, %d left", n, len(buf)-start)
	}
	end := start + int(n)
	s := make([]byte, n)
	copy(s, buf[start:end])
	return s, end, nil
}

func decodeInt(buf []byte, pos int) (int64, int, error) {
	i := pos + 1
	negative := false
	if i < len(buf) && buf[i] == '-' {
		negative = true
		i++
	}
	if i >= len(buf) {
		return 0, pos, formatError(i, "unexpected end of input in integer")
	}
	if !isDigit(buf[i]) {
		return 0, pos, formatError(i, "invalid integer: no digits")
	}
	begin := i
	if buf[begin] == '0' {
		if begin+1 < len(buf) && isDigit(buf[begin+1]) {
			return 0, pos, formatError(begin, "invalid integer: leading zero")
		}
		if negative {
			return 0, pos, formatError(begin, "invalid integer: negative zero")
		}
	}

	limit := uint64(math.MaxInt64)
	if negative {
		limit++
	}
	var mag uint64
	for ; i < len(buf) && isDigit(buf[i]); i++ {
		d := uint64(buf[i] - '0')
		if mag > (limit-d)/10 {
			return 0, pos, formatError(begin, "integer overflow")
		}
		mag = mag*10 + d
	}
	if i >= len(buf) {
		return 0, pos, formatError(i, "unexpected end of input in integer")
	}
	if buf[i] != 'e' {
		return 0, pos, formatError(i, "invalid integer: missing 'e'")
	}
	if negative {
		return -int64(mag), i + 1, nil
	}
	return int64(mag), i + 1, nil
}

package bencode

import (
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Encode serializes v in canonical form: dictionary keys are written in
// ascending byte order regardless of the order they were decoded in.
func Encode(v *Value) ([]byte, error) {
	builder := strings.Builder{}
	err := encodeAny(&builder, v)
	if err != nil {
		return nil, err
	}
	return []byte(builder.String()), nil
}

func encodeInt(builder *strings.Builder, val int64) {
	builder.WriteByte('i')
	builder.WriteString(strconv.FormatInt(val, 10))
	builder.WriteByte('e')
}

func encodeBytes(builder *strings.Builder, data []byte) {
	builder.WriteString(strconv.Itoa(len(data)))
	builder.WriteByte(':')
	builder.Write(data)
}

func encodeDict(builder *strings.Builder, d *Dict) error {
	keys := d.Keys()
	sort.Strings(keys)
	builder.WriteByte('d')
	for _, k := range keys {
		encodeBytes(builder, []byte(k))
		item, _ := d.Get(k)
		err := encodeAny(builder, item)
		if err != nil {
			return err
		}
	}
	builder.WriteByte('e')
	return nil
}

func encodeList(builder *strings.Builder, list []*Value) error {
	builder.WriteByte('l')
	for _, item := range list {
		err := encodeAny(builder, item)
		if err != nil {
			return err
		}
	}
	builder.WriteByte('e')
	return nil
}

func encodeAny(builder *strings.Builder, v *Value) error {
	if v == nil {
		return errors.New("bencode: cannot encode nil value")
	}
	switch v.kind {
	case Integer:
		encodeInt(builder, v.i)
	case ByteString:
		encodeBytes(builder, v.s)
	case List:
		return encodeList(builder, v.l)
	case Dictionary:
		return encodeDict(builder, v.d)
	default:
		return errors.Errorf("bencode: unsupported kind %s", v.kind)
	}
	return nil
}

package bencode

import "fmt"

// FormatError reports malformed bencode. Offset is the cursor position at
// which decoding gave up.
type FormatError struct {
	Offset int
	Msg    string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("bencode: %s at offset %d", e.Msg, e.Offset)
}

// TypeMismatchError is returned by the Value accessors when the stored kind
// differs from the requested one.
type TypeMismatchError struct {
	Want Kind
	Got  Kind
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("bencode: value is a %s, not a %s", e.Got, e.Want)
}

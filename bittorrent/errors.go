package bittorrent

import (
	"fmt"

	"github.com/pkg/errors"
)

// SchemaError reports a torrent document that decoded fine but lacks a
// required field or holds it with the wrong bencode kind.
type SchemaError struct {
	Field string
	Msg   string
}

func (e *SchemaError) Error() string {
	return "invalid torrent file: " + e.Msg
}

func schemaError(field string, format string, args ...any) error {
	return errors.WithStack(&SchemaError{Field: field, Msg: fmt.Sprintf(format, args...)})
}

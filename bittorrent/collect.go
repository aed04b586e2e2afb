package bittorrent

import (
	"fmt"
	"math"
	"strings"

	"github.com/sirupsen/logrus"

	"torrent-meta/bencode"
)

// collector decides what happens to a files entry that cannot be read.
// Lenient collectors drop it, strict ones turn it into a SchemaError.
type collector struct {
	field  string
	strict bool
}

func (c collector) skip(index int, reason string) error {
	if c.strict {
		return schemaError(fmt.Sprintf("%s[%d]", c.field, index), "invalid %s entry %d: %s", c.field, index, reason)
	}
	logrus.WithField("index", index).Debugf("Ignoring malformed %s entry data: %s", c.field, reason)
	return nil
}

// collectFiles reads the multi-file list. The returned total is the sum of
// the lengths of the kept entries. Entries with a negative length, with no
// usable path component, or that would overflow the total are skipped.
func (c collector) collectFiles(list []*bencode.Value) ([]File, int64, error) {
	files := make([]File, 0, len(list))
	var total int64
	for i, item := range list {
		if item.Kind() != bencode.Dictionary {
			if err := c.skip(i, "not a dictionary"); err != nil {
				return nil, 0, err
			}
			continue
		}
		length, ok := bencode.GetInt(item, "length")
		if !ok {
			if err := c.skip(i, "missing length"); err != nil {
				return nil, 0, err
			}
			continue
		}
		if length < 0 {
			if err := c.skip(i, "negative length"); err != nil {
				return nil, 0, err
			}
			continue
		}
		if total > math.MaxInt64-length {
			if err := c.skip(i, "total size overflows"); err != nil {
				return nil, 0, err
			}
			continue
		}
		components, ok := bencode.GetList(item, "path")
		if !ok {
			if err := c.skip(i, "missing path"); err != nil {
				return nil, 0, err
			}
			continue
		}
		parts := make([]string, 0, len(components))
		for _, p := range components {
			b, err := p.Bytes()
			if err != nil {
				if err := c.skip(i, "non-string path component"); err != nil {
					return nil, 0, err
				}
				continue
			}
			parts = append(parts, string(b))
		}
		if len(parts) == 0 {
			if err := c.skip(i, "empty path"); err != nil {
				return nil, 0, err
			}
			continue
		}
		files = append(files, File{
			Path:   strings.Join(parts, "/"),
			Length: length,
		})
		total += length
	}
	return files, total, nil
}

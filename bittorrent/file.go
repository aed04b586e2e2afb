package bittorrent

import (
	"os"

	"github.com/juju/errors"

	"torrent-meta/bencode"
)

// Options selects how strictly a torrent file is decoded and read. The zero
// value gives the permissive defaults.
type Options struct {
	StrictKeyOrder    bool
	AllowTrailingData bool
	MaxDepth          int
	StrictFiles       bool
}

func (o Options) decodeOptions() []bencode.DecodeOption {
	var r []bencode.DecodeOption
	if o.StrictKeyOrder {
		r = append(r, bencode.WithStrictKeyOrder())
	}
	if o.AllowTrailingData {
		r = append(r, bencode.WithTrailingData())
	}
	if o.MaxDepth > 0 {
		r = append(r, bencode.WithMaxDepth(o.MaxDepth))
	}
	return r
}

func (o Options) extractOptions() []ExtractOption {
	var r []ExtractOption
	if o.StrictFiles {
		r = append(r, WithStrictFiles())
	}
	return r
}

// ReadTorrentFile loads the whole file into memory.
func ReadTorrentFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Annotatef(err, "could not read torrent file %s", path)
	}
	return data, nil
}

func ParseTorrent(data []byte, opts Options) (*Torrent, error) {
	root, err := bencode.Decode(data, opts.decodeOptions()...)
	if err != nil {
		return nil, errors.Trace(err)
	}
	t, err := Extract(root, opts.extractOptions()...)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return t, nil
}

func ParseTorrentFile(path string, opts Options) (*Torrent, error) {
	data, err := ReadTorrentFile(path)
	if err != nil {
		return nil, err
	}
	t, err := ParseTorrent(data, opts)
	if err != nil {
		return nil, errors.Annotatef(err, "parse %s", path)
	}
	return t, nil
}

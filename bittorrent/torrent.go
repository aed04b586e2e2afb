package bittorrent

import (
	"crypto/sha1"
	"encoding/hex"

	"github.com/pkg/errors"

	"torrent-meta/bencode"
)

const HashSize = 20

type Hash [HashSize]byte

func (h Hash) HexString() string {
	return hex.EncodeToString(h[:])
}

type File struct {
	Path   string
	Length int64
}

// Torrent is the metadata of a .torrent file. It is filled once by Extract
// and not changed afterwards.
type Torrent struct {
	Announce     string
	AnnounceList [][]string
	Name         string
	PieceLength  int64
	Pieces       []Hash
	Files        []File
	TotalSize    int64
	CreatedBy    string
	CreationDate int64
	Comment      string
	Private      bool
	SingleFile   bool
	// InfoHash is the SHA-1 of the info dictionary as it appears in the
	// file. Documents built in memory hash their canonical encoding.
	InfoHash Hash
}

type extractOptions struct {
	strictFiles bool
}

type ExtractOption func(o *extractOptions)

// WithStrictFiles makes a malformed entry of the files list fatal instead of
// dropping it.
func WithStrictFiles() ExtractOption {
	return func(o *extractOptions) {
		o.strictFiles = true
	}
}

// Extract maps a decoded document onto the torrent schema. Missing required
// fields yield a SchemaError; optional ones fall back to zero values.
func Extract(root *bencode.Value, opts ...ExtractOption) (*Torrent, error) {
	o := &extractOptions{}
	for _, opt := range opts {
		opt(o)
	}
	if root == nil || root.Kind() != bencode.Dictionary {
		return nil, schemaError("", "root must be dictionary")
	}

	t := &Torrent{}
	t.Announce, _ = bencode.GetString(root, "announce")
	t.AnnounceList = announceTiers(root)
	t.CreatedBy, _ = bencode.GetString(root, "created by")
	t.CreationDate, _ = bencode.GetInt(root, "creation date")
	t.Comment, _ = bencode.GetString(root, "comment")

	info, ok := bencode.GetDict(root, "info")
	if !ok {
		return nil, schemaError("info", "missing info dictionary")
	}
	err := t.parseInfo(info, collector{field: "files", strict: o.strictFiles})
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Torrent) parseInfo(info *bencode.Value, files collector) error {
	var ok bool
	t.PieceLength, ok = bencode.GetInt(info, "piece length")
	if !ok {
		return schemaError("piece length", "missing piece length")
	}

	raw, ok := bencode.GetBytes(info, "pieces")
	if !ok {
		return schemaError("pieces", "missing pieces")
	}
	pieces, err := splitPieces(raw)
	if err != nil {
		return err
	}
	t.Pieces = pieces

	t.Name, _ = bencode.GetString(info, "name")
	private, _ := bencode.GetInt(info, "private")
	t.Private = private == 1

	t.InfoHash, err = infoHash(info)
	if err != nil {
		return err
	}

	if length, ok := bencode.GetInt(info, "length"); ok {
		t.SingleFile = true
		t.TotalSize = length
		t.Files = []File{{Path: t.Name, Length: length}}
		return nil
	}
	if list, ok := bencode.GetList(info, "files"); ok {
		t.Files, t.TotalSize, err = files.collectFiles(list)
		return err
	}
	if bencode.CheckPath(info, "files") {
		return schemaError("files", "files must be a list")
	}
	return schemaError("length", "missing length or files")
}

func infoHash(info *bencode.Value) (Hash, error) {
	if raw := info.Raw(); raw != nil {
		return sha1.Sum(raw), nil
	}
	encoded, err := bencode.Encode(info)
	if err != nil {
		return Hash{}, errors.Wrap(err, "encode info dictionary")
	}
	return sha1.Sum(encoded), nil
}

// splitPieces cuts the concatenated piece hashes into 20 byte entries. A
// length that is not a multiple of 20 means the field is corrupt.
func splitPieces(raw []byte) ([]Hash, error) {
	if len(raw)%HashSize != 0 {
		return nil, schemaError("pieces", "pieces length %d not a multiple of %d", len(raw), HashSize)
	}
	r := make([]Hash, len(raw)/HashSize)
	for i := range r {
		copy(r[i][:], raw[i*HashSize:])
	}
	return r, nil
}

// announceTiers reads the optional announce-list. Entries that are not
// strings are dropped, and so are tiers left empty.
func announceTiers(root *bencode.Value) [][]string {
	tiers, ok := bencode.GetList(root, "announce-list")
	if !ok {
		return nil
	}
	var r [][]string
	for _, tier := range tiers {
		urls, err := tier.List()
		if err != nil {
			continue
		}
		var keep []string
		for _, u := range urls {
			if b, err := u.Bytes(); err == nil {
				keep = append(keep, string(b))
			}
		}
		if len(keep) > 0 {
			r = append(r, keep)
		}
	}
	return r
}

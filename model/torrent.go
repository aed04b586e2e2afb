package model

import (
	"time"

	"torrent-meta/bittorrent"
)

// Torrent is the printable summary of a parsed torrent file.
type Torrent struct {
	Source       string     `json:"source" yaml:"source"`
	InfoHash     string     `json:"info_hash" yaml:"info_hash"`
	Name         string     `json:"name" yaml:"name"`
	Announce     string     `json:"announce,omitempty" yaml:"announce,omitempty"`
	AnnounceList [][]string `json:"announce_list,omitempty" yaml:"announce_list,omitempty"`
	PieceLength  int64      `json:"piece_length" yaml:"piece_length"`
	Pieces       int        `json:"pieces" yaml:"pieces"`
	Length       int64      `json:"length" yaml:"length"`
	SingleFile   bool       `json:"single_file" yaml:"single_file"`
	Private      bool       `json:"private,omitempty" yaml:"private,omitempty"`
	Files        []*File    `json:"files" yaml:"files"`
	CreatedBy    string     `json:"created_by,omitempty" yaml:"created_by,omitempty"`
	CreatedAt    *time.Time `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	Comment      string     `json:"comment,omitempty" yaml:"comment,omitempty"`
}

func NewTorrentFromMetadata(source string, t *bittorrent.Torrent) *Torrent {
	r := &Torrent{
		Source:       source,
		InfoHash:     t.InfoHash.HexString(),
		Name:         t.Name,
		Announce:     t.Announce,
		AnnounceList: t.AnnounceList,
		PieceLength:  t.PieceLength,
		Pieces:       len(t.Pieces),
		Length:       t.TotalSize,
		SingleFile:   t.SingleFile,
		Private:      t.Private,
		Files:        make([]*File, 0, len(t.Files)),
		CreatedBy:    t.CreatedBy,
		Comment:      t.Comment,
	}
	if t.CreationDate > 0 {
		created := time.Unix(t.CreationDate, 0).UTC()
		r.CreatedAt = &created
	}
	for _, f := range t.Files {
		r.Files = append(r.Files, NewFileFromMetadata(f))
	}
	return r
}

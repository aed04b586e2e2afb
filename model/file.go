package model

import "torrent-meta/bittorrent"

type File struct {
	Path   string `json:"path" yaml:"path"`
	Length int64  `json:"length" yaml:"length"`
}

func NewFileFromMetadata(file bittorrent.File) *File {
	return &File{
		Path:   file.Path,
		Length: file.Length,
	}
}

package inspector

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"torrent-meta/bencode"
	"torrent-meta/bittorrent"
)

func torrentBytes(t *testing.T, name string, files ...bittorrent.File) []byte {
	t.Helper()
	info := []bencode.Entry{
		{Key: "name", Value: bencode.NewString(name)},
		{Key: "piece length", Value: bencode.NewInteger(16384)},
		{Key: "pieces", Value: bencode.NewByteString(make([]byte, 40))},
	}
	if len(files) == 1 {
		info = append(info, bencode.Entry{Key: "length", Value: bencode.NewInteger(files[0].Length)})
	} else {
		list := make([]*bencode.Value, 0, len(files))
		for _, f := range files {
			list = append(list, bencode.NewDictionary(
				bencode.Entry{Key: "length", Value: bencode.NewInteger(f.Length)},
				bencode.Entry{Key: "path", Value: bencode.NewList(bencode.NewString(f.Path))},
			))
		}
		info = append(info, bencode.Entry{Key: "files", Value: bencode.NewList(list...)})
	}
	root := bencode.NewDictionary(
		bencode.Entry{Key: "announce", Value: bencode.NewString("http://tracker.example/announce")},
		bencode.Entry{Key: "info", Value: bencode.NewDictionary(info...)},
	)
	data, err := bencode.Encode(root)
	require.NoError(t, err)
	return data
}

func writeFiles(t *testing.T, files map[string][]byte) string {
	t.Helper()
	dir := t.TempDir()
	for name, data := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0644))
	}
	return dir
}

func TestInspect(t *testing.T) {
	single := torrentBytes(t, "a.txt", bittorrent.File{Path: "a.txt", Length: 5})
	dir := writeFiles(t, map[string][]byte{
		"a.torrent":    single,
		"copy.torrent": single,
		"b.torrent":    torrentBytes(t, "dir", bittorrent.File{Path: "x", Length: 1}, bittorrent.File{Path: "y", Length: 2}),
		"bad.torrent":  []byte("d4:info"),
	})
	paths := []string{
		filepath.Join(dir, "a.torrent"),
		filepath.Join(dir, "bad.torrent"),
		filepath.Join(dir, "b.torrent"),
		filepath.Join(dir, "copy.torrent"),
		filepath.Join(dir, "missing.torrent"),
	}

	progress := &bytes.Buffer{}
	results, err := NewInspector(Options{Workers: 2, Progress: progress}).Inspect(context.Background(), paths)
	require.NoError(t, err)
	require.Len(t, results, len(paths))
	for i, r := range results {
		assert.Equal(t, paths[i], r.Path)
	}

	assert.NoError(t, results[0].Err)
	assert.False(t, results[0].Duplicate)
	assert.Error(t, results[1].Err)
	assert.Nil(t, results[1].Torrent)
	if assert.NoError(t, results[2].Err) {
		assert.Equal(t, int64(3), results[2].Torrent.TotalSize)
	}
	assert.True(t, results[3].Duplicate)
	assert.Error(t, results[4].Err)
	assert.NotEmpty(t, progress.String())
}

func TestInspectDistinctWithSmallFilter(t *testing.T) {
	files := map[string][]byte{}
	var paths []string
	for i := 0; i < 40; i++ {
		name := fmt.Sprintf("t%02d.torrent", i)
		files[name] = torrentBytes(t, name, bittorrent.File{Path: name, Length: int64(i + 1)})
		paths = append(paths, name)
	}
	files["again.torrent"] = files["t07.torrent"]
	paths = append(paths, "again.torrent")
	dir := writeFiles(t, files)
	for i := range paths {
		paths[i] = filepath.Join(dir, paths[i])
	}

	results, err := NewInspector(Options{Workers: 4, DedupeBits: 64}).Inspect(context.Background(), paths)
	require.NoError(t, err)
	for _, r := range results[:40] {
		require.NoError(t, r.Err)
		assert.False(t, r.Duplicate, "%s flagged as duplicate", r.Path)
	}
	assert.True(t, results[40].Duplicate)

	out := &bytes.Buffer{}
	require.NoError(t, Render(out, "json", results))
	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Len(t, decoded, 40)
}

func TestInspectCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewInspector(Options{}).Inspect(ctx, []string{"a", "b"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRenderText(t *testing.T) {
	tor := &bittorrent.Torrent{
		Announce:    "http://tracker.example/announce",
		Name:        "dir",
		PieceLength: 16384,
		Pieces:      make([]bittorrent.Hash, 2),
		Files:       []bittorrent.File{{Path: "d/a.txt", Length: 3}, {Path: "b.txt", Length: 4}},
		TotalSize:   7,
	}
	out := &bytes.Buffer{}
	err := Render(out, "text", []Result{
		{Path: "skip", Err: assert.AnError},
		{Path: "dir.torrent", Torrent: tor},
		{Path: "dup.torrent", Torrent: tor, Duplicate: true},
	})
	require.NoError(t, err)
	assert.Equal(t, `Name: dir
Announce URL: http://tracker.example/announce
Piece Length: 16384 bytes
Total Size: 7 bytes
Number of Pieces: 2

Files:
d/a.txt (3 bytes)
b.txt (4 bytes)
`, out.String())
}

func TestRenderStructured(t *testing.T) {
	tor := &bittorrent.Torrent{Name: "a.txt", TotalSize: 5, SingleFile: true, Files: []bittorrent.File{{Path: "a.txt", Length: 5}}}
	results := []Result{{Path: "a.torrent", Torrent: tor}}

	out := &bytes.Buffer{}
	require.NoError(t, Render(out, "json", results))
	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "a.txt", decoded[0]["name"])
	assert.Equal(t, "a.torrent", decoded[0]["source"])

	out.Reset()
	require.NoError(t, Render(out, "yaml", results))
	assert.Contains(t, out.String(), "name: a.txt")

	assert.Error(t, Render(out, "xml", results))
}

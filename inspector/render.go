package inspector

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/juju/errors"
	"gopkg.in/yaml.v3"

	"torrent-meta/bittorrent"
	"torrent-meta/model"
)

// Render writes the successfully parsed, non-duplicate results in the given
// format: "text", "json" or "yaml".
func Render(w io.Writer, format string, results []Result) error {
	kept := make([]Result, 0, len(results))
	for _, r := range results {
		if r.Torrent != nil && !r.Duplicate {
			kept = append(kept, r)
		}
	}

	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Trace(enc.Encode(summaries(kept)))
	case "yaml":
		enc := yaml.NewEncoder(w)
		if err := enc.Encode(summaries(kept)); err != nil {
			return errors.Trace(err)
		}
		return errors.Trace(enc.Close())
	case "text":
		for i, r := range kept {
			if i > 0 {
				fmt.Fprintln(w)
			}
			if err := WriteText(w, r.Torrent); err != nil {
				return err
			}
		}
		return nil
	default:
		return errors.NotSupportedf("format %q", format)
	}
}

func summaries(results []Result) []*model.Torrent {
	r := make([]*model.Torrent, 0, len(results))
	for _, item := range results {
		r = append(r, model.NewTorrentFromMetadata(item.Path, item.Torrent))
	}
	return r
}

func WriteText(w io.Writer, t *bittorrent.Torrent) error {
	_, err := fmt.Fprintf(w, "Name: %s\nAnnounce URL: %s\nPiece Length: %d bytes\nTotal Size: %d bytes\nNumber of Pieces: %d\n\nFiles:\n",
		t.Name, t.Announce, t.PieceLength, t.TotalSize, len(t.Pieces))
	if err != nil {
		return errors.Trace(err)
	}
	for _, f := range t.Files {
		_, err = fmt.Fprintf(w, "%s (%d bytes)\n", f.Path, f.Length)
		if err != nil {
			return errors.Trace(err)
		}
	}
	return nil
}

package inspector

import (
	"context"
	"io"

	"github.com/juju/errors"
	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"torrent-meta/bittorrent"
	"torrent-meta/common/util"
)

type Options struct {
	Workers    int
	Parse      bittorrent.Options
	DedupeBits uint64
	// Progress receives a progress bar when set.
	Progress io.Writer
}

type Result struct {
	Path    string
	Torrent *bittorrent.Torrent
	// Duplicate is set when an earlier path carried the same info hash.
	Duplicate bool
	Err       error
}

type Inspector struct {
	opts Options
}

func NewInspector(opts Options) *Inspector {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.DedupeBits == 0 {
		opts.DedupeBits = 1 << 20
	}
	return &Inspector{opts: opts}
}

// Inspect parses every path with a bounded number of workers. Results come
// back in input order. A file that fails to parse only sets Result.Err; the
// returned error is reserved for cancellation.
func (in *Inspector) Inspect(ctx context.Context, paths []string) ([]Result, error) {
	results := make([]Result, len(paths))

	var bar *progressbar.ProgressBar
	if in.opts.Progress != nil {
		bar = progressbar.NewOptions(len(paths),
			progressbar.OptionSetWriter(in.opts.Progress),
			progressbar.OptionSetDescription("inspecting"),
		)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(in.opts.Workers)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = in.inspectOne(path)
			if bar != nil {
				_ = bar.Add(1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Trace(err)
	}
	if bar != nil {
		_ = bar.Finish()
	}

	in.markDuplicates(results)
	return results, nil
}

// markDuplicates flags every result whose info hash appeared at an earlier
// index. The Bloom filter only screens out hashes never seen; each hit is
// confirmed against the exact set.
func (in *Inspector) markDuplicates(results []Result) {
	filter := util.NewBloomFilter(in.opts.DedupeBits)
	seen := make(map[bittorrent.Hash]struct{}, len(results))
	for i := range results {
		if results[i].Torrent == nil {
			continue
		}
		hash := results[i].Torrent.InfoHash
		if filter.Exists(hash[:]) {
			if _, ok := seen[hash]; ok {
				results[i].Duplicate = true
				logrus.WithField("path", results[i].Path).Infof("Info hash %s already seen, skipping.", hash.HexString())
				continue
			}
		}
		filter.Add(hash[:])
		seen[hash] = struct{}{}
	}
	logrus.Debugf("Inspected %d files with %d distinct info hashes.", len(results), filter.Count())
}

func (in *Inspector) inspectOne(path string) Result {
	t, err := bittorrent.ParseTorrentFile(path, in.opts.Parse)
	if err != nil {
		logrus.WithField("path", path).Warnf("Failed to parse torrent. %v", err)
		return Result{Path: path, Err: err}
	}
	logrus.WithField("path", path).Debugf("Parsed torrent %s with %d files.", t.Name, len(t.Files))
	return Result{Path: path, Torrent: t}
}

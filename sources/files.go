package sources

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/betterleaks/kwfsm/logging"
	"github.com/charlievieth/fastwalk"
	"golang.org/x/exp/slices"
)

// Files expands paths into the regular files beneath them, sorted. Missing
// paths and unreadable directories are logged and skipped.
func Files(ctx context.Context, paths []string) ([]string, error) {
	var (
		mu  sync.Mutex
		out []string
	)
	conf := &fastwalk.Config{Follow: false}

	for _, root := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		info, err := os.Stat(root)
		if err != nil {
			logging.Warn().Err(err).Str("path", root).Msg("skipping")
			continue
		}
		if !info.IsDir() {
			out = append(out, root)
			continue
		}

		// fastwalk invokes the callback from several goroutines
		err = fastwalk.Walk(conf, root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				logging.Warn().Err(err).Str("path", path).Msg("skipping")
				if d != nil && d.IsDir() {
					return fastwalk.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				if path != root && len(d.Name()) > 1 && d.Name()[0] == '.' {
					logging.Trace().Str("path", path).Msg("skipping hidden directory")
					return fastwalk.SkipDir
				}
				return nil
			}
			if !d.Type().IsRegular() {
				return nil
			}
			mu.Lock()
			out = append(out, filepath.Clean(path))
			mu.Unlock()
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	slices.Sort(out)
	return out, nil
}

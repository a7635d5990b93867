package scrape

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"partsimport/internal"
	"partsimport/internal/config"
	"partsimport/internal/pipeline"
	"partsimport/internal/util"
)

var ErrSnapshotNotFound = errors.New("no saved snapshot for search term")

// DirSource replays snapshots saved as JSON files. A file named after the
// search term slug ("tilt-formula-deck.json") wins; otherwise the first file,
// in name order, whose raw title contains the search term as whole words.
type DirSource struct {
	dir string
}

func NewDirSource(dir string) *DirSource {
	return &DirSource{dir: dir}
}

func NewDirSourceFromConfig(cfg config.Config) (*DirSource, error) {
	if err := cfg.Require("SNAPSHOT_DIR", cfg.SnapshotDir); err != nil {
		return nil, err
	}
	return NewDirSource(cfg.SnapshotDir), nil
}

func (d *DirSource) Acquire(ctx context.Context, _ internal.Credentials, searchTerm string) (internal.RawScrapeSnapshot, internal.StageStatus, error) {
	status := internal.StageStatus{}
	if err := ctx.Err(); err != nil {
		return internal.RawScrapeSnapshot{}, status, err
	}

	slug := Slug(searchTerm)
	if slug == "" {
		return internal.RawScrapeSnapshot{}, status, fmt.Errorf("%w: empty search term", ErrSnapshotNotFound)
	}

	path := filepath.Join(d.dir, slug+".json")
	if _, err := os.Stat(path); err != nil {
		path, err = d.scan(ctx, searchTerm)
		if err != nil {
			return internal.RawScrapeSnapshot{}, status, err
		}
	}
	status[StageSearch] = internal.StageOK

	snap, err := pipeline.LoadSnapshot("json", path)
	if err != nil {
		return internal.RawScrapeSnapshot{}, status, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	status[StageOpen] = internal.StageOK
	return snap, status, nil
}

func (d *DirSource) scan(ctx context.Context, searchTerm string) (string, error) {
	paths, err := filepath.Glob(filepath.Join(d.dir, "*.json"))
	if err != nil {
		return "", err
	}
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		snap, err := pipeline.LoadSnapshot("json", path)
		if err != nil {
			continue
		}
		if util.ContainsWord(snap.RawTitle, searchTerm) {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: %q in %s", ErrSnapshotNotFound, searchTerm, d.dir)
}

// Slug is the file name stem a snapshot for searchTerm is saved under.
func Slug(searchTerm string) string {
	return strings.ReplaceAll(util.WordKey(searchTerm), " ", "-")
}

package listener

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"partsimport/internal"
	"partsimport/internal/config"
	"partsimport/internal/logger"
	"partsimport/internal/pipeline"
)

type Processor interface {
	Process(snap internal.RawScrapeSnapshot, searchTerm string) (internal.ProductRecord, error)
}

// Service watches the snapshot directory and turns every new or changed
// snapshot into a record file (and an xlsx sheet when auto-export is on).
// The search term is the file stem with dashes read as spaces.
type Service struct {
	cfg       config.Config
	processor Processor
	log       *logger.Logger
	failed    map[string]time.Time
}

type CycleResult struct {
	Scanned   int
	Processed int
	Skipped   int
	Failed    int
}

func NewService(cfg config.Config, processor Processor, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Discard()
	}
	return &Service{cfg: cfg, processor: processor, log: log, failed: map[string]time.Time{}}
}

func (s *Service) Run(ctx context.Context) error {
	for {
		if _, err := s.RunCycle(ctx); err != nil {
			s.log.Error("watch cycle error", "error", err)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(time.Duration(s.cfg.WatchIntervalSec) * time.Second):
		}
	}
}

// RunCycle processes each pending snapshot once. A failing snapshot is
// logged and skipped until its file changes; it never stops the cycle.
func (s *Service) RunCycle(ctx context.Context) (CycleResult, error) {
	paths, err := filepath.Glob(filepath.Join(s.cfg.SnapshotDir, "*.json"))
	if err != nil {
		return CycleResult{}, err
	}
	outDir := filepath.Join(s.cfg.OutputDir, "watch")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return CycleResult{}, err
	}

	res := CycleResult{Scanned: len(paths)}
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return res, nil
		}
		info, err := os.Stat(path)
		if err != nil {
			res.Failed++
			continue
		}
		stem := strings.TrimSuffix(filepath.Base(path), ".json")
		recordPath := filepath.Join(outDir, stem+".json")
		if !s.pending(path, info.ModTime(), recordPath) {
			res.Skipped++
			continue
		}

		if err := s.processFile(path, stem, outDir); err != nil {
			s.failed[path] = info.ModTime()
			s.log.Warn("snapshot failed", "file", filepath.Base(path), "error", err)
			res.Failed++
			continue
		}
		delete(s.failed, path)
		res.Processed++
	}

	s.log.Info("watch cycle done", "scanned", res.Scanned, "processed", res.Processed, "skipped", res.Skipped, "failed", res.Failed)
	return res, nil
}

func (s *Service) pending(path string, modTime time.Time, recordPath string) bool {
	if failedAt, ok := s.failed[path]; ok && failedAt.Equal(modTime) {
		return false
	}
	out, err := os.Stat(recordPath)
	if err != nil {
		return true
	}
	return out.ModTime().Before(modTime)
}

func (s *Service) processFile(path, stem, outDir string) error {
	snap, err := pipeline.LoadSnapshot("json", path)
	if err != nil {
		return err
	}
	rec, err := s.processor.Process(snap, SearchTermFromStem(stem))
	if err != nil {
		return err
	}

	if s.cfg.WatchAutoExport {
		if err := pipeline.ExportRecordToXLSX(rec, filepath.Join(outDir, sanitizeStem(stem)+".xlsx")); err != nil {
			return fmt.Errorf("export: %w", err)
		}
	}

	blob, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(outDir, stem+".json"), blob, 0o644)
}

func SearchTermFromStem(stem string) string {
	return strings.Join(strings.FieldsFunc(stem, func(r rune) bool { return r == '-' || r == '_' }), " ")
}

const maxStemRunes = 120

func sanitizeStem(input string) string {
	repl := strings.NewReplacer("<", "_", ">", "_", ":", "_", "/", "_", "\\", "_", "|", "_", "?", "_", "*", "_", " ", "_")
	out := []rune(repl.Replace(input))
	if len(out) > maxStemRunes {
		out = out[:maxStemRunes]
	}
	return string(out)
}

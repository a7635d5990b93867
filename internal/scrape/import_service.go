package scrape

import (
	"context"
	"errors"
	"maps"

	"golang.org/x/time/rate"

	"partsimport/internal"
	"partsimport/internal/logger"
	"partsimport/internal/pipeline"
)

const StageAcquire = "acquire"

type Processor interface {
	Process(snap internal.RawScrapeSnapshot, searchTerm string) (internal.ProductRecord, error)
}

// ImportService acquires a snapshot and runs it through the pipeline. The
// record's status carries the acquisition stages followed by the pipeline's.
type ImportService struct {
	acquirer  Acquirer
	processor Processor
	log       *logger.Logger
	limiter   *rate.Limiter
}

func NewImportService(acquirer Acquirer, processor Processor, log *logger.Logger) *ImportService {
	if log == nil {
		log = logger.Discard()
	}
	return &ImportService{
		acquirer:  acquirer,
		processor: processor,
		log:       log,
		limiter:   rate.NewLimiter(rate.Inf, 0),
	}
}

// WithRateLimit caps acquisitions against the supplier site. perMinute <= 0
// leaves them unlimited.
func (s *ImportService) WithRateLimit(perMinute float64, burst int) *ImportService {
	if perMinute <= 0 {
		s.limiter = rate.NewLimiter(rate.Inf, 0)
		return s
	}
	if burst < 1 {
		burst = 1
	}
	s.limiter = rate.NewLimiter(rate.Limit(perMinute/60), burst)
	return s
}

func (s *ImportService) Import(ctx context.Context, creds internal.Credentials, searchTerm string) (internal.ProductRecord, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return internal.ProductRecord{}, &pipeline.PipelineError{Stage: StageAcquire, Status: internal.StageStatus{}, Err: err}
	}

	snap, acquired, err := s.acquirer.Acquire(ctx, creds, searchTerm)
	if acquired == nil {
		acquired = internal.StageStatus{}
	}
	if err != nil {
		s.log.Warn("acquire failed", "search_term", searchTerm, "error", err)
		return internal.ProductRecord{}, &pipeline.PipelineError{Stage: StageAcquire, Status: maps.Clone(acquired), Err: err}
	}
	acquired[StageAcquire] = internal.StageOK

	rec, err := s.processor.Process(snap, searchTerm)
	if err != nil {
		var perr *pipeline.PipelineError
		if errors.As(err, &perr) {
			merged := maps.Clone(acquired)
			maps.Copy(merged, perr.Status)
			perr.Status = merged
		}
		return internal.ProductRecord{}, err
	}

	status := maps.Clone(acquired)
	maps.Copy(status, rec.Status)
	rec.Status = status
	return rec, nil
}

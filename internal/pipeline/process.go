package pipeline

import (
	"errors"
	"fmt"
	"maps"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"partsimport/internal"
	"partsimport/internal/catalog"
	"partsimport/internal/config"
	"partsimport/internal/logger"
	"partsimport/internal/util"
)

const (
	StageNormalize   = "normalize"
	StageVendor      = "vendor"
	StageProductType = "product_type"
	StageTitle       = "title"
	StageRows        = "rows"
	StageVariants    = "variants"
	StageValidate    = "validate"
)

var (
	ErrEmptyTitle = errors.New("no title could be built")
	ErrPanic      = errors.New("pipeline panic")
)

// PipelineError is the single failure a run reports. Status holds the stages
// that completed before Stage failed.
type PipelineError struct {
	Stage  string
	Status internal.StageStatus
	Err    error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("stage %s: %v", e.Stage, e.Err)
}

func (e *PipelineError) Unwrap() error { return e.Err }

// ProcessingService turns snapshots into product records. It holds only
// read-only state and is safe for concurrent use.
type ProcessingService struct {
	catalog   *catalog.Catalog
	assembler Assembler
	log       *logger.Logger
}

func NewProcessingService(cat *catalog.Catalog, cfg config.Config, log *logger.Logger) *ProcessingService {
	if log == nil {
		log = logger.Discard()
	}
	prices := NewPriceConverter(cfg.ConversionRate, cfg.PriceBucket)
	return &ProcessingService{
		catalog:   cat,
		assembler: NewAssembler(prices, cfg.InventoryManagement),
		log:       log,
	}
}

type stage struct {
	name string
	run  func() error
}

// Process runs every stage in order. On failure the record is zero and the
// error is a *PipelineError; a panic inside a stage is reported the same way.
func (s *ProcessingService) Process(snap internal.RawScrapeSnapshot, searchTerm string) (rec internal.ProductRecord, err error) {
	start := time.Now()
	log := s.log.With("run_id", uuid.NewString(), "search_term", searchTerm)
	status := internal.StageStatus{}
	current := StageNormalize

	defer func() {
		if r := recover(); r != nil {
			rec = internal.ProductRecord{}
			err = &PipelineError{Stage: current, Status: maps.Clone(status), Err: fmt.Errorf("%w: %v", ErrPanic, r)}
		}
		if err != nil {
			log.Error("pipeline failed", "error", err, "took_ms", time.Since(start).Milliseconds())
		}
	}()

	var (
		norm       NormalizedSnapshot
		vendor     *string
		class      Classification
		title      string
		extraction RowExtraction
		fallback   *decimal.Decimal
		options    []internal.Option
		variants   []internal.Variant
		out        internal.ProductRecord
	)

	stages := []stage{
		{StageNormalize, func() (err error) {
			norm, err = NormalizeSnapshot(snap, searchTerm)
			return err
		}},
		{StageVendor, func() error {
			vendor = firstDetected(s.catalog.DetectVendor, norm.ClassificationInputs()...)
			return nil
		}},
		{StageProductType, func() error {
			detected := firstDetected(s.catalog.DetectType, norm.ClassificationInputs()...)
			class = ApplyOverrides(s.catalog, detected, norm.RawTitle, norm.SpecText)
			return nil
		}},
		{StageTitle, func() error {
			title = BuildTitle(class.Display, util.Deref(vendor), norm.SearchTerm)
			if title == "" {
				title = DedupeWords(norm.Title)
			}
			if title == "" {
				return ErrEmptyTitle
			}
			return nil
		}},
		{StageRows, func() error {
			extraction = ExtractRows(norm.Rows)
			fallback = PagePrice(norm.FullPageText, norm.Title)
			return nil
		}},
		{StageVariants, func() error {
			options, variants = s.assembler.Assemble(extraction.Colours, extraction.Sizes, extraction.Rows, extraction.ColourPrices, fallback)
			return nil
		}},
		{StageValidate, func() error {
			out = internal.ProductRecord{
				Title:           title,
				Vendor:          vendor,
				Tag:             vendor,
				ProductType:     class.Category,
				Options:         options,
				Variants:        variants,
				DescriptionHTML: norm.DescriptionHTML,
				SpecsHTML:       norm.SpecsHTML,
				Colours:         optionValues(options, internal.OptionColour),
				Sizes:           optionValues(options, internal.OptionSize),
				Count:           len(variants),
			}
			return ValidateRecord(out)
		}},
	}

	for _, st := range stages {
		current = st.name
		if err := st.run(); err != nil {
			return internal.ProductRecord{}, &PipelineError{Stage: st.name, Status: maps.Clone(status), Err: err}
		}
		status[st.name] = internal.StageOK
		log.Debug("stage done", "stage", st.name)
	}

	out.Status = status
	log.Info("record assembled",
		"title", out.Title,
		"vendor", util.Deref(out.Vendor),
		"product_type", util.Deref(out.ProductType),
		"variants", out.Count,
		"took_ms", time.Since(start).Milliseconds(),
	)
	return out, nil
}

// optionValues lists an option's values for the record summary; the
// synthetic Default colour is not an observed colour.
func optionValues(options []internal.Option, name internal.OptionName) []string {
	out := []string{}
	for _, opt := range options {
		if opt.Name != name {
			continue
		}
		for _, v := range opt.Values {
			if v != internal.DefaultOptionValue {
				out = append(out, v)
			}
		}
	}
	return out
}

package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"partsimport/internal"
	"partsimport/internal/logger"
	"partsimport/internal/pipeline"
)

var ErrMissingFields = errors.New("missing required fields")

type Importer interface {
	Import(ctx context.Context, creds internal.Credentials, searchTerm string) (internal.ProductRecord, error)
}

type Processor interface {
	Process(snap internal.RawScrapeSnapshot, searchTerm string) (internal.ProductRecord, error)
}

type Handler struct {
	importer  Importer
	processor Processor
	log       *logger.Logger
}

func NewHandler(importer Importer, processor Processor, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Discard()
	}
	return &Handler{importer: importer, processor: processor, log: log}
}

type ImportRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	SearchTerm string `json:"searchTerm"`
}

type AssembleRequest struct {
	Snapshot   *internal.RawScrapeSnapshot `json:"snapshot"`
	SearchTerm string                      `json:"searchTerm"`
}

func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "partsimport",
	})
}

// Import acquires the product page for the search term and returns its
// record. Missing credentials or search term is a 400.
func (h *Handler) Import(c *gin.Context) {
	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	if missing := missingFields("email", req.Email, "password", req.Password, "searchTerm", req.SearchTerm); missing != "" {
		h.badRequest(c, fmt.Errorf("%w: %s", ErrMissingFields, missing))
		return
	}

	creds := internal.Credentials{Email: req.Email, Password: req.Password}
	rec, err := h.importer.Import(c.Request.Context(), creds, req.SearchTerm)
	if err != nil {
		h.failure(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// Assemble runs the pipeline on a snapshot the caller already has.
func (h *Handler) Assemble(c *gin.Context) {
	var req AssembleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	if req.Snapshot == nil {
		h.badRequest(c, fmt.Errorf("%w: snapshot", ErrMissingFields))
		return
	}

	rec, err := h.processor.Process(*req.Snapshot, req.SearchTerm)
	if err != nil {
		h.failure(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *Handler) badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error":   err.Error(),
	})
}

func (h *Handler) failure(c *gin.Context, err error) {
	status := internal.StageStatus{}
	var perr *pipeline.PipelineError
	if errors.As(err, &perr) && perr.Status != nil {
		status = perr.Status
	}
	h.log.Error("request failed",
		"path", c.FullPath(),
		"request_id", c.GetString(RequestIDHeader),
		"error", err,
	)
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error":   err.Error(),
		"status":  status,
	})
}

// missingFields takes name/value pairs and lists the names whose value is blank.
func missingFields(pairs ...string) string {
	missing := []string{}
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			missing = append(missing, pairs[i])
		}
	}
	return strings.Join(missing, ", ")
}

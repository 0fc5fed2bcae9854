package http

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/garyjia/listing-compliance/internal/application/port"
	"github.com/garyjia/listing-compliance/internal/application/service"
	"github.com/garyjia/listing-compliance/internal/compliance"
	"github.com/garyjia/listing-compliance/internal/domain/entity"
	"github.com/garyjia/listing-compliance/internal/report"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100

	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Handlers contains all HTTP request handlers
type Handlers struct {
	listingService    service.ListingService
	validationService service.ValidationService
	logger            Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(
	listingService service.ListingService,
	validationService service.ValidationService,
	logger Logger,
) *Handlers {
	return &Handlers{
		listingService:    listingService,
		validationService: validationService,
		logger:            logger,
	}
}

// Response represents a standard JSON response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// ListListingsRequest represents query parameters for listing listings
type ListListingsRequest struct {
	Status string `form:"status"`
	Limit  int    `form:"limit"`
	Offset int    `form:"offset"`
}

// UpdateCopyRequest is the body of PATCH /api/listings/:id/copy
type UpdateCopyRequest struct {
	DraftCopy string           `json:"draft_copy"`
	Variants  *entity.Variants `json:"variants"`
}

// CheckTextRequest is the body of POST /api/compliance/check
type CheckTextRequest struct {
	Text string `json:"text" binding:"required"`
}

// CheckTextResponse lists the issues found in a fragment of copy
type CheckTextResponse struct {
	Issues []compliance.Issue `json:"issues"`
}

// AlternativesResponse lists replacement wording for a phrase
type AlternativesResponse struct {
	Phrase       string   `json:"phrase"`
	Alternatives []string `json:"alternatives"`
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: HealthResponse{
			Status:    "healthy",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Version:   "1.0.0",
		},
	})
}

// CreateListing handles POST /api/listings
func (h *Handlers) CreateListing(c *gin.Context) {
	var req service.CreateListingInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "invalid request body", err)
		return
	}

	listing, err := h.listingService.CreateListing(c.Request.Context(), req)
	if err != nil {
		h.fail(c, "create listing", err)
		return
	}

	c.JSON(http.StatusCreated, Response{Success: true, Data: listing})
}

// ListListings handles GET /api/listings
func (h *Handlers) ListListings(c *gin.Context) {
	var req ListListingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.badRequest(c, "invalid query parameters", err)
		return
	}

	if req.Limit <= 0 || req.Limit > maxPageSize {
		req.Limit = defaultPageSize
	}
	if req.Offset < 0 {
		req.Offset = 0
	}

	listings, err := h.listingService.ListListings(c.Request.Context(), port.ListingFilter{
		Status: req.Status,
		Limit:  req.Limit,
		Offset: req.Offset,
	})
	if err != nil {
		h.fail(c, "list listings", err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: listings})
}

// GetListing handles GET /api/listings/:id
func (h *Handlers) GetListing(c *gin.Context) {
	id, ok := h.listingID(c)
	if !ok {
		return
	}

	listing, err := h.listingService.GetListing(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "get listing", err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: listing})
}

// UpdateCopy handles PATCH /api/listings/:id/copy
func (h *Handlers) UpdateCopy(c *gin.Context) {
	id, ok := h.listingID(c)
	if !ok {
		return
	}

	var req UpdateCopyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "invalid request body", err)
		return
	}

	listing, err := h.listingService.UpdateCopy(c.Request.Context(), id, req.DraftCopy, req.Variants)
	if err != nil {
		h.fail(c, "update copy", err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: listing})
}

// ValidateListing handles POST /api/listings/:id/validate
func (h *Handlers) ValidateListing(c *gin.Context) {
	id, ok := h.listingID(c)
	if !ok {
		return
	}

	record, err := h.validationService.ValidateListing(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "validate listing", err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: record})
}

// ListValidations handles GET /api/listings/:id/validations
func (h *Handlers) ListValidations(c *gin.Context) {
	id, ok := h.listingID(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))
	records, err := h.validationService.History(c.Request.Context(), id, limit)
	if err != nil {
		h.fail(c, "list validations", err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: records})
}

// ComplianceReport handles GET /api/listings/:id/compliance-report
func (h *Handlers) ComplianceReport(c *gin.Context) {
	id, ok := h.listingID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	listing, err := h.listingService.GetListing(ctx, id)
	if err != nil {
		h.fail(c, "get listing", err)
		return
	}
	latest, err := h.validationService.LatestValidation(ctx, id)
	if err != nil {
		h.fail(c, "get latest validation", err)
		return
	}

	var buf bytes.Buffer
	if err := report.WriteComplianceReport(&buf, listing, latest); err != nil {
		h.fail(c, "build compliance report", err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="listing-%d-compliance.xlsx"`, id))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// PublishListing handles POST /api/listings/:id/publish
func (h *Handlers) PublishListing(c *gin.Context) {
	id, ok := h.listingID(c)
	if !ok {
		return
	}

	listing, err := h.listingService.PublishListing(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "publish listing", err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: listing})
}

// CheckText handles POST /api/compliance/check
func (h *Handlers) CheckText(c *gin.Context) {
	var req CheckTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "text is required", err)
		return
	}

	issues, err := h.validationService.CheckText(req.Text)
	if err != nil {
		h.fail(c, "check text", err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: CheckTextResponse{Issues: issues}})
}

// Alternatives handles GET /api/compliance/alternatives?phrase=
func (h *Handlers) Alternatives(c *gin.Context) {
	phrase := c.Query("phrase")
	if phrase == "" {
		h.badRequest(c, "phrase is required", nil)
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: AlternativesResponse{
			Phrase:       phrase,
			Alternatives: h.validationService.Alternatives(phrase),
		},
	})
}

// Suggestions handles GET /api/compliance/suggestions
func (h *Handlers) Suggestions(c *gin.Context) {
	c.JSON(http.StatusOK, Response{Success: true, Data: h.validationService.Suggestions()})
}

// Rules handles GET /api/compliance/rules
func (h *Handlers) Rules(c *gin.Context) {
	c.JSON(http.StatusOK, Response{Success: true, Data: h.validationService.Rules()})
}

func (h *Handlers) listingID(c *gin.Context) (int64, bool) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		h.badRequest(c, "invalid listing ID", err)
		return 0, false
	}
	return id, true
}

func (h *Handlers) badRequest(c *gin.Context, msg string, err error) {
	h.logger.Info("Bad request", "path", c.FullPath(), "message", msg, "error", err)
	c.JSON(http.StatusBadRequest, Response{Success: false, Error: msg})
}

// fail maps service errors onto status codes
func (h *Handlers) fail(c *gin.Context, op string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("Request failed", "operation", op, "error", err)
		c.JSON(status, Response{Success: false, Error: op + " failed"})
		return
	}
	c.JSON(status, Response{Success: false, Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, port.ErrListingNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrListingPublished),
		errors.Is(err, service.ErrNotValidated),
		errors.Is(err, service.ErrCopyChanged):
		return http.StatusConflict
	case errors.Is(err, service.ErrPublishBlocked):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

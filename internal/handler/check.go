package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dukerupert/ukpostcode/internal/domain"
	"github.com/dukerupert/ukpostcode/internal/middleware"
	"github.com/dukerupert/ukpostcode/internal/postcode"
	"github.com/dukerupert/ukpostcode/internal/telemetry"
)

// Limits bounds the work a single request may ask for
type Limits struct {
	// MaxBatchSize is the largest number of postcodes per request
	MaxBatchSize int

	// MaxInputLength caps a raw batch string in bytes
	MaxInputLength int

	// Concurrency is the worker limit for JSON batches
	Concurrency int
}

// CheckHandler serves the postcode form and the JSON check API. It is a
// thin adapter: splitting, checking and ordering are done by the engine.
type CheckHandler struct {
	renderer *Renderer
	limits   Limits
	metrics  *telemetry.PostcodeMetrics
}

// NewCheckHandler creates a check handler. metrics may be nil.
func NewCheckHandler(renderer *Renderer, limits Limits, metrics *telemetry.PostcodeMetrics) *CheckHandler {
	return &CheckHandler{
		renderer: renderer,
		limits:   limits,
		metrics:  metrics,
	}
}

// CheckPageData contains data for the index template
type CheckPageData struct {
	Input        string
	Results      []postcode.Result
	Error        string
	Fields       map[string]string
	MaxBatchSize int
}

type checkFormRequest struct {
	Postcodes string `form:"postcodes" validate:"required"`
}

type checkAPIRequest struct {
	Postcodes []string `json:"postcodes" validate:"required_without=Batch,excluded_with=Batch,dive,max=64"`
	Batch     string   `json:"batch" validate:"required_without=Postcodes"`
}

// CheckAPIResult is one row of the JSON response
type CheckAPIResult struct {
	postcode.Result

	// Code is the failure code, empty when the check passed
	Code string `json:"code,omitempty"`
}

// CheckAPIResponse is the body of a successful POST /api/check
type CheckAPIResponse struct {
	Results []CheckAPIResult `json:"results"`
}

// Form handles GET /
func (h *CheckHandler) Form(w http.ResponseWriter, r *http.Request) {
	h.renderer.RenderHTTP(w, r, http.StatusOK, "index", CheckPageData{
		MaxBatchSize: h.limits.MaxBatchSize,
	})
}

// CheckForm handles POST /check
func (h *CheckHandler) CheckForm(w http.ResponseWriter, r *http.Request) {
	const op = "check.form"

	if err := r.ParseForm(); err != nil {
		h.renderFormError(w, r, CheckPageData{}, requestBodyError(op, err))
		return
	}

	req := checkFormRequest{Postcodes: r.PostFormValue("postcodes")}
	data := CheckPageData{Input: req.Postcodes}

	if err := validateRequest(op, req); err != nil {
		h.renderFormError(w, r, data, err)
		return
	}

	items, err := h.split(op, req.Postcodes)
	if err != nil {
		h.renderFormError(w, r, data, err)
		return
	}

	results := make([]postcode.Result, len(items))
	for i, raw := range items {
		results[i] = postcode.Check(raw)
	}
	h.record(r, "form", results)

	data.Results = results
	data.MaxBatchSize = h.limits.MaxBatchSize
	h.renderer.RenderHTTP(w, r, http.StatusOK, "index", data)
}

// CheckAPI handles POST /api/check
func (h *CheckHandler) CheckAPI(w http.ResponseWriter, r *http.Request) {
	const op = "check.api"

	var req checkAPIRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.reject(w, r, requestBodyError(op, err))
		return
	}

	if err := validateRequest(op, req); err != nil {
		h.reject(w, r, err)
		return
	}

	items := req.Postcodes
	if req.Batch != "" {
		var err error
		if items, err = h.split(op, req.Batch); err != nil {
			h.reject(w, r, err)
			return
		}
	} else if len(items) > h.limits.MaxBatchSize {
		h.reject(w, r, tooManyError(op, len(items), h.limits.MaxBatchSize))
		return
	}

	results, err := postcode.CheckAll(r.Context(), items, h.limits.Concurrency)
	if err != nil {
		ErrorResponse(w, r, domain.WrapError(err, domain.EINTERNAL, op, "batch cancelled"))
		return
	}
	h.record(r, "api", results)

	resp := CheckAPIResponse{Results: make([]CheckAPIResult, len(results))}
	for i, res := range results {
		resp.Results[i] = CheckAPIResult{Result: res, Code: res.Code()}
	}

	writeJSON(w, http.StatusOK, resp)
}

// split enforces the input length and batch size limits on a raw batch
func (h *CheckHandler) split(op, batch string) ([]string, error) {
	if len(batch) > h.limits.MaxInputLength {
		return nil, domain.Errorf(domain.ETOOLARGE, op,
			"Input too long: %d bytes (max %d)", len(batch), h.limits.MaxInputLength)
	}

	items := postcode.SplitBatch(batch)
	if len(items) > h.limits.MaxBatchSize {
		return nil, tooManyError(op, len(items), h.limits.MaxBatchSize)
	}
	return items, nil
}

func (h *CheckHandler) record(r *http.Request, source string, results []postcode.Result) {
	h.metrics.RecordBatch(source, results)

	valid := 0
	for _, res := range results {
		if res.Valid {
			valid++
		}
	}
	middleware.GetLogger(r.Context()).Debug("checked batch",
		"source", source,
		"items", len(results),
		"valid", valid,
	)
}

func (h *CheckHandler) reject(w http.ResponseWriter, r *http.Request, err error) {
	h.metrics.RecordRejected(rejectReason(err))
	ValidationErrorResponse(w, r, err)
}

func (h *CheckHandler) renderFormError(w http.ResponseWriter, r *http.Request, data CheckPageData, err error) {
	h.metrics.RecordRejected(rejectReason(err))

	status := http.StatusBadRequest
	if fields := domain.GetValidationFields(err); fields != nil {
		data.Error = "Please correct the errors below."
		data.Fields = fields
	} else {
		status = ErrorCodeToHTTPStatus(domain.ErrorCode(err))
		data.Error = domain.ErrorMessage(err)
	}
	data.MaxBatchSize = h.limits.MaxBatchSize

	middleware.GetLogger(r.Context()).Info("check form rejected", "error", err, "status", status)
	h.renderer.RenderHTTP(w, r, status, "index", data)
}

func requestBodyError(op string, err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return domain.WrapError(err, domain.ETOOLARGE, op, "Request body too large")
	}
	return domain.WrapError(err, domain.EINVALID, op, "Malformed request body")
}

func tooManyError(op string, n, limit int) error {
	return domain.Errorf(domain.ETOOLARGE, op, "Too many postcodes: %d (max %d)", n, limit)
}

func rejectReason(err error) string {
	if domain.GetValidationFields(err) != nil {
		return domain.EINVALID
	}
	return domain.ErrorCode(err)
}

package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/prismcrm/prism-backend/internal/domain"
	"github.com/prismcrm/prism-backend/internal/service/deal"
)

// dealService defines the minimal interface needed by DealHandler.
type dealService interface {
	ListDeals(ctx context.Context, filter domain.DealFilter) ([]domain.Deal, error)
	CreateDeal(ctx context.Context, input deal.CreateDealInput) (*domain.Deal, error)
	UpdateDeal(ctx context.Context, input deal.UpdateDealInput) (*domain.Deal, error)
	DeleteDeal(ctx context.Context, input deal.DeleteDealInput) error
	PipelineSummary(ctx context.Context, filter domain.DealFilter) (domain.PipelineMetrics, error)
}

// DealHandler serves the deal and pipeline REST endpoints.
type DealHandler struct {
	svc dealService
	log *slog.Logger
}

// NewDealHandler creates a DealHandler.
func NewDealHandler(svc dealService, logger *slog.Logger) *DealHandler {
	return &DealHandler{svc: svc, log: logger.With("handler", "deals")}
}

type createDealRequest struct {
	Title       string   `json:"title"`
	PersonName  *string  `json:"personName"`
	CompanyName *string  `json:"companyName"`
	Stage       string   `json:"stage"`
	Tags        []string `json:"tags"`

	Priority         string  `json:"priority"`
	ExpectedValue    float64 `json:"expectedValue"`
	CloseProbability float64 `json:"closeProbability"`

	ExpectedCloseDate *string `json:"expectedCloseDate"`
	LastContactDate   *string `json:"lastContactDate"`
	NextActionDate    *string `json:"nextActionDate"`
	NextAction        *string `json:"nextAction"`
	Notes             *string `json:"notes"`
}

type updateDealRequest struct {
	Title       *string   `json:"title"`
	PersonName  *string   `json:"personName"`
	CompanyName *string   `json:"companyName"`
	Stage       *string   `json:"stage"`
	Tags        *[]string `json:"tags"`

	Priority         *string  `json:"priority"`
	ExpectedValue    *float64 `json:"expectedValue"`
	CloseProbability *float64 `json:"closeProbability"`

	ExpectedCloseDate *string `json:"expectedCloseDate"`
	LastContactDate   *string `json:"lastContactDate"`
	NextActionDate    *string `json:"nextActionDate"`
	NextAction        *string `json:"nextAction"`
	Notes             *string `json:"notes"`
}

type dealResponse struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	PersonName  *string  `json:"personName,omitempty"`
	CompanyName *string  `json:"companyName,omitempty"`
	Stage       string   `json:"stage"`
	StageLabel  string   `json:"stageLabel"`
	Tags        []string `json:"tags"`

	Priority         string  `json:"priority"`
	ExpectedValue    float64 `json:"expectedValue"`
	CloseProbability float64 `json:"closeProbability"`

	ExpectedCloseDate *time.Time `json:"expectedCloseDate,omitempty"`
	LastContactDate   *time.Time `json:"lastContactDate,omitempty"`
	NextActionDate    *time.Time `json:"nextActionDate,omitempty"`
	NextAction        *string    `json:"nextAction,omitempty"`
	Notes             *string    `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type metricsResponse struct {
	ActiveCount    int            `json:"activeCount"`
	TotalValue     float64        `json:"totalValue"`
	WeightedValue  float64        `json:"weightedValue"`
	AvgProbability float64        `json:"avgProbability"`
	StageCounts    map[string]int `json:"stageCounts"`
}

// List handles GET /api/deals.
func (h *DealHandler) List(w http.ResponseWriter, r *http.Request) {
	deals, err := h.svc.ListDeals(r.Context(), filterFromQuery(r))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	out := make([]dealResponse, len(deals))
	for i := range deals {
		out[i] = toDealResponse(&deals[i])
	}
	writeJSON(w, http.StatusOK, out)
}

// Create handles POST /api/deals.
func (h *DealHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createDealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input, err := req.toInput()
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	created, err := h.svc.CreateDeal(r.Context(), input)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toDealResponse(created))
}

// Update handles PUT /api/deals/{id}.
func (h *DealHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid deal id")
		return
	}

	var req updateDealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	patch, err := req.toPatch()
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	updated, err := h.svc.UpdateDeal(r.Context(), deal.UpdateDealInput{DealID: id, Patch: patch})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toDealResponse(updated))
}

// Delete handles DELETE /api/deals/{id}.
func (h *DealHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid deal id")
		return
	}

	if err := h.svc.DeleteDeal(r.Context(), deal.DeleteDealInput{DealID: id}); err != nil {
		h.handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Metrics handles GET /api/pipeline/metrics.
func (h *DealHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	m, err := h.svc.PipelineSummary(r.Context(), filterFromQuery(r))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	counts := make(map[string]int, len(m.StageCounts))
	for stage, n := range m.StageCounts {
		counts[stage.String()] = n
	}
	writeJSON(w, http.StatusOK, metricsResponse{
		ActiveCount:    m.ActiveCount,
		TotalValue:     m.TotalValue,
		WeightedValue:  m.WeightedValue,
		AvgProbability: m.AvgProbability,
		StageCounts:    counts,
	})
}

func (h *DealHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "deal not found")
	case errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "already exists")
	default:
		h.log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// filterFromQuery builds the list predicate from query parameters. Repeatable
// parameters (stage, priority, tag) combine as OR within a dimension; the
// dimensions combine as AND.
func filterFromQuery(r *http.Request) domain.DealFilter {
	q := r.URL.Query()

	f := domain.DealFilter{
		Search:     q.Get("search"),
		Tags:       q["tag"],
		HideClosed: q.Get("hide_closed") == "true" || q.Get("hide_closed") == "1",
	}
	for _, s := range q["stage"] {
		f.Stages = append(f.Stages, domain.Stage(s))
	}
	for _, p := range q["priority"] {
		f.Priorities = append(f.Priorities, domain.Priority(p))
	}
	return f
}

func (req createDealRequest) toInput() (deal.CreateDealInput, error) {
	stage := domain.Stage(req.Stage)
	if req.Stage == "" {
		stage = domain.StageLead
	}
	priority := domain.Priority(req.Priority)
	if req.Priority == "" {
		priority = domain.PriorityMedium
	}

	input := deal.CreateDealInput{
		Title:            req.Title,
		PersonName:       req.PersonName,
		CompanyName:      req.CompanyName,
		Stage:            stage,
		Tags:             req.Tags,
		Priority:         priority,
		ExpectedValue:    req.ExpectedValue,
		CloseProbability: req.CloseProbability,
		NextAction:       req.NextAction,
		Notes:            req.Notes,
	}

	var err error
	if input.ExpectedCloseDate, err = parseDate("expectedCloseDate", req.ExpectedCloseDate); err != nil {
		return deal.CreateDealInput{}, err
	}
	if input.LastContactDate, err = parseDate("lastContactDate", req.LastContactDate); err != nil {
		return deal.CreateDealInput{}, err
	}
	if input.NextActionDate, err = parseDate("nextActionDate", req.NextActionDate); err != nil {
		return deal.CreateDealInput{}, err
	}
	return input, nil
}

func (req updateDealRequest) toPatch() (domain.DealPatch, error) {
	patch := domain.DealPatch{
		Title:            req.Title,
		PersonName:       req.PersonName,
		CompanyName:      req.CompanyName,
		Tags:             req.Tags,
		ExpectedValue:    req.ExpectedValue,
		CloseProbability: req.CloseProbability,
		NextAction:       req.NextAction,
		Notes:            req.Notes,
	}
	if req.Stage != nil {
		s := domain.Stage(*req.Stage)
		patch.Stage = &s
	}
	if req.Priority != nil {
		p := domain.Priority(*req.Priority)
		patch.Priority = &p
	}

	var err error
	if patch.ExpectedCloseDate, err = parseDate("expectedCloseDate", req.ExpectedCloseDate); err != nil {
		return domain.DealPatch{}, err
	}
	if patch.LastContactDate, err = parseDate("lastContactDate", req.LastContactDate); err != nil {
		return domain.DealPatch{}, err
	}
	if patch.NextActionDate, err = parseDate("nextActionDate", req.NextActionDate); err != nil {
		return domain.DealPatch{}, err
	}
	return patch, nil
}

// parseDate accepts RFC 3339 or a bare calendar date. An empty string maps to
// the zero time, which the patch layer reads as "clear this field".
func parseDate(field string, s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	if *s == "" {
		return &time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, *s); err == nil {
		return &t, nil
	}
	if t, err := time.Parse("2006-01-02", *s); err == nil {
		return &t, nil
	}
	return nil, domain.NewValidationError(field, "invalid date")
}

func toDealResponse(d *domain.Deal) dealResponse {
	tags := d.Tags
	if tags == nil {
		tags = []string{}
	}
	return dealResponse{
		ID:                d.ID.String(),
		Title:             d.Title,
		PersonName:        d.PersonName,
		CompanyName:       d.CompanyName,
		Stage:             d.Stage.String(),
		StageLabel:        d.Stage.Label(),
		Tags:              tags,
		Priority:          d.Priority.String(),
		ExpectedValue:     d.ExpectedValue,
		CloseProbability:  d.CloseProbability,
		ExpectedCloseDate: d.ExpectedCloseDate,
		LastContactDate:   d.LastContactDate,
		NextActionDate:    d.NextActionDate,
		NextAction:        d.NextAction,
		Notes:             d.Notes,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
}

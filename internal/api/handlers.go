package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pharosnegocios/imobcalc/internal/breakeven"
	"github.com/pharosnegocios/imobcalc/internal/calculation"
	"github.com/pharosnegocios/imobcalc/internal/compare"
	"github.com/pharosnegocios/imobcalc/internal/config"
	"github.com/pharosnegocios/imobcalc/internal/domain"
	"github.com/pharosnegocios/imobcalc/internal/record"
	"github.com/pharosnegocios/imobcalc/internal/valuation"
	"github.com/shopspring/decimal"
)

// SimulationRequest is the body of POST /api/simulations.
type SimulationRequest struct {
	Name         string                `json:"name"`
	Plan         domain.InvestmentPlan `json:"plan"`
	LiveRates    bool                  `json:"liveRates"`
	IncludeChart bool                  `json:"includeChart"`
}

// ChartResponse is the dense monthly series of one plan.
type ChartResponse struct {
	Name   string              `json:"name"`
	Points []domain.ChartPoint `json:"points"`
}

// SensitivityRequest sweeps one parameter of Plan. Unset bounds and steps
// take the parameter's defaults; an unset month means delivery.
type SensitivityRequest struct {
	Plan      domain.InvestmentPlan `json:"plan"`
	Parameter string                `json:"parameter"`
	Min       *decimal.Decimal      `json:"min"`
	Max       *decimal.Decimal      `json:"max"`
	Steps     int                   `json:"steps"`
	Month     *int                  `json:"month"`
	LiveRates bool                  `json:"liveRates"`
}

// PlanEntry is a named plan in a comparison.
type PlanEntry struct {
	Name string                `json:"name"`
	Plan domain.InvestmentPlan `json:"plan"`
}

// ComparisonRequest compares alternatives against a base plan.
type ComparisonRequest struct {
	Base         PlanEntry   `json:"base"`
	Alternatives []PlanEntry `json:"alternatives"`
	// Templates and Transforms derive further alternatives from Base.
	Templates  []string `json:"templates"`
	Transforms []string `json:"transforms"`
	LiveRates  bool     `json:"liveRates"`
}

// BreakEvenRequest asks for the value of Target at which the sale at Month
// meets Goal. All runs every applicable target and goal instead.
type BreakEvenRequest struct {
	Plan      domain.InvestmentPlan `json:"plan"`
	Target    breakeven.Target      `json:"target"`
	Goal      breakeven.Goal        `json:"goal"`
	Month     int                   `json:"month"`
	Min       *decimal.Decimal      `json:"min"`
	Max       *decimal.Decimal      `json:"max"`
	All       bool                  `json:"all"`
	LiveRates bool                  `json:"liveRates"`
}

// TemplateInfo describes a built-in comparison template.
type TemplateInfo struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) GetIndices(c *gin.Context) {
	r, err := h.rates.Rates(c.Request.Context())
	if err != nil {
		requestLogger(c, h.logger).WithError(err).Error("Failed to get reference rates")
		c.JSON(http.StatusBadGateway, gin.H{"error": "Reference rates unavailable"})
		return
	}
	c.JSON(http.StatusOK, r)
}

func (h *Handler) Simulate(c *gin.Context) {
	var req SimulationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, bodyStatus(err), "Invalid request body", err)
		return
	}

	plan, applied, err := h.preparePlan(c.Request.Context(), req.Plan, req.LiveRates)
	if err != nil {
		h.fail(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	report := h.compare.Simulate(req.Name, plan, compare.ReportOptions{IncludeChart: req.IncludeChart, Rates: applied})
	c.JSON(http.StatusOK, report)
}

func (h *Handler) SimulateChart(c *gin.Context) {
	var req SimulationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, bodyStatus(err), "Invalid request body", err)
		return
	}

	plan, _, err := h.preparePlan(c.Request.Context(), req.Plan, req.LiveRates)
	if err != nil {
		h.fail(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	c.JSON(http.StatusOK, ChartResponse{Name: req.Name, Points: h.compare.CalcEngine.RunChart(plan)})
}

// SimulateRecord runs a persisted snake_case simulation record. Pass
// ?liveRates=true to replace the record's rates with current ones.
func (h *Handler) SimulateRecord(c *gin.Context) {
	live, err := strconv.ParseBool(c.DefaultQuery("liveRates", "false"))
	if err != nil {
		h.fail(c, http.StatusBadRequest, "liveRates must be a boolean", err)
		return
	}
	body, err := c.GetRawData()
	if err != nil {
		h.fail(c, bodyStatus(err), "Invalid request body", err)
		return
	}

	rec, err := record.ParseSimulation(body)
	if err != nil {
		h.fail(c, http.StatusBadRequest, "Invalid simulation record", err)
		return
	}
	plan, err := rec.Plan()
	if err != nil {
		h.fail(c, http.StatusBadRequest, "Invalid simulation record", err)
		return
	}
	plan, applied, err := h.preparePlan(c.Request.Context(), plan, live)
	if err != nil {
		h.fail(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	report := h.compare.Simulate(rec.Name(), plan, compare.ReportOptions{Rates: applied})
	c.JSON(http.StatusOK, report)
}

func (h *Handler) Sensitivity(c *gin.Context) {
	var req SensitivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, bodyStatus(err), "Invalid request body", err)
		return
	}

	param, err := calculation.LookupParameter(req.Parameter)
	if err != nil {
		h.fail(c, http.StatusBadRequest, err.Error(), err)
		return
	}
	if req.Min != nil {
		param.MinValue = *req.Min
	}
	if req.Max != nil {
		param.MaxValue = *req.Max
	}
	if req.Steps != 0 {
		param.Steps = req.Steps
	}

	plan, _, err := h.preparePlan(c.Request.Context(), req.Plan, req.LiveRates)
	if err != nil {
		h.fail(c, http.StatusBadRequest, err.Error(), err)
		return
	}
	month := plan.ConstructionTermMonths
	if req.Month != nil {
		month = *req.Month
	}

	analysis, err := calculation.NewSensitivityAnalyzer().Analyze(plan, param, month)
	if err != nil {
		h.fail(c, http.StatusBadRequest, err.Error(), err)
		return
	}
	c.JSON(http.StatusOK, analysis)
}

func (h *Handler) Compare(c *gin.Context) {
	var req ComparisonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, bodyStatus(err), "Invalid request body", err)
		return
	}
	if len(req.Alternatives)+len(req.Templates)+len(req.Transforms) == 0 {
		h.fail(c, http.StatusBadRequest, "At least one alternative plan, template or transform is required", nil)
		return
	}

	ctx := c.Request.Context()
	base, _, err := h.preparePlan(ctx, req.Base.Plan, req.LiveRates)
	if err != nil {
		h.fail(c, http.StatusBadRequest, req.Base.Name+": "+err.Error(), err)
		return
	}
	alternatives := make([]compare.NamedPlan, 0, len(req.Alternatives))
	for _, alt := range req.Alternatives {
		plan, _, err := h.preparePlan(ctx, alt.Plan, req.LiveRates)
		if err != nil {
			h.fail(c, http.StatusBadRequest, alt.Name+": "+err.Error(), err)
			return
		}
		alternatives = append(alternatives, compare.NamedPlan{Name: alt.Name, Plan: plan})
	}

	baseEntry := compare.NamedPlan{Name: req.Base.Name, Plan: base}
	derived, err := compare.DeriveAlternatives(baseEntry, h.templates, req.Templates, req.Transforms)
	if err != nil {
		h.fail(c, http.StatusBadRequest, err.Error(), err)
		return
	}
	alternatives = append(alternatives, derived...)

	set, err := h.compare.ComparePlans(baseEntry, alternatives)
	if err != nil {
		h.fail(c, http.StatusBadRequest, err.Error(), err)
		return
	}
	c.JSON(http.StatusOK, set)
}

func (h *Handler) ListTemplates(c *gin.Context) {
	names := h.templates.List()
	templates := make([]TemplateInfo, 0, len(names))
	for _, name := range names {
		t, _ := h.templates.Get(name)
		templates = append(templates, TemplateInfo{Name: t.Name, Category: t.Category, Description: t.Description})
	}
	c.JSON(http.StatusOK, gin.H{"templates": templates})
}

func (h *Handler) BreakEven(c *gin.Context) {
	var req BreakEvenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, bodyStatus(err), "Invalid request body", err)
		return
	}

	plan, _, err := h.preparePlan(c.Request.Context(), req.Plan, req.LiveRates)
	if err != nil {
		h.fail(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	solver := breakeven.NewDefaultSolver()
	if req.All {
		multi, err := solver.SolveAll(c.Request.Context(), plan, req.Month, nil)
		if err != nil {
			h.fail(c, http.StatusBadRequest, err.Error(), err)
			return
		}
		c.JSON(http.StatusOK, multi)
		return
	}

	if req.Target == "" {
		req.Target = breakeven.TargetAppreciation
	}
	if req.Goal == "" {
		req.Goal = breakeven.GoalZeroProfit
	}
	result, err := solver.Solve(c.Request.Context(), breakeven.Request{
		Plan:        plan,
		Target:      req.Target,
		Goal:        req.Goal,
		Month:       req.Month,
		Constraints: breakeven.Constraints{Min: req.Min, Max: req.Max},
	})
	if err != nil {
		h.fail(c, http.StatusBadRequest, err.Error(), err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Valuate takes a valuation document (subject and comparables, snake_case).
// The weight policy comes from ?policy=, then the document, then the server
// default.
func (h *Handler) Valuate(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		h.fail(c, bodyStatus(err), "Invalid request body", err)
		return
	}

	input, err := h.parser.ParseValuation(body)
	if err != nil {
		h.fail(c, http.StatusBadRequest, "Invalid valuation input", err)
		return
	}

	policy := input.Policy(h.policy)
	if q := c.Query("policy"); q != "" {
		policy, err = valuation.ParseWeightPolicy(q)
		if err != nil {
			h.fail(c, http.StatusBadRequest, err.Error(), err)
			return
		}
	}

	report, err := valuation.NewComparableWeightingEngine(policy).Report(input.Comparables, input.Subject)
	if errors.Is(err, valuation.ErrWeightOutOfRange) {
		h.fail(c, http.StatusUnprocessableEntity, err.Error(), err)
		return
	}
	if err != nil {
		requestLogger(c, h.logger).WithError(err).Error("Failed to valuate")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to valuate"})
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *Handler) NormalizeComparables(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		h.fail(c, bodyStatus(err), "Invalid request body", err)
		return
	}

	comparables, err := record.ParseComparables(body)
	if err != nil {
		h.fail(c, http.StatusBadRequest, "Invalid comparables", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comparables": comparables})
}

// preparePlan validates plan and, when live is set, overwrites its rates with
// the current reference rates, which are returned for display.
func (h *Handler) preparePlan(ctx context.Context, plan domain.InvestmentPlan, live bool) (domain.InvestmentPlan, *domain.ReferenceRates, error) {
	plan, err := h.parser.NormalizePlan(plan)
	if err != nil {
		return plan, nil, err
	}
	if !live {
		return plan, nil, nil
	}
	r, err := h.rates.Rates(ctx)
	if err != nil {
		h.logger.WithError(err).Warn("Reference rates unavailable, keeping plan rates")
		return plan, nil, nil
	}
	return r.ApplyTo(plan), &r, nil
}

// fail writes an error body. Validation errors list the offending fields.
func (h *Handler) fail(c *gin.Context, status int, message string, err error) {
	if err != nil {
		_ = c.Error(err)
	}
	body := gin.H{"error": message}
	if issues := fieldIssues(err); len(issues) > 0 {
		body["fields"] = issues
	}
	c.JSON(status, body)
}

func fieldIssues(err error) []record.FieldIssue {
	var fe *record.FieldError
	if errors.As(err, &fe) {
		return fe.Issues
	}
	var ve *config.ValidationError
	if errors.As(err, &ve) {
		field := "plan"
		if errors.Is(ve.Kind, config.ErrInvalidValuation) {
			field = "valuation"
		}
		issues := make([]record.FieldIssue, 0, len(ve.Problems))
		for _, p := range ve.Problems {
			issues = append(issues, record.FieldIssue{Field: field, Reason: p})
		}
		return issues
	}
	return nil
}

func bodyStatus(err error) int {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

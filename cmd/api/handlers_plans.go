package main

import (
	"errors"
	"net/http"
	"strings"

	"github.com/orlando572/sumaq-seguros-sub000/coverage"
	"github.com/orlando572/sumaq-seguros-sub000/display"
	"github.com/orlando572/sumaq-seguros-sub000/logger"
	"github.com/orlando572/sumaq-seguros-sub000/plan"
)

type planResponse struct {
	ID             int64    `json:"id"`
	Name           string   `json:"name"`
	Company        string   `json:"company"`
	Category       string   `json:"category"`
	Description    string   `json:"description,omitempty"`
	MonthlyPremium string   `json:"monthlyPremium"`
	AnnualPremium  string   `json:"annualPremium"`
	InsuredAmount  string   `json:"insuredAmount"`
	Deductible     string   `json:"deductible"`
	Frequency      string   `json:"frequency"`
	Coverage       []string `json:"coverage"`
}

type statsResponse struct {
	TotalPlans   int    `json:"totalPlans"`
	MinPremium   string `json:"minPremium"`
	MaxCoverage  string `json:"maxCoverage"`
	CompanyCount int    `json:"companyCount"`
}

type planSummaryResponse struct {
	planResponse
	QuotationCount int `json:"quotationCount"`
}

func toPlanResponse(p plan.Plan) planResponse {
	resp := planResponse{
		ID:             p.ID,
		Name:           p.DisplayName(),
		Company:        p.CompanyName(),
		MonthlyPremium: display.Money(p.MonthlyPremium),
		AnnualPremium:  display.Money(p.AnnualPremium),
		InsuredAmount:  display.Money(p.InsuredAmount),
		Deductible:     display.OptionalMoney(p.Deductible, "Sin deducible"),
		Frequency:      p.Frequency.Label(),
		Coverage:       coverage.Parse(p.CoverageText()),
	}
	if p.Type != nil {
		resp.Category = string(p.Type.Category)
		resp.Description = p.Type.Description
	}
	return resp
}

// handlePlans serves GET /api/plans?category=VEHICULAR.
func (s *Server) handlePlans(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	category, err := plan.ParseCategory(r.URL.Query().Get("category"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid category")
		return
	}

	plans, err := s.planService.ListByCategory(r.Context(), category)
	if err != nil {
		logger.FromContext(r.Context()).Error("list plans failed", "category", category, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	stats, err := s.planService.StatsByCategory(r.Context(), category)
	if err != nil {
		logger.FromContext(r.Context()).Error("category stats failed", "category", category, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	items := make([]planResponse, 0, len(plans))
	for _, p := range plans {
		items = append(items, toPlanResponse(p))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"category": category,
		"items":    items,
		"total":    len(items),
		"stats": statsResponse{
			TotalPlans:   stats.TotalPlans,
			MinPremium:   display.Money(stats.MinPremium),
			MaxCoverage:  display.Money(stats.MaxCoverage),
			CompanyCount: stats.CompanyCount,
		},
	})
}

// handlePlanDetail serves GET /api/plans/{id}/summary.
func (s *Server) handlePlanDetail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/plans/"), "/")
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[1] != "summary" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	id, ok := parseID(parts[0])
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid plan id")
		return
	}

	summary, err := s.planService.Summary(r.Context(), id)
	if err != nil {
		if errors.Is(err, plan.ErrNotFound) {
			writeError(w, http.StatusNotFound, "plan not found")
			return
		}
		logger.FromContext(r.Context()).Error("plan summary failed", "plan_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	resp := planSummaryResponse{
		planResponse:   toPlanResponse(summary.Plan),
		QuotationCount: summary.QuotationCount,
	}
	resp.Coverage = summary.Coverage
	writeJSON(w, http.StatusOK, resp)
}

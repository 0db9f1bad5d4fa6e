package plan

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

type fakeCatalog struct {
	listCalls int
	plans     []Plan
	summary   Summary
	err       error
}

func (f *fakeCatalog) ListByCategory(_ context.Context, _ Category) ([]Plan, error) {
	f.listCalls++
	return f.plans, f.err
}

func (f *fakeCatalog) StatsByCategory(_ context.Context, c Category) (CategoryStats, error) {
	return CategoryStats{Category: c, TotalPlans: len(f.plans)}, f.err
}

func (f *fakeCatalog) Summary(_ context.Context, _ int64) (Summary, error) {
	return f.summary, f.err
}

func TestService_ListByCategoryRejectsUnknown(t *testing.T) {
	repo := &fakeCatalog{}
	svc := NewService(repo)

	_, err := svc.ListByCategory(context.Background(), Category("MASCOTAS"))
	if !errors.Is(err, ErrInvalidCategory) {
		t.Fatalf("expected ErrInvalidCategory, got %v", err)
	}
	if repo.listCalls != 0 {
		t.Fatalf("repository must not be queried for an unknown category")
	}
}

func TestService_StatsByCategory(t *testing.T) {
	svc := NewService(&fakeCatalog{plans: []Plan{{ID: 1}, {ID: 2}}})

	stats, err := svc.StatsByCategory(context.Background(), CategorySalud)
	if err != nil {
		t.Fatalf("StatsByCategory: %v", err)
	}
	if stats.TotalPlans != 2 || stats.Category != CategorySalud {
		t.Fatalf("unexpected stats %+v", stats)
	}
}

func TestService_SummaryRejectsNonPositiveID(t *testing.T) {
	svc := NewService(&fakeCatalog{})

	if _, err := svc.Summary(context.Background(), 0); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory("  hogar ")
	if err != nil || c != CategoryHogar {
		t.Fatalf("expected HOGAR, got %q, %v", c, err)
	}
	if _, err := ParseCategory("AUTOS"); err == nil {
		t.Fatalf("expected error for unknown category")
	}
}

func TestPlan_CoverageTextPrefersType(t *testing.T) {
	p := Plan{
		Type:              &PlanType{PrincipalCoverage: "Robo y Choque"},
		PrincipalCoverage: "Solo robo",
	}
	if got := p.CoverageText(); got != "Robo y Choque" {
		t.Fatalf("expected type coverage, got %q", got)
	}

	p.Type.PrincipalCoverage = "   "
	if got := p.CoverageText(); got != "Solo robo" {
		t.Fatalf("expected plan coverage fallback, got %q", got)
	}

	p.Type = nil
	if got := p.CoverageText(); got != "Solo robo" {
		t.Fatalf("expected plan coverage without type, got %q", got)
	}
}

func TestPlan_NilLinks(t *testing.T) {
	p := Plan{ID: 42, MonthlyPremium: decimal.NewFromInt(10)}
	if p.CompanyName() != "" {
		t.Fatalf("expected empty company name")
	}
	if p.DisplayName() != "Plan 42" {
		t.Fatalf("unexpected display name %q", p.DisplayName())
	}
	if p.HasDeductible() {
		t.Fatalf("expected no deductible")
	}
}

func TestPaymentFrequency_Label(t *testing.T) {
	cases := map[PaymentFrequency]string{
		FrequencyMonthly:      "Mensual",
		FrequencyAnnual:       "Anual",
		PaymentFrequency("X"): "No especificada",
	}
	for f, want := range cases {
		if got := f.Label(); got != want {
			t.Fatalf("%s: expected %q, got %q", f, want, got)
		}
	}
}

package comparison

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/orlando572/sumaq-seguros-sub000/plan"
)

func newPlan(id int64, company string, monthly, insured string) plan.Plan {
	p := plan.Plan{
		ID:             id,
		MonthlyPremium: decimal.RequireFromString(monthly),
		AnnualPremium:  decimal.RequireFromString(monthly).Mul(decimal.NewFromInt(12)),
		InsuredAmount:  decimal.RequireFromString(insured),
		Frequency:      plan.FrequencyMonthly,
		Type:           &plan.PlanType{ID: id, Category: plan.CategoryVehicular, Name: "Plan " + company},
	}
	if company != "" {
		p.Company = &plan.Company{ID: id, Name: company}
	}
	return p
}

func TestCompare_FewerThanTwoPlans(t *testing.T) {
	require.Nil(t, Compare(nil))
	require.Nil(t, Compare([]plan.Plan{newPlan(1, "Rimac", "100", "1000")}))
}

func TestCompare_Extremes(t *testing.T) {
	res := Compare([]plan.Plan{
		newPlan(1, "Rimac", "120.50", "50000"),
		newPlan(2, "Pacifico", "99.90", "45000"),
		newPlan(3, "Mapfre", "150", "80000"),
	})

	require.NotNil(t, res)
	require.True(t, res.MinMonthlyPremium.Equal(decimal.RequireFromString("99.90")))
	require.True(t, res.MaxInsuredAmount.Equal(decimal.NewFromInt(80000)))
	require.Equal(t, []int64{2}, res.BestPriceIDs)
	require.Equal(t, []int64{3}, res.BestCoverageIDs)
	require.True(t, res.IsBestPrice(2))
	require.False(t, res.IsBestPrice(1))
}

func TestCompare_TiesFlagEveryPlan(t *testing.T) {
	res := Compare([]plan.Plan{
		newPlan(1, "Rimac", "80.00", "30000"),
		newPlan(2, "Pacifico", "80", "30000.00"),
	})

	require.NotNil(t, res)
	require.Equal(t, []int64{1, 2}, res.BestPriceIDs)
	require.Equal(t, []int64{1, 2}, res.BestCoverageIDs)
}

func TestCompare_TieNotAtFirstPosition(t *testing.T) {
	res := Compare([]plan.Plan{
		newPlan(1, "Rimac", "90", "10000"),
		newPlan(2, "Pacifico", "70", "20000"),
		newPlan(3, "Mapfre", "70", "20000"),
	})

	require.Equal(t, []int64{2, 3}, res.BestPriceIDs)
	require.Equal(t, []int64{2, 3}, res.BestCoverageIDs)
}

func TestNilResultFlagsNothing(t *testing.T) {
	var res *Result
	require.False(t, res.IsBestPrice(1))
	require.False(t, res.IsBestCoverage(1))
}

func TestGroupByCompany_FirstSeenOrder(t *testing.T) {
	orphan := newPlan(5, "", "10", "10")
	untyped := newPlan(6, "Rimac", "10", "10")
	untyped.Type = nil

	groups := GroupByCompany([]plan.Plan{
		newPlan(1, "Pacifico", "10", "10"),
		newPlan(2, "Rimac", "10", "10"),
		orphan,
		newPlan(3, "Pacifico", "10", "10"),
		untyped,
		newPlan(4, "Mapfre", "10", "10"),
	})

	require.Len(t, groups, 3)
	require.Equal(t, "Pacifico", groups[0].Company)
	require.Equal(t, "Rimac", groups[1].Company)
	require.Equal(t, "Mapfre", groups[2].Company)
	require.Len(t, groups[0].Plans, 2)
	require.Equal(t, int64(3), groups[0].Plans[1].ID)
	require.Len(t, groups[1].Plans, 1)
}

func TestBuildTable_OmitsEmptyOptionalRows(t *testing.T) {
	plans := []plan.Plan{newPlan(1, "Rimac", "100", "1000"), newPlan(2, "Pacifico", "90", "2000")}

	table := BuildTable(plans, Compare(plans))

	require.Len(t, table.Columns, 2)
	require.Equal(t, []Criterion{
		CriterionMonthlyPremium,
		CriterionAnnualPremium,
		CriterionInsuredAmount,
		CriterionFrequency,
	}, criteria(table))
}

func TestBuildTable_AllRows(t *testing.T) {
	deductible := decimal.NewFromInt(500)
	a := newPlan(1, "Rimac", "100", "5000")
	a.Deductible = &deductible
	a.Type.PrincipalCoverage = "Robo, Incendio y Choque"
	b := newPlan(2, "Pacifico", "100", "4000")
	b.PrincipalCoverage = "Robo"

	table := BuildTable([]plan.Plan{a, b}, Compare([]plan.Plan{a, b}))

	require.Equal(t, []Criterion{
		CriterionMonthlyPremium,
		CriterionAnnualPremium,
		CriterionInsuredAmount,
		CriterionDeductible,
		CriterionFrequency,
		CriterionCoverage,
	}, criteria(table))

	monthly := table.Rows[0]
	require.True(t, monthly.Cells[0].Best)
	require.True(t, monthly.Cells[1].Best)

	insured := table.Rows[2]
	require.True(t, insured.Cells[0].Best)
	require.False(t, insured.Cells[1].Best)

	ded := table.Rows[3]
	require.Contains(t, ded.Cells[0].Value, "500.00")
	require.Equal(t, "Sin deducible", ded.Cells[1].Value)

	cov := table.Rows[5]
	require.Equal(t, []string{"Robo", "Incendio", "Choque"}, cov.Cells[0].Items)
	require.Equal(t, []string{"Robo"}, cov.Cells[1].Items)
	require.Equal(t, int64(2), cov.Cells[1].PlanID)
}

func criteria(t Table) []Criterion {
	out := make([]Criterion, 0, len(t.Rows))
	for _, r := range t.Rows {
		out = append(out, r.Criterion)
	}
	return out
}

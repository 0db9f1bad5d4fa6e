package comparison

import (
	"github.com/orlando572/sumaq-seguros-sub000/coverage"
	"github.com/orlando572/sumaq-seguros-sub000/display"
	"github.com/orlando572/sumaq-seguros-sub000/plan"
)

// Criterion identifies a row of the comparison table.
type Criterion string

const (
	CriterionMonthlyPremium Criterion = "monthly_premium"
	CriterionAnnualPremium  Criterion = "annual_premium"
	CriterionInsuredAmount  Criterion = "insured_amount"
	CriterionDeductible     Criterion = "deductible"
	CriterionFrequency      Criterion = "payment_frequency"
	CriterionCoverage       Criterion = "coverage"
)

const noDeductible = "Sin deducible"

// Column describes one compared plan.
type Column struct {
	PlanID  int64  `json:"planId"`
	Name    string `json:"name"`
	Company string `json:"company"`
}

// Cell is a single plan's value for a criterion. Items is set only on the
// coverage row.
type Cell struct {
	PlanID int64    `json:"planId"`
	Value  string   `json:"value,omitempty"`
	Items  []string `json:"items,omitempty"`
	Best   bool     `json:"best"`
}

// Row is one criterion rendered across every compared plan.
type Row struct {
	Criterion Criterion `json:"criterion"`
	Label     string    `json:"label"`
	Cells     []Cell    `json:"cells"`
}

// Table is the side-by-side comparison of the selected plans.
type Table struct {
	Columns []Column `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// BuildTable lays plans out criterion by criterion in a fixed order. The
// deductible row is omitted when no plan has a deductible and the coverage row
// when no plan has parseable coverage. res may be nil, in which case no cell
// is flagged as best.
func BuildTable(plans []plan.Plan, res *Result) Table {
	t := Table{
		Columns: make([]Column, 0, len(plans)),
		Rows:    make([]Row, 0, 6),
	}
	for _, p := range plans {
		t.Columns = append(t.Columns, Column{PlanID: p.ID, Name: p.DisplayName(), Company: p.CompanyName()})
	}

	t.Rows = append(t.Rows,
		row(CriterionMonthlyPremium, "Prima mensual", plans, func(p plan.Plan) Cell {
			return Cell{Value: display.Money(p.MonthlyPremium), Best: res.IsBestPrice(p.ID)}
		}),
		row(CriterionAnnualPremium, "Prima anual", plans, func(p plan.Plan) Cell {
			return Cell{Value: display.Money(p.AnnualPremium)}
		}),
		row(CriterionInsuredAmount, "Suma asegurada", plans, func(p plan.Plan) Cell {
			return Cell{Value: display.Money(p.InsuredAmount), Best: res.IsBestCoverage(p.ID)}
		}),
	)

	if anyPlan(plans, plan.Plan.HasDeductible) {
		t.Rows = append(t.Rows, row(CriterionDeductible, "Deducible", plans, func(p plan.Plan) Cell {
			return Cell{Value: display.OptionalMoney(p.Deductible, noDeductible)}
		}))
	}

	t.Rows = append(t.Rows, row(CriterionFrequency, "Frecuencia de pago", plans, func(p plan.Plan) Cell {
		return Cell{Value: p.Frequency.Label()}
	}))

	parsed := make(map[int64][]string, len(plans))
	for _, p := range plans {
		parsed[p.ID] = coverage.Parse(p.CoverageText())
	}
	if anyPlan(plans, func(p plan.Plan) bool { return len(parsed[p.ID]) > 0 }) {
		t.Rows = append(t.Rows, row(CriterionCoverage, "Coberturas", plans, func(p plan.Plan) Cell {
			return Cell{Items: parsed[p.ID]}
		}))
	}

	return t
}

func row(c Criterion, label string, plans []plan.Plan, cell func(plan.Plan) Cell) Row {
	r := Row{Criterion: c, Label: label, Cells: make([]Cell, 0, len(plans))}
	for _, p := range plans {
		v := cell(p)
		v.PlanID = p.ID
		r.Cells = append(r.Cells, v)
	}
	return r
}

func anyPlan(plans []plan.Plan, pred func(plan.Plan) bool) bool {
	for _, p := range plans {
		if pred(p) {
			return true
		}
	}
	return false
}

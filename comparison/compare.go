// Package comparison derives the best-price and best-coverage figures for a
// set of selected plans and lays them out for the catalog and comparison views.
package comparison

import (
	"github.com/shopspring/decimal"

	"github.com/orlando572/sumaq-seguros-sub000/plan"
)

// MinPlans is the smallest selection that can be compared.
const MinPlans = 2

// Result holds the extremes over the compared plans. Every plan whose value
// equals an extreme is listed, so ties flag all tied plans.
type Result struct {
	MinMonthlyPremium decimal.Decimal
	MaxInsuredAmount  decimal.Decimal
	BestPriceIDs      []int64
	BestCoverageIDs   []int64
}

// Compare returns nil when fewer than MinPlans plans are given.
func Compare(plans []plan.Plan) *Result {
	if len(plans) < MinPlans {
		return nil
	}

	res := &Result{
		MinMonthlyPremium: plans[0].MonthlyPremium,
		MaxInsuredAmount:  plans[0].InsuredAmount,
	}
	for _, p := range plans[1:] {
		if p.MonthlyPremium.LessThan(res.MinMonthlyPremium) {
			res.MinMonthlyPremium = p.MonthlyPremium
		}
		if p.InsuredAmount.GreaterThan(res.MaxInsuredAmount) {
			res.MaxInsuredAmount = p.InsuredAmount
		}
	}

	for _, p := range plans {
		if p.MonthlyPremium.Equal(res.MinMonthlyPremium) {
			res.BestPriceIDs = append(res.BestPriceIDs, p.ID)
		}
		if p.InsuredAmount.Equal(res.MaxInsuredAmount) {
			res.BestCoverageIDs = append(res.BestCoverageIDs, p.ID)
		}
	}

	return res
}

// IsBestPrice reports whether planID has the lowest monthly premium.
// A nil result flags nothing.
func (r *Result) IsBestPrice(planID int64) bool {
	if r == nil {
		return false
	}
	return containsID(r.BestPriceIDs, planID)
}

// IsBestCoverage reports whether planID has the highest insured amount.
func (r *Result) IsBestCoverage(planID int64) bool {
	if r == nil {
		return false
	}
	return containsID(r.BestCoverageIDs, planID)
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

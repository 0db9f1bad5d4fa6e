package comparator

import (
	"github.com/orlando572/sumaq-seguros-sub000/comparison"
	"github.com/orlando572/sumaq-seguros-sub000/coverage"
	"github.com/orlando572/sumaq-seguros-sub000/display"
	"github.com/orlando572/sumaq-seguros-sub000/plan"
)

// StatsView is the category header.
type StatsView struct {
	TotalPlans   int    `json:"totalPlans"`
	MinPremium   string `json:"minPremium"`
	MaxCoverage  string `json:"maxCoverage"`
	CompanyCount int    `json:"companyCount"`
}

// PlanCard is one plan in the catalog grid.
type PlanCard struct {
	ID             int64    `json:"id"`
	Name           string   `json:"name"`
	Company        string   `json:"company"`
	MonthlyPremium string   `json:"monthlyPremium"`
	AnnualPremium  string   `json:"annualPremium"`
	InsuredAmount  string   `json:"insuredAmount"`
	Deductible     string   `json:"deductible"`
	Frequency      string   `json:"frequency"`
	Coverage       []string `json:"coverage"`
	CoverageMore   string   `json:"coverageMore,omitempty"`
	Selected       bool     `json:"selected"`
	BestPrice      bool     `json:"bestPrice"`
	BestCoverage   bool     `json:"bestCoverage"`
}

// GroupView is one insurer's block of cards.
type GroupView struct {
	Company string     `json:"company"`
	Plans   []PlanCard `json:"plans"`
}

// CompareView is the side-by-side table shown once two plans are selected.
type CompareView struct {
	MinMonthlyPremium string           `json:"minMonthlyPremium"`
	MaxInsuredAmount  string           `json:"maxInsuredAmount"`
	Table             comparison.Table `json:"table"`
}

// View is a consistent snapshot of a session.
type View struct {
	Category   plan.Category `json:"category"`
	Loading    bool          `json:"loading"`
	Stats      StatsView     `json:"stats"`
	Groups     []GroupView   `json:"groups"`
	Selection  []int64       `json:"selection"`
	CanCompare bool          `json:"canCompare"`
	Comparison *CompareView  `json:"comparison,omitempty"`
	Notice     *Notice       `json:"notice,omitempty"`
}

// View renders the session. Best-price and best-coverage flags are only set
// once the selection can be compared.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	selected := s.selectedPlans()
	res := comparison.Compare(selected)

	v := View{
		Category: s.category,
		Loading:  s.loading,
		Stats: StatsView{
			TotalPlans:   s.stats.TotalPlans,
			MinPremium:   display.Money(s.stats.MinPremium),
			MaxCoverage:  display.Money(s.stats.MaxCoverage),
			CompanyCount: s.stats.CompanyCount,
		},
		Groups:     make([]GroupView, 0),
		Selection:  s.selection.IDs(),
		CanCompare: res != nil,
		Notice:     s.currentNotice(),
	}

	for _, g := range comparison.GroupByCompany(s.plans) {
		gv := GroupView{Company: g.Company, Plans: make([]PlanCard, 0, len(g.Plans))}
		for _, p := range g.Plans {
			gv.Plans = append(gv.Plans, s.card(p, res))
		}
		v.Groups = append(v.Groups, gv)
	}

	if res != nil {
		v.Comparison = &CompareView{
			MinMonthlyPremium: display.Money(res.MinMonthlyPremium),
			MaxInsuredAmount:  display.Money(res.MaxInsuredAmount),
			Table:             comparison.BuildTable(selected, res),
		}
	}

	return v
}

func (s *Session) card(p plan.Plan, res *comparison.Result) PlanCard {
	preview := coverage.NewPreview(p.CoverageText(), coverage.PreviewLimit)
	return PlanCard{
		ID:             p.ID,
		Name:           p.DisplayName(),
		Company:        p.CompanyName(),
		MonthlyPremium: display.Money(p.MonthlyPremium),
		AnnualPremium:  display.Money(p.AnnualPremium),
		InsuredAmount:  display.Money(p.InsuredAmount),
		Deductible:     display.OptionalMoney(p.Deductible, "Sin deducible"),
		Frequency:      p.Frequency.Label(),
		Coverage:       preview.Items,
		CoverageMore:   preview.MoreLabel(),
		Selected:       s.selection.Contains(p.ID),
		BestPrice:      res.IsBestPrice(p.ID),
		BestCoverage:   res.IsBestCoverage(p.ID),
	}
}

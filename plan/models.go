package plan

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Category is the top-level insurance class used to scope plan listings.
type Category string

const (
	CategoryVehicular Category = "VEHICULAR"
	CategoryHogar     Category = "HOGAR"
	CategorySalud     Category = "SALUD"
	CategoryVida      Category = "VIDA"
)

// Categories lists every category in display order.
var Categories = []Category{CategoryVehicular, CategoryHogar, CategorySalud, CategoryVida}

// ParseCategory normalizes s into a known Category.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("plan: unknown category %q", s)
	}
	return c, nil
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryVehicular, CategoryHogar, CategorySalud, CategoryVida:
		return true
	default:
		return false
	}
}

// PaymentFrequency is how often the premium is charged.
type PaymentFrequency string

const (
	FrequencyMonthly    PaymentFrequency = "MENSUAL"
	FrequencyQuarterly  PaymentFrequency = "TRIMESTRAL"
	FrequencySemiannual PaymentFrequency = "SEMESTRAL"
	FrequencyAnnual     PaymentFrequency = "ANUAL"
)

// Label returns the human readable frequency.
func (f PaymentFrequency) Label() string {
	switch f {
	case FrequencyMonthly:
		return "Mensual"
	case FrequencyQuarterly:
		return "Trimestral"
	case FrequencySemiannual:
		return "Semestral"
	case FrequencyAnnual:
		return "Anual"
	default:
		return "No especificada"
	}
}

// Company is the insurer offering a plan.
type Company struct {
	ID   int64
	Name string
}

// PlanType describes the product family a plan belongs to.
type PlanType struct {
	ID                int64
	Category          Category
	Name              string
	Description       string
	PrincipalCoverage string
}

// Plan is one sellable insurance product instance. Company and Type are nil
// when the backing row lost its linkage.
type Plan struct {
	ID                int64
	Company           *Company
	Type              *PlanType
	MonthlyPremium    decimal.Decimal
	AnnualPremium     decimal.Decimal
	InsuredAmount     decimal.Decimal
	Deductible        *decimal.Decimal
	Frequency         PaymentFrequency
	PrincipalCoverage string
}

// CompanyName returns the insurer name, or "" without a linked company.
func (p Plan) CompanyName() string {
	if p.Company == nil {
		return ""
	}
	return p.Company.Name
}

// DisplayName returns the plan type name, falling back to the plan id.
func (p Plan) DisplayName() string {
	if p.Type != nil && p.Type.Name != "" {
		return p.Type.Name
	}
	return fmt.Sprintf("Plan %d", p.ID)
}

// CoverageText returns the free-text coverage description. The plan type's
// text wins; the plan's own description is used when the type has none.
func (p Plan) CoverageText() string {
	if p.Type != nil && strings.TrimSpace(p.Type.PrincipalCoverage) != "" {
		return p.Type.PrincipalCoverage
	}
	return p.PrincipalCoverage
}

// HasDeductible reports whether the plan carries a deductible.
func (p Plan) HasDeductible() bool {
	return p.Deductible != nil
}

// CategoryStats summarizes the plans offered in one category.
type CategoryStats struct {
	Category     Category
	TotalPlans   int
	MinPremium   decimal.Decimal
	MaxCoverage  decimal.Decimal
	CompanyCount int
}

// Summary is the read-only detail record shown for a single plan.
type Summary struct {
	Plan           Plan
	Coverage       []string
	QuotationCount int
}

package plan

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/orlando572/sumaq-seguros-sub000/coverage"
)

// ErrNotFound signals the requested plan does not exist.
var ErrNotFound = errors.New("plan: not found")

// PGRepository provides read access to the plan catalog.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository wires a pgxpool-backed repository implementation.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// Numeric columns are selected as text and parsed with decimal to keep the
// exact value stored in Postgres.
const planColumns = `
	p.id,
	c.id, c.name,
	t.id, t.category, t.name, t.description, t.principal_coverage,
	p.monthly_premium::text, p.annual_premium::text, p.insured_amount::text, p.deductible::text,
	p.payment_frequency, p.principal_coverage
`

// ListByCategory fetches the active plans of a category ordered by company
// then monthly premium. Plans whose company or type row is missing are still
// returned with nil links.
func (r *PGRepository) ListByCategory(ctx context.Context, category Category) ([]Plan, error) {
	const query = `
		SELECT ` + planColumns + `
		FROM plans p
		LEFT JOIN companies c ON c.id = p.company_id
		LEFT JOIN plan_types t ON t.id = p.plan_type_id
		WHERE p.active AND p.category = $1
		ORDER BY c.name NULLS LAST, p.monthly_premium ASC, p.id ASC
	`

	rows, err := r.pool.Query(ctx, query, category)
	if err != nil {
		return nil, fmt.Errorf("plan: list by category: %w", err)
	}
	defer rows.Close()

	plans := make([]Plan, 0, 16)
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("plan: scan plan: %w", err)
		}
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("plan: iterate plans: %w", err)
	}

	return plans, nil
}

// StatsByCategory aggregates totals for the category header.
func (r *PGRepository) StatsByCategory(ctx context.Context, category Category) (CategoryStats, error) {
	const query = `
		SELECT COUNT(*),
		       COALESCE(MIN(monthly_premium), 0)::text,
		       COALESCE(MAX(insured_amount), 0)::text,
		       COUNT(DISTINCT company_id)
		FROM plans
		WHERE active AND category = $1
	`

	var (
		stats       = CategoryStats{Category: category}
		minPremium  string
		maxCoverage string
	)
	err := r.pool.QueryRow(ctx, query, category).Scan(&stats.TotalPlans, &minPremium, &maxCoverage, &stats.CompanyCount)
	if err != nil {
		return CategoryStats{}, fmt.Errorf("plan: stats by category: %w", err)
	}

	if stats.MinPremium, err = decimal.NewFromString(minPremium); err != nil {
		return CategoryStats{}, fmt.Errorf("plan: parse min premium: %w", err)
	}
	if stats.MaxCoverage, err = decimal.NewFromString(maxCoverage); err != nil {
		return CategoryStats{}, fmt.Errorf("plan: parse max coverage: %w", err)
	}

	return stats, nil
}

// GetByID fetches a single plan by its primary key.
func (r *PGRepository) GetByID(ctx context.Context, id int64) (Plan, error) {
	const query = `
		SELECT ` + planColumns + `
		FROM plans p
		LEFT JOIN companies c ON c.id = p.company_id
		LEFT JOIN plan_types t ON t.id = p.plan_type_id
		WHERE p.id = $1
	`

	p, err := scanPlan(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Plan{}, ErrNotFound
		}
		return Plan{}, fmt.Errorf("plan: query by id: %w", err)
	}
	return p, nil
}

// Summary fetches the detail record for a plan.
func (r *PGRepository) Summary(ctx context.Context, id int64) (Summary, error) {
	p, err := r.GetByID(ctx, id)
	if err != nil {
		return Summary{}, err
	}

	var count int
	const countSQL = `SELECT COUNT(*) FROM quotation_request_plans WHERE plan_id = $1`
	if err := r.pool.QueryRow(ctx, countSQL, id).Scan(&count); err != nil {
		return Summary{}, fmt.Errorf("plan: count quotations: %w", err)
	}

	return Summary{
		Plan:           p,
		Coverage:       coverage.Parse(p.CoverageText()),
		QuotationCount: count,
	}, nil
}

func scanPlan(row pgx.Row) (Plan, error) {
	var (
		p                Plan
		companyID        *int64
		companyName      *string
		typeID           *int64
		typeCategory     *string
		typeName         *string
		typeDescription  *string
		typeCoverage     *string
		monthly          string
		annual           string
		insured          string
		deductible       *string
		frequency        string
		planCoverageText *string
	)
	err := row.Scan(
		&p.ID,
		&companyID, &companyName,
		&typeID, &typeCategory, &typeName, &typeDescription, &typeCoverage,
		&monthly, &annual, &insured, &deductible,
		&frequency, &planCoverageText,
	)
	if err != nil {
		return Plan{}, err
	}

	if companyID != nil {
		p.Company = &Company{ID: *companyID, Name: deref(companyName)}
	}
	if typeID != nil {
		p.Type = &PlanType{
			ID:                *typeID,
			Category:          Category(deref(typeCategory)),
			Name:              deref(typeName),
			Description:       deref(typeDescription),
			PrincipalCoverage: deref(typeCoverage),
		}
	}

	if p.MonthlyPremium, err = decimal.NewFromString(monthly); err != nil {
		return Plan{}, fmt.Errorf("monthly premium: %w", err)
	}
	if p.AnnualPremium, err = decimal.NewFromString(annual); err != nil {
		return Plan{}, fmt.Errorf("annual premium: %w", err)
	}
	if p.InsuredAmount, err = decimal.NewFromString(insured); err != nil {
		return Plan{}, fmt.Errorf("insured amount: %w", err)
	}
	if deductible != nil {
		d, err := decimal.NewFromString(*deductible)
		if err != nil {
			return Plan{}, fmt.Errorf("deductible: %w", err)
		}
		p.Deductible = &d
	}

	p.Frequency = PaymentFrequency(frequency)
	p.PrincipalCoverage = deref(planCoverageText)
	return p, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

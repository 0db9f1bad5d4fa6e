package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const (
	recentAlertsLimit   = 5
	recentActivityLimit = 10
	expiringWindowDays  = 30
)

// PGRepository implements Source backed by PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// NewRepository creates a PostgreSQL-backed dashboard source.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool, now: time.Now}
}

// PersonalInfo returns the user's identity and AFP affiliation.
func (r *PGRepository) PersonalInfo(ctx context.Context, userID string) (*PersonalInfo, error) {
	const query = `
		SELECT u.full_name, COALESCE(u.dni, ''), u.email, COALESCE(u.phone, ''),
		       COALESCE(af.afp_name, ''), COALESCE(af.cuspp, ''), COALESCE(af.fund_type, ''),
		       af.affiliated_at, af.birth_date
		FROM users u
		LEFT JOIN affiliations af ON af.user_id = u.id
		WHERE u.id = $1
	`

	var info PersonalInfo
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&info.FullName, &info.DNI, &info.Email, &info.Phone,
		&info.AFP, &info.CUSPP, &info.FundType,
		&info.AffiliationDate, &info.BirthDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("dashboard: personal info: %w", err)
	}
	return &info, nil
}

// FinancialSummary returns the pension account snapshot and this year's
// contributions.
func (r *PGRepository) FinancialSummary(ctx context.Context, userID string) (*FinancialSummary, error) {
	const query = `
		SELECT (pa.mandatory_balance + pa.voluntary_balance)::text,
		       pa.mandatory_balance::text,
		       pa.voluntary_balance::text,
		       COALESCE((SELECT SUM(c.amount) FROM contributions c
		                 WHERE c.user_id = pa.user_id AND c.contributed_at >= date_trunc('year', $2::timestamptz)), 0)::text,
		       pa.projected_monthly_pension::text,
		       pa.average_return_pct::text,
		       (SELECT MAX(c.contributed_at) FROM contributions c WHERE c.user_id = pa.user_id)
		FROM pension_accounts pa
		WHERE pa.user_id = $1
	`

	var (
		total, mandatory, voluntary, thisYear, pension, avgReturn string
		summary                                                   FinancialSummary
	)
	err := r.pool.QueryRow(ctx, query, userID, r.now()).Scan(
		&total, &mandatory, &voluntary, &thisYear, &pension, &avgReturn, &summary.LastContributionDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("dashboard: financial summary: %w", err)
	}

	targets := []struct {
		raw string
		dst *decimal.Decimal
	}{
		{total, &summary.TotalBalance},
		{mandatory, &summary.MandatoryBalance},
		{voluntary, &summary.VoluntaryBalance},
		{thisYear, &summary.ContributionsThisYear},
		{pension, &summary.ProjectedMonthlyPension},
		{avgReturn, &summary.AverageReturnPct},
	}
	for _, t := range targets {
		d, err := decimal.NewFromString(t.raw)
		if err != nil {
			return nil, fmt.Errorf("dashboard: parse financial amount %q: %w", t.raw, err)
		}
		*t.dst = d
	}
	return &summary, nil
}

// InsuranceSummary aggregates the user's policies and pending quotations.
func (r *PGRepository) InsuranceSummary(ctx context.Context, userID string) (*InsuranceSummary, error) {
	const query = `
		SELECT COUNT(*) FILTER (WHERE ip.status = 'ACTIVA'),
		       COUNT(*) FILTER (WHERE ip.status = 'ACTIVA' AND ip.end_date >= $2::date AND ip.end_date <= $2::date + $3::int),
		       COALESCE(SUM(ip.monthly_premium) FILTER (WHERE ip.status = 'ACTIVA'), 0)::text,
		       COALESCE(SUM(ip.insured_amount) FILTER (WHERE ip.status = 'ACTIVA'), 0)::text,
		       MIN(ip.end_date) FILTER (WHERE ip.status = 'ACTIVA' AND ip.end_date >= $2::date),
		       (SELECT COUNT(*) FROM quotation_requests q WHERE q.user_id = $1 AND q.status = 'PENDIENTE')
		FROM insurance_policies ip
		WHERE ip.user_id = $1
	`

	var (
		summary          InsuranceSummary
		premium, covered string
	)
	err := r.pool.QueryRow(ctx, query, userID, r.now(), expiringWindowDays).Scan(
		&summary.ActivePolicies, &summary.ExpiringPolicies, &premium, &covered,
		&summary.NextRenewalDate, &summary.PendingQuotationsNum,
	)
	if err != nil {
		return nil, fmt.Errorf("dashboard: insurance summary: %w", err)
	}

	if summary.TotalMonthlyPremium, err = decimal.NewFromString(premium); err != nil {
		return nil, fmt.Errorf("dashboard: parse premium: %w", err)
	}
	if summary.TotalCoverage, err = decimal.NewFromString(covered); err != nil {
		return nil, fmt.Errorf("dashboard: parse coverage: %w", err)
	}
	return &summary, nil
}

// Alerts returns the count of open alerts and the most recent ones.
func (r *PGRepository) Alerts(ctx context.Context, userID string) (*Alerts, error) {
	var out Alerts
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM alerts WHERE user_id = $1 AND NOT dismissed`, userID).Scan(&out.Total); err != nil {
		return nil, fmt.Errorf("dashboard: count alerts: %w", err)
	}

	const query = `
		SELECT id::text, kind, icon, title, message, created_at
		FROM alerts
		WHERE user_id = $1 AND NOT dismissed
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, userID, recentAlertsLimit)
	if err != nil {
		return nil, fmt.Errorf("dashboard: list alerts: %w", err)
	}
	defer rows.Close()

	out.Items = make([]Alert, 0, recentAlertsLimit)
	for rows.Next() {
		var a Alert
		if err := rows.Scan(&a.ID, &a.Kind, &a.Icon, &a.Title, &a.Message, &a.Date); err != nil {
			return nil, fmt.Errorf("dashboard: scan alert: %w", err)
		}
		out.Items = append(out.Items, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("dashboard: iterate alerts: %w", err)
	}
	return &out, nil
}

// Activity returns the activity count and the most recent entries.
func (r *PGRepository) Activity(ctx context.Context, userID string) (*Activity, error) {
	var out Activity
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM activity_log WHERE user_id = $1`, userID).Scan(&out.Total); err != nil {
		return nil, fmt.Errorf("dashboard: count activity: %w", err)
	}

	const query = `
		SELECT id::text, kind, description, amount::text, created_at
		FROM activity_log
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, userID, recentActivityLimit)
	if err != nil {
		return nil, fmt.Errorf("dashboard: list activity: %w", err)
	}
	defer rows.Close()

	out.Items = make([]ActivityEntry, 0, recentActivityLimit)
	for rows.Next() {
		var (
			e      ActivityEntry
			amount *string
		)
		if err := rows.Scan(&e.ID, &e.Kind, &e.Description, &amount, &e.Date); err != nil {
			return nil, fmt.Errorf("dashboard: scan activity: %w", err)
		}
		if amount != nil {
			d, err := decimal.NewFromString(*amount)
			if err != nil {
				return nil, fmt.Errorf("dashboard: parse activity amount: %w", err)
			}
			e.Amount = &d
		}
		out.Items = append(out.Items, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("dashboard: iterate activity: %w", err)
	}
	return &out, nil
}

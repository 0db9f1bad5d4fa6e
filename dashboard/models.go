package dashboard

import (
	"time"

	"github.com/shopspring/decimal"
)

// PersonalInfo is the affiliate's identity block.
type PersonalInfo struct {
	FullName        string     `json:"nombreCompleto"`
	DNI             string     `json:"dni"`
	Email           string     `json:"email"`
	Phone           string     `json:"telefono"`
	AFP             string     `json:"afp"`
	CUSPP           string     `json:"cuspp"`
	FundType        string     `json:"tipoFondo"`
	AffiliationDate *time.Time `json:"fechaAfiliacion"`
	BirthDate       *time.Time `json:"fechaNacimiento"`
}

// FinancialSummary is the pension account snapshot.
type FinancialSummary struct {
	TotalBalance            decimal.Decimal `json:"saldoTotal"`
	MandatoryBalance        decimal.Decimal `json:"saldoObligatorio"`
	VoluntaryBalance        decimal.Decimal `json:"saldoVoluntario"`
	ContributionsThisYear   decimal.Decimal `json:"aportesEsteAnio"`
	ProjectedMonthlyPension decimal.Decimal `json:"pensionMensualProyectada"`
	AverageReturnPct        decimal.Decimal `json:"rentabilidadPromedio"`
	LastContributionDate    *time.Time      `json:"fechaUltimoAporte"`
}

// InsuranceSummary aggregates the user's insurance policies.
type InsuranceSummary struct {
	ActivePolicies       int             `json:"segurosActivos"`
	ExpiringPolicies     int             `json:"segurosPorVencer"`
	TotalMonthlyPremium  decimal.Decimal `json:"primaMensualTotal"`
	TotalCoverage        decimal.Decimal `json:"coberturaTotal"`
	NextRenewalDate      *time.Time      `json:"proximoVencimiento"`
	PendingQuotationsNum int             `json:"cotizacionesPendientes"`
}

// Alert is a raw alert record as reported by the collaborator layer. Icon and
// Kind are loose strings; the aggregator maps them through closed enums.
type Alert struct {
	ID      string     `json:"id"`
	Kind    string     `json:"tipo"`
	Icon    string     `json:"icono"`
	Title   string     `json:"titulo"`
	Message string     `json:"mensaje"`
	Date    *time.Time `json:"fecha"`
}

// Alerts carries the alert list together with its self-reported total.
type Alerts struct {
	Total int     `json:"totalAlertas"`
	Items []Alert `json:"alertas"`
}

// ActivityEntry is one timeline record.
type ActivityEntry struct {
	ID          string           `json:"id"`
	Kind        string           `json:"tipo"`
	Description string           `json:"descripcion"`
	Amount      *decimal.Decimal `json:"monto"`
	Date        *time.Time       `json:"fecha"`
}

// Activity carries the activity feed together with its self-reported total.
type Activity struct {
	Total int             `json:"totalActividades"`
	Items []ActivityEntry `json:"actividades"`
}

// Sources bundles the five independently fetched sub-resources. Any of them
// may be nil.
type Sources struct {
	PersonalInfo *PersonalInfo
	Financial    *FinancialSummary
	Insurance    *InsuranceSummary
	Alerts       *Alerts
	Activity     *Activity
}

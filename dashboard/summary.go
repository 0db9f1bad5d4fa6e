package dashboard

import (
	"github.com/shopspring/decimal"

	"github.com/orlando572/sumaq-seguros-sub000/display"
)

// Summary is the display-ready dashboard view model. It is always fully
// formed: missing sub-resources render as zeroes and empty strings.
type Summary struct {
	Personal  PersonalView  `json:"datosPersonales"`
	Financial FinancialView `json:"resumenFinanciero"`
	Insurance InsuranceView `json:"resumenSeguros"`
	Alerts    AlertsView    `json:"alertas"`
	Activity  ActivityView  `json:"actividad"`
}

// PersonalView is the identity and affiliation card.
type PersonalView struct {
	FullName        string `json:"nombreCompleto"`
	DNI             string `json:"dni"`
	Email           string `json:"email"`
	Phone           string `json:"telefono"`
	AFP             string `json:"afp"`
	CUSPP           string `json:"cuspp"`
	FundType        string `json:"tipoFondo"`
	AffiliationDate string `json:"fechaAfiliacion"`
	BirthDate       string `json:"fechaNacimiento"`
}

// FinancialView carries pension amounts alongside their formatted text.
type FinancialView struct {
	TotalBalance            decimal.Decimal `json:"saldoTotal"`
	MandatoryBalance        decimal.Decimal `json:"saldoObligatorio"`
	VoluntaryBalance        decimal.Decimal `json:"saldoVoluntario"`
	ContributionsThisYear   decimal.Decimal `json:"aportesEsteAnio"`
	ProjectedMonthlyPension decimal.Decimal `json:"pensionMensualProyectada"`
	AverageReturnPct        decimal.Decimal `json:"rentabilidadPromedio"`

	TotalBalanceText            string `json:"saldoTotalTexto"`
	MandatoryBalanceText        string `json:"saldoObligatorioTexto"`
	VoluntaryBalanceText        string `json:"saldoVoluntarioTexto"`
	ContributionsThisYearText   string `json:"aportesEsteAnioTexto"`
	ProjectedMonthlyPensionText string `json:"pensionMensualProyectadaTexto"`
	AverageReturnText           string `json:"rentabilidadPromedioTexto"`
	LastContributionDate        string `json:"fechaUltimoAporte"`
}

// InsuranceView summarizes the user's policies.
type InsuranceView struct {
	ActivePolicies      int             `json:"segurosActivos"`
	ExpiringPolicies    int             `json:"segurosPorVencer"`
	PendingQuotations   int             `json:"cotizacionesPendientes"`
	TotalMonthlyPremium decimal.Decimal `json:"primaMensualTotal"`
	TotalCoverage       decimal.Decimal `json:"coberturaTotal"`

	TotalMonthlyPremiumText string `json:"primaMensualTotalTexto"`
	TotalCoverageText       string `json:"coberturaTotalTexto"`
	NextRenewalDate         string `json:"proximoVencimiento"`
}

// AlertCard is one rendered alert.
type AlertCard struct {
	ID         string    `json:"id"`
	Title      string    `json:"titulo"`
	Message    string    `json:"mensaje"`
	Date       string    `json:"fecha"`
	Icon       AlertIcon `json:"icono"`
	Severity   Severity  `json:"tipo"`
	ColorClass string    `json:"color"`
}

// AlertsView is the alert panel; Count is the source's reported total.
type AlertsView struct {
	Count int         `json:"totalAlertas"`
	Cards []AlertCard `json:"alertas"`
}

// ActivityItem is one rendered timeline entry.
type ActivityItem struct {
	ID          string       `json:"id"`
	Kind        ActivityKind `json:"tipo"`
	Icon        string       `json:"icono"`
	Description string       `json:"descripcion"`
	Amount      string       `json:"monto"`
	Date        string       `json:"fecha"`
}

// ActivityView is the recent activity timeline; Count is the source's reported total.
type ActivityView struct {
	Count int            `json:"totalActividades"`
	Items []ActivityItem `json:"actividades"`
}

// Aggregate merges the sub-resources into a Summary. It never fails: a nil
// sub-resource is replaced by its zero-valued shape. Alert and activity counts
// are taken from the reported totals as-is.
func Aggregate(src Sources) Summary {
	personal := PersonalInfo{}
	if src.PersonalInfo != nil {
		personal = *src.PersonalInfo
	}
	financial := FinancialSummary{}
	if src.Financial != nil {
		financial = *src.Financial
	}
	insurance := InsuranceSummary{}
	if src.Insurance != nil {
		insurance = *src.Insurance
	}
	alerts := Alerts{}
	if src.Alerts != nil {
		alerts = *src.Alerts
	}
	activity := Activity{}
	if src.Activity != nil {
		activity = *src.Activity
	}

	return Summary{
		Personal:  personalView(personal),
		Financial: financialView(financial),
		Insurance: insuranceView(insurance),
		Alerts:    alertsView(alerts),
		Activity:  activityView(activity),
	}
}

func personalView(p PersonalInfo) PersonalView {
	return PersonalView{
		FullName:        p.FullName,
		DNI:             p.DNI,
		Email:           p.Email,
		Phone:           p.Phone,
		AFP:             p.AFP,
		CUSPP:           p.CUSPP,
		FundType:        p.FundType,
		AffiliationDate: display.Date(p.AffiliationDate),
		BirthDate:       display.Date(p.BirthDate),
	}
}

func financialView(f FinancialSummary) FinancialView {
	return FinancialView{
		TotalBalance:            f.TotalBalance,
		MandatoryBalance:        f.MandatoryBalance,
		VoluntaryBalance:        f.VoluntaryBalance,
		ContributionsThisYear:   f.ContributionsThisYear,
		ProjectedMonthlyPension: f.ProjectedMonthlyPension,
		AverageReturnPct:        f.AverageReturnPct,

		TotalBalanceText:            display.Money(f.TotalBalance),
		MandatoryBalanceText:        display.Money(f.MandatoryBalance),
		VoluntaryBalanceText:        display.Money(f.VoluntaryBalance),
		ContributionsThisYearText:   display.Money(f.ContributionsThisYear),
		ProjectedMonthlyPensionText: display.Money(f.ProjectedMonthlyPension),
		AverageReturnText:           display.Percent(f.AverageReturnPct),
		LastContributionDate:        display.Date(f.LastContributionDate),
	}
}

func insuranceView(i InsuranceSummary) InsuranceView {
	return InsuranceView{
		ActivePolicies:      i.ActivePolicies,
		ExpiringPolicies:    i.ExpiringPolicies,
		PendingQuotations:   i.PendingQuotationsNum,
		TotalMonthlyPremium: i.TotalMonthlyPremium,
		TotalCoverage:       i.TotalCoverage,

		TotalMonthlyPremiumText: display.Money(i.TotalMonthlyPremium),
		TotalCoverageText:       display.Money(i.TotalCoverage),
		NextRenewalDate:         display.Date(i.NextRenewalDate),
	}
}

func alertsView(a Alerts) AlertsView {
	cards := make([]AlertCard, 0, len(a.Items))
	for _, item := range a.Items {
		severity := ParseSeverity(item.Kind)
		cards = append(cards, AlertCard{
			ID:         item.ID,
			Title:      item.Title,
			Message:    item.Message,
			Date:       display.Date(item.Date),
			Icon:       ParseAlertIcon(item.Icon),
			Severity:   severity,
			ColorClass: severity.ColorClass(),
		})
	}
	return AlertsView{Count: a.Total, Cards: cards}
}

func activityView(a Activity) ActivityView {
	items := make([]ActivityItem, 0, len(a.Items))
	for _, entry := range a.Items {
		kind := ParseActivityKind(entry.Kind)
		items = append(items, ActivityItem{
			ID:          entry.ID,
			Kind:        kind,
			Icon:        kind.Icon(),
			Description: entry.Description,
			Amount:      display.OptionalMoney(entry.Amount, ""),
			Date:        display.Date(entry.Date),
		})
	}
	return ActivityView{Count: a.Total, Items: items}
}

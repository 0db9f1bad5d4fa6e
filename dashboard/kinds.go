package dashboard

import "strings"

// AlertIcon is the closed set of icons an alert card can show.
type AlertIcon string

const (
	IconAlertTriangle AlertIcon = "AlertTriangle"
	IconCreditCard    AlertIcon = "CreditCard"
	IconFileText      AlertIcon = "FileText"
	IconAlertCircle   AlertIcon = "AlertCircle"
)

// ParseAlertIcon maps a raw icon key; unknown keys fall back to AlertCircle.
func ParseAlertIcon(raw string) AlertIcon {
	switch AlertIcon(strings.TrimSpace(raw)) {
	case IconAlertTriangle:
		return IconAlertTriangle
	case IconCreditCard:
		return IconCreditCard
	case IconFileText:
		return IconFileText
	case IconAlertCircle:
		return IconAlertCircle
	default:
		return IconAlertCircle
	}
}

// Severity is the closed set of alert severities.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
)

// ParseSeverity maps a raw alert kind; unknown kinds fall back to info.
func ParseSeverity(raw string) Severity {
	switch Severity(strings.ToLower(strings.TrimSpace(raw))) {
	case SeverityWarning:
		return SeverityWarning
	case SeverityDanger:
		return SeverityDanger
	case SeverityInfo:
		return SeverityInfo
	case SeveritySuccess:
		return SeveritySuccess
	default:
		return SeverityInfo
	}
}

// ColorClass returns the CSS classes of an alert card.
func (s Severity) ColorClass() string {
	switch s {
	case SeverityWarning:
		return "bg-yellow-50 border-yellow-200 text-yellow-800"
	case SeverityDanger:
		return "bg-red-50 border-red-200 text-red-800"
	case SeveritySuccess:
		return "bg-green-50 border-green-200 text-green-800"
	case SeverityInfo:
		return "bg-blue-50 border-blue-200 text-blue-800"
	default:
		return "bg-blue-50 border-blue-200 text-blue-800"
	}
}

// ActivityKind is the closed set of activity feed entry kinds.
type ActivityKind string

const (
	ActivityContribution ActivityKind = "aporte"
	ActivityInsurance    ActivityKind = "seguro"
	ActivityQuotation    ActivityKind = "cotizacion"
	ActivityDocument     ActivityKind = "documento"
	ActivityProfile      ActivityKind = "perfil"
	ActivityOther        ActivityKind = "otro"
)

// ParseActivityKind maps a raw kind; unknown kinds become ActivityOther.
func ParseActivityKind(raw string) ActivityKind {
	switch ActivityKind(strings.ToLower(strings.TrimSpace(raw))) {
	case ActivityContribution:
		return ActivityContribution
	case ActivityInsurance:
		return ActivityInsurance
	case ActivityQuotation:
		return ActivityQuotation
	case ActivityDocument:
		return ActivityDocument
	case ActivityProfile:
		return ActivityProfile
	default:
		return ActivityOther
	}
}

// Icon returns the icon key of an activity entry.
func (k ActivityKind) Icon() string {
	switch k {
	case ActivityContribution:
		return "DollarSign"
	case ActivityInsurance:
		return "Shield"
	case ActivityQuotation:
		return "Calculator"
	case ActivityDocument:
		return "FileText"
	case ActivityProfile:
		return "User"
	default:
		return "Activity"
	}
}

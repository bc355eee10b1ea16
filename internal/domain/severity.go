package domain

// Severity is the coarse magnitude classification used for display and
// alerting downstream.
type Severity string

const (
	SeverityWeak     Severity = "weak"     // magnitude below 4.0
	SeverityModerate Severity = "moderate" // 4.0 up to but excluding 6.0
	SeverityStrong   Severity = "strong"   // 6.0 and above
)

// ClassifySeverity maps a magnitude to its severity tier. Total over all
// float values; boundaries are closed on the left, so 4.0 is moderate and
// 6.0 is strong.
func ClassifySeverity(magnitude float64) Severity {
	switch {
	case magnitude < 4.0:
		return SeverityWeak
	case magnitude < 6.0:
		return SeverityModerate
	default:
		return SeverityStrong
	}
}

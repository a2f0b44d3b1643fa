package shared

const (
	// CriticalVoltageLevel is the voltage below which a station is critical.
	CriticalVoltageLevel = 47
	// WarningVoltageLevel is the voltage below which a station is in warning.
	WarningVoltageLevel = 52

	// WarningTemperature is the temperature above which a unit is in warning.
	WarningTemperature = 55
	// HighTemperature is the temperature above which a unit runs high.
	HighTemperature = 65
	// CriticalTemperature is the temperature above which a unit is critical.
	CriticalTemperature = 75
)

// Severity represents the display severity band of a reading.
type Severity int

const (
	UnknownSeverity Severity = iota
	NormalSeverity
	WarningSeverity
	HighSeverity
	CriticalSeverity
)

// String stringifies the provided severity.
func (s Severity) String() string {
	switch s {
	case NormalSeverity:
		return "normal"
	case WarningSeverity:
		return "warning"
	case HighSeverity:
		return "high"
	case CriticalSeverity:
		return "critical"
	default:
		return "unknown"
	}
}

// MarshalText encodes the severity as its label.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ClassifyVoltage returns the severity band of a live voltage. Unknown or non-finite
// voltages have an unknown severity.
func ClassifyVoltage(voltage float64, known bool) Severity {
	switch {
	case !known || !IsFinite(voltage):
		return UnknownSeverity
	case voltage < CriticalVoltageLevel:
		return CriticalSeverity
	case voltage < WarningVoltageLevel:
		return WarningSeverity
	default:
		return NormalSeverity
	}
}

// ClassifyTemperature returns the severity band of a temperature, nil meaning no
// reading.
func ClassifyTemperature(temp *float64) Severity {
	switch {
	case temp == nil || !IsFinite(*temp):
		return UnknownSeverity
	case *temp > CriticalTemperature:
		return CriticalSeverity
	case *temp > HighTemperature:
		return HighSeverity
	case *temp > WarningTemperature:
		return WarningSeverity
	default:
		return NormalSeverity
	}
}

package pipeline

// Severity classifies a diagnostic.
type Severity string

const (
	// SeverityError marks a condition that fails the run.
	SeverityError Severity = "error"
	// SeverityWarning marks a nuclide that was skipped.
	SeverityWarning Severity = "warning"
)

// Diagnostic codes.
const (
	// CodeInvalidNuclide: token is not a recognisable nuclide or element.
	CodeInvalidNuclide = "DDW001"
	// CodeDataSourceFailure: the data source could not supply a payload.
	CodeDataSourceFailure = "DDW002"
	// CodeNoData: payload held no records for the requested state and radiation type.
	CodeNoData = "DDW003"
	// CodeEmptyExpansion: element has no isotopes with data for the radiation type.
	CodeEmptyExpansion = "DDW004"
	// CodeEmptyResultSet: no requested nuclide produced any records (error).
	CodeEmptyResultSet = "DDE001"
)

// Diagnostic is a structured warning or error collected during a run.
type Diagnostic struct {
	Severity Severity `json:"severity"`
	Code     string   `json:"code"`
	Message  string   `json:"message"`
	// Subject is the raw token or nuclide name the diagnostic concerns.
	Subject string `json:"subject,omitempty"`
}

// HasError reports whether any diagnostic in diags has error severity.
func HasError(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

func warning(code, subject, message string) Diagnostic {
	return Diagnostic{Severity: SeverityWarning, Code: code, Message: message, Subject: subject}
}

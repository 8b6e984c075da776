package validation

import "fmt"

// Severity indicates how critical a finding is. Only error-severity findings
// block validity.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Issue is a single validation finding. Findings are data, never Go errors:
// nothing in the pipeline throws for user input.
type Issue struct {
	ID       string   `json:"id"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Field    string   `json:"field,omitempty"`
}

// Report is the aggregated output of a validation pass. Produced fresh every
// pass and never mutated afterwards.
type Report struct {
	Valid    bool    `json:"valid"`
	Errors   []Issue `json:"errors"`
	Warnings []Issue `json:"warnings"`
	Info     []Issue `json:"info"`
	Summary  string  `json:"summary"`
}

// NewReport creates an empty valid report.
func NewReport() *Report {
	return &Report{
		Valid:    true,
		Errors:   []Issue{},
		Warnings: []Issue{},
		Info:     []Issue{},
	}
}

// AddError records a blocking finding and marks the report invalid.
func (r *Report) AddError(id, field, format string, args ...any) {
	r.Errors = append(r.Errors, Issue{ID: id, Severity: SeverityError, Field: field, Message: fmt.Sprintf(format, args...)})
	r.Valid = false
	r.updateSummary()
}

// AddWarning records an advisory finding.
func (r *Report) AddWarning(id, field, format string, args ...any) {
	r.Warnings = append(r.Warnings, Issue{ID: id, Severity: SeverityWarning, Field: field, Message: fmt.Sprintf(format, args...)})
	r.updateSummary()
}

// AddInfo records an informational finding.
func (r *Report) AddInfo(id, field, format string, args ...any) {
	r.Info = append(r.Info, Issue{ID: id, Severity: SeverityInfo, Field: field, Message: fmt.Sprintf(format, args...)})
	r.updateSummary()
}

// Add records a finding at the given severity; borderline conditions route
// through this so context flags can pick error vs warning.
func (r *Report) Add(sev Severity, id, field, format string, args ...any) {
	switch sev {
	case SeverityError:
		r.AddError(id, field, format, args...)
	case SeverityWarning:
		r.AddWarning(id, field, format, args...)
	default:
		r.AddInfo(id, field, format, args...)
	}
}

func (r *Report) updateSummary() {
	r.Summary = fmt.Sprintf("%d errors, %d warnings, %d info", len(r.Errors), len(r.Warnings), len(r.Info))
}

// Context gates how strictly borderline conditions are judged.
type Context struct {
	StrictMode                bool `json:"strict_mode"`
	ValidateOptionalFields    bool `json:"validate_optional_fields"`
	CheckTechCompatibility    bool `json:"check_tech_compatibility"`
	ValidateConstructionRules bool `json:"validate_construction_rules"`
}

// DefaultContext is the editor's lenient everyday configuration.
func DefaultContext() Context {
	return Context{
		CheckTechCompatibility:    true,
		ValidateConstructionRules: true,
	}
}

// borderline returns error severity in strict mode, warning otherwise.
func (c Context) borderline() Severity {
	if c.StrictMode {
		return SeverityError
	}
	return SeverityWarning
}

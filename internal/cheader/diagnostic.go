package cheader

import "fmt"

type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Diagnostic is a problem found while loading the header tree. Diagnostics
// never stop loading.
type Diagnostic struct {
	File     string
	Line     int // 1-based
	Column   int // 1-based
	Severity Severity
	Message  string
}

func (d Diagnostic) String() string {
	if d.File == "" {
		return fmt.Sprintf("%s: %s", d.Severity, d.Message)
	}
	return fmt.Sprintf("%s:%d:%d: %s: %s", d.File, d.Line, d.Column, d.Severity, d.Message)
}

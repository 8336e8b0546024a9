package diag

import (
	"bitscript/internal/source"
)

// Note is a secondary span attached to a diagnostic.
type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is one immutable entry of the log.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}

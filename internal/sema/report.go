package sema

import (
	"fmt"

	"bitscript/internal/diag"
	"bitscript/internal/source"
)

func (c *Checker) report(code diag.Code, span source.Span, format string, args ...interface{}) {
	if c.reporter == nil {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if b := diag.ReportError(c.reporter, code, span, msg); b != nil {
		b.Emit()
	}
}

func (c *Checker) warn(code diag.Code, span source.Span, format string, args ...interface{}) {
	if c.reporter == nil {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if b := diag.ReportWarning(c.reporter, code, span, msg); b != nil {
		b.Emit()
	}
}

package model

import (
	"runtime"
	"strconv"
)

type SourceLocation struct {
	File     string `json:"file,omitempty"`     // Optional. Source file name. Depending on the runtime environment, this might be a simple name or a fully-qualified name.
	Line     string `json:"line,omitempty"`     // Optional. Line within the source file. 1-based; 0 indicates no line number available. The schema wants a string here, not a number.
	Function string `json:"function,omitempty"` // Optional. Human-readable name of the function or method being invoked, with optional context such as the class or package name. The format can vary by language. For example: qual.if.ied.Class.method (Java), dir/package.func (Go), function (Python).
}

// NewSourceLocation builds a SourceLocation from a runtime.Caller result:
//
//	model.NewSourceLocation(runtime.Caller(1))
//
// The function name is resolved from the program counter when available.
// A failed caller lookup yields nil.
func NewSourceLocation(pc uintptr, file string, line int, ok bool) *SourceLocation {
	if !ok {
		return nil
	}
	loc := &SourceLocation{File: file, Line: strconv.Itoa(line)}
	if fn := runtime.FuncForPC(pc); fn != nil {
		loc.Function = fn.Name()
	}
	return loc
}

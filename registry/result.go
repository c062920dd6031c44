package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// Category identifies one table of the registry.
type Category string

// Registry categories.
const (
	CategoryPreviewStyle          Category = "preview_style"
	CategoryPreviewTemplate       Category = "preview_template"
	CategoryWidget                Category = "widget"
	CategoryEditorComponent       Category = "editor_component"
	CategoryWidgetValueSerializer Category = "widget_value_serializer"
	CategoryBackend               Category = "backend"
	CategoryMediaLibrary          Category = "media_library"
	CategoryEntryCard             Category = "entry_card"
	CategoryExtension             Category = "extension"
)

// Severity grades a diagnostic.
type Severity int

const (
	// SeverityWarning marks a registration that succeeded with a caveat.
	SeverityWarning Severity = iota + 1
	// SeverityError marks a registration that was refused.
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Diagnostic describes a non-fatal registration problem.
type Diagnostic struct {
	Category Category
	Key      string
	Severity Severity
	Message  string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s %s %q: %s", d.Severity, d.Category, d.Key, d.Message)
}

// Result is the outcome of a registration call.
type Result struct {
	// Registered lists the keys written by the call.
	Registered []string
	// Diagnostics lists the problems met, in order.
	Diagnostics []Diagnostic
}

// OK reports whether the call produced no error diagnostics.
func (r Result) OK() bool {
	for _, d := range r.Diagnostics {
		if d.Severity == SeverityError {
			return false
		}
	}
	return true
}

// Accepted reports whether at least one key was registered.
func (r Result) Accepted() bool {
	return len(r.Registered) > 0
}

// Err joins the error diagnostics into an error, or returns nil.
// Hosts that treat refused registrations as fatal can return it directly.
func (r Result) Err() error {
	var errs []error
	for _, d := range r.Diagnostics {
		if d.Severity == SeverityError {
			errs = append(errs, errors.New(d.String()))
		}
	}
	return errors.Join(errs...)
}

func (r *Result) warn(c Category, key, format string, args ...any) {
	r.Diagnostics = append(r.Diagnostics, Diagnostic{Category: c, Key: key, Severity: SeverityWarning, Message: fmt.Sprintf(format, args...)})
}

func (r *Result) fail(c Category, key, format string, args ...any) {
	r.Diagnostics = append(r.Diagnostics, Diagnostic{Category: c, Key: key, Severity: SeverityError, Message: fmt.Sprintf(format, args...)})
}

func (r *Result) merge(other Result) {
	r.Registered = append(r.Registered, other.Registered...)
	r.Diagnostics = append(r.Diagnostics, other.Diagnostics...)
}

// DiagnosticHandler is called for every diagnostic a registration produces.
type DiagnosticHandler interface {
	OnDiagnostic(d Diagnostic)
}

// Ensure implementations satisfy the interface.
var (
	_ DiagnosticHandler = (*LogDiagnosticHandler)(nil)
	_ DiagnosticHandler = (*NopDiagnosticHandler)(nil)
	_ DiagnosticHandler = DiagnosticHandlerFunc(nil)
)

// LogDiagnosticHandler writes diagnostics to a structured logger.
type LogDiagnosticHandler struct {
	Logger *slog.Logger
}

func (h *LogDiagnosticHandler) OnDiagnostic(d Diagnostic) {
	logger := h.Logger
	if logger == nil {
		logger = slog.Default()
	}
	level := slog.LevelWarn
	if d.Severity == SeverityError {
		level = slog.LevelError
	}
	logger.Log(context.Background(), level, d.Message,
		"category", string(d.Category),
		"key", d.Key)
}

// NopDiagnosticHandler does nothing.
type NopDiagnosticHandler struct{}

func (h *NopDiagnosticHandler) OnDiagnostic(d Diagnostic) {}

// DiagnosticHandlerFunc adapts a function to DiagnosticHandler.
type DiagnosticHandlerFunc func(d Diagnostic)

func (f DiagnosticHandlerFunc) OnDiagnostic(d Diagnostic) { f(d) }

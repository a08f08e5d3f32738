package zone

import (
	"errors"
	"fmt"

	"github.com/bartonsun/D2RSG/pkg/grid"
)

// Diagnostic is the context attached to every zone filling error: which
// zone, where in it, and under which seed, so a failing run can be
// reproduced.
type Diagnostic struct {
	ZoneID   grid.ZoneID
	Position grid.Position
	Seed     string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("zone=%s pos=(%d,%d) seed=%s", d.ZoneID, d.Position.X, d.Position.Y, d.Seed)
}

// Sentinel error kinds a zone fill can fail with. Callers use
// errors.Is to classify a failure; the attached Diagnostic appears in
// the error's message.
var (
	ErrLackOfSpace    = errors.New("zone: lack of space")
	ErrTemplateInvalid = errors.New("zone: template invalid")
	ErrCatalogMissing = errors.New("zone: catalog entry missing")
	ErrInternal       = errors.New("zone: internal error")
)

// diagError wraps one of the sentinel kinds with a Diagnostic so the
// error carries both a classification and reproduction context.
type diagError struct {
	kind error
	diag Diagnostic
	msg  string
}

func (e *diagError) Error() string {
	if e.msg != "" {
		return fmt.Sprintf("%s: %s (%s)", e.kind, e.msg, e.diag)
	}
	return fmt.Sprintf("%s (%s)", e.kind, e.diag)
}

func (e *diagError) Unwrap() error { return e.kind }

// lackOfSpace builds an ErrLackOfSpace carrying diag.
func lackOfSpace(diag Diagnostic, format string, args ...any) error {
	return &diagError{kind: ErrLackOfSpace, diag: diag, msg: fmt.Sprintf(format, args...)}
}

// internalError builds an ErrInternal carrying diag, for conditions
// that indicate a programming error rather than a content shortfall
// (e.g. an object built with the wrong variant for its kind).
func internalError(diag Diagnostic, format string, args ...any) error {
	return &diagError{kind: ErrInternal, diag: diag, msg: fmt.Sprintf(format, args...)}
}

// catalogMissing builds an ErrCatalogMissing carrying diag, wrapping
// the underlying catalog lookup error.
func catalogMissing(diag Diagnostic, err error) error {
	return &diagError{kind: ErrCatalogMissing, diag: diag, msg: err.Error()}
}

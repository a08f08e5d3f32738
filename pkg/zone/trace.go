package zone

import "fmt"

// StageRecord is one fill stage's start/end bookkeeping, captured for
// debug mode.
type StageRecord struct {
	Name    string
	Failed  bool
	Message string
}

// Trace accumulates per-stage debug information across a zone fill. A
// nil *Trace disables tracing entirely; every method is a safe no-op
// on a nil receiver.
type Trace struct {
	Records []StageRecord
}

// NewTrace returns an empty trace ready to record a fill run.
func NewTrace() *Trace {
	return &Trace{}
}

func (t *Trace) begin(stage string) {
	if t == nil {
		return
	}
	t.Records = append(t.Records, StageRecord{Name: stage})
}

func (t *Trace) fail(stage string, err error) {
	if t == nil {
		return
	}
	for i := len(t.Records) - 1; i >= 0; i-- {
		if t.Records[i].Name == stage {
			t.Records[i].Failed = true
			t.Records[i].Message = err.Error()
			return
		}
	}
}

// String renders the trace as a multi-line stage report.
func (t *Trace) String() string {
	if t == nil {
		return "<no trace>"
	}
	out := ""
	for _, r := range t.Records {
		status := "ok"
		if r.Failed {
			status = "FAILED: " + r.Message
		}
		out += fmt.Sprintf("%-28s %s\n", r.Name, status)
	}
	return out
}

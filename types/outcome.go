package types

// OutcomeKind is the terminal state of a share attempt.
type OutcomeKind int

const (
	OutcomeCompleted OutcomeKind = iota + 1
	OutcomeCancelled
	OutcomeFailed
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeCompleted:
		return "completed"
	case OutcomeCancelled:
		return "cancelled"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is exactly one of Completed(Results), Cancelled or Failed(Err).
type Outcome struct {
	Kind    OutcomeKind
	Results map[string]any
	Err     error
}

func Completed(results map[string]any) Outcome {
	if results == nil {
		results = map[string]any{}
	}
	return Outcome{Kind: OutcomeCompleted, Results: results}
}

func Cancelled() Outcome {
	return Outcome{Kind: OutcomeCancelled}
}

func Failed(err error) Outcome {
	return Outcome{Kind: OutcomeFailed, Err: err}
}

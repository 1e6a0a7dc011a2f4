package ports

import "context"

// DecisionRecord is one completed decide-act cycle, kept locally for
// observability. Losing the journal is safe.
type DecisionRecord struct {
	Turn    int64
	Tick    int64
	Kind    string
	Detail  string
	Outcome string
	X, Y    int
}

type Journal interface {
	RecordDecision(ctx context.Context, rec DecisionRecord) error
	CacheSummary(ctx context.Context, summary StoredSummary) error
	CachedSummaries(ctx context.Context) ([]StoredSummary, error)
}

package recorder

import "github.com/rpgo/portfolio-survival/internal/domain"

// NoopRecorder is a no-op implementation used when no database is configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordRun(_ *domain.AggregateResult, _ RunMeta) error { return nil }
func (n *NoopRecorder) Close() error                                         { return nil }

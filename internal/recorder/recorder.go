package recorder

import (
	"time"

	"github.com/rpgo/portfolio-survival/internal/domain"
)

// RunMeta describes where a recorded result came from.
type RunMeta struct {
	Label      string
	RecordedAt time.Time
}

// RunRecord is one stored aggregate result.
type RunRecord struct {
	ID         int64
	Label      string
	RecordedAt time.Time
	Result     domain.AggregateResult
}

// Recorder persists run summaries for later comparison.
type Recorder interface {
	RecordRun(res *domain.AggregateResult, meta RunMeta) error
	Close() error
}

var (
	_ Recorder = (*SQLiteRecorder)(nil)
	_ Recorder = (*NoopRecorder)(nil)
)

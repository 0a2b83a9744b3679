package jobs

import "context"

// FlushJob drains a WriteBehind on a pool worker.
type FlushJob struct {
	WriteBehind *WriteBehind
}

func (j *FlushJob) Name() string { return "flush_progress" }

func (j *FlushJob) Run(ctx context.Context) error {
	return j.WriteBehind.Flush(ctx)
}

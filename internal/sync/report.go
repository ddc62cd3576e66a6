package sync

import "time"

// Report aggregates one orchestrator run. A single statute's failure never
// aborts the batch; it lands in Errored and the run keeps going.
type Report struct {
	Source    string
	StartedAt time.Time
	Duration  time.Duration
	Total     int
	Added     int
	Updated   int
	Unchanged int
	Diffed    int
	Skipped   int
	Errored   int
	Warnings  []string
}

func (r *Report) warn(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

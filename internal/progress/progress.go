// Package progress reports the progress of long-running operations at a
// bounded rate.
package progress

import (
	"log/slog"
	"math"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// Reporter counts completed units of work and logs progress at most
// once per interval. Completing the final unit always logs, so every
// operation ends with a 100% line. Step is safe for concurrent use.
type Reporter struct {
	log     *slog.Logger
	label   string
	total   int64
	done    atomic.Int64
	limiter *rate.Limiter
}

// NewReporter creates a reporter for an operation of total units that
// logs at most once per second.
func NewReporter(log *slog.Logger, label string, total int) *Reporter {
	return &Reporter{
		log:     log,
		label:   label,
		total:   int64(total),
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
	}
}

// Step records n completed units.
func (r *Reporter) Step(n int) {
	done := r.done.Add(int64(n))

	if done < r.total && !r.limiter.Allow() {
		return
	}

	percent := 100.0
	if r.total > 0 {
		percent = float64(done) / float64(r.total) * 100
	}

	r.log.Info(r.label,
		"done", done,
		"total", r.total,
		"percent", math.Round(percent*10)/10,
	)
}

// Done returns the number of completed units.
func (r *Reporter) Done() int {
	return int(r.done.Load())
}

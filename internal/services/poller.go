package services

import (
	"errors"
	"time"

	"github.com/trobanga/ladle/internal/models"
)

// ErrPollTimeout is returned when a job is still not terminal after the configured maximum wait
var ErrPollTimeout = errors.New("job did not finish within the maximum wait")

// PollConfig holds the state of one job wait
type PollConfig struct {
	Interval  time.Duration
	SlowAfter time.Duration
	MaxWait   time.Duration // 0 = no ceiling
	StartTime time.Time
	PollCount int

	slow bool
}

// NewPollConfig creates polling state from client settings
func NewPollConfig(cfg models.PollingConfig) *PollConfig {
	return &PollConfig{
		Interval:  cfg.PollInterval(),
		SlowAfter: cfg.SlowAfter(),
		MaxWait:   cfg.MaxWait(),
		StartTime: time.Now(),
	}
}

// CheckTimeout checks if polling has exceeded the maximum wait
func (pc *PollConfig) CheckTimeout() bool {
	return pc.MaxWait > 0 && time.Since(pc.StartTime) > pc.MaxWait
}

// GetElapsedTime returns time elapsed since polling started
func (pc *PollConfig) GetElapsedTime() time.Duration {
	return time.Since(pc.StartTime)
}

// IncrementPollCount increments the poll attempt counter
func (pc *PollConfig) IncrementPollCount() {
	pc.PollCount++
}

// IsSlow reports whether the wait has passed the "taking longer than expected" mark.
// Once slow, a wait stays slow.
func (pc *PollConfig) IsSlow() bool {
	if !pc.slow && pc.SlowAfter > 0 && time.Since(pc.StartTime) >= pc.SlowAfter {
		pc.slow = true
	}
	return pc.slow
}

// PollUpdate is reported to observers after every poll
type PollUpdate struct {
	JobID   string
	Status  models.JobStatus
	Attempt int
	Elapsed time.Duration
	Slow    bool
}

// StatusObserver receives poll updates; it runs on the polling goroutine
type StatusObserver func(PollUpdate)

package models

// statusRank orders statuses along the lifecycle. Both terminal states share a rank.
func statusRank(s JobStatus) int {
	switch s {
	case JobStatusPending:
		return 0
	case JobStatusRunning:
		return 1
	case JobStatusCompleted, JobStatusFailed:
		return 2
	default:
		return -1
	}
}

// ObserveStatus folds a freshly polled status into the last observed one.
// Pure function - returns the status the client should report and whether the
// snapshot was accepted. Stale snapshots (a lower rank than already seen) and
// changes after a terminal state are rejected, keeping the observed sequence
// monotonic even if the service answers out of order.
func ObserveStatus(last JobStatus, polled JobStatus) (JobStatus, bool) {
	if !IsValidJobStatus(polled) {
		return last, false
	}
	if last == "" {
		return polled, true
	}
	if last.IsTerminal() {
		return last, polled == last
	}
	if statusRank(polled) < statusRank(last) {
		return last, false
	}
	return polled, true
}

// WithRequestDefaults returns a copy of req with the fallback values the service
// would otherwise reject as zero.
// Pure function - does not mutate the argument
func WithRequestDefaults(req CalculationRequest) CalculationRequest {
	if req.Conditions.PressureAtm == 0 {
		req.Conditions.PressureAtm = DefaultPressureAtm
	}
	if req.AlphaGuess == 0 {
		req.AlphaGuess = DefaultAlphaGuess
	}
	if req.AlphaMax == 0 {
		req.AlphaMax = DefaultAlphaMax
	}
	if req.SolveSpecies == "" {
		req.SolveSpecies = DefaultSolveSpecies
	}
	return req
}

package models

import (
	"errors"
	"fmt"
)

// Validate checks the structural invariants of a job snapshot: a known status,
// and exactly one of result/error on a completed job. A failed job may omit its
// error text; callers substitute a generic message.
func (j *Job) Validate() error {
	if j.JobID == "" {
		return errors.New("job_id is required")
	}

	if !IsValidJobStatus(j.Status) {
		return fmt.Errorf("invalid status: %q", j.Status)
	}

	switch j.Status {
	case JobStatusCompleted:
		if j.Result == nil {
			return errors.New("completed job carries no result")
		}
		if j.Error != "" {
			return errors.New("completed job carries both result and error")
		}
	case JobStatusFailed:
		if j.Result != nil {
			return errors.New("failed job carries a result")
		}
	}

	return nil
}

// Validate checks a catalog has at least one target for some calc type
func (c *OptionCatalog) Validate() error {
	if len(c.CalcTypes) == 0 {
		return errors.New("catalog declares no calc types")
	}
	for t, targets := range c.CalcTypes {
		for i, info := range targets {
			if info.Element == "" {
				return fmt.Errorf("calc type %s: target %d has no element", t, i)
			}
			if info.Unit != "" && info.Unit != UnitWtPct && info.Unit != UnitPPM {
				return fmt.Errorf("calc type %s: target %s has unknown unit %q", t, info.Element, info.Unit)
			}
		}
	}
	return nil
}

// Validate checks the fields a request file must define before it is
// handed to the submission gate
func (r *CalculationRequest) Validate() error {
	if r.CalcType != "" && !IsValidCalcType(r.CalcType) {
		return fmt.Errorf("invalid calc_type: %q", r.CalcType)
	}
	if r.Target.Unit != "" && r.Target.Unit != UnitWtPct && r.Target.Unit != UnitPPM {
		return fmt.Errorf("invalid target unit: %q", r.Target.Unit)
	}
	if r.AlphaGuess < 0 || r.AlphaMax < 0 {
		return errors.New("alpha_guess and alpha_max must be positive")
	}
	return nil
}

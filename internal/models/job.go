package models

// JobStatus defines the execution state of a calculation job as reported by the service
type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
)

// Job is a client-side snapshot of GET /jobs/{job_id}. The service owns the
// authoritative state; the client never mutates a job.
type Job struct {
	JobID     string    `json:"job_id"`
	Status    JobStatus `json:"status"`
	CalcType  CalcType  `json:"calc_type,omitempty"`
	CreatedAt string    `json:"created_at,omitempty"`
	Result    *Result   `json:"result,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// JobSummary is one element of GET /jobs
type JobSummary struct {
	JobID     string    `json:"job_id"`
	Status    JobStatus `json:"status"`
	CalcType  CalcType  `json:"calc_type"`
	CreatedAt string    `json:"created_at"`
}

// SubmitResponse is the body returned by POST /calculate
type SubmitResponse struct {
	JobID     string    `json:"job_id"`
	Status    JobStatus `json:"status,omitempty"`
	CalcType  CalcType  `json:"calc_type,omitempty"`
	CreatedAt string    `json:"created_at,omitempty"`
}

// Result is the calculation outcome attached to a completed job
type Result struct {
	AlphaG       float64     `json:"alpha_g"`
	SolveSpecies string      `json:"solve_species"`
	TempK        float64     `json:"T_K"`
	PressureAtm  float64     `json:"P_atm"`
	Steel        SteelResult `json:"steel"`
	Slag         SlagResult  `json:"slag"`
}

// SteelResult is the equilibrium steel composition
type SteelResult struct {
	FeWtPct float64 `json:"Fe_wtpct"`
	MnWtPct float64 `json:"Mn_wtpct"`
	SiWtPct float64 `json:"Si_wtpct"`
	AlWtPct float64 `json:"Al_wtpct"`
	OWtPct  float64 `json:"O_wtpct"`
	OPPM    float64 `json:"O_ppm"`
	SWtPct  float64 `json:"S_wtpct"`
	TotalG  float64 `json:"total_g"`
}

// SlagResult is the equilibrium slag composition
type SlagResult struct {
	CaOWtPct   float64 `json:"CaO_wtpct"`
	Al2O3WtPct float64 `json:"Al2O3_wtpct"`
	SiO2WtPct  float64 `json:"SiO2_wtpct"`
	MnOWtPct   float64 `json:"MnO_wtpct"`
	FeOWtPct   float64 `json:"FeO_wtpct"`
	CaSWtPct   float64 `json:"CaS_wtpct"`
	TotalG     float64 `json:"total_g"`
}

// RuntimeInfo is the body of GET /config/info
type RuntimeInfo struct {
	MockMode     bool   `json:"mock_mode"`
	FactsageDir  string `json:"factsage_dir,omitempty"`
	TemplatesDir string `json:"templates_dir,omitempty"`
	PresetsDir   string `json:"presets_dir,omitempty"`
}

// IsValidJobStatus checks if the job status is recognized
func IsValidJobStatus(s JobStatus) bool {
	switch s {
	case JobStatusPending, JobStatusRunning, JobStatusCompleted, JobStatusFailed:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition can happen
func (s JobStatus) IsTerminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}

// CanTransitionTo checks if state transition is valid
// Valid transitions:
//
//	pending -> running | failed
//	running -> completed | failed
func (s JobStatus) CanTransitionTo(next JobStatus) bool {
	switch s {
	case JobStatusPending:
		return next == JobStatusRunning || next == JobStatusFailed
	case JobStatusRunning:
		return next == JobStatusCompleted || next == JobStatusFailed
	default:
		return false
	}
}

package models

// SolvedPlaceholder is shown when a history row has no solved amount to display
const SolvedPlaceholder = "—"

// HistoryRow is one line of the job history view
type HistoryRow struct {
	JobID     string
	CalcType  CalcType
	Status    JobStatus
	CreatedAt string
	Solved    string // alpha_g in grams, or SolvedPlaceholder
}

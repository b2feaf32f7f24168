package models

// VerdictLevel is the server's judgement of a species/target pair
type VerdictLevel string

const (
	VerdictOK     VerdictLevel = "ok"
	VerdictWarn   VerdictLevel = "warn"
	VerdictReject VerdictLevel = "reject"
)

// CombinationVerdict is the response of GET /validate-combination
type CombinationVerdict struct {
	Level   VerdictLevel `json:"level"`
	Message string       `json:"message,omitempty"`
}

// OKVerdict allows submission with no advisory
func OKVerdict() CombinationVerdict {
	return CombinationVerdict{Level: VerdictOK}
}

// Normalize maps unknown levels to warn so they are surfaced but not blocking
func (v CombinationVerdict) Normalize() CombinationVerdict {
	switch v.Level {
	case VerdictOK, VerdictWarn, VerdictReject:
		return v
	case "":
		return CombinationVerdict{Level: VerdictOK, Message: v.Message}
	default:
		return CombinationVerdict{Level: VerdictWarn, Message: v.Message}
	}
}

// AllowsSubmit reports whether a job may be submitted under this verdict
func (v CombinationVerdict) AllowsSubmit() bool {
	return v.Normalize().Level != VerdictReject
}

// Blocking reports whether the advisory must block submission
func (v CombinationVerdict) Blocking() bool {
	return !v.AllowsSubmit()
}

// Advisory returns the text to show, empty when nothing should be shown
func (v CombinationVerdict) Advisory() string {
	if v.Normalize().Level == VerdictOK {
		return ""
	}
	return v.Message
}

package floor

import "strings"

// InjuryStatus is the designation from the weekly injury report.
type InjuryStatus string

const (
	StatusActive       InjuryStatus = "ACTIVE"
	StatusProbable     InjuryStatus = "PROBABLE"
	StatusQuestionable InjuryStatus = "QUESTIONABLE"
	StatusDoubtful     InjuryStatus = "DOUBTFUL"
	StatusOut          InjuryStatus = "OUT"
)

// ParseInjuryStatus normalizes a raw status string; unrecognized or
// empty values mean no report, which is treated as active.
func ParseInjuryStatus(raw string) InjuryStatus {
	switch InjuryStatus(strings.ToUpper(strings.TrimSpace(raw))) {
	case StatusProbable:
		return StatusProbable
	case StatusQuestionable:
		return StatusQuestionable
	case StatusDoubtful:
		return StatusDoubtful
	case StatusOut:
		return StatusOut
	}
	return StatusActive
}

// ParticipationProbability converts an injury designation into the
// expected share of a normal workload. OUT players carry zero and
// should be excluded from evaluation entirely rather than projected at
// zero volume.
func ParticipationProbability(status InjuryStatus) float64 {
	switch status {
	case StatusOut:
		return 0.0
	case StatusDoubtful:
		return 0.25
	case StatusQuestionable:
		return 0.70
	case StatusProbable:
		return 0.95
	}
	return 1.0
}

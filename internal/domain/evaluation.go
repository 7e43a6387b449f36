package domain

import "time"

// EvaluationVersion tags the rule set an evaluation was produced with.
// Bump when the registered check list or penalty weights change.
const EvaluationVersion = "brand-brain/v1"

// Check outcome statuses
const (
	CheckPass = "pass"
	CheckWarn = "warn"
	CheckFail = "fail"
)

// EvaluationCheck is one named rule outcome. Every registered check yields
// exactly one of these per evaluation, whatever the outcome.
type EvaluationCheck struct {
	Name    string `json:"name"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// EvaluationContent is the unit of content handed to the Brand Brain.
// Either field may be empty; checks that need an absent part pass through.
type EvaluationContent struct {
	Text           string          `json:"text,omitempty"`
	Tone           string          `json:"tone,omitempty"`
	VisualMetadata *VisualMetadata `json:"visual_metadata,omitempty"`
}

// BrandBrainEvaluation is the aggregate evaluation output. The score is a
// pure function of the checks; the result is advisory and never gates
// downstream approval.
type BrandBrainEvaluation struct {
	Score             int               `json:"score"`
	Checks            []EvaluationCheck `json:"checks"`
	Recommendations   []string          `json:"recommendations"`
	EvaluatedAt       time.Time         `json:"evaluated_at"`
	EvaluationVersion string            `json:"evaluation_version"`
}

// ComplianceTags returns the names of all non-passing checks, in check order
func (e *BrandBrainEvaluation) ComplianceTags() []string {
	tags := make([]string, 0, len(e.Checks))
	for _, c := range e.Checks {
		if c.Status != CheckPass {
			tags = append(tags, c.Name)
		}
	}
	return tags
}

// FidelityScore returns the 0-1 normalized brand fidelity score
func (e *BrandBrainEvaluation) FidelityScore() float64 {
	return float64(e.Score) / 100.0
}

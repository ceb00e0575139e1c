package model

import "slices"

// ValidationLevel is the discrete trust level of an answer
type ValidationLevel string

const (
	LevelHigh   ValidationLevel = "high"
	LevelMedium ValidationLevel = "medium"
	LevelLow    ValidationLevel = "low"
	LevelFailed ValidationLevel = "failed"
)

// Check names
const (
	CheckRetrievalQuality  = "retrieval_quality"
	CheckSourceAlignment   = "source_alignment"
	CheckHallucination     = "hallucination_check"
	CheckNumericalAccuracy = "numerical_accuracy"
)

// RequiredCriticalChecks always force FAILED when they fail, whatever the configuration says
var RequiredCriticalChecks = []string{CheckRetrievalQuality, CheckNumericalAccuracy}

// ValidationResult is the trust signal of one answer. FAILED is a veto and not merely the lowest score.
type ValidationResult struct {
	Level           ValidationLevel `json:"level"`
	ConfidenceScore float64         `json:"confidence_score"`
	PassedChecks    []string        `json:"passed_checks"`
	FailedChecks    []string        `json:"failed_checks"`
	Warnings        []string        `json:"warnings"`
	Details         Metadata        `json:"details"`
}

// IsSafeToUse reports whether the answer may be shown without hiding it
func (v *ValidationResult) IsSafeToUse() bool {
	if v == nil {
		return false
	}
	return v.Level == LevelHigh || v.Level == LevelMedium
}

// HasFailed reports whether the named check is among the failed checks
func (v *ValidationResult) HasFailed(check string) bool {
	if v == nil {
		return false
	}
	return slices.Contains(v.FailedChecks, check)
}

// HasPassed reports whether the named check is among the passed checks
func (v *ValidationResult) HasPassed(check string) bool {
	if v == nil {
		return false
	}
	return slices.Contains(v.PassedChecks, check)
}

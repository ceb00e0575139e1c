package validation

import (
	"fmt"

	"github.com/siherrmann/docqa/model"
)

// RetrievalQualityCheck passes if the mean combined score of the retrieved chunks reaches the threshold
type RetrievalQualityCheck struct {
	Threshold float64
}

// NewRetrievalQualityCheck creates the check, a mean combined score below threshold fails
func NewRetrievalQualityCheck(threshold float64) *RetrievalQualityCheck {
	return &RetrievalQualityCheck{Threshold: threshold}
}

// Name returns model.CheckRetrievalQuality
func (c *RetrievalQualityCheck) Name() string {
	return model.CheckRetrievalQuality
}

// Run scores the mean combined score of the retrieved results
func (c *RetrievalQualityCheck) Run(input Input) Outcome {
	score := 0.0
	if len(input.Results) > 0 {
		for _, result := range input.Results {
			score += result.CombinedScore
		}
		score /= float64(len(input.Results))
	}

	outcome := Outcome{
		Name:    c.Name(),
		Passed:  score >= c.Threshold,
		Score:   score,
		Details: model.Metadata{"retrieval_score": score},
	}
	if !outcome.Passed {
		outcome.Warnings = []string{fmt.Sprintf("Low retrieval quality (score: %.2f)", score)}
	}
	return outcome
}

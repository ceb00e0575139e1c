package validation

import (
	"strings"

	"github.com/siherrmann/docqa/model"
)

// SourceAlignmentCheck measures which share of the distinct answer tokens also
// occurs in the retrieved sources. Tokens are lowercased whitespace splits.
type SourceAlignmentCheck struct {
	Threshold float64
}

// NewSourceAlignmentCheck creates the check, an alignment below threshold fails
func NewSourceAlignmentCheck(threshold float64) *SourceAlignmentCheck {
	return &SourceAlignmentCheck{Threshold: threshold}
}

// Name returns model.CheckSourceAlignment
func (c *SourceAlignmentCheck) Name() string {
	return model.CheckSourceAlignment
}

// Run scores the share of answer tokens that occur in the sources
func (c *SourceAlignmentCheck) Run(input Input) Outcome {
	score := alignmentScore(input)

	outcome := Outcome{
		Name:    c.Name(),
		Passed:  score >= c.Threshold,
		Score:   score,
		Details: model.Metadata{"alignment_score": score},
	}
	if !outcome.Passed {
		outcome.Warnings = []string{"Answer may not be well-supported by sources"}
	}
	return outcome
}

func alignmentScore(input Input) float64 {
	if len(input.Results) == 0 || input.Answer == "" {
		return 0
	}

	answerTokens := tokenSet(input.Answer)
	if len(answerTokens) == 0 {
		return 0
	}
	sourceTokens := tokenSet(input.SourceText())

	overlap := 0
	for token := range answerTokens {
		if _, ok := sourceTokens[token]; ok {
			overlap++
		}
	}
	return float64(overlap) / float64(len(answerTokens))
}

func tokenSet(text string) map[string]struct{} {
	tokens := strings.Fields(strings.ToLower(text))
	set := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		set[token] = struct{}{}
	}
	return set
}

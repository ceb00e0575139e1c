package validation

import (
	"strings"

	"github.com/siherrmann/docqa/model"
)

// Input is what every check sees of one answered query
type Input struct {
	Query   string
	Answer  string
	Results []model.RetrievalResult
}

// SourceText returns the retrieved chunk texts joined by spaces
func (in Input) SourceText() string {
	texts := make([]string, len(in.Results))
	for i, result := range in.Results {
		texts[i] = result.Chunk.Text
	}
	return strings.Join(texts, " ")
}

// Outcome is the result of a single check
type Outcome struct {
	Name     string
	Passed   bool
	Skipped  bool    // Not applicable to the answer, counted neither as passed nor failed
	Score    float64 // Diagnostic value, used by the confidence fusion for scored checks
	Warnings []string
	Details  model.Metadata
}

// Check is one independent stage of the validator. Checks must be pure functions
// of their input since they run concurrently.
type Check interface {
	Name() string
	Run(input Input) Outcome
}

package validation

import (
	"regexp"
	"slices"

	"github.com/siherrmann/docqa/model"
)

// Percentages, currency amounts and bare decimals, extracted in this order
var numberPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d+\.?\d*%`),
	regexp.MustCompile(`\$\d+(?:,\d{3})*(?:\.\d{2})?`),
	regexp.MustCompile(`\d+\.?\d*`),
}

// ExtractNumbers returns every match of every number pattern. A number can be
// matched by more than one pattern, "2%" yields "2%" and "2".
func ExtractNumbers(text string) []string {
	numbers := []string{}
	for _, pattern := range numberPatterns {
		numbers = append(numbers, pattern.FindAllString(text, -1)...)
	}
	return numbers
}

// NumericalAccuracyCheck passes if every number of the answer occurs verbatim
// among the numbers of the sources. An answer without numbers is validated
// but the check is skipped.
type NumericalAccuracyCheck struct{}

// NewNumericalAccuracyCheck creates the check
func NewNumericalAccuracyCheck() *NumericalAccuracyCheck {
	return &NumericalAccuracyCheck{}
}

// Name returns model.CheckNumericalAccuracy
func (c *NumericalAccuracyCheck) Name() string {
	return model.CheckNumericalAccuracy
}

// Run compares the numbers of the answer with the numbers of the sources
func (c *NumericalAccuracyCheck) Run(input Input) Outcome {
	answerNumbers := ExtractNumbers(input.Answer)
	if len(answerNumbers) == 0 {
		return Outcome{
			Name:    c.Name(),
			Passed:  true,
			Skipped: true,
			Score:   1,
			Details: model.Metadata{
				"numerical_accuracy": model.Metadata{
					"has_numbers": false,
					"validated":   true,
				},
			},
		}
	}

	sourceNumbers := ExtractNumbers(input.SourceText())
	matched := 0
	for _, number := range answerNumbers {
		if slices.Contains(sourceNumbers, number) {
			matched++
		}
	}
	validated := matched == len(answerNumbers)

	outcome := Outcome{
		Name:   c.Name(),
		Passed: validated,
		Score:  float64(matched) / float64(len(answerNumbers)),
		Details: model.Metadata{
			"numerical_accuracy": model.Metadata{
				"has_numbers":    true,
				"validated":      validated,
				"answer_numbers": answerNumbers,
				"matched_count":  matched,
				"total_count":    len(answerNumbers),
			},
		},
	}
	if !validated {
		outcome.Warnings = []string{"Numbers in answer may not match source documents"}
	}
	return outcome
}

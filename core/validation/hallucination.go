package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/siherrmann/docqa/model"
)

var specificsPattern = regexp.MustCompile(`\d+\.?\d*%|\$\d+|[A-Z][a-z]+ \d{1,2}, \d{4}`)

// Hallucination indicators
const (
	IndicatorContradiction = "Contradictory: Claims no info but provides detail"
	IndicatorUnattributed  = "Specific claims without source attribution"
	IndicatorLength        = "Answer length exceeds reasonable extraction ratio"
)

// HallucinationCheck collects heuristic hallucination indicators. It fails on a
// contradictory disclaimer or once IndicatorLimit indicators were found.
type HallucinationCheck struct {
	DisclaimerWordLimit  int     // A disclaimer answer longer than this contradicts itself
	MaxAnswerSourceRatio float64 // Answer characters per source character
	IndicatorLimit       int
}

// NewHallucinationCheck creates the check with the heuristic limits of config
func NewHallucinationCheck(config model.ValidationConfig) *HallucinationCheck {
	return &HallucinationCheck{
		DisclaimerWordLimit:  config.DisclaimerWordLimit,
		MaxAnswerSourceRatio: config.MaxAnswerSourceRatio,
		IndicatorLimit:       config.HallucinationIndicatorLimit,
	}
}

// Name returns model.CheckHallucination
func (c *HallucinationCheck) Name() string {
	return model.CheckHallucination
}

// Run collects hallucination indicators, the check fails on a contradiction or on too many indicators
func (c *HallucinationCheck) Run(input Input) Outcome {
	indicators := []string{}
	likely := false

	lower := strings.ToLower(input.Answer)
	if strings.Contains(lower, "cannot find") || strings.Contains(lower, "not available") {
		if len(strings.Fields(input.Answer)) > c.DisclaimerWordLimit {
			indicators = append(indicators, IndicatorContradiction)
			likely = true
		}
	}

	hasSpecifics := specificsPattern.MatchString(input.Answer)
	hasCitations := strings.Contains(input.Answer, "Source") || strings.Contains(input.Answer, "According to")
	if hasSpecifics && !hasCitations && len(input.Results) > 0 {
		indicators = append(indicators, IndicatorUnattributed)
	}

	if len(input.Results) > 0 {
		sourceLength := 0
		for _, result := range input.Results {
			sourceLength += utf8.RuneCountInString(result.Chunk.Text)
		}
		if float64(utf8.RuneCountInString(input.Answer)) > float64(sourceLength)*c.MaxAnswerSourceRatio {
			indicators = append(indicators, IndicatorLength)
		}
	}

	if len(indicators) >= c.IndicatorLimit {
		likely = true
	}

	confidence := 1.0 - float64(len(indicators))*0.3

	outcome := Outcome{
		Name:   c.Name(),
		Passed: !likely,
		Score:  confidence,
		Details: model.Metadata{
			"hallucination_indicators": model.Metadata{
				"likely_hallucination": likely,
				"indicators":           indicators,
				"confidence":           confidence,
			},
		},
	}
	if likely {
		outcome.Warnings = indicators
	}
	return outcome
}

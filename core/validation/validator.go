package validation

import (
	"log/slog"
	"slices"
	"sync"

	"github.com/siherrmann/docqa/model"
)

// Validator runs independent checks over an answer and fuses them into a trust level
type Validator struct {
	config model.ValidationConfig
	checks []Check
	logger *slog.Logger
}

// NewValidator creates a validator with the retrieval quality, source alignment,
// hallucination and numerical accuracy checks.
func NewValidator(config model.ValidationConfig, logger *slog.Logger) *Validator {
	return NewValidatorWithChecks(
		config,
		logger,
		NewRetrievalQualityCheck(config.RetrievalThreshold),
		NewSourceAlignmentCheck(config.AlignmentThreshold),
		NewHallucinationCheck(config),
		NewNumericalAccuracyCheck(),
	)
}

// NewValidatorWithChecks creates a validator with custom checks
func NewValidatorWithChecks(config model.ValidationConfig, logger *slog.Logger, checks ...Check) *Validator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Validator{
		config: config,
		checks: checks,
		logger: logger,
	}
}

// Run runs all checks concurrently. Outcomes keep the order of the checks.
func (v *Validator) Run(input Input) []Outcome {
	outcomes := make([]Outcome, len(v.checks))

	var wg sync.WaitGroup
	for i, check := range v.checks {
		wg.Add(1)
		go func(i int, c Check) {
			defer wg.Done()
			outcomes[i] = c.Run(input)
		}(i, check)
	}
	wg.Wait()

	return outcomes
}

// Validate validates an answer against the retrieved results. It never fails,
// a FAILED level is advice to the caller to hide the answer.
func (v *Validator) Validate(query string, answer string, results []model.RetrievalResult) *model.ValidationResult {
	outcomes := v.Run(Input{Query: query, Answer: answer, Results: results})

	result := &model.ValidationResult{
		PassedChecks: []string{},
		FailedChecks: []string{},
		Warnings:     []string{},
		Details:      model.Metadata{},
	}

	var retrievalScore, alignmentScore float64
	for _, outcome := range outcomes {
		switch {
		case outcome.Skipped:
		case outcome.Passed:
			result.PassedChecks = append(result.PassedChecks, outcome.Name)
		default:
			result.FailedChecks = append(result.FailedChecks, outcome.Name)
			result.Warnings = append(result.Warnings, outcome.Warnings...)
		}
		for key, value := range outcome.Details {
			result.Details[key] = value
		}

		switch outcome.Name {
		case model.CheckRetrievalQuality:
			retrievalScore = outcome.Score
		case model.CheckSourceAlignment:
			alignmentScore = outcome.Score
		}
	}

	result.ConfidenceScore = Confidence(retrievalScore, alignmentScore, len(result.PassedChecks), len(result.FailedChecks))
	result.Level = v.level(result.ConfidenceScore, result.FailedChecks)

	v.logger.Debug(
		"Answer validated",
		slog.String("level", string(result.Level)),
		slog.Float64("confidence", result.ConfidenceScore),
		slog.Any("failed_checks", result.FailedChecks),
	)

	return result
}

// Confidence fuses the retrieval and alignment scores with the share of passed checks, clamped to [0,1]
func Confidence(retrievalScore float64, alignmentScore float64, passed int, failed int) float64 {
	confidence := 0.3*retrievalScore + 0.3*alignmentScore + 0.4*float64(passed)/float64(max(passed+failed, 1))
	return min(1.0, max(0.0, confidence))
}

// level returns FAILED for any failed critical check, otherwise the confidence decides.
// The required critical checks apply even if the configuration omits them.
func (v *Validator) level(confidence float64, failedChecks []string) model.ValidationLevel {
	for _, check := range failedChecks {
		if slices.Contains(model.RequiredCriticalChecks, check) || slices.Contains(v.config.CriticalChecks, check) {
			return model.LevelFailed
		}
	}

	switch {
	case confidence >= v.config.MinConfidence:
		return model.LevelHigh
	case confidence >= v.config.MediumConfidence:
		return model.LevelMedium
	default:
		return model.LevelLow
	}
}

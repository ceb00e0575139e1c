package model

import "github.com/google/uuid"

// QueryResponse is the end-to-end answer to one question
type QueryResponse struct {
	ID         uuid.UUID         `json:"id"`
	Question   string            `json:"question"`
	Answer     string            `json:"answer"`
	Sources    []RetrievalResult `json:"sources"`
	Validation *ValidationResult `json:"validation,omitempty"`
	Metadata   Metadata          `json:"metadata"`
}

// Safe reports whether the response carries a validation that allows showing the answer
func (r *QueryResponse) Safe() bool {
	return r != nil && r.Validation.IsSafeToUse()
}

package model

// Metadata holds free-form diagnostics of responses, generations and validations
type Metadata map[string]interface{}

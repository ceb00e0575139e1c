package model

// QueryConfig configures a single query
type QueryConfig struct {
	TopK          int  `json:"top_k"`          // 0 uses the retrieval default
	Validate      bool `json:"validate"`       // Run the validator on the answer
	ReturnSources bool `json:"return_sources"` // Include the retrieved chunks in the response
}

// DefaultQueryConfig validates and returns sources with the configured top k
func DefaultQueryConfig() *QueryConfig {
	return &QueryConfig{
		Validate:      true,
		ReturnSources: true,
	}
}

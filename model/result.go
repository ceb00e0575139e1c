package model

// RetrievalResult is one ranked chunk of a query, scores normalized to [0,1]
type RetrievalResult struct {
	Chunk         DocumentChunk `json:"chunk"`
	BM25Score     float64       `json:"bm25_score"`
	DenseScore    float64       `json:"dense_score"`
	CombinedScore float64       `json:"combined_score"`
}

// Generation is the output of the generation gateway
type Generation struct {
	Text       string   `json:"text"`
	Model      string   `json:"model"`
	TokensUsed *int     `json:"tokens_used,omitempty"`
	Metadata   Metadata `json:"metadata,omitempty"`
}

// Failed reports whether the generation degraded because of a backend error
func (g *Generation) Failed() bool {
	if g == nil || g.Metadata == nil {
		return false
	}
	_, ok := g.Metadata["error"]
	return ok
}

package model

// IndexStats describes the current retrieval index
type IndexStats struct {
	TotalChunks         int  `json:"total_chunks"`
	UniqueSources       int  `json:"unique_sources"`
	EmbeddingDimensions int  `json:"embedding_dimensions"`
	BM25Indexed         bool `json:"bm25_indexed"`
}

// PipelineStats describes the whole question answering pipeline
type PipelineStats struct {
	DocumentsLoaded bool       `json:"documents_loaded"`
	Retriever       IndexStats `json:"retriever"`
	LLMModel        string     `json:"llm_model"`
	ChunkSize       int        `json:"chunk_size"`
	TopK            int        `json:"top_k"`
}

// Health is a best effort liveness report
type Health struct {
	Status          string `json:"status"`
	PipelineReady   bool   `json:"pipeline_ready"`
	DocumentsLoaded bool   `json:"documents_loaded"`
	LLMAvailable    bool   `json:"llm_available"`
}

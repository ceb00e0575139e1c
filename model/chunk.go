package model

import "fmt"

// ChunkOffsets records where a chunk was cut from its cleaned page text
type ChunkOffsets struct {
	CharStart   int `json:"char_start"`
	CharEnd     int `json:"char_end"`
	ChunkLength int `json:"chunk_length"`
}

// ChunkKey identifies a chunk across ingestion passes
type ChunkKey struct {
	Source  string `json:"source"`
	ChunkID int    `json:"chunk_id"`
}

// String returns the key as "source#chunk_id"
func (k ChunkKey) String() string {
	return fmt.Sprintf("%s#%d", k.Source, k.ChunkID)
}

// DocumentChunk is the atomic retrieval unit. It is never mutated after the chunker created it.
type DocumentChunk struct {
	Text     string       `json:"text"`
	Source   string       `json:"source"`
	Page     int          `json:"page"`     // 1-based
	ChunkID  int          `json:"chunk_id"` // 0-based within source
	Metadata ChunkOffsets `json:"metadata"`
}

// Key returns the (source, chunk_id) identity of the chunk
func (c DocumentChunk) Key() ChunkKey {
	return ChunkKey{Source: c.Source, ChunkID: c.ChunkID}
}

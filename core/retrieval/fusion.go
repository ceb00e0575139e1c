package retrieval

import (
	"math"
	"slices"
)

// CosineSimilarity calculates the cosine similarity between two embedding vectors.
// Vectors of different length or with zero norm have similarity 0.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Normalize min-max normalizes scores to [0,1].
// If all scores are equal every score becomes 1.
func Normalize(scores []float64) []float64 {
	normalized := make([]float64, len(scores))
	if len(scores) == 0 {
		return normalized
	}

	lowest, highest := slices.Min(scores), slices.Max(scores)
	if highest == lowest {
		for i := range normalized {
			normalized[i] = 1.0
		}
		return normalized
	}

	for i, score := range scores {
		normalized[i] = (score - lowest) / (highest - lowest)
	}
	return normalized
}

// Fuse combines two normalized score vectors of equal length with the given weights.
// The weights need not sum to 1.
func Fuse(lexical []float64, dense []float64, lexicalWeight float64, denseWeight float64) []float64 {
	combined := make([]float64, len(lexical))
	for i := range lexical {
		combined[i] = lexicalWeight*lexical[i] + denseWeight*dense[i]
	}
	return combined
}

// TopK returns the indices of the k highest scores in descending order.
// Equal scores keep their original order, lower index first.
func TopK(scores []float64, k int) []int {
	if k <= 0 {
		return []int{}
	}

	indices := make([]int, len(scores))
	for i := range indices {
		indices[i] = i
	}

	slices.SortStableFunc(indices, func(a, b int) int {
		switch {
		case scores[a] > scores[b]:
			return -1
		case scores[a] < scores[b]:
			return 1
		default:
			return 0
		}
	})

	if len(indices) > k {
		indices = indices[:k]
	}
	return indices
}

package retrieval

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCosineSimilarity(t *testing.T) {
	t.Run("Identical vectors", func(t *testing.T) {
		assert.InDelta(t, 1.0, CosineSimilarity([]float32{1, 2, 3}, []float32{1, 2, 3}), 1e-6)
	})

	t.Run("Orthogonal vectors", func(t *testing.T) {
		assert.InDelta(t, 0.0, CosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-9)
	})

	t.Run("Opposite vectors", func(t *testing.T) {
		assert.InDelta(t, -1.0, CosineSimilarity([]float32{1, 1}, []float32{-1, -1}), 1e-6)
	})

	t.Run("Zero vector", func(t *testing.T) {
		assert.Equal(t, 0.0, CosineSimilarity([]float32{0, 0}, []float32{1, 1}))
	})

	t.Run("Different lengths", func(t *testing.T) {
		assert.Equal(t, 0.0, CosineSimilarity([]float32{1}, []float32{1, 1}))
	})
}

func TestNormalize(t *testing.T) {
	t.Run("Scores map to unit interval", func(t *testing.T) {
		normalized := Normalize([]float64{-2, 0, 3, 8})

		assert.Equal(t, 0.0, normalized[0])
		assert.Equal(t, 1.0, normalized[3])
		for _, score := range normalized {
			assert.GreaterOrEqual(t, score, 0.0)
			assert.LessOrEqual(t, score, 1.0)
		}
		assert.InDelta(t, 0.2, normalized[1], 1e-9)
	})

	t.Run("Equal scores normalize to one", func(t *testing.T) {
		assert.Equal(t, []float64{1, 1, 1}, Normalize([]float64{0.4, 0.4, 0.4}))
	})

	t.Run("Single score normalizes to one", func(t *testing.T) {
		assert.Equal(t, []float64{1}, Normalize([]float64{-3}))
	})

	t.Run("Empty scores", func(t *testing.T) {
		assert.Empty(t, Normalize(nil))
	})
}

func TestFuse(t *testing.T) {
	t.Run("Weighted sum", func(t *testing.T) {
		combined := Fuse([]float64{1, 0, 0.5}, []float64{0, 1, 0.5}, 0.5, 0.5)

		assert.Equal(t, []float64{0.5, 0.5, 0.5}, combined)
	})

	t.Run("Weights need not sum to one", func(t *testing.T) {
		combined := Fuse([]float64{1}, []float64{1}, 1, 1)

		assert.Equal(t, []float64{2}, combined)
	})

	t.Run("Monotonic in each input", func(t *testing.T) {
		low := Fuse([]float64{0.2}, []float64{0.5}, 0.3, 0.7)
		higherLexical := Fuse([]float64{0.4}, []float64{0.5}, 0.3, 0.7)
		higherDense := Fuse([]float64{0.2}, []float64{0.6}, 0.3, 0.7)

		assert.Greater(t, higherLexical[0], low[0])
		assert.Greater(t, higherDense[0], low[0])
		assert.Equal(t, low, Fuse([]float64{0.2}, []float64{0.5}, 0.3, 0.7))
	})
}

func TestTopK(t *testing.T) {
	t.Run("Descending order", func(t *testing.T) {
		assert.Equal(t, []int{2, 0, 1}, TopK([]float64{0.5, 0.1, 0.9}, 5))
	})

	t.Run("Ties keep the lower index first", func(t *testing.T) {
		assert.Equal(t, []int{1, 3, 0}, TopK([]float64{0.5, 0.9, 0.5, 0.9}, 3))
	})

	t.Run("Limit to k", func(t *testing.T) {
		assert.Len(t, TopK([]float64{1, 2, 3, 4}, 2), 2)
	})

	t.Run("Non-positive k", func(t *testing.T) {
		assert.Empty(t, TopK([]float64{1, 2}, 0))
	})
}

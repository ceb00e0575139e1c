package helper

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrepareModel(t *testing.T) {
	t.Run("Download model when it doesn't exist", func(t *testing.T) {
		if testing.Short() {
			t.Skip("Skipping model download in short mode")
		}

		modelDir := t.TempDir()
		path, err := PrepareModel(modelDir, "sentence-transformers/all-MiniLM-L6-v2", "onnx/model.onnx")

		// Depends on network and disk space, so only the error shape is checked on failure
		if err != nil {
			assert.Contains(t, err.Error(), "failed to", "Expected error to be about download failure")
		} else {
			assert.NotEmpty(t, path, "Expected model path to be returned")
			assert.DirExists(t, path, "Expected model directory to exist")
		}
	})

	t.Run("Return existing model path when model exists", func(t *testing.T) {
		modelDir := t.TempDir()
		modelPath := filepath.Join(modelDir, "test_mock-model")
		require.NoError(t, os.MkdirAll(modelPath, 0750))

		path, err := PrepareModel(modelDir, "test/mock-model", "")
		assert.NoError(t, err, "Expected PrepareModel to not return an error for existing model")
		assert.Equal(t, modelPath, path, "Expected returned path to match existing model path")
	})

	t.Run("Handle model name without slash", func(t *testing.T) {
		modelDir := t.TempDir()
		expectedPath := filepath.Join(modelDir, "simple-model")
		require.NoError(t, os.MkdirAll(expectedPath, 0750))

		path, err := PrepareModel(modelDir, "simple-model", "onnx/model.onnx")
		assert.NoError(t, err)
		assert.Equal(t, expectedPath, path, "Expected path to use model name directly")
	})
}

package model

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/siherrmann/docqa/helper"
)

// Config is the configuration of the whole question answering pipeline
type Config struct {
	Chunk      ChunkConfig      `toml:"chunk" json:"chunk"`
	Retrieval  RetrievalConfig  `toml:"retrieval" json:"retrieval"`
	Validation ValidationConfig `toml:"validation" json:"validation"`
	Generation GenerationConfig `toml:"generation" json:"generation"`
	LogLevel   string           `toml:"log_level" json:"log_level"` // "debug", "info", "warn", "error"
}

// ChunkConfig configures the sliding window chunker
type ChunkConfig struct {
	Size        int `toml:"size" json:"size"`                 // Characters per window
	Overlap     int `toml:"overlap" json:"overlap"`           // Characters shared by consecutive chunks
	BreakWindow int `toml:"break_window" json:"break_window"` // How far back from the window end a break point may lie
}

// RetrievalConfig configures the hybrid retriever
type RetrievalConfig struct {
	TopK        int     `toml:"top_k" json:"top_k"`
	BM25Weight  float64 `toml:"bm25_weight" json:"bm25_weight"`
	DenseWeight float64 `toml:"dense_weight" json:"dense_weight"`

	// Okapi BM25 parameters
	K1      float64 `toml:"k1" json:"k1"`
	B       float64 `toml:"b" json:"b"`
	Epsilon float64 `toml:"epsilon" json:"epsilon"` // Floor factor for negative idf values

	EmbeddingModel string `toml:"embedding_model" json:"embedding_model"`
	ModelDir       string `toml:"model_dir" json:"model_dir"`
	EmbedBatchSize int    `toml:"embed_batch_size" json:"embed_batch_size"`
}

// ValidationConfig configures the answer validator
type ValidationConfig struct {
	RetrievalThreshold float64 `toml:"retrieval_threshold" json:"retrieval_threshold"`
	AlignmentThreshold float64 `toml:"alignment_threshold" json:"alignment_threshold"`
	MinConfidence      float64 `toml:"min_confidence" json:"min_confidence"`       // HIGH at or above
	MediumConfidence   float64 `toml:"medium_confidence" json:"medium_confidence"` // MEDIUM at or above

	// Hallucination heuristics
	DisclaimerWordLimit         int     `toml:"disclaimer_word_limit" json:"disclaimer_word_limit"`
	MaxAnswerSourceRatio        float64 `toml:"max_answer_source_ratio" json:"max_answer_source_ratio"`
	HallucinationIndicatorLimit int     `toml:"hallucination_indicator_limit" json:"hallucination_indicator_limit"`

	CriticalChecks []string `toml:"critical_checks" json:"critical_checks"` // A failure of any of these forces FAILED, must include RequiredCriticalChecks
}

// GenerationConfig configures the generation backend
type GenerationConfig struct {
	Provider    string  `toml:"provider" json:"provider"` // huggingface, claude, gemini, ollama, mock
	Model       string  `toml:"model" json:"model"`
	APIKey      string  `toml:"api_key" json:"-"`
	BaseURL     string  `toml:"base_url" json:"base_url,omitempty"`
	MaxTokens   int     `toml:"max_tokens" json:"max_tokens"`
	Temperature float64 `toml:"temperature" json:"temperature"`
	Timeout     string  `toml:"timeout" json:"timeout"` // e.g. "60s"
}

// DefaultConfig returns the default pipeline configuration
func DefaultConfig() *Config {
	return &Config{
		Chunk: ChunkConfig{
			Size:        800,
			Overlap:     200,
			BreakWindow: 200,
		},
		Retrieval: RetrievalConfig{
			TopK:           5,
			BM25Weight:     0.5,
			DenseWeight:    0.5,
			K1:             1.5,
			B:              0.75,
			Epsilon:        0.25,
			EmbeddingModel: "sentence-transformers/all-MiniLM-L6-v2",
			ModelDir:       "./models",
			EmbedBatchSize: 32,
		},
		Validation: ValidationConfig{
			RetrievalThreshold:          0.3,
			AlignmentThreshold:          0.5,
			MinConfidence:               0.6,
			MediumConfidence:            0.4,
			DisclaimerWordLimit:         20,
			MaxAnswerSourceRatio:        0.5,
			HallucinationIndicatorLimit: 2,
			CriticalChecks:              slices.Clone(RequiredCriticalChecks),
		},
		Generation: GenerationConfig{
			Provider:    "huggingface",
			Model:       "mistralai/Mistral-7B-Instruct-v0.2",
			MaxTokens:   500,
			Temperature: 0.1,
			Timeout:     "60s",
		},
		LogLevel: "info",
	}
}

// LoadConfig loads the configuration with priority: defaults -> toml file -> .env -> environment.
// An empty path skips the file layer.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, helper.NewError("read config file", err)
		}
		err = toml.Unmarshal(data, config)
		if err != nil {
			return nil, helper.NewError(fmt.Sprintf("parse config file %s", path), err)
		}
	}

	// A missing .env file is fine
	err := godotenv.Load()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, helper.NewError("load .env", err)
	}

	applyEnvOverrides(config)

	err = config.Validate()
	if err != nil {
		return nil, err
	}

	return config, nil
}

func applyEnvOverrides(config *Config) {
	// Generation
	if provider := os.Getenv("LLM_PROVIDER"); provider != "" && !strings.EqualFold(provider, config.Generation.Provider) {
		config.Generation.Provider = provider
		// Empty means the default model of the provider
		config.Generation.Model = ""
	}
	if m := os.Getenv("LLM_MODEL"); m != "" {
		config.Generation.Model = m
	}
	if baseURL := os.Getenv("LLM_BASE_URL"); baseURL != "" {
		config.Generation.BaseURL = baseURL
	}
	if timeout := os.Getenv("LLM_TIMEOUT"); timeout != "" {
		config.Generation.Timeout = timeout
	}
	if key := os.Getenv("LLM_API_KEY"); key != "" {
		config.Generation.APIKey = key
	} else if config.Generation.APIKey == "" {
		config.Generation.APIKey = providerAPIKey(config.Generation.Provider)
	}

	// Retrieval
	if topK := os.Getenv("DOCQA_TOP_K"); topK != "" {
		if k, err := strconv.Atoi(topK); err == nil {
			config.Retrieval.TopK = k
		}
	}
	if w := os.Getenv("DOCQA_BM25_WEIGHT"); w != "" {
		if f, err := strconv.ParseFloat(w, 64); err == nil {
			config.Retrieval.BM25Weight = f
		}
	}
	if w := os.Getenv("DOCQA_DENSE_WEIGHT"); w != "" {
		if f, err := strconv.ParseFloat(w, 64); err == nil {
			config.Retrieval.DenseWeight = f
		}
	}
	if dir := os.Getenv("DOCQA_MODEL_DIR"); dir != "" {
		config.Retrieval.ModelDir = dir
	}

	// Chunking
	if size := os.Getenv("DOCQA_CHUNK_SIZE"); size != "" {
		if s, err := strconv.Atoi(size); err == nil {
			config.Chunk.Size = s
		}
	}
	if overlap := os.Getenv("DOCQA_CHUNK_OVERLAP"); overlap != "" {
		if o, err := strconv.Atoi(overlap); err == nil {
			config.Chunk.Overlap = o
		}
	}

	if level := os.Getenv("DOCQA_LOG_LEVEL"); level != "" {
		config.LogLevel = level
	}
}

func providerAPIKey(provider string) string {
	switch strings.ToLower(provider) {
	case "huggingface":
		return os.Getenv("HUGGINGFACE_API_TOKEN")
	case "claude":
		return os.Getenv("ANTHROPIC_API_KEY")
	case "gemini":
		return os.Getenv("GEMINI_API_KEY")
	default:
		return ""
	}
}

// Validate rejects configurations the pipeline cannot run with
func (c *Config) Validate() error {
	switch {
	case c.Chunk.Size <= 0:
		return helper.NewError("validate config", fmt.Errorf("chunk size must be positive, got %d", c.Chunk.Size))
	case c.Chunk.Overlap < 0 || c.Chunk.Overlap >= c.Chunk.Size:
		return helper.NewError("validate config", fmt.Errorf("chunk overlap must be in [0, %d), got %d", c.Chunk.Size, c.Chunk.Overlap))
	case c.Retrieval.TopK <= 0:
		return helper.NewError("validate config", fmt.Errorf("top k must be positive, got %d", c.Retrieval.TopK))
	case c.Retrieval.BM25Weight < 0 || c.Retrieval.DenseWeight < 0:
		return helper.NewError("validate config", errors.New("retrieval weights must not be negative"))
	case c.Validation.HallucinationIndicatorLimit <= 0:
		return helper.NewError("validate config", fmt.Errorf("hallucination indicator limit must be positive, got %d", c.Validation.HallucinationIndicatorLimit))
	case c.Validation.DisclaimerWordLimit <= 0:
		return helper.NewError("validate config", fmt.Errorf("disclaimer word limit must be positive, got %d", c.Validation.DisclaimerWordLimit))
	case c.Validation.MediumConfidence > c.Validation.MinConfidence:
		return helper.NewError("validate config", fmt.Errorf("medium confidence %.2f is above min confidence %.2f", c.Validation.MediumConfidence, c.Validation.MinConfidence))
	}

	for _, check := range RequiredCriticalChecks {
		if !slices.Contains(c.Validation.CriticalChecks, check) {
			return helper.NewError("validate config", fmt.Errorf("critical checks must include %s", check))
		}
	}

	_, err := c.TimeoutDuration()
	if err != nil {
		return helper.NewError("validate config", err)
	}
	return nil
}

// TimeoutDuration parses the generation timeout. An empty timeout means 60 seconds.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	if c.Generation.Timeout == "" {
		return 60 * time.Second, nil
	}
	return time.ParseDuration(c.Generation.Timeout)
}

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/siherrmann/docqa"
	"github.com/siherrmann/docqa/model"
)

const sampleContent = `Fund Overview

The Example Growth Fund invests primarily in listed equities of developed markets.
The management fee is 2% annually and is charged monthly on the net asset value.
A performance fee of 20% applies to returns above the benchmark.

Redemptions are processed on the last business day of each quarter with 30 days notice.`

func main() {
	// Usage: basic [document or directory] [config.toml]
	configPath := ""
	if len(os.Args) > 2 {
		configPath = os.Args[2]
	}
	config, err := model.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()
	d, err := docqa.NewDefaultDocQA(ctx, config)
	if err != nil {
		log.Fatalf("Failed to create docqa: %v", err)
	}

	path := ""
	if len(os.Args) > 1 {
		path = os.Args[1]
	} else {
		dir, err := os.MkdirTemp("", "docqa-example-")
		if err != nil {
			log.Fatalf("Failed to create temp dir: %v", err)
		}
		defer os.RemoveAll(dir)

		path = filepath.Join(dir, "fund_overview.txt")
		if err := os.WriteFile(path, []byte(sampleContent), 0o600); err != nil {
			log.Fatalf("Failed to write sample document: %v", err)
		}
	}

	fmt.Printf("Loading %s...\n", path)
	if err := d.Load(ctx, path, false); err != nil {
		log.Fatalf("Failed to load documents: %v", err)
	}
	stats := d.Stats()
	fmt.Printf("Indexed %d chunks from %d sources (%d dimensions)\n", stats.TotalChunks, stats.UniqueSources, stats.EmbeddingDimensions)

	question := "What is the management fee?"
	fmt.Printf("\nQuestion: %s\n", question)

	response := d.Query(ctx, question, true)
	fmt.Printf("Answer: %s\n", response.Answer)

	fmt.Printf("\nSources:\n")
	for i, source := range response.Sources {
		fmt.Printf("  %d. %s, page %d (score %.2f)\n", i+1, source.Chunk.Source, source.Chunk.Page, source.CombinedScore)
	}

	if response.Validation != nil {
		v := response.Validation
		fmt.Printf("\nTrust level: %s (confidence %.2f)\n", v.Level, v.ConfidenceScore)
		fmt.Printf("Passed: %v\n", v.PassedChecks)
		fmt.Printf("Failed: %v\n", v.FailedChecks)
		for _, warning := range v.Warnings {
			fmt.Printf("Warning: %s\n", warning)
		}
		if !v.IsSafeToUse() {
			fmt.Println("This answer should not be shown without review.")
		}
	}
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/siherrmann/docqa"
	"github.com/siherrmann/docqa/model"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatalf("Usage: batch <document or directory> [question...]")
	}

	config, err := model.LoadConfig("")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()
	d, err := docqa.NewDefaultDocQA(ctx, config)
	if err != nil {
		log.Fatalf("Failed to create docqa: %v", err)
	}

	health := d.Health(ctx)
	if !health.LLMAvailable {
		fmt.Printf("Generation backend %s is not reachable, answers will be degraded\n", d.Gateway.Model())
	}

	if err := d.Load(ctx, os.Args[1], false); err != nil {
		log.Fatalf("Failed to load documents: %v", err)
	}

	questions := os.Args[2:]
	if len(questions) == 0 {
		questions = []string{
			"What is the investment strategy?",
			"What are the fees?",
			"How can investors redeem their shares?",
		}
	}

	responses := d.BatchQuery(ctx, questions, true)

	safe := 0
	for _, response := range responses {
		if response.Safe() {
			safe++
		}
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(responses); err != nil {
		log.Fatalf("Failed to encode responses: %v", err)
	}

	stats, err := json.MarshalIndent(d.PipelineStats(), "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode stats: %v", err)
	}
	fmt.Printf("\n%d of %d answers are safe to use\n%s\n", safe, len(responses), stats)
}

package pipeline

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/siherrmann/docqa/helper"
	"github.com/siherrmann/docqa/model"
)

// ErrInvalidChunkConfig is returned by chunkers with a size or overlap they cannot walk with
var ErrInvalidChunkConfig = errors.New("invalid chunk configuration")

// CleanText strips control characters, collapses whitespace runs to single spaces and trims
func CleanText(text string) string {
	text = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && !unicode.IsSpace(r) {
			return -1
		}
		return r
	}, text)

	return strings.Join(strings.Fields(text), " ")
}

// SlidingWindowChunker creates a chunker that walks the cleaned page text in windows of
// config.Size characters, each overlapping the previous one by config.Overlap characters.
// A window that does not reach the end of the text is trimmed to just after its last
// ". " or newline if that break point lies at least Size-BreakWindow characters into it.
// Offsets and lengths are counted in characters, not bytes.
func SlidingWindowChunker(config model.ChunkConfig) ChunkFunc {
	return func(text string, source string, page int) ([]model.DocumentChunk, error) {
		if config.Size <= 0 || config.Overlap < 0 || config.Overlap >= config.Size {
			return nil, helper.NewError("sliding window chunker", fmt.Errorf("%w: size %d, overlap %d", ErrInvalidChunkConfig, config.Size, config.Overlap))
		}

		runes := []rune(CleanText(text))
		chunks := []model.DocumentChunk{}
		if len(runes) == 0 {
			return chunks, nil
		}

		start := 0
		for {
			end := min(start+config.Size, len(runes))
			window := runes[start:end]

			if end < len(runes) {
				breakPoint := lastBreakPoint(window)
				if breakPoint >= 0 && breakPoint >= config.Size-config.BreakWindow {
					window = window[:breakPoint+1]
					end = start + len(window)
				}
			}

			content := strings.TrimSpace(string(window))
			if content != "" {
				chunks = append(chunks, model.DocumentChunk{
					Text:    content,
					Source:  source,
					Page:    page,
					ChunkID: len(chunks),
					Metadata: model.ChunkOffsets{
						CharStart:   start,
						CharEnd:     end,
						ChunkLength: len(window),
					},
				})
			}

			if end >= len(runes) {
				break
			}

			// A break point close to the window start could walk backwards
			next := end - config.Overlap
			if next <= start {
				next = end
			}
			start = next
		}

		return chunks, nil
	}
}

// lastBreakPoint returns the index of the last sentence terminator (the dot of ". ")
// or newline in window, or -1.
func lastBreakPoint(window []rune) int {
	for i := len(window) - 1; i >= 0; i-- {
		if window[i] == '\n' {
			return i
		}
		if window[i] == '.' && i+1 < len(window) && window[i+1] == ' ' {
			return i
		}
	}
	return -1
}

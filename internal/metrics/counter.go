package metrics

import (
	"bytes"
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// Counter provides methods for counting bytes, tokens, and lines in text
type Counter interface {
	// Count returns the number of bytes, tokens, and lines in the given text
	Count(text string) (bytes, tokens, lines int)
}

// SimpleCounter estimates tokens as bytes/4. This is the approximation the
// aggregate token totals are defined in terms of.
type SimpleCounter struct{}

// Count returns bytes, estimated tokens, and lines for the given text
func (c *SimpleCounter) Count(text string) (int, int, int) {
	byteCount := len(text)
	lines := bytes.Count([]byte(text), []byte{'\n'}) + 1
	return byteCount, EstimateTokens(text), lines
}

// TiktokenCounter uses the tiktoken library to count tokens
type TiktokenCounter struct {
	model string
}

// NewTiktokenCounter creates a new TiktokenCounter for the given model
func NewTiktokenCounter(model string) (*TiktokenCounter, error) {
	// Validate that the model is supported
	if _, err := tiktoken.EncodingForModel(model); err != nil {
		return nil, fmt.Errorf("unsupported model for tiktoken: %s", model)
	}
	return &TiktokenCounter{model: model}, nil
}

// Count returns bytes, tokens (using tiktoken), and lines for the given text
func (c *TiktokenCounter) Count(text string) (int, int, int) {
	byteCount := len(text)
	lines := bytes.Count([]byte(text), []byte{'\n'}) + 1
	return byteCount, estimateTokensTiktoken(text, c.model), lines
}

// EstimateTokens approximates the token count of text as one token per 4
// bytes, rounded down.
func EstimateTokens(text string) int {
	return len(text) / 4
}

// estimateTokensTiktoken counts tokens with the tokenization of a specific
// model, falling back to the simple estimate if the model is unknown.
func estimateTokensTiktoken(text string, model string) int {
	encoding, err := tiktoken.EncodingForModel(model)
	if err != nil {
		return EstimateTokens(text)
	}
	return len(encoding.Encode(text, nil, nil))
}

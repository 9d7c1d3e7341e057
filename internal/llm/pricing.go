package llm

import (
	"regexp"
	"strings"
)

// ModelCost is USD per million tokens.
type ModelCost struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

func (c ModelCost) Cost(inputTokens, outputTokens int) float64 {
	return (float64(inputTokens)*c.InputPerMTok + float64(outputTokens)*c.OutputPerMTok) / 1_000_000
}

var (
	dateSuffix = regexp.MustCompile(`-(\d{8}|\d{4}-\d{2}-\d{2})$`)
	freeCost   = ModelCost{}
)

// LookupCost prices a model ID as reported by a provider. It accepts
// OpenRouter vendor prefixes ("openai/gpt-4o-mini"), dated snapshots
// ("gpt-4o-mini-2024-07-18") and free ":free" variants. Unknown models
// return nil.
func LookupCost(modelID string) *ModelCost {
	id := strings.ToLower(strings.TrimSpace(modelID))
	if id == "" {
		return nil
	}
	if strings.HasSuffix(id, ":free") {
		c := freeCost
		return &c
	}
	if i := strings.LastIndex(id, "/"); i >= 0 {
		if c, ok := modelCosts[id]; ok {
			return &c
		}
		id = id[i+1:]
	}
	for _, candidate := range []string{id, dateSuffix.ReplaceAllString(id, "")} {
		if c, ok := modelCosts[candidate]; ok {
			return &c
		}
	}
	return nil
}

// Prices from the providers' published rate cards, October 2026.
var modelCosts = map[string]ModelCost{
	"claude-3-5-haiku":  {0.8, 4},
	"claude-haiku-4-5":  {1, 5},
	"claude-sonnet-4-5": {3, 15},

	"gpt-4o-mini":  {0.15, 0.6},
	"gpt-4o":       {2.5, 10},
	"gpt-4.1-mini": {0.4, 1.6},
	"gpt-4.1":      {2, 8},

	"gemini-2.0-flash":      {0.1, 0.4},
	"gemini-2.5-flash-lite": {0.1, 0.4},
	"gemini-2.5-flash":      {0.3, 2.5},
	"gemini-2.5-pro":        {1.25, 10},

	// Groq
	"llama-3.1-8b-instant":    {0.05, 0.08},
	"llama-3.3-70b-versatile": {0.59, 0.79},

	// OpenRouter, vendor qualified
	"meta-llama/llama-3.3-70b-instruct": {0.13, 0.4},
	"mistralai/mistral-small-3.2":       {0.1, 0.3},

	"mock":    {0, 0},
	"gateway": {0, 0},
}

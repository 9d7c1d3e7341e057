package vocab

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/langbuddy/internal/exercise"
	"github.com/abhisek/langbuddy/internal/llm"
)

// ExampleGenerator produces one example sentence per difficulty tier.
type ExampleGenerator struct {
	provider llm.Provider
	log      logrus.FieldLogger
}

// NewExampleGenerator returns a generator. provider may be nil, in which
// case only the fallback examples are used.
func NewExampleGenerator(provider llm.Provider, log logrus.FieldLogger) *ExampleGenerator {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &ExampleGenerator{provider: provider, log: log.WithField("component", "examples")}
}

// Generate returns exactly three sentences for w, beginner first. When the
// model fails or answers with the wrong shape it returns FallbackExamples
// and ok is false.
func (g *ExampleGenerator) Generate(ctx context.Context, w Word) (examples []ExampleSentence, ok bool) {
	if g.provider == nil {
		return FallbackExamples(w.Word, w.Translation), false
	}

	examples, err := g.ask(ctx, w)
	if err != nil {
		g.log.WithError(err).WithField("word", w.Word).Warn("Example generation failed, using fallback")
		return FallbackExamples(w.Word, w.Translation), false
	}
	return examples, true
}

func (g *ExampleGenerator) ask(ctx context.Context, w Word) ([]ExampleSentence, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeExamples)

	source := nonEmpty(w.SourceLanguage, "German")
	target := nonEmpty(w.TargetLanguage, "English")

	resp, err := g.provider.Generate(ctx, llm.Request{
		System: fmt.Sprintf(`You are a %[1]s language teacher. Generate 3 example sentences using the %[1]s word %[3]q (%[4]s) at different difficulty levels: beginner, intermediate, and advanced.

Return the response as a JSON array with this exact format:
[
  {"source": "sentence in %[1]s", "target": "sentence in %[2]s", "difficulty": "beginner"},
  {"source": "sentence in %[1]s", "target": "sentence in %[2]s", "difficulty": "intermediate"},
  {"source": "sentence in %[1]s", "target": "sentence in %[2]s", "difficulty": "advanced"}
]

Make the sentences practical and natural. For beginner level, use simple vocabulary and basic sentence structure. For intermediate, use more complex grammar. For advanced, use sophisticated vocabulary and sentence construction.`,
			source, target, w.Word, w.Translation),
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: fmt.Sprintf("Generate 3 example sentences which use the %s word %q with the %s translation %q", source, w.Word, target, w.Translation)},
		},
		MaxTokens:   600,
		Temperature: 0.7,
	})
	if err != nil {
		return nil, err
	}
	return parseExamples(resp.Text)
}

// rawExample also accepts the older german/english keys.
type rawExample struct {
	Source     string `json:"source"`
	Target     string `json:"target"`
	German     string `json:"german"`
	English    string `json:"english"`
	Difficulty string `json:"difficulty"`
}

// parseExamples requires exactly one usable sentence per tier.
func parseExamples(text string) ([]ExampleSentence, error) {
	items, err := exercise.ExtractArray(text)
	if err != nil {
		return nil, err
	}

	byTier := make(map[Difficulty]ExampleSentence, len(Tiers))
	for i, raw := range items {
		var re rawExample
		if err := json.Unmarshal(raw, &re); err != nil {
			return nil, fmt.Errorf("example %d: %w", i, err)
		}
		s := ExampleSentence{
			Source:     strings.TrimSpace(nonEmpty(re.Source, re.German)),
			Target:     strings.TrimSpace(nonEmpty(re.Target, re.English)),
			Difficulty: Difficulty(strings.ToLower(strings.TrimSpace(re.Difficulty))),
		}
		if s.Source == "" || s.Target == "" {
			return nil, fmt.Errorf("example %d: missing sentence", i)
		}
		if _, dup := byTier[s.Difficulty]; dup {
			return nil, fmt.Errorf("example %d: duplicate difficulty %q", i, s.Difficulty)
		}
		byTier[s.Difficulty] = s
	}

	out := make([]ExampleSentence, 0, len(Tiers))
	for _, tier := range Tiers {
		s, ok := byTier[tier]
		if !ok {
			return nil, fmt.Errorf("no %s example", tier)
		}
		out = append(out, s)
	}
	if len(byTier) != len(Tiers) {
		return nil, fmt.Errorf("expected %d examples, got %d", len(Tiers), len(byTier))
	}
	return out, nil
}

func nonEmpty(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

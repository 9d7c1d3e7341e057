package prompt

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/abhisek/langbuddy/internal/llm"
	"github.com/abhisek/langbuddy/internal/profile"
	"github.com/abhisek/langbuddy/internal/reply"
	"github.com/abhisek/langbuddy/internal/session"
)

// DefaultHistoryWindow is how many prior messages are sent with each turn.
const DefaultHistoryWindow = 3

// Builder assembles the message list for one chat turn.
type Builder struct {
	// HistoryWindow caps the prior messages included. Zero or less means
	// DefaultHistoryWindow.
	HistoryWindow int
}

// Input is everything one turn depends on.
type Input struct {
	Utterance      string
	Profile        profile.Profile
	History        []session.Message
	ForceExercises bool
}

// Build returns the system block, the last HistoryWindow history messages
// and the utterance, in that order.
func (b Builder) Build(in Input) []llm.Message {
	window := b.HistoryWindow
	if window <= 0 {
		window = DefaultHistoryWindow
	}

	history := in.History
	if len(history) > window {
		history = history[len(history)-window:]
	}

	msgs := make([]llm.Message, 0, len(history)+2)
	msgs = append(msgs, llm.Message{Role: llm.RoleSystem, Content: SystemBlock(in.Profile, in.ForceExercises)})
	for _, m := range history {
		role := llm.RoleAssistant
		if m.IsUser {
			role = llm.RoleUser
		}
		msgs = append(msgs, llm.Message{Role: role, Content: m.Content})
	}
	msgs = append(msgs, llm.Message{Role: llm.RoleUser, Content: in.Utterance})
	return msgs
}

// Request is Build split into the provider request shape.
func (b Builder) Request(in Input) llm.Request {
	msgs := b.Build(in)
	return llm.Request{System: msgs[0].Content, Messages: msgs[1:]}
}

// SystemBlock renders the instructions for p. The output depends only on
// its arguments.
func SystemBlock(p profile.Profile, forceExercises bool) string {
	target := languageName(p.TargetLanguage)
	native := languageName(p.NativeLanguage)

	var sb strings.Builder
	fmt.Fprintf(&sb, "You are a friendly %s language tutor.\n", target)
	fmt.Fprintf(&sb, "Your student is at %s level learning %s and wants to talk with you to practice and improve their %s.\n\n", p.Level, target, target)

	sb.WriteString("Current student profile:\n")
	fmt.Fprintf(&sb, "- Level: %s\n", p.Level)
	fmt.Fprintf(&sb, "- Target Language: %s\n", target)
	fmt.Fprintf(&sb, "- Native Language: %s\n", native)
	fmt.Fprintf(&sb, "- Response Language Preference: %s\n", p.ResponseMode)
	fmt.Fprintf(&sb, "- Exercise Generation: %s\n\n", onOff(p.GenerateExercises || forceExercises))

	sb.WriteString("Language Guidelines:\n")
	switch p.ResponseMode {
	case profile.ModeTargetOnly:
		fmt.Fprintf(&sb, "- CRITICAL: Respond ONLY in %s. Do NOT use %s translations or explanations.\n\n", target, native)
	default:
		fmt.Fprintf(&sb, "- Provide %s translations alongside the %s.\n\n", native, target)
	}

	sb.WriteString("General Guidelines:\n")
	if p.Level.Beginner() {
		sb.WriteString("1. The student is a beginner: use simple vocabulary and short sentences.\n")
	} else {
		sb.WriteString("1. Use vocabulary and grammar that challenge the student without overwhelming them.\n")
	}
	sb.WriteString("2. Adapt complexity to the student's level.\n")
	sb.WriteString("3. When an exercise is about spelling, don't show the answer in the question.\n\n")

	sb.WriteString(exerciseContract(p, forceExercises))
	return sb.String()
}

func exerciseContract(p profile.Profile, force bool) string {
	if !p.GenerateExercises && !force {
		return fmt.Sprintf("Output Format:\n- Reply with conversational text only. Never output the string %s.\n", reply.Sentinel)
	}

	var sb strings.Builder
	sb.WriteString("Output Format:\n")
	sb.WriteString("- Write your conversational reply first.\n")
	if force {
		fmt.Fprintf(&sb, "- You MUST then write the line %s followed by 3 to 5 practice exercises.\n", reply.Sentinel)
	} else {
		fmt.Fprintf(&sb, "- When practice would help, write the line %s after your reply, followed by 1 to 3 practice exercises based on the conversation.\n", reply.Sentinel)
		fmt.Fprintf(&sb, "- If no exercises fit, do not write %s at all.\n", reply.Sentinel)
	}
	fmt.Fprintf(&sb, "- Everything after %s must be pure JSON: a single array, no prose, no code fences.\n", reply.Sentinel)
	sb.WriteString("- Each element is an object with the fields:\n")
	sb.WriteString(`  "type": one of "fill-in-blank", "multiple-choice", "translation", "word-order"` + "\n")
	sb.WriteString(`  "question": the task shown to the student` + "\n")
	sb.WriteString(`  "options": array of strings, required for "multiple-choice" only` + "\n")
	sb.WriteString(`  "correctAnswer": the expected answer` + "\n")
	sb.WriteString(`  "explanation": a short explanation (optional)` + "\n")
	fmt.Fprintf(&sb, `  "difficulty": the CEFR level, e.g. "%s"`+"\n", p.Level)
	sb.WriteString(`  "topic": a short topic label, e.g. "verbs"` + "\n")
	sb.WriteString("- For \"multiple-choice\", \"options\" must contain the correctAnswer exactly.\n")
	return sb.String()
}

// MoreExercisesPrompt is the utterance sent when the learner asks for a
// fresh exercise set.
func MoreExercisesPrompt(p profile.Profile) string {
	return fmt.Sprintf("Please create new practice exercises for me to help me learn %s. Mix different types of exercises.",
		languageName(p.TargetLanguage))
}

// languageName title-cases a language name ("german" -> "German").
func languageName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return name
	}
	// Casers are stateful, so each call gets its own.
	return cases.Title(language.English).String(strings.ToLower(name))
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

package exercise

// Kind identifies how an exercise is answered.
type Kind string

const (
	KindFillInBlank    Kind = "fill-in-blank"
	KindMultipleChoice Kind = "multiple-choice"
	KindTranslation    Kind = "translation"
	KindWordOrder      Kind = "word-order"
)

// Kinds lists every supported kind in display order.
var Kinds = []Kind{KindFillInBlank, KindMultipleChoice, KindTranslation, KindWordOrder}

// Valid reports whether k is a supported kind.
func (k Kind) Valid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// Label returns a short human-readable name for the kind.
func (k Kind) Label() string {
	switch k {
	case KindFillInBlank:
		return "Fill in the blank"
	case KindMultipleChoice:
		return "Multiple choice"
	case KindTranslation:
		return "Translation"
	case KindWordOrder:
		return "Word order"
	default:
		return string(k)
	}
}

// Exercise is a single practice item. Exercises are immutable once
// recovered; a new batch replaces the previous one.
type Exercise struct {
	ID       string `json:"id"`
	Kind     Kind   `json:"type"`
	Question string `json:"question"`

	// Options is required for multiple-choice and must contain
	// CorrectAnswer whenever it is present.
	Options []string `json:"options,omitempty"`

	CorrectAnswer string `json:"correctAnswer"`
	Explanation   string `json:"explanation,omitempty"`
	Difficulty    string `json:"difficulty"`
	Topic         string `json:"topic"`
}

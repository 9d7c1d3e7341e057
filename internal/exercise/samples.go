package exercise

// Samples returns the fixed exercise set used when generation yields
// nothing usable. Each call returns a fresh slice.
func Samples() []Exercise {
	return []Exercise{
		{
			ID:            "sample-1",
			Kind:          KindFillInBlank,
			Question:      "Ich ___ Deutsch. (sprechen)",
			CorrectAnswer: "spreche",
			Explanation:   "With \"ich\" the verb \"sprechen\" becomes \"spreche\".",
			Difficulty:    "A1",
			Topic:         "verbs",
		},
		{
			ID:            "sample-2",
			Kind:          KindMultipleChoice,
			Question:      "Which article goes with \"Haus\"?",
			Options:       []string{"der", "die", "das"},
			CorrectAnswer: "das",
			Explanation:   "\"Haus\" is neuter: das Haus.",
			Difficulty:    "A1",
			Topic:         "articles",
		},
		{
			ID:            "sample-3",
			Kind:          KindTranslation,
			Question:      "Translate into German: \"Good morning\"",
			CorrectAnswer: "Guten Morgen",
			Difficulty:    "A1",
			Topic:         "greetings",
		},
		{
			ID:            "sample-4",
			Kind:          KindWordOrder,
			Question:      "Put the words in order: heiße / ich / Anna",
			CorrectAnswer: "Ich heiße Anna",
			Explanation:   "In a statement the verb comes second.",
			Difficulty:    "A1",
			Topic:         "sentence structure",
		},
		{
			ID:            "sample-5",
			Kind:          KindMultipleChoice,
			Question:      "What does \"danke\" mean?",
			Options:       []string{"please", "thank you", "goodbye", "hello"},
			CorrectAnswer: "thank you",
			Difficulty:    "A1",
			Topic:         "vocabulary",
		},
	}
}

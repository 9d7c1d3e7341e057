package vocab

import "strings"

// germanEnglish is the built-in phrasebook used before asking the model.
var germanEnglish = map[string]string{
	"hallo":                 "hello",
	"danke":                 "thank you",
	"bitte":                 "please",
	"guten morgen":          "good morning",
	"guten tag":             "good day",
	"guten abend":           "good evening",
	"gute nacht":            "good night",
	"auf wiedersehen":       "goodbye",
	"tschüss":               "bye",
	"entschuldigung":        "excuse me",
	"es tut mir leid":       "I'm sorry",
	"wie geht es dir":       "how are you",
	"mir geht es gut":       "I'm doing well",
	"ich liebe dich":        "I love you",
	"sprechen sie englisch": "do you speak English",
	"ich verstehe nicht":    "I don't understand",
	"können sie mir helfen": "can you help me",
	"wo ist":                "where is",
	"wieviel kostet":        "how much does it cost",
	"das ist schön":         "that is beautiful",
	"sehr gut":              "very good",
	"nicht gut":             "not good",
	"ich bin müde":          "I am tired",
	"ich habe hunger":       "I am hungry",
	"ich habe durst":        "I am thirsty",
	"wasser":                "water",
	"essen":                 "food",
	"haus":                  "house",
	"auto":                  "car",
	"buch":                  "book",
	"zeit":                  "time",
	"geld":                  "money",
	"arbeit":                "work",
	"schule":                "school",
	"familie":               "family",
	"freund":                "friend",
	"heute":                 "today",
	"morgen":                "tomorrow",
	"gestern":               "yesterday",
}

// lookupDictionary only knows German to English.
func lookupDictionary(text, from, to string) (string, bool) {
	if !strings.EqualFold(from, "german") || !strings.EqualFold(to, "english") {
		return "", false
	}
	t, ok := germanEnglish[strings.ToLower(strings.TrimSpace(text))]
	return t, ok
}

var cannedExamples = map[string][]ExampleSentence{
	"hallo": {
		{Source: "Hallo! Wie geht es dir?", Target: "Hello! How are you?", Difficulty: Beginner},
		{Source: "Er sagte hallo zu allen Gästen.", Target: "He said hello to all the guests.", Difficulty: Intermediate},
		{Source: "Mit einem freundlichen Hallo begrüßte sie ihre Kollegen.", Target: "With a friendly hello, she greeted her colleagues.", Difficulty: Advanced},
	},
	"danke": {
		{Source: "Danke für deine Hilfe.", Target: "Thank you for your help.", Difficulty: Beginner},
		{Source: "Ich möchte dir herzlich danken.", Target: "I would like to thank you warmly.", Difficulty: Intermediate},
		{Source: "Ohne ein Wort des Dankes verließ er den Raum.", Target: "Without a word of thanks, he left the room.", Difficulty: Advanced},
	},
	"haus": {
		{Source: "Das ist mein Haus.", Target: "This is my house.", Difficulty: Beginner},
		{Source: "Wir haben gestern ein neues Haus gekauft.", Target: "We bought a new house yesterday.", Difficulty: Intermediate},
		{Source: "Das imposante Haus wurde im 19. Jahrhundert erbaut.", Target: "The imposing house was built in the 19th century.", Difficulty: Advanced},
	},
}

// FallbackExamples returns the canned examples for word, or a template set
// built from the word and its translation. The result always has one
// sentence per tier, in tier order.
func FallbackExamples(word, translation string) []ExampleSentence {
	if canned, ok := cannedExamples[strings.ToLower(strings.TrimSpace(word))]; ok {
		return append([]ExampleSentence(nil), canned...)
	}
	return []ExampleSentence{
		{Source: "Das ist " + word + ".", Target: "This is " + translation + ".", Difficulty: Beginner},
		{Source: "Ich kenne " + word + " sehr gut.", Target: "I know " + translation + " very well.", Difficulty: Intermediate},
		{Source: word + " spielt eine wichtige Rolle.", Target: translation + " plays an important role.", Difficulty: Advanced},
	}
}

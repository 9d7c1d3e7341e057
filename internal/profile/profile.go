package profile

import "strings"

// Level is a CEFR proficiency level.
type Level string

const (
	LevelA1 Level = "A1"
	LevelA2 Level = "A2"
	LevelB1 Level = "B1"
	LevelB2 Level = "B2"
	LevelC1 Level = "C1"
	LevelC2 Level = "C2"
)

// Levels lists every level from beginner to mastery.
var Levels = []Level{LevelA1, LevelA2, LevelB1, LevelB2, LevelC1, LevelC2}

// Valid reports whether l is a known level.
func (l Level) Valid() bool {
	for _, known := range Levels {
		if l == known {
			return true
		}
	}
	return false
}

// Beginner reports whether l is A1 or A2.
func (l Level) Beginner() bool {
	return l == LevelA1 || l == LevelA2
}

// ParseLevel accepts any case ("b1", "B1").
func ParseLevel(s string) (Level, bool) {
	l := Level(strings.ToUpper(strings.TrimSpace(s)))
	return l, l.Valid()
}

// ResponseMode controls which language the tutor answers in.
type ResponseMode string

const (
	ModeBilingual  ResponseMode = "bilingual"
	ModeTargetOnly ResponseMode = "target-only"
)

// Modes lists every response mode.
var Modes = []ResponseMode{ModeBilingual, ModeTargetOnly}

// Valid reports whether m is a known mode.
func (m ResponseMode) Valid() bool {
	return m == ModeBilingual || m == ModeTargetOnly
}

// ParseMode accepts the mode names plus the legacy "german-only".
func ParseMode(s string) (ResponseMode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bilingual":
		return ModeBilingual, true
	case "target-only", "target", "german-only":
		return ModeTargetOnly, true
	}
	return "", false
}

// Profile is the single active learner profile.
type Profile struct {
	ID                string       `json:"id"`
	Name              string       `json:"name"`
	Level             Level        `json:"level"`
	TargetLanguage    string       `json:"targetLanguage"`
	NativeLanguage    string       `json:"nativeLanguage"`
	ResponseMode      ResponseMode `json:"responseLanguage"`
	GenerateExercises bool         `json:"generateExercises"`
	Avatar            string       `json:"avatar,omitempty"`
}

// Default returns the profile used when none is stored.
func Default() Profile {
	return Profile{
		ID:                "1",
		Name:              "Language Learner",
		Level:             LevelA1,
		TargetLanguage:    "German",
		NativeLanguage:    "English",
		ResponseMode:      ModeBilingual,
		GenerateExercises: true,
	}
}

// WithDefaults fills blank or invalid fields from Default. The exercise
// toggle is kept as is.
func (p Profile) WithDefaults() Profile {
	d := Default()
	if p.ID == "" {
		p.ID = d.ID
	}
	if strings.TrimSpace(p.Name) == "" {
		p.Name = d.Name
	}
	if !p.Level.Valid() {
		if l, ok := ParseLevel(string(p.Level)); ok {
			p.Level = l
		} else {
			p.Level = d.Level
		}
	}
	if strings.TrimSpace(p.TargetLanguage) == "" {
		p.TargetLanguage = d.TargetLanguage
	}
	if strings.TrimSpace(p.NativeLanguage) == "" {
		p.NativeLanguage = d.NativeLanguage
	}
	if !p.ResponseMode.Valid() {
		if m, ok := ParseMode(string(p.ResponseMode)); ok {
			p.ResponseMode = m
		} else {
			p.ResponseMode = d.ResponseMode
		}
	}
	return p
}

// NextLevel cycles through Levels, wrapping from C2 to A1.
func NextLevel(l Level) Level {
	for i, known := range Levels {
		if known == l {
			return Levels[(i+1)%len(Levels)]
		}
	}
	return LevelA1
}

// NextMode toggles between the response modes.
func NextMode(m ResponseMode) ResponseMode {
	if m == ModeBilingual {
		return ModeTargetOnly
	}
	return ModeBilingual
}
